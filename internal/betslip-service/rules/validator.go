package rules

import (
	"github.com/radieske/betslip-platform-poc/internal/betslip-service/dto"
)

// Result acumula o desfecho da validação de um betslip: erros do slip
// num balde, erros por seleção no outro (contrato público §errors/§selections)
type Result struct {
	Errors     []dto.FieldError
	Selections []dto.SelectionErrors
}

// OK indica que o betslip foi aceito (nenhum erro em nenhum balde)
func (r Result) OK() bool {
	return len(r.Errors) == 0 && len(r.Selections) == 0
}

func (r *Result) addSlipError(msg string) {
	r.Errors = append(r.Errors, ErrorFor(msg))
}

// Validate aplica todas as regras de negócio sobre um betslip contra o
// saldo corrente do player. Função pura: não toca banco nem cache.
// Checagens estruturais suprimem as checagens de campo apenas dos campos
// malformados; todo o resto acumula em vez de abortar na primeira falha.
func Validate(slip dto.PlaceBetRequest, currentBalance float64) Result {
	var res Result

	if slip.PlayerID == nil {
		res.addSlipError(MsgStructureMismatch)
	}

	stakeOK := slip.StakeAmount != nil
	if !stakeOK {
		res.addSlipError(MsgStructureMismatch)
	} else {
		stake := *slip.StakeAmount
		if stake < MinStakeAmount {
			res.addSlipError(MsgMinStakeAmount)
		}
		if stake > MaxStakeAmount {
			res.addSlipError(MsgMaxStakeAmount)
		}
	}

	if slip.Selections == nil {
		res.addSlipError(MsgStructureMismatch)
	} else {
		if len(slip.Selections) < MinSelections {
			res.addSlipError(MsgMinSelections)
		}
		if len(slip.Selections) > MaxSelections {
			res.addSlipError(MsgMaxSelections)
		}
	}

	// contagem de ids pra detecção de duplicata (por seleção ofensora)
	idCount := make(map[int64]int, len(slip.Selections))
	for _, sel := range slip.Selections {
		if sel.ID != nil {
			idCount[*sel.ID]++
		}
	}

	selectionsWellFormed := len(slip.Selections) > 0
	for _, sel := range slip.Selections {
		if sel.ID == nil || sel.Odds == nil {
			res.addSlipError(MsgStructureMismatch)
			selectionsWellFormed = false
			continue
		}
		odds, err := sel.Odds.Float64()
		if err != nil {
			res.addSlipError(MsgStructureMismatch)
			selectionsWellFormed = false
			continue
		}

		var errs []dto.FieldError
		if odds < MinOdds {
			errs = append(errs, ErrorFor(MsgMinOdds))
		}
		if odds > MaxOdds {
			errs = append(errs, ErrorFor(MsgMaxOdds))
		}
		if idCount[*sel.ID] > 1 {
			errs = append(errs, ErrorFor(MsgDuplicateSelection))
		}
		if len(errs) > 0 {
			res.Selections = append(res.Selections, dto.SelectionErrors{ID: *sel.ID, Errors: errs})
		}
	}

	if stakeOK && currentBalance < *slip.StakeAmount {
		res.addSlipError(MsgInsufficientBalance)
	}

	// teto de ganho: só com stake e seleções bem formadas; igual a 20000 passa
	if stakeOK && selectionsWellFormed {
		if potentialWin(*slip.StakeAmount, slip.Selections) > MaximumWinAmount {
			res.addSlipError(MsgMaximumWinAmount)
		}
	}

	return res
}

// potentialWin calcula stake * produto das odds do betslip
func potentialWin(stake float64, selections []dto.Selection) float64 {
	win := stake
	for _, sel := range selections {
		odds, _ := sel.Odds.Float64()
		win *= odds
	}
	return win
}
