package rules

import "github.com/radieske/betslip-platform-poc/internal/betslip-service/dto"

// Limites de negócio do betslip
const (
	DefaultPlayerBalance = 1000.0
	MaximumWinAmount     = 20000.0

	MinStakeAmount = 0.3
	MaxStakeAmount = 10000.0
	MinSelections  = 1
	MaxSelections  = 20
	MinOdds        = 1.0
	MaxOdds        = 10000.0
)

// Mensagens públicas de validação (o código é derivado da mensagem)
const (
	MsgUnknownError        = "Unknown error"
	MsgStructureMismatch   = "Betslip structure mismatch"
	MsgMinStakeAmount      = "Minimum stake amount is 0.3"
	MsgMaxStakeAmount      = "Maximum stake amount is 10000"
	MsgMinSelections       = "Minimum number of selections is 1"
	MsgMaxSelections       = "Maximum number of selections is 20"
	MsgMinOdds             = "Minimum odds are 1"
	MsgMaxOdds             = "Maximum odds are 10000"
	MsgDuplicateSelection  = "Duplicate selection found"
	MsgMaximumWinAmount    = "Maximum win amount is 20000"
	MsgInsufficientBalance = "Insufficient balance"
)

// errorCodes é a tabela somente-leitura de mensagem -> código público
var errorCodes = map[string]int{
	MsgUnknownError:        0,
	MsgStructureMismatch:   1,
	MsgMinStakeAmount:      2,
	MsgMaxStakeAmount:      3,
	MsgMinSelections:       4,
	MsgMaxSelections:       5,
	MsgMinOdds:             6,
	MsgMaxOdds:             7,
	MsgDuplicateSelection:  8,
	MsgMaximumWinAmount:    9,
	MsgInsufficientBalance: 11,
}

// ErrorFor monta o FieldError público de uma mensagem; mensagens fora
// da tabela colapsam no código 0 (Unknown error), nunca somem caladas
func ErrorFor(msg string) dto.FieldError {
	code, ok := errorCodes[msg]
	if !ok {
		return dto.FieldError{Code: errorCodes[MsgUnknownError], Message: MsgUnknownError}
	}
	return dto.FieldError{Code: code, Message: msg}
}
