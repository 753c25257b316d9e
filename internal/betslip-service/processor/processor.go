package processor

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/radieske/betslip-platform-poc/internal/betslip-service/dto"
	"github.com/radieske/betslip-platform-poc/internal/betslip-service/metrics"
	"github.com/radieske/betslip-platform-poc/internal/betslip-service/repo"
	"github.com/radieske/betslip-platform-poc/pkg/contracts/events"
)

// Repo é a unidade atômica de persistência do commit
type Repo interface {
	PlaceBet(ctx context.Context, playerID int64, stake float64, selections []repo.Selection) (betID int64, newBalance float64, err error)
}

// BalanceCache recebe o saldo novo após o commit
type BalanceCache interface {
	SetBalance(ctx context.Context, playerID int64, balance float64) error
}

// Publisher emite o evento bet_placed após o commit
type Publisher interface {
	PublishBetPlaced(ctx context.Context, e events.BetPlaced) error
}

// Processor orquestra o commit de um betslip já aceito pela validação
type Processor struct {
	log   *zap.Logger
	repo  Repo
	cache BalanceCache
	publ  Publisher
}

func New(log *zap.Logger, r Repo, c BalanceCache, p Publisher) *Processor {
	return &Processor{log: log, repo: r, cache: c, publ: p}
}

// Commit persiste o betslip como unidade atômica e retorna o id da
// aposta criada. Cache e evento rodam depois do commit e são melhor
// esforço: a aposta já está persistida quando eles falham.
func (p *Processor) Commit(ctx context.Context, slip dto.PlaceBetRequest) (int64, error) {
	start := time.Now()

	selections := make([]repo.Selection, 0, len(slip.Selections))
	for _, s := range slip.Selections {
		selections = append(selections, repo.Selection{
			SelectionID: *s.ID,
			Odds:        s.Odds.String(),
		})
	}

	betID, newBalance, err := p.repo.PlaceBet(ctx, *slip.PlayerID, *slip.StakeAmount, selections)
	if err != nil {
		metrics.CommitFailures.Inc()
		return 0, err
	}

	metrics.BetsPlaced.Inc()
	metrics.CommitDuration.Observe(time.Since(start).Seconds())

	if err := p.cache.SetBalance(ctx, *slip.PlayerID, newBalance); err != nil {
		p.log.Warn("balance cache refresh", zap.Int64("player_id", *slip.PlayerID), zap.Error(err))
	}

	eventSelections := make([]events.BetSelection, 0, len(selections))
	for _, s := range selections {
		eventSelections = append(eventSelections, events.BetSelection{
			SelectionID: s.SelectionID,
			Odds:        s.Odds,
		})
	}
	if err := p.publ.PublishBetPlaced(ctx, events.BetPlaced{
		EventID:      uuid.NewString(),
		BetID:        betID,
		PlayerID:     *slip.PlayerID,
		StakeAmount:  *slip.StakeAmount,
		Selections:   eventSelections,
		BalanceAfter: newBalance,
	}); err != nil {
		p.log.Warn("publish bet_placed", zap.Int64("bet_id", betID), zap.Error(err))
	}

	return betID, nil
}
