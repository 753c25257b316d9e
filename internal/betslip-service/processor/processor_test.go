package processor

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/radieske/betslip-platform-poc/internal/betslip-service/dto"
	"github.com/radieske/betslip-platform-poc/internal/betslip-service/repo"
	"github.com/radieske/betslip-platform-poc/internal/shared/logger"
	"github.com/radieske/betslip-platform-poc/pkg/contracts/events"
)

type fakeRepo struct {
	playerID   int64
	stake      float64
	selections []repo.Selection

	betID      int64
	newBalance float64
	err        error
}

func (f *fakeRepo) PlaceBet(ctx context.Context, playerID int64, stake float64, selections []repo.Selection) (int64, float64, error) {
	f.playerID = playerID
	f.stake = stake
	f.selections = selections
	return f.betID, f.newBalance, f.err
}

type fakeCache struct {
	playerID int64
	balance  float64
	calls    int
}

func (f *fakeCache) SetBalance(ctx context.Context, playerID int64, balance float64) error {
	f.playerID = playerID
	f.balance = balance
	f.calls++
	return nil
}

type fakePublisher struct {
	published []events.BetPlaced
}

func (f *fakePublisher) PublishBetPlaced(ctx context.Context, e events.BetPlaced) error {
	f.published = append(f.published, e)
	return nil
}

func acceptedSlip(playerID int64, stake float64, selections ...dto.Selection) dto.PlaceBetRequest {
	return dto.PlaceBetRequest{
		PlayerID:    &playerID,
		StakeAmount: &stake,
		Selections:  selections,
	}
}

func sel(id int64, odds string) dto.Selection {
	n := json.Number(odds)
	return dto.Selection{ID: &id, Odds: &n}
}

func TestCommit(t *testing.T) {
	r := &fakeRepo{betID: 42, newBalance: 900}
	c := &fakeCache{}
	p := &fakePublisher{}
	proc := New(logger.Nop(), r, c, p)

	betID, err := proc.Commit(context.Background(), acceptedSlip(1, 100, sel(1, "2"), sel(2, "3.0")))
	require.NoError(t, err)
	require.EqualValues(t, 42, betID)

	// seleções chegam no repositório com as odds verbatim
	require.EqualValues(t, 1, r.playerID)
	require.EqualValues(t, 100, r.stake)
	require.Equal(t, []repo.Selection{
		{SelectionID: 1, Odds: "2"},
		{SelectionID: 2, Odds: "3.0"},
	}, r.selections)

	// cache atualizado com o saldo pós-commit
	require.Equal(t, 1, c.calls)
	require.EqualValues(t, 900, c.balance)

	// evento emitido com o resultado do commit
	require.Len(t, p.published, 1)
	e := p.published[0]
	require.NotEmpty(t, e.EventID)
	require.EqualValues(t, 42, e.BetID)
	require.EqualValues(t, 1, e.PlayerID)
	require.EqualValues(t, 900, e.BalanceAfter)
	require.Equal(t, []events.BetSelection{
		{SelectionID: 1, Odds: "2"},
		{SelectionID: 2, Odds: "3.0"},
	}, e.Selections)
}

func TestCommitAbortPropagates(t *testing.T) {
	r := &fakeRepo{err: repo.ErrInsufficientFunds}
	c := &fakeCache{}
	p := &fakePublisher{}
	proc := New(logger.Nop(), r, c, p)

	_, err := proc.Commit(context.Background(), acceptedSlip(1, 100, sel(1, "2")))
	require.ErrorIs(t, err, repo.ErrInsufficientFunds)

	// commit abortado não toca cache nem publica evento
	require.Zero(t, c.calls)
	require.Empty(t, p.published)
}
