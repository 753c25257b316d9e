package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/radieske/betslip-platform-poc/internal/betslip-service/dto"
	"github.com/radieske/betslip-platform-poc/internal/betslip-service/repo"
	"github.com/radieske/betslip-platform-poc/internal/shared/logger"
)

type fakeRepo struct {
	balances map[int64]float64
	bet      *repo.Bet
	betSels  []repo.BetSelection
}

func (f *fakeRepo) GetBalance(ctx context.Context, playerID int64) (float64, bool, error) {
	bal, ok := f.balances[playerID]
	return bal, ok, nil
}

func (f *fakeRepo) GetBet(ctx context.Context, betID int64) (*repo.Bet, []repo.BetSelection, error) {
	if f.bet == nil || f.bet.ID != betID {
		return nil, nil, repo.ErrNotFound
	}
	return f.bet, f.betSels, nil
}

type fakeCache struct {
	balances map[int64]float64
}

func (f *fakeCache) GetBalance(ctx context.Context, playerID int64) (float64, bool, error) {
	bal, ok := f.balances[playerID]
	return bal, ok, nil
}

func (f *fakeCache) SetBalance(ctx context.Context, playerID int64, balance float64) error {
	f.balances[playerID] = balance
	return nil
}

type fakeCommitter struct {
	slips []dto.PlaceBetRequest
	betID int64
	err   error
}

func (f *fakeCommitter) Commit(ctx context.Context, slip dto.PlaceBetRequest) (int64, error) {
	f.slips = append(f.slips, slip)
	return f.betID, f.err
}

func newTestServer(r *fakeRepo, c *fakeCommitter) *Server {
	if r.balances == nil {
		r.balances = map[int64]float64{}
	}
	return NewServer(logger.Nop(), r, &fakeCache{balances: map[int64]float64{}}, c)
}

func postBets(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/bets", strings.NewReader(body))
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	return rec
}

func decodeRejection(t *testing.T, rec *httptest.ResponseRecorder) dto.PlaceBetErrorResponse {
	t.Helper()
	var resp dto.PlaceBetErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestPlaceBetAccepted(t *testing.T) {
	committer := &fakeCommitter{betID: 42}
	srv := newTestServer(&fakeRepo{balances: map[int64]float64{1: 1000}}, committer)

	rec := postBets(t, srv, `{"player_id":1,"stake_amount":100,"selections":[{"id":1,"odds":2},{"id":2,"odds":3}]}`)
	require.Equal(t, http.StatusOK, rec.Code)
	// o contrato público não expõe o id da aposta
	require.JSONEq(t, `{}`, rec.Body.String())

	require.Len(t, committer.slips, 1)
	require.EqualValues(t, 1, *committer.slips[0].PlayerID)
}

func TestPlaceBetValidationRejection(t *testing.T) {
	committer := &fakeCommitter{}
	srv := newTestServer(&fakeRepo{balances: map[int64]float64{1: 1000}}, committer)

	rec := postBets(t, srv, `{"player_id":1,"stake_amount":0.1,"selections":[{"id":1,"odds":2}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	resp := decodeRejection(t, rec)
	require.Equal(t, []dto.FieldError{{Code: 2, Message: "Minimum stake amount is 0.3"}}, resp.Errors)
	require.NotNil(t, resp.Selections)
	require.Empty(t, resp.Selections)
	// rejeição não chega no processor
	require.Empty(t, committer.slips)
}

func TestPlaceBetMalformedBody(t *testing.T) {
	srv := newTestServer(&fakeRepo{}, &fakeCommitter{})

	for _, body := range []string{`not json`, `{"player_id":"abc","stake_amount":1,"selections":[]}`} {
		rec := postBets(t, srv, body)
		require.Equal(t, http.StatusBadRequest, rec.Code)
		resp := decodeRejection(t, rec)
		require.Equal(t, []dto.FieldError{{Code: 1, Message: "Betslip structure mismatch"}}, resp.Errors)
	}
}

// player nunca visto valida contra o saldo default
func TestPlaceBetUnseenPlayerUsesDefaultBalance(t *testing.T) {
	committer := &fakeCommitter{betID: 7}
	srv := newTestServer(&fakeRepo{}, committer)

	rec := postBets(t, srv, `{"player_id":99,"stake_amount":1000,"selections":[{"id":1,"odds":2}]}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = postBets(t, srv, `{"player_id":99,"stake_amount":1000.01,"selections":[{"id":1,"odds":2}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeRejection(t, rec)
	require.Equal(t, []dto.FieldError{{Code: 11, Message: "Insufficient balance"}}, resp.Errors)
}

// o saldo mudou entre a validação e o lock do commit: mesmo envelope código 11
func TestPlaceBetLateInsufficiency(t *testing.T) {
	committer := &fakeCommitter{err: repo.ErrInsufficientFunds}
	srv := newTestServer(&fakeRepo{balances: map[int64]float64{1: 1000}}, committer)

	rec := postBets(t, srv, `{"player_id":1,"stake_amount":100,"selections":[{"id":1,"odds":2}]}`)
	require.Equal(t, http.StatusBadRequest, rec.Code)
	resp := decodeRejection(t, rec)
	require.Equal(t, []dto.FieldError{{Code: 11, Message: "Insufficient balance"}}, resp.Errors)
}

func TestGetBet(t *testing.T) {
	r := &fakeRepo{
		bet: &repo.Bet{ID: 42, PlayerID: 1, StakeAmount: 100, CreatedAt: time.Unix(1700000000, 0).UTC()},
		betSels: []repo.BetSelection{
			{ID: 1, BetID: 42, SelectionID: 1, Odds: "2"},
			{ID: 2, BetID: 42, SelectionID: 2, Odds: "3.0"},
		},
	}
	srv := newTestServer(r, &fakeCommitter{})

	req := httptest.NewRequest(http.MethodGet, "/bets/42", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.BetResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.EqualValues(t, 42, resp.ID)
	require.Len(t, resp.Selections, 2)
	// odds voltam com o texto exato persistido
	require.Equal(t, json.Number("2"), resp.Selections[0].Odds)
	require.Equal(t, json.Number("3.0"), resp.Selections[1].Odds)

	req = httptest.NewRequest(http.MethodGet, "/bets/43", nil)
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetBalance(t *testing.T) {
	srv := newTestServer(&fakeRepo{balances: map[int64]float64{1: 900}}, &fakeCommitter{})

	req := httptest.NewRequest(http.MethodGet, "/players/1/balance", nil)
	rec := httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.BalanceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.EqualValues(t, 900, resp.Balance)

	// player nunca visto responde o saldo default
	req = httptest.NewRequest(http.MethodGet, "/players/999/balance", nil)
	rec = httptest.NewRecorder()
	srv.Router().ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.EqualValues(t, 1000, resp.Balance)
}
