package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/radieske/betslip-platform-poc/internal/betslip-service/dto"
	"github.com/radieske/betslip-platform-poc/internal/betslip-service/metrics"
	"github.com/radieske/betslip-platform-poc/internal/betslip-service/repo"
	"github.com/radieske/betslip-platform-poc/internal/betslip-service/rules"
)

// Repo define as leituras de persistência usadas pelo handler HTTP
type Repo interface {
	GetBalance(ctx context.Context, playerID int64) (balance float64, found bool, err error)
	GetBet(ctx context.Context, betID int64) (*repo.Bet, []repo.BetSelection, error)
}

// BalanceCache é o cache read-through do saldo usado na validação
type BalanceCache interface {
	GetBalance(ctx context.Context, playerID int64) (balance float64, found bool, err error)
	SetBalance(ctx context.Context, playerID int64, balance float64) error
}

// Committer executa a unidade atômica de persistência do betslip aceito
type Committer interface {
	Commit(ctx context.Context, slip dto.PlaceBetRequest) (betID int64, err error)
}

type Server struct {
	log   *zap.Logger
	repo  Repo
	cache BalanceCache
	proc  Committer
}

func NewServer(log *zap.Logger, r Repo, c BalanceCache, p Committer) *Server {
	return &Server{log: log, repo: r, cache: c, proc: p}
}

func (s *Server) Router() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/bets", s.placeBet)       // POST
	mux.HandleFunc("/bets/", s.getBet)        // GET /bets/{id}
	mux.HandleFunc("/players/", s.getBalance) // GET /players/{id}/balance
	return mux
}

// placeBet decodifica o betslip, valida contra o saldo corrente e, se
// aceito, commita. O corpo de sucesso é um objeto vazio: o contrato
// público não expõe o id da aposta criada.
func (s *Server) placeBet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req dto.PlaceBetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		// payload fora do contrato (JSON inválido, tipo errado) vira código 1
		s.writeRejection(w, rules.Result{Errors: []dto.FieldError{rules.ErrorFor(rules.MsgStructureMismatch)}})
		return
	}

	result := rules.Validate(req, s.currentBalance(r.Context(), req))
	if !result.OK() {
		s.writeRejection(w, result)
		return
	}

	betID, err := s.proc.Commit(r.Context(), req)
	if err != nil {
		if errors.Is(err, repo.ErrInsufficientFunds) {
			// o saldo mudou entre a leitura da validação e o lock do commit
			s.writeRejection(w, rules.Result{Errors: []dto.FieldError{rules.ErrorFor(rules.MsgInsufficientBalance)}})
			return
		}
		s.log.Error("bet commit", zap.Int64("player_id", *req.PlayerID), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	s.log.Info("bet placed", zap.Int64("bet_id", betID), zap.Int64("player_id", *req.PlayerID))
	writeJSON(w, struct{}{})
}

// currentBalance resolve o saldo pra validação: cache, banco, ou o
// default de player ainda não visto. Uma leitura velha é tolerada; o
// commit reconfere a suficiência sob lock.
func (s *Server) currentBalance(ctx context.Context, req dto.PlaceBetRequest) float64 {
	if req.PlayerID == nil {
		// estrutura inválida; a validação rejeita antes do saldo importar
		return rules.DefaultPlayerBalance
	}

	if bal, found, err := s.cache.GetBalance(ctx, *req.PlayerID); err == nil && found {
		return bal
	}

	bal, found, err := s.repo.GetBalance(ctx, *req.PlayerID)
	if err != nil {
		s.log.Warn("balance read", zap.Int64("player_id", *req.PlayerID), zap.Error(err))
		return rules.DefaultPlayerBalance
	}
	if !found {
		return rules.DefaultPlayerBalance
	}

	_ = s.cache.SetBalance(ctx, *req.PlayerID, bal)
	return bal
}

// writeRejection serializa o envelope de rejeição com os dois baldes
// sempre presentes (listas vazias, nunca null) e conta as métricas
func (s *Server) writeRejection(w http.ResponseWriter, result rules.Result) {
	resp := dto.PlaceBetErrorResponse{
		Errors:     result.Errors,
		Selections: result.Selections,
	}
	if resp.Errors == nil {
		resp.Errors = []dto.FieldError{}
	}
	if resp.Selections == nil {
		resp.Selections = []dto.SelectionErrors{}
	}

	for _, e := range resp.Errors {
		metrics.ValidationRejections.WithLabelValues(strconv.Itoa(e.Code)).Inc()
	}
	for _, sel := range resp.Selections {
		for _, e := range sel.Errors {
			metrics.ValidationRejections.WithLabelValues(strconv.Itoa(e.Code)).Inc()
		}
	}

	writeJSONStatus(w, http.StatusBadRequest, resp)
}

// getBet retorna uma aposta commitada com suas seleções
func (s *Server) getBet(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// path: /bets/{id}
	betID, err := strconv.ParseInt(strings.TrimPrefix(r.URL.Path, "/bets/"), 10, 64)
	if err != nil {
		http.Error(w, "betId required", http.StatusBadRequest)
		return
	}

	bet, selections, err := s.repo.GetBet(r.Context(), betID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}
		s.log.Error("get bet", zap.Int64("bet_id", betID), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	resp := dto.BetResponse{
		ID:          bet.ID,
		PlayerID:    bet.PlayerID,
		StakeAmount: bet.StakeAmount,
		CreatedAt:   bet.CreatedAt,
		Selections:  make([]dto.BetSelectionResponse, 0, len(selections)),
	}
	for _, sel := range selections {
		resp.Selections = append(resp.Selections, dto.BetSelectionResponse{
			ID:   sel.SelectionID,
			Odds: json.Number(sel.Odds),
		})
	}
	writeJSON(w, resp)
}

// getBalance retorna o saldo corrente do player; players nunca vistos
// respondem o saldo default (criação é implícita na primeira aposta)
func (s *Server) getBalance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	// path: /players/{id}/balance
	path := strings.TrimPrefix(r.URL.Path, "/players/")
	idPart, ok := strings.CutSuffix(path, "/balance")
	if !ok {
		http.Error(w, "not found", http.StatusNotFound)
		return
	}
	playerID, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		http.Error(w, "playerId required", http.StatusBadRequest)
		return
	}

	balance, found, err := s.repo.GetBalance(r.Context(), playerID)
	if err != nil {
		s.log.Error("get balance", zap.Int64("player_id", playerID), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	if !found {
		balance = rules.DefaultPlayerBalance
	}

	writeJSON(w, dto.BalanceResponse{PlayerID: playerID, Balance: balance})
}

// writeJSON serializa e envia resposta JSON
func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONStatus(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
