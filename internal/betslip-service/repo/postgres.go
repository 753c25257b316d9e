package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/radieske/betslip-platform-poc/internal/betslip-service/rules"
)

// Postgres implementa a persistência de apostas e saldos em banco Postgres
type Postgres struct{ db *sql.DB }

// NewPostgres retorna uma instância do repositório de apostas
func NewPostgres(db *sql.DB) *Postgres { return &Postgres{db: db} }

var (
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrNotFound          = errors.New("not found")
)

// PlaceBet executa o commit de um betslip validado como unidade atômica:
// garante o player (criado com saldo default na primeira aposta), relê o
// saldo com lock pessimista na linha, insere bet, bet_selections e a linha
// do razão, e atualiza o saldo. Commits concorrentes do mesmo player
// serializam no FOR UPDATE; a suficiência é reconferida sob o lock e o
// commit aborta com ErrInsufficientFunds em vez de deixar saldo negativo.
func (p *Postgres) PlaceBet(ctx context.Context, playerID int64, stake float64, selections []Selection) (betID int64, newBalance float64, err error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, 0, err
	}
	defer tx.Rollback()

	// criação preguiçosa na primeira aposta; quem perder a corrida do
	// insert segue direto pro lock da linha existente
	if _, err = tx.ExecContext(ctx,
		`INSERT INTO players(player_id, balance) VALUES($1,$2) ON CONFLICT (player_id) DO NOTHING`,
		playerID, rules.DefaultPlayerBalance); err != nil {
		return 0, 0, fmt.Errorf("ensure player: %w", err)
	}

	// leitura autoritativa do saldo; a leitura da validação pode estar velha
	var balance float64
	if err = tx.QueryRowContext(ctx,
		`SELECT balance FROM players WHERE player_id=$1 FOR UPDATE`, playerID).Scan(&balance); err != nil {
		return 0, 0, fmt.Errorf("lock player balance: %w", err)
	}

	if balance < stake {
		return 0, 0, ErrInsufficientFunds
	}

	newBalance = balance - stake

	if err = tx.QueryRowContext(ctx,
		`INSERT INTO bets(player_id, stake_amount, created_at) VALUES($1,$2,NOW()) RETURNING id`,
		playerID, stake).Scan(&betID); err != nil {
		return 0, 0, fmt.Errorf("insert bet: %w", err)
	}

	for _, s := range selections {
		if _, err = tx.ExecContext(ctx,
			`INSERT INTO bet_selections(bet_id, selection_id, odds) VALUES($1,$2,$3)`,
			betID, s.SelectionID, s.Odds); err != nil {
			return 0, 0, fmt.Errorf("insert bet selection: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx,
		`INSERT INTO balance_transactions(player_id, amount, amount_before, created_at) VALUES($1,$2,$3,NOW())`,
		playerID, newBalance, balance); err != nil {
		return 0, 0, fmt.Errorf("insert balance transaction: %w", err)
	}

	if _, err = tx.ExecContext(ctx,
		`UPDATE players SET balance=$1 WHERE player_id=$2`, newBalance, playerID); err != nil {
		return 0, 0, fmt.Errorf("update player balance: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, 0, err
	}

	return betID, newBalance, nil
}

// GetBalance retorna o saldo corrente do player; found=false quando o
// player ainda não existe (primeira aposta ainda não commitada)
func (p *Postgres) GetBalance(ctx context.Context, playerID int64) (balance float64, found bool, err error) {
	err = p.db.QueryRowContext(ctx,
		`SELECT balance FROM players WHERE player_id=$1`, playerID).Scan(&balance)
	if err == sql.ErrNoRows {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return balance, true, nil
}

// GetBet retorna uma aposta commitada com suas seleções, na ordem de inserção
func (p *Postgres) GetBet(ctx context.Context, betID int64) (*Bet, []BetSelection, error) {
	var b Bet
	err := p.db.QueryRowContext(ctx,
		`SELECT id, player_id, stake_amount, created_at FROM bets WHERE id=$1`, betID).
		Scan(&b.ID, &b.PlayerID, &b.StakeAmount, &b.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil, ErrNotFound
	}
	if err != nil {
		return nil, nil, err
	}

	rows, err := p.db.QueryContext(ctx,
		`SELECT id, bet_id, selection_id, odds FROM bet_selections WHERE bet_id=$1 ORDER BY id`, betID)
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	var sels []BetSelection
	for rows.Next() {
		var s BetSelection
		if err := rows.Scan(&s.ID, &s.BetID, &s.SelectionID, &s.Odds); err != nil {
			return nil, nil, err
		}
		sels = append(sels, s)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	return &b, sels, nil
}
