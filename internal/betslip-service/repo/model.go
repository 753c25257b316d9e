package repo

import "time"

// Player é a linha persistida em players. Balance só muda dentro do
// commit transacional de uma aposta.
type Player struct {
	ID       int64
	PlayerID int64
	Balance  float64
}

// Bet é a aposta persistida; imutável após criada.
type Bet struct {
	ID          int64
	PlayerID    int64
	StakeAmount float64
	CreatedAt   time.Time
}

// BetSelection é uma perna persistida da aposta. Odds guarda o texto
// exato submetido no betslip.
type BetSelection struct {
	ID          int64
	BetID       int64
	SelectionID int64
	Odds        string
}

// BalanceTransaction é a linha do razão append-only de saldo.
// amount_before da transação n é igual ao amount da transação n-1.
type BalanceTransaction struct {
	ID           int64
	PlayerID     int64
	Amount       float64
	AmountBefore float64
	CreatedAt    time.Time
}

// Selection é o par (selection_id, odds verbatim) a persistir junto da aposta
type Selection struct {
	SelectionID int64
	Odds        string
}
