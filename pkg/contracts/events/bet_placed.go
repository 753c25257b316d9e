package events

type BetPlaced struct {
	EventID      string         `json:"event_id"` // uuid gerado no commit
	BetID        int64          `json:"bet_id"`
	PlayerID     int64          `json:"player_id"`
	StakeAmount  float64        `json:"stake_amount"`
	Selections   []BetSelection `json:"selections"`
	BalanceAfter float64        `json:"balance_after"`
	TsUnixMs     int64          `json:"ts_unix_ms"`
}

type BetSelection struct {
	SelectionID int64  `json:"selection_id"`
	Odds        string `json:"odds"` // texto exato submetido no betslip
}
