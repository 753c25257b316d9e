package dto

import "encoding/json"

// PlaceBetRequest é o betslip submetido pelo cliente.
// Campos como ponteiro pra distinguir ausente de zero na checagem estrutural.
type PlaceBetRequest struct {
	PlayerID    *int64      `json:"player_id"`
	StakeAmount *float64    `json:"stake_amount"`
	Selections  []Selection `json:"selections"`
}

// Selection é uma perna do betslip. Odds fica como json.Number pra
// validar numericamente e ainda persistir o texto exato submetido.
type Selection struct {
	ID   *int64       `json:"id"`
	Odds *json.Number `json:"odds"`
}
