package dto

import (
	"encoding/json"
	"time"
)

// FieldError é o par código/mensagem do contrato público de validação
type FieldError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SelectionErrors agrupa os erros atribuídos a uma seleção específica
type SelectionErrors struct {
	ID     int64        `json:"id"`
	Errors []FieldError `json:"errors"`
}

// PlaceBetErrorResponse é o envelope de rejeição: erros do betslip
// num balde, erros por seleção no outro
type PlaceBetErrorResponse struct {
	Errors     []FieldError      `json:"errors"`
	Selections []SelectionErrors `json:"selections"`
}

type BetResponse struct {
	ID          int64                  `json:"id"`
	PlayerID    int64                  `json:"player_id"`
	StakeAmount float64                `json:"stake_amount"`
	CreatedAt   time.Time              `json:"created_at"`
	Selections  []BetSelectionResponse `json:"selections"`
}

type BetSelectionResponse struct {
	ID   int64       `json:"id"`
	Odds json.Number `json:"odds"`
}

type BalanceResponse struct {
	PlayerID int64   `json:"player_id"`
	Balance  float64 `json:"balance"`
}
