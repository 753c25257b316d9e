package producer

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	skafka "github.com/radieske/betslip-platform-poc/internal/shared/kafka"
	"github.com/radieske/betslip-platform-poc/pkg/contracts/events"
)

// KafkaPublisher escreve no tópico já configurado no Writer
type KafkaPublisher struct {
	Writer *kafkago.Writer
}

func NewKafkaPublisher(w *kafkago.Writer) *KafkaPublisher {
	return &KafkaPublisher{Writer: w}
}

// PublishBetPlaced emite o evento de aposta commitada; a chave é o
// player_id pra manter a ordem por player na partição
func (p *KafkaPublisher) PublishBetPlaced(ctx context.Context, e events.BetPlaced) error {
	e.TsUnixMs = time.Now().UnixMilli()
	b, _ := json.Marshal(e)
	return skafka.WriteJSON(ctx, p.Writer, strconv.FormatInt(e.PlayerID, 10), b)
}
