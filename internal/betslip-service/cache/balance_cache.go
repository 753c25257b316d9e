package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

// BalanceCache guarda o saldo corrente dos players no Redis pra leitura
// da validação. Um hit desatualizado é tolerado: o commit relê o saldo
// com lock e reconfere a suficiência lá.
// Client: cliente Redis
// TTL: tempo de expiração dos registros
type BalanceCache struct {
	Client *redis.Client
	TTL    time.Duration
}

// NewBalanceCache cria o cache de saldo com TTL configurável
func NewBalanceCache(c *redis.Client, ttl time.Duration) *BalanceCache {
	return &BalanceCache{Client: c, TTL: ttl}
}

// key gera a chave Redis do saldo de um player
func key(playerID int64) string { return fmt.Sprintf("balance:%d", playerID) }

// GetBalance retorna o saldo cacheado; found=false em cache miss
func (c *BalanceCache) GetBalance(ctx context.Context, playerID int64) (float64, bool, error) {
	val, err := c.Client.Get(ctx, key(playerID)).Result()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	bal, err := strconv.ParseFloat(val, 64)
	if err != nil {
		// registro corrompido vale por um miss
		return 0, false, nil
	}
	return bal, true, nil
}

// SetBalance grava o saldo corrente do player com o TTL do cache
func (c *BalanceCache) SetBalance(ctx context.Context, playerID int64, balance float64) error {
	return c.Client.Set(ctx, key(playerID), strconv.FormatFloat(balance, 'f', -1, 64), c.TTL).Err()
}
