package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	"github.com/psolovev/storefront/internal/core/domain"
)

const stockKeyPrefix = "stock:"

// reserveScript checks and decrements in one round trip so concurrent
// reservations for the same SKU cannot both succeed on the last units.
var reserveScript = redis.NewScript(`
local key = KEYS[1]
local quantity = tonumber(ARGV[1])

local current = redis.call('GET', key)
if not current then
	return 0
end

current = tonumber(current)
if current >= quantity then
	redis.call('DECRBY', key, quantity)
	return 1
end

return 0
`)

// RedisLedger implements the inventory ledger on Redis, letting
// several processes share one set of stock counters. Atomicity per SKU
// comes from Redis's single-threaded command execution instead of an
// in-process lock.
type RedisLedger struct {
	client *redis.Client
}

func NewRedisLedger(client *redis.Client) *RedisLedger {
	return &RedisLedger{client: client}
}

func (r *RedisLedger) AvailableQuantity(ctx context.Context, sku string) (int, error) {
	val, err := r.client.Get(ctx, stockKeyPrefix+sku).Int()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return val, nil
}

func (r *RedisLedger) Reserve(ctx context.Context, sku string, quantity int) (bool, error) {
	result, err := reserveScript.Run(ctx, r.client, []string{stockKeyPrefix + sku}, quantity).Int()
	if err != nil {
		return false, err
	}
	return result == 1, nil
}

func (r *RedisLedger) Release(ctx context.Context, sku string, quantity int) error {
	return r.client.IncrBy(ctx, stockKeyPrefix+sku, int64(quantity)).Err()
}

func (r *RedisLedger) AddStock(ctx context.Context, sku string, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	return r.client.IncrBy(ctx, stockKeyPrefix+sku, int64(quantity)).Err()
}
