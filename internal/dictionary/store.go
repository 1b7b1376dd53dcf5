package dictionary

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const (
	rulesHashKey  = "vyakarni:custom_rules"
	rulesOrderKey = "vyakarni:custom_rules:order"
)

// Store keeps user-added replacement rules in Redis. A hash maps the
// incorrect form to its correction; a list preserves insertion order,
// since rule order defines tie-break within a pass.
type Store struct {
	client *redis.Client
}

// NewStore creates a Store backed by the provided Redis client.
func NewStore(client *redis.Client) *Store {
	return &Store{client: client}
}

// Add inserts or updates a custom rule. Re-adding an existing incorrect
// form moves it to the end of the order.
func (s *Store) Add(ctx context.Context, incorrect, correct string) error {
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, rulesHashKey, incorrect, correct)
	pipe.LRem(ctx, rulesOrderKey, 0, incorrect)
	pipe.RPush(ctx, rulesOrderKey, incorrect)
	_, err := pipe.Exec(ctx)
	return err
}

// Remove deletes a custom rule by its incorrect form.
func (s *Store) Remove(ctx context.Context, incorrect string) error {
	pipe := s.client.TxPipeline()
	pipe.HDel(ctx, rulesHashKey, incorrect)
	pipe.LRem(ctx, rulesOrderKey, 0, incorrect)
	_, err := pipe.Exec(ctx)
	return err
}

// All returns the custom rules in insertion order.
func (s *Store) All(ctx context.Context) ([]Rule, error) {
	order, err := s.client.LRange(ctx, rulesOrderKey, 0, -1).Result()
	if err != nil {
		return nil, err
	}
	if len(order) == 0 {
		return nil, nil
	}
	mapped, err := s.client.HGetAll(ctx, rulesHashKey).Result()
	if err != nil {
		return nil, err
	}
	rules := make([]Rule, 0, len(order))
	for _, inc := range order {
		if cor, ok := mapped[inc]; ok {
			rules = append(rules, Rule{Incorrect: inc, Correct: cor})
		}
	}
	return rules, nil
}

// Ping reports whether the Redis backend is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
