package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"record-store/internal/domain"
	"record-store/internal/repository"

	"github.com/go-redis/redis/v8"
)

const cartTTL = 24 * time.Hour

// CartStore keeps one JSON cart blob per session under cart:<sessionID>.
// The TTL is refreshed on every save, so an active session never expires
// mid-shop.
type CartStore struct {
	rdb *redis.Client
}

var _ repository.CartStore = (*CartStore)(nil)

func NewCartStore(rdb *redis.Client) *CartStore {
	return &CartStore{rdb: rdb}
}

func cartKey(sessionID string) string {
	return fmt.Sprintf("cart:%s", sessionID)
}

func (s *CartStore) Get(ctx context.Context, sessionID string) (*domain.Cart, error) {
	data, err := s.rdb.Get(ctx, cartKey(sessionID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return &domain.Cart{SessionID: sessionID}, nil
		}
		return nil, fmt.Errorf("get cart: %w", err)
	}

	var cart domain.Cart
	if err := json.Unmarshal([]byte(data), &cart); err != nil {
		return nil, fmt.Errorf("decode cart: %w", err)
	}
	cart.SessionID = sessionID
	return &cart, nil
}

func (s *CartStore) Save(ctx context.Context, cart *domain.Cart) error {
	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := s.rdb.Set(ctx, cartKey(cart.SessionID), data, cartTTL).Err(); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func (s *CartStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.rdb.Del(ctx, cartKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
