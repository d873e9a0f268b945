package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go-price-checker/internal/model"

	"github.com/go-redis/redis/v8"
)

// DefaultSnapshotKey is where the catalog snapshot is stored
const DefaultSnapshotKey = "price-checker:catalog"

var ErrNoSnapshot = errors.New("no catalog snapshot stored")

// Snapshot persists a copy of the catalog for bootstrap fallback
type Snapshot interface {
	Save(ctx context.Context, products []model.Product) error
	Load(ctx context.Context) ([]model.Product, error)
}

type snapshotPayload struct {
	SavedAt  time.Time       `json:"saved_at"`
	Products []model.Product `json:"products"`
}

// RedisSnapshot stores the catalog as one JSON value
type RedisSnapshot struct {
	client *redis.Client
	key    string
}

// NewRedisSnapshot connects to addr and pings it before returning
func NewRedisSnapshot(addr, password, key string) (*RedisSnapshot, error) {
	if addr == "" {
		return nil, fmt.Errorf("redis address not set")
	}
	if key == "" {
		key = DefaultSnapshotKey
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	slog.Info("connected to redis", "addr", addr, "key", key)

	return &RedisSnapshot{client: client, key: key}, nil
}

func (s *RedisSnapshot) Save(ctx context.Context, products []model.Product) error {
	payload, err := json.Marshal(snapshotPayload{SavedAt: time.Now(), Products: products})
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := s.client.Set(ctx, s.key, payload, 0).Err(); err != nil {
		return fmt.Errorf("failed to store snapshot: %w", err)
	}
	return nil
}

func (s *RedisSnapshot) Load(ctx context.Context) ([]model.Product, error) {
	raw, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}

	var payload snapshotPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return payload.Products, nil
}

// Close closes the Redis connection
func (s *RedisSnapshot) Close() error {
	return s.client.Close()
}
