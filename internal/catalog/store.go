package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/andreasstove999/storefront-client-go/internal/api"
)

// Store holds the last fetched product list. MemStore is the default;
// RedisStore lets several storefront processes share one warm catalog.
type Store interface {
	Save(ctx context.Context, products []api.Product) error
	Load(ctx context.Context) ([]api.Product, bool, error)
}

type MemStore struct {
	mu       sync.Mutex
	products []api.Product
	loaded   bool
}

func NewMemStore() *MemStore { return &MemStore{} }

func (s *MemStore) Save(_ context.Context, products []api.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = make([]api.Product, len(products))
	copy(s.products, products)
	s.loaded = true
	return nil
}

func (s *MemStore) Load(_ context.Context) ([]api.Product, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, false, nil
	}
	out := make([]api.Product, len(s.products))
	copy(out, s.products)
	return out, true, nil
}

const redisCatalogKey = "storefront:catalog:products"

// RedisStore keeps the product list as one JSON value with a TTL, so a
// fleet of clients does not hammer GET /products.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisStore(redisURL string, ttl time.Duration) (*RedisStore, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &RedisStore{client: client, ttl: ttl}, nil
}

func (s *RedisStore) Save(ctx context.Context, products []api.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	if err := s.client.Set(ctx, redisCatalogKey, raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

func (s *RedisStore) Load(ctx context.Context) ([]api.Product, bool, error) {
	raw, err := s.client.Get(ctx, redisCatalogKey).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load catalog: %w", err)
	}
	var products []api.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false, fmt.Errorf("decode catalog: %w", err)
	}
	return products, true, nil
}

func (s *RedisStore) Close() error { return s.client.Close() }
