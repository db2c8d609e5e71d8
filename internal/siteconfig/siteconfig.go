// Package siteconfig provides the singleton site display configuration.
package siteconfig

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Config holds site-wide display settings. One instance per deployment;
// admin saves overwrite it wholesale.
type Config struct {
	HeroImageURL string `json:"hero_image_url"`
	ClinicName   string `json:"clinic_name,omitempty"`
	ContactPhone string `json:"contact_phone,omitempty"`
}

// DefaultConfig returns the configuration used before an admin saves one.
func DefaultConfig() *Config {
	return &Config{
		ClinicName: "Lumina Dental",
	}
}

// Store persists the singleton config.
type Store interface {
	Get(ctx context.Context) (*Config, error)
	Set(ctx context.Context, cfg *Config) error
}

const redisKey = "site:config"

// RedisStore keeps the config in Redis as JSON.
type RedisStore struct {
	redis *redis.Client
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(redisClient *redis.Client) *RedisStore {
	return &RedisStore{redis: redisClient}
}

// Get retrieves the config, returning the default if none was saved.
func (s *RedisStore) Get(ctx context.Context) (*Config, error) {
	data, err := s.redis.Get(ctx, redisKey).Bytes()
	if err == redis.Nil {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("siteconfig: get: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("siteconfig: unmarshal: %w", err)
	}
	return &cfg, nil
}

// Set saves the config, replacing any previous value.
func (s *RedisStore) Set(ctx context.Context, cfg *Config) error {
	data, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("siteconfig: marshal: %w", err)
	}
	if err := s.redis.Set(ctx, redisKey, data, 0).Err(); err != nil {
		return fmt.Errorf("siteconfig: set: %w", err)
	}
	return nil
}

// InMemoryStore is the reference Store for tests and redis-less setups.
type InMemoryStore struct {
	mu  sync.RWMutex
	cfg *Config
}

// NewInMemoryStore creates an empty in-memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

// Get returns the saved config or the default.
func (s *InMemoryStore) Get(ctx context.Context) (*Config, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cfg == nil {
		return DefaultConfig(), nil
	}
	out := *s.cfg
	return &out, nil
}

// Set replaces the config.
func (s *InMemoryStore) Set(ctx context.Context, cfg *Config) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	copied := *cfg
	s.cfg = &copied
	return nil
}
