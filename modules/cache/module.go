package cache

import (
	"context"
	"log"
	"time"

	"github.com/go-monolith/mono"
	"github.com/redis/go-redis/v9"
)

// Module owns the Redis connection and hands the cache to its consumers.
// Redis is optional: when the connection cannot be established the module
// still starts and GetCache returns nil, so consumers fall back to
// uncached operation.
type Module struct {
	cache     *Cache
	client    *redis.Client
	redisAddr string
	prefix    string
	ttl       time.Duration
}

// Compile-time interface checks.
var _ mono.Module = (*Module)(nil)
var _ mono.HealthCheckableModule = (*Module)(nil)

// NewModule creates a cache module connecting to the given Redis address.
func NewModule(redisAddr, prefix string, ttl time.Duration) *Module {
	return &Module{
		redisAddr: redisAddr,
		prefix:    prefix,
		ttl:       ttl,
	}
}

// Name returns the module name.
func (m *Module) Name() string {
	return "cache"
}

// Init connects to Redis. A failed connection is logged and tolerated.
func (m *Module) Init(_ mono.ServiceContainer) error {
	m.client = redis.NewClient(&redis.Options{
		Addr:         m.redisAddr,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := m.client.Ping(context.Background()).Err(); err != nil {
		log.Printf("[cache] Redis unreachable at %s, running without cache: %v", m.redisAddr, err)
		m.client.Close()
		m.client = nil
		return nil
	}

	m.cache = New(m.client, m.prefix, m.ttl)
	log.Printf("[cache] Connected to Redis at %s (prefix: %s, TTL: %s)", m.redisAddr, m.prefix, m.ttl)
	return nil
}

// Start starts the module.
func (m *Module) Start(_ context.Context) error {
	log.Println("[cache] Module started")
	return nil
}

// Stop closes the Redis connection.
func (m *Module) Stop(_ context.Context) error {
	if m.client != nil {
		if err := m.client.Close(); err != nil {
			log.Printf("[cache] Error closing Redis connection: %v", err)
		}
	}
	log.Println("[cache] Module stopped")
	return nil
}

// GetCache returns the cache, or nil when Redis is unavailable.
func (m *Module) GetCache() *Cache {
	return m.cache
}

// Health reports the Redis connection state and cache counters.
func (m *Module) Health(ctx context.Context) mono.HealthStatus {
	if m.cache == nil {
		return mono.HealthStatus{
			Healthy: true,
			Message: "cache disabled, Redis unavailable",
		}
	}

	if err := m.cache.Ping(ctx); err != nil {
		return mono.HealthStatus{
			Healthy: false,
			Message: "Redis ping failed: " + err.Error(),
		}
	}

	stats := m.cache.Stats()
	return mono.HealthStatus{
		Healthy: true,
		Message: "cache operational",
		Details: map[string]interface{}{
			"hits":   stats.Hits,
			"misses": stats.Misses,
			"sets":   stats.Sets,
			"errors": stats.Errors,
		},
	}
}
