package cache

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/omniscope-hq/meeting-intel/internal/domain/entities"
	"github.com/omniscope-hq/meeting-intel/pkg/config"
)

// NewRedisClient creates a Redis client and verifies connectivity
func NewRedisClient(cfg *config.Config) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.GetRedisAddr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	log.Println("✅ Redis connected successfully")
	return client, nil
}

const (
	dedupKeyPrefix  = "intel:dedup:"
	dedupTTL        = 7 * 24 * time.Hour
	importCursorKey = "intel:fathom:import_cursor"
)

// IntelCache is the Redis-backed fast path for ingestion dedup and the
// import cursor store. Every operation is best effort: a Redis failure is
// logged and absorbed, never surfaced to the pipeline.
type IntelCache struct {
	client *redis.Client
	logger *zap.Logger
}

// NewIntelCache creates a cache around an established Redis client
func NewIntelCache(client *redis.Client, logger *zap.Logger) *IntelCache {
	return &IntelCache{
		client: client,
		logger: logger,
	}
}

func dedupKey(sourceID string, sourceType entities.SourceType) string {
	return dedupKeyPrefix + string(sourceType) + ":" + sourceID
}

// GetMeetingID looks up a cached dedup hit for a source key
func (c *IntelCache) GetMeetingID(ctx context.Context, sourceID string, sourceType entities.SourceType) (string, bool) {
	val, err := c.client.Get(ctx, dedupKey(sourceID, sourceType)).Result()
	if err == redis.Nil {
		return "", false
	}
	if err != nil {
		if c.logger != nil {
			c.logger.Warn("dedup cache read failed", zap.Error(err))
		}
		return "", false
	}
	return val, true
}

// SetMeetingID records an ingested source key so redeliveries skip the
// database lookup
func (c *IntelCache) SetMeetingID(ctx context.Context, sourceID string, sourceType entities.SourceType, meetingID string) {
	if err := c.client.Set(ctx, dedupKey(sourceID, sourceType), meetingID, dedupTTL).Err(); err != nil {
		if c.logger != nil {
			c.logger.Warn("dedup cache write failed", zap.Error(err))
		}
	}
}

// LoadImportCursor returns the stored batch-import cursor, or "" when none
// has been saved yet
func (c *IntelCache) LoadImportCursor(ctx context.Context) (string, error) {
	val, err := c.client.Get(ctx, importCursorKey).Result()
	if err == redis.Nil {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

// SaveImportCursor persists the batch-import cursor for the next run
func (c *IntelCache) SaveImportCursor(ctx context.Context, cursor string) error {
	return c.client.Set(ctx, importCursorKey, cursor, 0).Err()
}
