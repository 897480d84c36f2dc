package history

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"

	"meal-planner/internal/infrastructure/config"
	"meal-planner/internal/pkg/common"
)

const redisKeyPrefix = "history:"

// RedisStore 以 Redis 保存歷史記錄，過期交由 Redis TTL 處理
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 建立 Redis 歷史儲存並測試連接
func NewRedisStore(cfg *config.HistoryConfig) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: cfg.RedisAddr,
		DB:   cfg.RedisDB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

func redisKey(weekStart string) string {
	return redisKeyPrefix + weekStart
}

// Save 寫入歷史記錄並設定 TTL
func (s *RedisStore) Save(ctx context.Context, entry *Entry) error {
	data, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("encode history entry: %w", err)
	}

	ttl := time.Duration(entry.TTLDays) * 24 * time.Hour
	if err := s.client.Set(ctx, redisKey(entry.WeekStart), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to set history: %w", err)
	}

	common.LogInfo("已保存歷史記錄",
		zap.String("week_start", entry.WeekStart),
		zap.Int("ttl_days", entry.TTLDays),
	)
	return nil
}

// Entries 讀取所有歷史記錄，已過期者由 Redis 自動清除
func (s *RedisStore) Entries(ctx context.Context, includeExpired bool) ([]*Entry, error) {
	keys, err := s.client.Keys(ctx, redisKeyPrefix+"*").Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list history keys: %w", err)
	}

	now := time.Now()
	entries := make([]*Entry, 0, len(keys))
	for _, key := range keys {
		data, err := s.client.Get(ctx, key).Bytes()
		if err != nil {
			if err == redis.Nil {
				continue
			}
			return nil, fmt.Errorf("failed to get history: %w", err)
		}

		var entry Entry
		if err := common.ParseJSONBytes(data, &entry); err != nil {
			common.LogWarn("歷史記錄格式錯誤",
				zap.String("key", key),
				zap.Error(err),
			)
			continue
		}

		if !includeExpired && entry.Expired(now) {
			continue
		}
		entries = append(entries, &entry)
	}

	sortEntries(entries)
	return entries, nil
}

// Close 關閉 Redis 連接
func (s *RedisStore) Close() error {
	return s.client.Close()
}
