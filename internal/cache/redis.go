package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/peptide-store/internal/config"

	"github.com/redis/go-redis/v9"
)

// Store Redis JSON 缓存，nil 或未启用时所有操作为空操作
type Store struct {
	client *redis.Client
	prefix string
}

// NewStore 根据配置创建缓存；未启用时返回 nil
func NewStore(cfg *config.RedisConfig) *Store {
	if cfg == nil || !cfg.Enabled {
		return nil
	}
	addr := strings.TrimSpace(cfg.Host)
	if addr == "" {
		addr = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = "ps"
	}
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", addr, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
	return NewStoreWithClient(client, prefix)
}

// NewStoreWithClient 使用现有客户端创建缓存
func NewStoreWithClient(client *redis.Client, prefix string) *Store {
	if client == nil {
		return nil
	}
	return &Store{client: client, prefix: prefix}
}

// Enabled 判断缓存是否启用
func (s *Store) Enabled() bool {
	return s != nil && s.client != nil
}

// Client 获取 Redis 客户端
func (s *Store) Client() *redis.Client {
	if !s.Enabled() {
		return nil
	}
	return s.client
}

// Ping 检查连接
func (s *Store) Ping(ctx context.Context) error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Ping(ctx).Err()
}

// Close 关闭连接
func (s *Store) Close() error {
	if !s.Enabled() {
		return nil
	}
	return s.client.Close()
}

// GetJSON 获取 JSON 缓存
func (s *Store) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	if !s.Enabled() {
		return false, nil
	}
	val, err := s.client.Get(ctx, s.buildKey(key)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON 写入 JSON 缓存
func (s *Store) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	if !s.Enabled() {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.buildKey(key), payload, ttl).Err()
}

// Del 删除缓存
func (s *Store) Del(ctx context.Context, keys ...string) error {
	if !s.Enabled() || len(keys) == 0 {
		return nil
	}
	full := make([]string, 0, len(keys))
	for _, key := range keys {
		full = append(full, s.buildKey(key))
	}
	return s.client.Del(ctx, full...).Err()
}

func (s *Store) buildKey(key string) string {
	trimmed := strings.TrimSpace(key)
	if trimmed == "" {
		return s.prefix
	}
	return fmt.Sprintf("%s:%s", s.prefix, trimmed)
}
