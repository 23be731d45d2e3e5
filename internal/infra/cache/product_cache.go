// Package cache は商品詳細をRedisに置く。
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"marketplace/internal/domain/model"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "product:slug:"

type ProductCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// Connect はRedisに接続してPingで確認する
func Connect(ctx context.Context, addr, password string) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return rdb, nil
}

func NewProductCache(rdb *redis.Client, ttl time.Duration) *ProductCache {
	return &ProductCache{rdb: rdb, ttl: ttl}
}

func productKey(slug string) string {
	return keyPrefix + slug
}

// 見つからなければ found=false
func (c *ProductCache) Get(ctx context.Context, slug string) (model.Product, bool, error) {
	raw, err := c.rdb.Get(ctx, productKey(slug)).Bytes()
	if errors.Is(err, redis.Nil) {
		return model.Product{}, false, nil
	}
	if err != nil {
		return model.Product{}, false, err
	}

	var p model.Product
	if err := json.Unmarshal(raw, &p); err != nil {
		//壊れた値は無かったことにする
		return model.Product{}, false, nil
	}
	return p, true, nil
}

func (c *ProductCache) Set(ctx context.Context, p model.Product) error {
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, productKey(p.Slug), raw, c.ttl).Err()
}

func (c *ProductCache) Invalidate(ctx context.Context, slug string) error {
	return c.rdb.Del(ctx, productKey(slug)).Err()
}

// Redisを使わない環境用
type NoopProductCache struct{}

func (NoopProductCache) Get(context.Context, string) (model.Product, bool, error) {
	return model.Product{}, false, nil
}
func (NoopProductCache) Set(context.Context, model.Product) error { return nil }
func (NoopProductCache) Invalidate(context.Context, string) error { return nil }
