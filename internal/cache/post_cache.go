package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"postboard/internal/model"
)

type PostCache struct {
	client *redisv9.Client
	ttl    time.Duration
}

func NewPostCache(client *redisv9.Client, ttl time.Duration) *PostCache {
	if ttl <= 0 {
		ttl = 60 * time.Second
	}
	return &PostCache{
		client: client,
		ttl:    ttl,
	}
}

func (c *PostCache) GetPostDetail(ctx context.Context, id uint) (*model.PostDetail, bool, error) {
	raw, err := c.client.Get(ctx, c.detailKey(id)).Bytes()
	if errors.Is(err, redisv9.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get post detail failed: %w", err)
	}

	var detail model.PostDetail
	if err := json.Unmarshal(raw, &detail); err != nil {
		return nil, false, fmt.Errorf("unmarshal cached post detail failed: %w", err)
	}
	return &detail, true, nil
}

func (c *PostCache) SetPostDetail(ctx context.Context, detail *model.PostDetail) error {
	payload, err := json.Marshal(detail)
	if err != nil {
		return fmt.Errorf("marshal post detail cache failed: %w", err)
	}
	if err := c.client.Set(ctx, c.detailKey(detail.ID), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set post detail failed: %w", err)
	}
	return nil
}

func (c *PostCache) DeletePostDetail(ctx context.Context, id uint) error {
	if err := c.client.Del(ctx, c.detailKey(id)).Err(); err != nil {
		return fmt.Errorf("redis delete post detail failed: %w", err)
	}
	return nil
}

func (c *PostCache) detailKey(id uint) string {
	return fmt.Sprintf("post:detail:%d", id)
}
