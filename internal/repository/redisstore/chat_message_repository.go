package redisstore

import (
	"context"
	"encoding/json"
	"sort"

	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/mapper"
	"ai-workspace-be/pkg/clock"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type ChatMessageRepository struct {
	rdb   *redis.Client
	key   string
	clock *clock.Monotonic
}

func (r *ChatMessageRepository) Create(ctx context.Context, message *entity.ChatMessage) error {
	message.Id = uuid.New()
	message.Timestamp = r.clock.Now()
	if message.FileIds == nil {
		message.FileIds = []string{}
	}
	return hset(ctx, r.rdb, r.key, message.Id.String(), message)
}

func (r *ChatMessageRepository) FindAll(ctx context.Context) ([]*entity.ChatMessage, error) {
	values, err := r.rdb.HVals(ctx, r.key).Result()
	if err != nil {
		return nil, err
	}
	messages := make([]*entity.ChatMessage, 0, len(values))
	for _, v := range values {
		var m entity.ChatMessage
		if err := json.Unmarshal([]byte(v), &m); err != nil {
			return nil, err
		}
		messages = append(messages, mapper.CopyChatMessage(&m))
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
	return messages, nil
}

func (r *ChatMessageRepository) DeleteAll(ctx context.Context) error {
	return r.rdb.Del(ctx, r.key).Err()
}
