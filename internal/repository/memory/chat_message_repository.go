package memory

import (
	"context"
	"sort"

	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/mapper"
	"ai-workspace-be/pkg/clock"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type ChatMessageRepository struct {
	cache *cache.Cache
	clock *clock.Monotonic
}

func (r *ChatMessageRepository) Create(ctx context.Context, message *entity.ChatMessage) error {
	message.Id = uuid.New()
	message.Timestamp = r.clock.Now()
	if message.FileIds == nil {
		message.FileIds = []string{}
	}
	r.cache.Set(message.Id.String(), mapper.CopyChatMessage(message), cache.NoExpiration)
	return nil
}

func (r *ChatMessageRepository) FindAll(ctx context.Context) ([]*entity.ChatMessage, error) {
	items := r.cache.Items()
	messages := make([]*entity.ChatMessage, 0, len(items))
	for _, item := range items {
		messages = append(messages, mapper.CopyChatMessage(item.Object.(*entity.ChatMessage)))
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].Timestamp.Before(messages[j].Timestamp)
	})
	return messages, nil
}

func (r *ChatMessageRepository) DeleteAll(ctx context.Context) error {
	r.cache.Flush()
	return nil
}
