package contract

import (
	"context"

	"ai-workspace-be/internal/entity"
)

type ChatMessageRepository interface {
	// Create assigns Id and Timestamp on message before storing it.
	Create(ctx context.Context, message *entity.ChatMessage) error
	// FindAll returns the conversation oldest first.
	FindAll(ctx context.Context) ([]*entity.ChatMessage, error)
	DeleteAll(ctx context.Context) error
}
