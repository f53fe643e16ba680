package implementation

import (
	"context"

	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/mapper"
	"ai-workspace-be/internal/model"
	"ai-workspace-be/internal/repository/contract"
	"ai-workspace-be/pkg/clock"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ChatMessageRepositoryImpl struct {
	db     *gorm.DB
	clock  *clock.Monotonic
	mapper *mapper.ChatMapper
}

func NewChatMessageRepository(db *gorm.DB, clk *clock.Monotonic) contract.ChatMessageRepository {
	return &ChatMessageRepositoryImpl{
		db:     db,
		clock:  clk,
		mapper: mapper.NewChatMapper(),
	}
}

func (r *ChatMessageRepositoryImpl) Create(ctx context.Context, message *entity.ChatMessage) error {
	message.Id = uuid.New()
	message.Timestamp = r.clock.Now()
	if message.FileIds == nil {
		message.FileIds = []string{}
	}
	return r.db.WithContext(ctx).Create(r.mapper.ChatMessageToModel(message)).Error
}

func (r *ChatMessageRepositoryImpl) FindAll(ctx context.Context) ([]*entity.ChatMessage, error) {
	var models []*model.ChatMessage
	if err := r.db.WithContext(ctx).Order("sent_at ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	messages := make([]*entity.ChatMessage, len(models))
	for i, m := range models {
		messages[i] = r.mapper.ChatMessageToEntity(m)
	}
	return messages, nil
}

func (r *ChatMessageRepositoryImpl) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).
		Session(&gorm.Session{AllowGlobalUpdate: true}).
		Delete(&model.ChatMessage{}).Error
}
