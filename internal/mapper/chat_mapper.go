package mapper

import (
	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/model"
)

type ChatMapper struct{}

func NewChatMapper() *ChatMapper {
	return &ChatMapper{}
}

func (m *ChatMapper) ChatMessageToEntity(msg *model.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	return &entity.ChatMessage{
		Id:        msg.Id,
		Content:   msg.Content,
		Sender:    entity.ChatSender(msg.Sender),
		FileIds:   copyIds(msg.FileIds),
		Timestamp: msg.Timestamp,
	}
}

func (m *ChatMapper) ChatMessageToModel(msg *entity.ChatMessage) *model.ChatMessage {
	if msg == nil {
		return nil
	}
	return &model.ChatMessage{
		Id:        msg.Id,
		Content:   msg.Content,
		Sender:    string(msg.Sender),
		FileIds:   copyIds(msg.FileIds),
		Timestamp: msg.Timestamp,
	}
}

func (m *ChatMapper) ChatMessageToResponse(msg *entity.ChatMessage) *dto.ChatMessageResponse {
	if msg == nil {
		return nil
	}
	return &dto.ChatMessageResponse{
		Id:        msg.Id,
		Content:   msg.Content,
		Sender:    string(msg.Sender),
		FileIds:   copyIds(msg.FileIds),
		Timestamp: msg.Timestamp,
	}
}

func (m *ChatMapper) ChatMessagesToResponses(msgs []*entity.ChatMessage) []*dto.ChatMessageResponse {
	res := make([]*dto.ChatMessageResponse, 0, len(msgs))
	for _, msg := range msgs {
		res = append(res, m.ChatMessageToResponse(msg))
	}
	return res
}

// CopyChatMessage returns a deep copy with a non-nil FileIds slice.
func CopyChatMessage(msg *entity.ChatMessage) *entity.ChatMessage {
	if msg == nil {
		return nil
	}
	c := *msg
	c.FileIds = copyIds(msg.FileIds)
	return &c
}

// copyIds never returns nil: an empty list must serialize as [].
func copyIds(ids []string) []string {
	out := make([]string, len(ids))
	copy(out, ids)
	return out
}
