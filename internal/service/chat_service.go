package service

import (
	"context"
	"fmt"
	"strings"

	"ai-workspace-be/internal/constant"
	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/mapper"
	"ai-workspace-be/internal/pkg/logger"
	"ai-workspace-be/internal/pkg/metrics"
	"ai-workspace-be/internal/repository/contract"
	"ai-workspace-be/pkg/events"
	"ai-workspace-be/pkg/llm"

	"github.com/google/uuid"
)

type IChatService interface {
	GetMessages(ctx context.Context) ([]*dto.ChatMessageResponse, error)
	SendMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error)
	ClearHistory(ctx context.Context) error
}

type chatService struct {
	store     contract.RecordStore
	provider  llm.LLMProvider
	publisher IPublisherService
	logger    logger.ILogger
	mapper    *mapper.ChatMapper
}

func NewChatService(
	store contract.RecordStore,
	provider llm.LLMProvider,
	publisher IPublisherService,
	logger logger.ILogger,
) IChatService {
	return &chatService{
		store:     store,
		provider:  provider,
		publisher: publisher,
		logger:    logger,
		mapper:    mapper.NewChatMapper(),
	}
}

// Attachment is a file whose extracted text rides along with a chat turn.
type Attachment struct {
	Name     string
	MimeType string
	Content  string
}

// BuildPrompt appends one delimited block per attachment, in order, after the user's text.
func BuildPrompt(content string, attachments []Attachment) string {
	if len(attachments) == 0 {
		return content
	}

	var sb strings.Builder
	sb.WriteString(content)
	sb.WriteString(constant.AttachmentContextHeader)
	for _, a := range attachments {
		fmt.Fprintf(&sb, constant.AttachmentBlockFormat, a.Name, a.Content)
	}
	return sb.String()
}

func (s *chatService) GetMessages(ctx context.Context) ([]*dto.ChatMessageResponse, error) {
	messages, err := s.store.ChatMessageRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.ChatMessagesToResponses(messages), nil
}

func (s *chatService) SendMessage(ctx context.Context, req *dto.SendMessageRequest) (*dto.SendMessageResponse, error) {
	if req == nil || req.Content == "" {
		return nil, validationError(constant.MsgContentRequired)
	}

	userMsg := &entity.ChatMessage{
		Content: req.Content,
		Sender:  entity.ChatSenderUser,
		FileIds: req.FileIds,
	}
	if err := s.store.ChatMessageRepository().Create(ctx, userMsg); err != nil {
		return nil, fmt.Errorf("save user message: %w", err)
	}

	attachments, err := s.resolveAttachments(ctx, req.FileIds)
	if err != nil {
		return nil, err
	}

	reply, callErr := s.provider.Generate(ctx, BuildPrompt(req.Content, attachments), llm.WithTier(llm.TierFast))
	outcome := "ok"
	switch {
	case callErr != nil:
		outcome = "degraded"
		reply = constant.DegradedChatReply
		s.logger.Warn("CHAT", "Completion failed, replying with fallback", map[string]interface{}{
			"provider": s.provider.Name(),
			"error":    callErr.Error(),
		})
	case reply == "":
		outcome = "empty"
		reply = constant.EmptyChatReply
	}

	aiMsg := &entity.ChatMessage{
		Content: reply,
		Sender:  entity.ChatSenderAI,
		FileIds: []string{},
	}
	if err := s.store.ChatMessageRepository().Create(ctx, aiMsg); err != nil {
		return nil, fmt.Errorf("save ai message: %w", err)
	}

	metrics.ChatTurnsTotal.WithLabelValues(outcome).Inc()
	publishEvent(ctx, s.publisher, s.logger, events.ChatTurnCompleted, map[string]interface{}{
		"user_message_id": userMsg.Id.String(),
		"ai_message_id":   aiMsg.Id.String(),
		"attachments":     len(attachments),
		"outcome":         outcome,
	})

	res := &dto.SendMessageResponse{
		UserMessage: s.mapper.ChatMessageToResponse(userMsg),
		AiMessage:   s.mapper.ChatMessageToResponse(aiMsg),
	}
	if callErr != nil {
		res.Error = callErr.Error()
	}
	return res, nil
}

// resolveAttachments keeps input order and skips ids that are malformed, unknown or carry no text.
func (s *chatService) resolveAttachments(ctx context.Context, fileIds []string) ([]Attachment, error) {
	attachments := make([]Attachment, 0, len(fileIds))
	for _, raw := range fileIds {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		file, err := s.store.FileRepository().FindById(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("resolve attachment %s: %w", raw, err)
		}
		if file == nil || !file.HasContent() {
			continue
		}
		attachments = append(attachments, Attachment{
			Name:     file.OriginalName,
			MimeType: file.MimeType,
			Content:  *file.Content,
		})
	}
	return attachments, nil
}

func (s *chatService) ClearHistory(ctx context.Context) error {
	if err := s.store.ChatMessageRepository().DeleteAll(ctx); err != nil {
		return err
	}
	metrics.ChatTurnsTotal.WithLabelValues("cleared").Inc()
	publishEvent(ctx, s.publisher, s.logger, events.ChatCleared, nil)
	return nil
}
