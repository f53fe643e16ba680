package service

import (
	"context"
	"errors"
	"fmt"

	"ai-workspace-be/internal/constant"
	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/pkg/filetype"
	"ai-workspace-be/internal/pkg/logger"
	"ai-workspace-be/internal/pkg/metrics"
	"ai-workspace-be/internal/repository/contract"
	"ai-workspace-be/pkg/events"
	"ai-workspace-be/pkg/filestore"
	"ai-workspace-be/pkg/llm"

	"github.com/google/uuid"
)

type IAnalysisService interface {
	AnalyzeFile(ctx context.Context, id string) (*dto.AnalysisResponse, error)
	// DescribeImage runs the multimodal analysis for an image record. With appendToChat the
	// result is also stored as an ai chat message referencing the file.
	DescribeImage(ctx context.Context, file *entity.File, appendToChat bool) (string, error)
}

type analysisService struct {
	store     contract.RecordStore
	files     *filestore.FileStore
	provider  llm.LLMProvider
	publisher IPublisherService
	logger    logger.ILogger
}

func NewAnalysisService(
	store contract.RecordStore,
	files *filestore.FileStore,
	provider llm.LLMProvider,
	publisher IPublisherService,
	logger logger.ILogger,
) IAnalysisService {
	return &analysisService{
		store:     store,
		files:     files,
		provider:  provider,
		publisher: publisher,
		logger:    logger,
	}
}

// BuildFileAnalysisPrompt embeds the file into the four-part analysis template.
func BuildFileAnalysisPrompt(file *entity.File) string {
	return fmt.Sprintf(constant.FileAnalysisPromptFormat, file.OriginalName, file.MimeType, *file.Content)
}

func (s *analysisService) AnalyzeFile(ctx context.Context, id string) (*dto.AnalysisResponse, error) {
	fileId, err := uuid.Parse(id)
	if err != nil {
		return nil, notFoundError(constant.MsgFileNotFound)
	}
	file, err := s.store.FileRepository().FindById(ctx, fileId)
	if err != nil {
		return nil, err
	}
	if file == nil {
		return nil, notFoundError(constant.MsgFileNotFound)
	}

	switch {
	case filetype.IsImage(file.MimeType):
		text, err := s.DescribeImage(ctx, file, false)
		if err != nil {
			return nil, err
		}
		return &dto.AnalysisResponse{Text: text}, nil
	case file.HasContent():
		text, err := s.provider.Generate(ctx, BuildFileAnalysisPrompt(file), llm.WithTier(llm.TierPro))
		if err != nil {
			metrics.AnalysesTotal.WithLabelValues("text", "error").Inc()
			return nil, fmt.Errorf("analyze file %s: %w", file.Id, err)
		}
		if text == "" {
			text = constant.EmptyFileAnalysis
		}
		s.analyzed(ctx, file, "text")
		return &dto.AnalysisResponse{Text: text}, nil
	default:
		return nil, validationError(constant.MsgFileCannotAnalyze)
	}
}

func (s *analysisService) DescribeImage(ctx context.Context, file *entity.File, appendToChat bool) (string, error) {
	data, err := s.files.Read(file.Filename)
	if err != nil {
		if errors.Is(err, filestore.ErrNotFound) {
			return "", notFoundError(constant.MsgFileNotFoundOnDisk)
		}
		return "", err
	}

	image := llm.Image{Data: data, MimeType: file.MimeType}
	text, err := s.provider.GenerateWithImage(ctx, image, constant.ImageAnalysisInstruction, llm.WithTier(llm.TierPro))
	if err != nil {
		metrics.AnalysesTotal.WithLabelValues("image", "error").Inc()
		return "", fmt.Errorf("analyze image %s: %w", file.Id, err)
	}
	if text == "" {
		text = constant.EmptyImageAnalysis
	}
	s.analyzed(ctx, file, "image")

	if appendToChat {
		msg := &entity.ChatMessage{
			Content: text,
			Sender:  entity.ChatSenderAI,
			FileIds: []string{file.Id.String()},
		}
		// The analysis already succeeded; a failed append only loses the chat copy.
		if err := s.store.ChatMessageRepository().Create(ctx, msg); err != nil {
			s.logger.Warn("ANALYSIS", "Failed to append image analysis to chat", map[string]interface{}{
				"file_id": file.Id.String(),
				"error":   err.Error(),
			})
		}
	}

	return text, nil
}

func (s *analysisService) analyzed(ctx context.Context, file *entity.File, kind string) {
	metrics.AnalysesTotal.WithLabelValues(kind, "ok").Inc()
	publishEvent(ctx, s.publisher, s.logger, events.FileAnalyzed, map[string]interface{}{
		"file_id": file.Id.String(),
		"kind":    kind,
	})
}
