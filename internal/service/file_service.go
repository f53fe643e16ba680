package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"ai-workspace-be/internal/constant"
	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/mapper"
	"ai-workspace-be/internal/pkg/filetype"
	"ai-workspace-be/internal/pkg/logger"
	"ai-workspace-be/internal/pkg/metrics"
	"ai-workspace-be/internal/repository/contract"
	"ai-workspace-be/pkg/events"
	"ai-workspace-be/pkg/filestore"

	"github.com/google/uuid"
)

type IFileService interface {
	GetAll(ctx context.Context) ([]*dto.FileResponse, error)
	Upload(ctx context.Context, req *dto.UploadFileRequest) (*dto.FileResponse, error)
	Delete(ctx context.Context, id string) error
	GetContent(ctx context.Context, id string) (*dto.FileContentResponse, error)
}

type fileService struct {
	store     contract.RecordStore
	files     *filestore.FileStore
	analysis  IAnalysisService
	publisher IPublisherService
	logger    logger.ILogger
	mapper    *mapper.FileMapper
	maxBytes  int64
}

func NewFileService(
	store contract.RecordStore,
	files *filestore.FileStore,
	analysis IAnalysisService,
	publisher IPublisherService,
	logger logger.ILogger,
	maxBytes int64,
) IFileService {
	return &fileService{
		store:     store,
		files:     files,
		analysis:  analysis,
		publisher: publisher,
		logger:    logger,
		mapper:    mapper.NewFileMapper(),
		maxBytes:  maxBytes,
	}
}

func (s *fileService) GetAll(ctx context.Context) ([]*dto.FileResponse, error) {
	files, err := s.store.FileRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.ToResponses(files), nil
}

func (s *fileService) Upload(ctx context.Context, req *dto.UploadFileRequest) (*dto.FileResponse, error) {
	file, err := s.upload(ctx, req)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			metrics.UploadsTotal.WithLabelValues("rejected").Inc()
		}
		return nil, err
	}

	metrics.UploadsTotal.WithLabelValues("accepted").Inc()
	metrics.UploadBytesTotal.Add(float64(file.Size))
	publishEvent(ctx, s.publisher, s.logger, events.FileUploaded, map[string]interface{}{
		"file_id":   file.Id.String(),
		"name":      file.OriginalName,
		"mime_type": file.MimeType,
		"size":      file.Size,
		"has_text":  file.Content != nil,
	})

	return s.mapper.ToResponse(file), nil
}

func (s *fileService) upload(ctx context.Context, req *dto.UploadFileRequest) (*entity.File, error) {
	if req == nil || req.Body == nil {
		return nil, validationError(constant.MsgNoFileUploaded)
	}
	if req.Size > s.maxBytes {
		return nil, validationError(constant.MsgFileTooLarge)
	}

	// Sniff from the head of the stream, then replay it in front of the rest.
	head := make([]byte, filetype.SniffLen)
	n, err := io.ReadFull(req.Body, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]

	mimeType := filetype.Detect(req.MimeType, head)
	if !filetype.IsAllowed(mimeType, req.OriginalName) {
		return nil, validationError(constant.MsgFileTypeNotSupported)
	}

	body := io.LimitReader(io.MultiReader(bytes.NewReader(head), req.Body), s.maxBytes+1)
	saved, err := s.files.Save(body)
	if err != nil {
		return nil, err
	}
	if saved.Size > s.maxBytes {
		s.discard(saved.StorageName)
		return nil, validationError(constant.MsgFileTooLarge)
	}

	file := &entity.File{
		Filename:     saved.StorageName,
		OriginalName: req.OriginalName,
		MimeType:     mimeType,
		Size:         saved.Size,
	}

	if filetype.IsText(mimeType, req.OriginalName) {
		data, err := s.files.Read(saved.StorageName)
		if err != nil {
			s.discard(saved.StorageName)
			return nil, err
		}
		if len(data) > 0 {
			text := strings.ToValidUTF8(string(data), "�")
			file.Content = &text
		}
	}

	if err := s.store.FileRepository().Create(ctx, file); err != nil {
		s.discard(saved.StorageName)
		return nil, err
	}

	s.logger.Info("FILE", "File uploaded", map[string]interface{}{
		"file_id":   file.Id.String(),
		"name":      file.OriginalName,
		"mime_type": file.MimeType,
		"size":      file.Size,
	})
	return file, nil
}

func (s *fileService) discard(storageName string) {
	if err := s.files.Delete(storageName); err != nil {
		s.logger.Warn("FILE", "Failed to remove stored bytes", map[string]interface{}{
			"storage_name": storageName,
			"error":        err.Error(),
		})
	}
}

func (s *fileService) find(ctx context.Context, id string) (*entity.File, error) {
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
	return file, nil
}

func (s *fileService) Delete(ctx context.Context, id string) error {
	file, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if err := s.files.Delete(file.Filename); err != nil {
		return err
	}

	existed, err := s.store.FileRepository().Delete(ctx, file.Id)
	if err != nil {
		return err
	}
	if !existed {
		// deleted concurrently
		return notFoundError(constant.MsgFileNotFound)
	}

	publishEvent(ctx, s.publisher, s.logger, events.FileDeleted, map[string]interface{}{
		"file_id": file.Id.String(),
		"name":    file.OriginalName,
	})
	return nil
}

func (s *fileService) GetContent(ctx context.Context, id string) (*dto.FileContentResponse, error) {
	file, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if file.HasContent() {
		return &dto.FileContentResponse{Content: *file.Content}, nil
	}

	if !s.files.Exists(file.Filename) {
		return nil, notFoundError(constant.MsgFileNotFoundOnDisk)
	}

	if !filetype.IsImage(file.MimeType) {
		return nil, validationError(constant.MsgFileContentNA)
	}

	text, err := s.analysis.DescribeImage(ctx, file, true)
	if err != nil {
		return nil, err
	}
	return &dto.FileContentResponse{Content: text, Analyzed: true}, nil
}
