package service

import (
	"context"
	"time"

	"ai-workspace-be/internal/pkg/logger"
	"ai-workspace-be/internal/pkg/metrics"
	"ai-workspace-be/internal/repository/contract"
	"ai-workspace-be/pkg/events"
	"ai-workspace-be/pkg/filestore"
)

// ISweepService removes upload bytes that no File record points at.
type ISweepService interface {
	RunOnce(ctx context.Context) (int, error)
}

type sweepService struct {
	store     contract.RecordStore
	files     *filestore.FileStore
	publisher IPublisherService
	logger    logger.ILogger
	grace     time.Duration
	now       func() time.Time
}

func NewSweepService(
	store contract.RecordStore,
	files *filestore.FileStore,
	publisher IPublisherService,
	logger logger.ILogger,
	grace time.Duration,
) ISweepService {
	return &sweepService{
		store:     store,
		files:     files,
		publisher: publisher,
		logger:    logger,
		grace:     grace,
		now:       time.Now,
	}
}

// RunOnce only touches entries older than the grace period, so uploads still being
// written or waiting for their record are left alone.
func (s *sweepService) RunOnce(ctx context.Context) (int, error) {
	records, err := s.store.FileRepository().FindAll(ctx)
	if err != nil {
		return 0, err
	}
	known := make(map[string]struct{}, len(records))
	for _, f := range records {
		known[f.Filename] = struct{}{}
	}

	entries, err := s.files.List()
	if err != nil {
		return 0, err
	}

	cutoff := s.now().Add(-s.grace)
	removed := 0
	for _, e := range entries {
		if ctx.Err() != nil {
			break
		}
		if e.ModTime.After(cutoff) {
			continue
		}
		if _, ok := known[e.Name]; ok && !filestore.IsTemp(e.Name) {
			continue
		}
		if err := s.files.Delete(e.Name); err != nil {
			s.logger.Warn("SWEEP", "Failed to remove orphaned upload", map[string]interface{}{
				"name":  e.Name,
				"error": err.Error(),
			})
			continue
		}
		removed++
	}

	if removed > 0 {
		metrics.SweepRemovedTotal.Add(float64(removed))
		s.logger.Info("SWEEP", "Removed orphaned uploads", map[string]interface{}{
			"removed": removed,
		})
		publishEvent(ctx, s.publisher, s.logger, events.UploadsSwept, map[string]interface{}{
			"removed": removed,
		})
	}
	return removed, nil
}
