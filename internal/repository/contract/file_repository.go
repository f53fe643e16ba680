package contract

import (
	"context"

	"ai-workspace-be/internal/entity"

	"github.com/google/uuid"
)

type FileRepository interface {
	// Create assigns Id and UploadedAt on file before storing it.
	Create(ctx context.Context, file *entity.File) error
	// FindById returns (nil, nil) when no record exists.
	FindById(ctx context.Context, id uuid.UUID) (*entity.File, error)
	// FindAll returns files newest first.
	FindAll(ctx context.Context) ([]*entity.File, error)
	// Delete reports whether a record existed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}
