package contract

import (
	"context"

	"ai-workspace-be/internal/entity"

	"github.com/google/uuid"
)

type UserRepository interface {
	// Create assigns user.Id, stores the record and fails with ErrDuplicate when the username is taken.
	Create(ctx context.Context, user *entity.User) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
}
