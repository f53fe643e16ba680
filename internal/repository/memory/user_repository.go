package memory

import (
	"context"
	"sync"

	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type UserRepository struct {
	cache *cache.Cache
	// serializes the username uniqueness check with the insert
	mu sync.Mutex
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing := r.findByUsername(user.Username); existing != nil {
		return contract.ErrDuplicate
	}

	user.Id = uuid.New()
	r.cache.Set(user.Id.String(), *user, cache.NoExpiration)
	return nil
}

func (r *UserRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	if x, found := r.cache.Get(id.String()); found {
		u := x.(entity.User)
		return &u, nil
	}
	return nil, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	return r.findByUsername(username), nil
}

func (r *UserRepository) findByUsername(username string) *entity.User {
	for _, item := range r.cache.Items() {
		u := item.Object.(entity.User)
		if u.Username == username {
			return &u
		}
	}
	return nil
}
