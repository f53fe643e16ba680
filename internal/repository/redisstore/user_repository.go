package redisstore

import (
	"context"
	"errors"

	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/repository/contract"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type UserRepository struct {
	rdb        *redis.Client
	key        string
	usernameIx string
}

func (r *UserRepository) Create(ctx context.Context, user *entity.User) error {
	id := uuid.New()
	claimed, err := r.rdb.HSetNX(ctx, r.usernameIx, user.Username, id.String()).Result()
	if err != nil {
		return err
	}
	if !claimed {
		return contract.ErrDuplicate
	}

	user.Id = id
	if err := hset(ctx, r.rdb, r.key, id.String(), user); err != nil {
		r.rdb.HDel(ctx, r.usernameIx, user.Username)
		return err
	}
	return nil
}

func (r *UserRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var u entity.User
	found, err := hget(ctx, r.rdb, r.key, id.String(), &u)
	if err != nil || !found {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	raw, err := r.rdb.HGet(ctx, r.usernameIx, username).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, err
	}
	return r.FindById(ctx, id)
}
