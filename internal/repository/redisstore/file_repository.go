package redisstore

import (
	"context"
	"encoding/json"
	"sort"

	"ai-workspace-be/internal/entity"
	"ai-workspace-be/pkg/clock"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type FileRepository struct {
	rdb   *redis.Client
	key   string
	clock *clock.Monotonic
}

func (r *FileRepository) Create(ctx context.Context, file *entity.File) error {
	file.Id = uuid.New()
	file.UploadedAt = r.clock.Now()
	return hset(ctx, r.rdb, r.key, file.Id.String(), file)
}

func (r *FileRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.File, error) {
	var f entity.File
	found, err := hget(ctx, r.rdb, r.key, id.String(), &f)
	if err != nil || !found {
		return nil, err
	}
	return &f, nil
}

func (r *FileRepository) FindAll(ctx context.Context) ([]*entity.File, error) {
	values, err := r.rdb.HVals(ctx, r.key).Result()
	if err != nil {
		return nil, err
	}
	files := make([]*entity.File, 0, len(values))
	for _, v := range values {
		var f entity.File
		if err := json.Unmarshal([]byte(v), &f); err != nil {
			return nil, err
		}
		files = append(files, &f)
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].UploadedAt.After(files[j].UploadedAt)
	})
	return files, nil
}

func (r *FileRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	n, err := r.rdb.HDel(ctx, r.key, id.String()).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
