package memory

import (
	"context"
	"sort"

	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/mapper"
	"ai-workspace-be/pkg/clock"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

type FileRepository struct {
	cache *cache.Cache
	clock *clock.Monotonic
}

func (r *FileRepository) Create(ctx context.Context, file *entity.File) error {
	file.Id = uuid.New()
	file.UploadedAt = r.clock.Now()
	r.cache.Set(file.Id.String(), mapper.CopyFile(file), cache.NoExpiration)
	return nil
}

func (r *FileRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.File, error) {
	if x, found := r.cache.Get(id.String()); found {
		return mapper.CopyFile(x.(*entity.File)), nil
	}
	return nil, nil
}

func (r *FileRepository) FindAll(ctx context.Context) ([]*entity.File, error) {
	items := r.cache.Items()
	files := make([]*entity.File, 0, len(items))
	for _, item := range items {
		files = append(files, mapper.CopyFile(item.Object.(*entity.File)))
	}
	sort.Slice(files, func(i, j int) bool {
		return files[i].UploadedAt.After(files[j].UploadedAt)
	})
	return files, nil
}

func (r *FileRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	key := id.String()
	if _, found := r.cache.Get(key); !found {
		return false, nil
	}
	r.cache.Delete(key)
	return true, nil
}
