package implementation

import (
	"context"
	"errors"

	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/mapper"
	"ai-workspace-be/internal/model"
	"ai-workspace-be/internal/repository/contract"
	"ai-workspace-be/pkg/clock"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type FileRepositoryImpl struct {
	db     *gorm.DB
	clock  *clock.Monotonic
	mapper *mapper.FileMapper
}

func NewFileRepository(db *gorm.DB, clk *clock.Monotonic) contract.FileRepository {
	return &FileRepositoryImpl{
		db:     db,
		clock:  clk,
		mapper: mapper.NewFileMapper(),
	}
}

func (r *FileRepositoryImpl) Create(ctx context.Context, file *entity.File) error {
	file.Id = uuid.New()
	file.UploadedAt = r.clock.Now()
	return r.db.WithContext(ctx).Create(r.mapper.ToModel(file)).Error
}

func (r *FileRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.File, error) {
	var m model.File
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FileRepositoryImpl) FindAll(ctx context.Context) ([]*entity.File, error) {
	var models []*model.File
	if err := r.db.WithContext(ctx).Order("uploaded_at DESC").Find(&models).Error; err != nil {
		return nil, err
	}
	files := make([]*entity.File, len(models))
	for i, m := range models {
		files[i] = r.mapper.ToEntity(m)
	}
	return files, nil
}

func (r *FileRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.File{}, "id = ?", id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
