package mapper

import (
	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/model"
)

type FileMapper struct{}

func NewFileMapper() *FileMapper {
	return &FileMapper{}
}

func (m *FileMapper) ToEntity(f *model.File) *entity.File {
	if f == nil {
		return nil
	}
	return &entity.File{
		Id:           f.Id,
		Filename:     f.Filename,
		OriginalName: f.OriginalName,
		MimeType:     f.MimeType,
		Size:         f.Size,
		Content:      copyString(f.Content),
		UploadedAt:   f.UploadedAt,
	}
}

func (m *FileMapper) ToModel(f *entity.File) *model.File {
	if f == nil {
		return nil
	}
	return &model.File{
		Id:           f.Id,
		Filename:     f.Filename,
		OriginalName: f.OriginalName,
		MimeType:     f.MimeType,
		Size:         f.Size,
		Content:      copyString(f.Content),
		UploadedAt:   f.UploadedAt,
	}
}

func (m *FileMapper) ToResponse(f *entity.File) *dto.FileResponse {
	if f == nil {
		return nil
	}
	return &dto.FileResponse{
		Id:           f.Id,
		Filename:     f.Filename,
		OriginalName: f.OriginalName,
		MimeType:     f.MimeType,
		Size:         f.Size,
		Content:      copyString(f.Content),
		UploadedAt:   f.UploadedAt,
	}
}

func (m *FileMapper) ToResponses(files []*entity.File) []*dto.FileResponse {
	res := make([]*dto.FileResponse, 0, len(files))
	for _, f := range files {
		res = append(res, m.ToResponse(f))
	}
	return res
}

// CopyFile returns a deep copy so callers never share a record with the store.
func CopyFile(f *entity.File) *entity.File {
	if f == nil {
		return nil
	}
	c := *f
	c.Content = copyString(f.Content)
	return &c
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
