package mapper

import (
	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/model"
)

type UserMapper struct{}

func NewUserMapper() *UserMapper {
	return &UserMapper{}
}

func (m *UserMapper) ToEntity(u *model.User) *entity.User {
	if u == nil {
		return nil
	}
	return &entity.User{
		Id:       u.Id,
		Username: u.Username,
		Password: u.Password,
	}
}

func (m *UserMapper) ToModel(u *entity.User) *model.User {
	if u == nil {
		return nil
	}
	return &model.User{
		Id:       u.Id,
		Username: u.Username,
		Password: u.Password,
	}
}

func (m *UserMapper) ToResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		Id:       u.Id,
		Username: u.Username,
	}
}
