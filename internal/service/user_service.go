package service

import (
	"context"
	"errors"
	"fmt"

	"ai-workspace-be/internal/constant"
	"ai-workspace-be/internal/dto"
	"ai-workspace-be/internal/entity"
	"ai-workspace-be/internal/mapper"
	"ai-workspace-be/internal/pkg/logger"
	"ai-workspace-be/internal/repository/contract"
	"ai-workspace-be/pkg/events"

	"golang.org/x/crypto/bcrypt"
)

type IUserService interface {
	Register(ctx context.Context, req *dto.RegisterUserRequest) (*dto.UserResponse, error)
	Authenticate(ctx context.Context, username, password string) (*dto.UserResponse, error)
}

type userService struct {
	store     contract.RecordStore
	publisher IPublisherService
	logger    logger.ILogger
	mapper    *mapper.UserMapper
}

func NewUserService(store contract.RecordStore, publisher IPublisherService, logger logger.ILogger) IUserService {
	return &userService{
		store:     store,
		publisher: publisher,
		logger:    logger,
		mapper:    mapper.NewUserMapper(),
	}
}

func (s *userService) Register(ctx context.Context, req *dto.RegisterUserRequest) (*dto.UserResponse, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &entity.User{
		Username: req.Username,
		Password: string(hash),
	}
	if err := s.store.UserRepository().Create(ctx, user); err != nil {
		if errors.Is(err, contract.ErrDuplicate) {
			return nil, &ServiceError{Kind: ErrConflict, Message: constant.MsgUsernameTaken}
		}
		return nil, err
	}

	s.logger.Info("USER", "User registered", map[string]interface{}{
		"user_id":  user.Id.String(),
		"username": user.Username,
	})
	publishEvent(ctx, s.publisher, s.logger, events.UserRegistered, map[string]interface{}{
		"user_id": user.Id.String(),
	})
	return s.mapper.ToResponse(user), nil
}

func (s *userService) Authenticate(ctx context.Context, username, password string) (*dto.UserResponse, error) {
	user, err := s.store.UserRepository().FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, &ServiceError{Kind: ErrUnauthorized, Message: constant.MsgInvalidCredentials}
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, &ServiceError{Kind: ErrUnauthorized, Message: constant.MsgInvalidCredentials}
	}
	return s.mapper.ToResponse(user), nil
}
