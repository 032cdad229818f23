package service

import (
	"context"
	"errors"
	"strings"

	"vtube-go/internal/api/dto"
	"vtube-go/internal/config"
	"vtube-go/internal/model"
	"vtube-go/internal/repository"
	"vtube-go/pkg/logger"
	"vtube-go/pkg/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type AuthService struct {
	userRepo    *repository.UserRepository
	channelRepo *repository.ChannelRepository
	tokens      TokenStore
}

// NewAuthService tokens 为空时登出只由客户端丢弃 token
func NewAuthService(userRepo *repository.UserRepository, channelRepo *repository.ChannelRepository, tokens TokenStore) *AuthService {
	return &AuthService{userRepo: userRepo, channelRepo: channelRepo, tokens: tokens}
}

// Register 用户注册，成功后直接签发 token
func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.TokenData, error) {
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Username: strings.TrimSpace(req.Username),
		Email:    normalizeEmail(req.Email),
		Password: hashedPassword,
		Avatar:   req.Avatar,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if repository.IsDuplicateKey(err) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return s.issueToken(user, nil)
}

// Login 邮箱密码登录
func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenData, error) {
	user, err := s.userRepo.GetByEmail(ctx, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredential
		}
		return nil, err
	}

	if !utils.VerifyPassword(req.Password, user.Password) {
		return nil, ErrInvalidCredential
	}

	channelID, err := s.channelRepo.FirstIDByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return s.issueToken(user, optionalID(channelID))
}

// GetCurrentUser 根据用户 ID 获取用户信息
func (s *AuthService) GetCurrentUser(ctx context.Context, userID string) (*dto.UserInfo, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	channelID, err := s.channelRepo.FirstIDByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return toUserInfo(user, optionalID(channelID)), nil
}

// Logout 吊销当前 token，存储不可用时只记录日志
func (s *AuthService) Logout(ctx context.Context, claims *utils.Claims) error {
	if s.tokens == nil || claims == nil || claims.ID == "" {
		return nil
	}

	ttl := claims.RemainingTTL()
	if ttl <= 0 {
		return nil
	}

	if err := s.tokens.Revoke(ctx, claims.ID, ttl); err != nil {
		logger.Warn("Revoke token failed", zap.String("user_id", claims.UserID), zap.Error(err))
	}
	return nil
}

// IsRevoked 检查 token 是否已登出，存储不可用时放行
func (s *AuthService) IsRevoked(ctx context.Context, jti string) bool {
	if s.tokens == nil || jti == "" {
		return false
	}
	revoked, err := s.tokens.IsRevoked(ctx, jti)
	if err != nil {
		logger.Warn("Check revoked token failed", zap.Error(err))
		return false
	}
	return revoked
}

func (s *AuthService) issueToken(user *model.User, channelID *string) (*dto.TokenData, error) {
	token, _, err := utils.GenerateToken(user.ID)
	if err != nil {
		return nil, err
	}

	return &dto.TokenData{
		Token:     token,
		TokenType: "bearer",
		ExpiresIn: int(config.GetJWT().ExpireDuration().Seconds()),
		User:      *toUserInfo(user, channelID),
	}, nil
}

func toUserInfo(user *model.User, channelID *string) *dto.UserInfo {
	return &dto.UserInfo{
		ID:        user.ID,
		Username:  user.Username,
		Email:     user.Email,
		Avatar:    user.Avatar,
		ChannelID: channelID,
		CreatedAt: user.CreatedAt,
	}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func optionalID(id string) *string {
	if id == "" {
		return nil
	}
	return &id
}
