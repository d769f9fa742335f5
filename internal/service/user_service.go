package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"bucketlist/internal/domain"
	"bucketlist/pkg/utils"
)

type TokenIssuer interface {
	Issue(uid string) (string, time.Time, error)
}

type UserService struct {
	users  domain.UserRepository
	tokens TokenIssuer
	log    *zap.Logger
	now    func() time.Time
	// dummyHash 用户不存在时也跑一次 bcrypt，避免按耗时区分账号是否存在
	dummyHash string
}

func NewUserService(users domain.UserRepository, tokens TokenIssuer, log *zap.Logger) *UserService {
	dummy, _ := utils.HashPassword("not-a-real-password")
	return &UserService{
		users:     users,
		tokens:    tokens,
		log:       log,
		now:       func() time.Time { return time.Now().UTC() },
		dummyHash: dummy,
	}
}

type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *domain.User `json:"user"`
}

var errBadCredentials = domain.Unauthorized("invalid email or password")

func (s *UserService) Register(ctx context.Context, email, password string) (*domain.User, error) {
	email, err := domain.NormalizeEmail(email)
	if err != nil {
		return nil, err
	}
	if err := domain.ValidatePassword(password); err != nil {
		return nil, err
	}
	existing, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.Internal("lookup user", err)
	}
	if existing != nil {
		return nil, domain.Conflict("an account with this email already exists")
	}
	hash, err := utils.HashPassword(password)
	if err != nil {
		return nil, domain.Internal("hash password", err)
	}
	now := s.now()
	u := &domain.User{
		ID:                       utils.NewID(),
		Email:                    email,
		PasswordHash:             hash,
		ActivityRemindersEnabled: true,
		CreatedAt:                now,
		UpdatedAt:                now,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// 并发注册同一邮箱
		if errors.Is(err, domain.ErrDuplicate) {
			return nil, domain.Conflict("an account with this email already exists")
		}
		return nil, domain.Internal("create user", err)
	}
	s.log.Info("user registered", zap.String("user_id", u.ID))
	return u, nil
}

func (s *UserService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	email, err := domain.NormalizeEmail(email)
	if err != nil || password == "" {
		return nil, errBadCredentials
	}
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, domain.Internal("lookup user", err)
	}
	if u == nil {
		utils.CheckPassword(password, s.dummyHash)
		return nil, errBadCredentials
	}
	if !utils.CheckPassword(password, u.PasswordHash) {
		return nil, errBadCredentials
	}
	tok, exp, err := s.tokens.Issue(u.ID)
	if err != nil {
		return nil, domain.Internal("issue token", err)
	}
	now := s.now()
	if err := s.users.UpdateLastLogin(ctx, u.ID, now); err != nil {
		s.log.Warn("update last login failed", zap.String("user_id", u.ID), zap.Error(err))
	} else {
		u.LastLoginAt = &now
	}
	return &LoginResult{Token: tok, ExpiresAt: exp, User: u}, nil
}

func (s *UserService) GetSettings(ctx context.Context, userID string) (domain.Settings, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return domain.Settings{}, domain.Internal("load user", err)
	}
	if u == nil {
		return domain.Settings{}, domain.NotFound("user")
	}
	return u.Settings(), nil
}

func (s *UserService) UpdateSettings(ctx context.Context, userID string, in domain.Settings) (domain.Settings, error) {
	ok, err := s.users.UpdateSettings(ctx, userID, in)
	if err != nil {
		return domain.Settings{}, domain.Internal("update settings", err)
	}
	if !ok {
		return domain.Settings{}, domain.NotFound("user")
	}
	return in, nil
}
