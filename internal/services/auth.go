package services

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"blogcms/internal/errs"
	"blogcms/internal/logger"
	"blogcms/internal/models"
	"blogcms/internal/utils"

	"go.uber.org/zap"
)

// ErrInvalidCredentials is returned for unknown emails and wrong passwords alike.
var ErrInvalidCredentials = errors.New("invalid email or password")

const minPasswordLen = 6

type UserRepo interface {
	IsEmailTaken(ctx context.Context, email string) (bool, error)
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	UpsertUser(ctx context.Context, user *models.User) error
}

type AuthService struct {
	repo      UserRepo
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(repo UserRepo, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{repo: repo, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

func (s *AuthService) TokenTTL() time.Duration { return s.tokenTTL }

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func validateCredentials(email, password string) error {
	if _, err := mail.ParseAddress(email); err != nil || email == "" {
		return errs.Validationf("invalid email address").WithDetails(map[string]string{"field": "email"})
	}
	if len(password) < minPasswordLen {
		return errs.Validationf("password must be at least %d characters", minPasswordLen).
			WithDetails(map[string]string{"field": "password"})
	}
	return nil
}

func (s *AuthService) RegisterUser(ctx context.Context, email, name, password string) (*models.User, error) {
	log := logger.WithCtx(ctx)
	email = normalizeEmail(email)
	log.Info("registering user (service)", zap.String("email", email))

	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}

	taken, err := s.repo.IsEmailTaken(ctx, email)
	if err != nil {
		log.Error("failed to check email", zap.Error(err))
		return nil, err
	}
	if taken {
		return nil, errs.New(errs.Conflict, "email is already registered")
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, errs.Wrap(errs.Unknown, "hash password", err)
	}

	user := &models.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		PasswordHash: hashed,
		Role:         models.RoleUser,
	}
	if err := s.repo.CreateUser(ctx, user); err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	log.Info("user registered (service)", zap.String("user_id", user.ID))
	return user, nil
}

// LoginUser checks the password and issues an access token.
func (s *AuthService) LoginUser(ctx context.Context, email, password string) (string, *models.User, error) {
	log := logger.WithCtx(ctx)
	email = normalizeEmail(email)
	log.Info("login attempt (service)", zap.String("email", email))

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errs.Is(err, errs.NotFound) {
			log.Warn("user not found (service)", zap.String("email", email))
			return "", nil, ErrInvalidCredentials
		}
		log.Error("failed to load user (service)", zap.Error(err))
		return "", nil, err
	}

	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		log.Warn("wrong password (service)", zap.String("user_id", user.ID))
		return "", nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(s.jwtSecret, user.ID, user.Role, s.tokenTTL)
	if err != nil {
		log.Error("failed to sign access token", zap.Error(err))
		return "", nil, errs.Wrap(errs.Unknown, "sign token", err)
	}

	log.Info("login succeeded (service)", zap.String("user_id", user.ID), zap.String("role", user.Role))
	return token, user, nil
}

// EnsureAdmin creates the admin account or resets its password.
func (s *AuthService) EnsureAdmin(ctx context.Context, email, name, password string) (*models.User, error) {
	log := logger.WithCtx(ctx)
	email = normalizeEmail(email)

	if err := validateCredentials(email, password); err != nil {
		return nil, err
	}
	hashed, err := utils.HashPassword(password)
	if err != nil {
		return nil, errs.Wrap(errs.Unknown, "hash password", err)
	}

	user := &models.User{Email: email, Name: strings.TrimSpace(name), PasswordHash: hashed, Role: models.RoleAdmin}
	if err := s.repo.UpsertUser(ctx, user); err != nil {
		log.Error("failed to upsert admin", zap.String("email", email), zap.Error(err))
		return nil, err
	}

	log.Info("admin user ensured", zap.String("user_id", user.ID), zap.String("email", email))
	return user, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	logger.WithCtx(ctx).Debug("fetching user by id (service)", zap.String("user_id", id))
	return s.repo.GetUserByID(ctx, id)
}
