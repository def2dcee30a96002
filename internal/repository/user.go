package repository

import (
	"context"

	"blogcms/internal/logger"
	"blogcms/internal/models"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type UserRepository struct {
	db *pgxpool.Pool
}

func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `id, email, name, password_hash, role, created_at, updated_at`

func (r *UserRepository) CreateUser(ctx context.Context, user *models.User) error {
	logger.WithCtx(ctx).Debug("creating user (repo)", zap.String("email", user.Email))
	query := `
	INSERT INTO users (email, name, password_hash, role)
	VALUES ($1, $2, $3, $4)
	RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, user.Email, user.Name, user.PasswordHash, user.Role).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	return mapErr(err, "user")
}

func (r *UserRepository) IsEmailTaken(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	if err != nil {
		logger.WithCtx(ctx).Error("failed to check email (repo)", zap.Error(err))
		return false, mapErr(err, "user")
	}
	return exists, nil
}

func (r *UserRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
}

func (r *UserRepository) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// UpsertUser creates the user or resets name, password and role of an existing email.
func (r *UserRepository) UpsertUser(ctx context.Context, user *models.User) error {
	query := `
	INSERT INTO users (email, name, password_hash, role)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT (email) DO UPDATE
	SET name = EXCLUDED.name,
	    password_hash = EXCLUDED.password_hash,
	    role = EXCLUDED.role,
	    updated_at = NOW()
	RETURNING id, created_at, updated_at`
	err := r.db.QueryRow(ctx, query, user.Email, user.Name, user.PasswordHash, user.Role).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	return mapErr(err, "user")
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := r.db.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, mapErr(err, "user")
	}
	return &u, nil
}
