package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"studyquiz/internal/domain"
	"studyquiz/internal/repository/models"
	"studyquiz/internal/util"

	"github.com/jmoiron/sqlx"
)

const userColumns = `
		id "id",
		username "username",
		password_hash "password_hash",
		nickname "nickname",
		affiliation "affiliation",
		user_role "user_role",
		created_at "created_at",
		updated_at "updated_at",
		deleted_at "deleted_at"`

// UserDatabaseAdapter implements domain.UserRepository using sqlx
type UserDatabaseAdapter struct {
	db *sqlx.DB
}

// NewUserDatabaseAdapter creates a new instance of UserDatabaseAdapter
func NewUserDatabaseAdapter(db *sqlx.DB) domain.UserRepository {
	return &UserDatabaseAdapter{db: db}
}

// GetUserByID implements domain.UserRepository
func (a *UserDatabaseAdapter) GetUserByID(ctx context.Context, id string) (*domain.User, error) {
	executor := GetExecutor(ctx, a.db)
	var modelUser models.User
	query := `SELECT ` + userColumns + `
	FROM users
	WHERE id = :1
	AND deleted_at IS NULL`

	err := executor.GetContext(ctx, &modelUser, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by ID %s: %w", id, err)
	}
	return toDomainUser(&modelUser), nil
}

// GetUserByUsername implements domain.UserRepository
func (a *UserDatabaseAdapter) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	executor := GetExecutor(ctx, a.db)
	var modelUser models.User
	query := `SELECT ` + userColumns + `
	FROM users
	WHERE username = :1
	AND deleted_at IS NULL`

	err := executor.GetContext(ctx, &modelUser, query, username)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return toDomainUser(&modelUser), nil
}

// SaveUser implements domain.UserRepository
func (a *UserDatabaseAdapter) SaveUser(ctx context.Context, user *domain.User) error {
	if user == nil {
		return fmt.Errorf("cannot save nil user")
	}
	executor := GetExecutor(ctx, a.db)
	modelUser := toModelUser(user)
	if modelUser.ID == "" {
		modelUser.ID = util.NewULID()
	}
	modelUser.CreatedAt = time.Now()
	modelUser.UpdatedAt = time.Now()

	query := `INSERT INTO users (
		id, username, password_hash, nickname, affiliation,
		user_role, created_at, updated_at
	) VALUES (
		:1, :2, :3, :4, :5, :6, :7, :8
	)`

	_, err := executor.ExecContext(ctx, query,
		modelUser.ID,
		modelUser.Username,
		modelUser.PasswordHash,
		modelUser.Nickname,
		modelUser.Affiliation,
		modelUser.UserRole,
		modelUser.CreatedAt,
		modelUser.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}

	user.ID = modelUser.ID
	user.CreatedAt = modelUser.CreatedAt
	user.UpdatedAt = modelUser.UpdatedAt
	return nil
}

func toDomainUser(m *models.User) *domain.User {
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		PasswordHash: m.PasswordHash,
		Nickname:     m.Nickname.String,
		Affiliation:  m.Affiliation.String,
		Role:         m.UserRole,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toModelUser(u *domain.User) *models.User {
	return &models.User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.PasswordHash,
		Nickname:     util.StringToNullString(u.Nickname),
		Affiliation:  util.StringToNullString(u.Affiliation),
		UserRole:     u.Role,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
