package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"studyquiz/internal/domain"
	"studyquiz/internal/repository/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

var userRowColumns = []string{
	"id", "username", "password_hash", "nickname", "affiliation",
	"user_role", "created_at", "updated_at", "deleted_at",
}

func TestToDomainUser(t *testing.T) {
	now := time.Now().Truncate(time.Second)
	modelUser := &models.User{
		ID:           "user1",
		Username:     "taro",
		PasswordHash: "$2a$10$hash",
		Nickname:     sql.NullString{String: "タロウ", Valid: true},
		Affiliation:  sql.NullString{String: "三年一組", Valid: true},
		UserRole:     domain.RoleStudent,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	u := toDomainUser(modelUser)
	assert.NotNil(t, u)
	assert.Equal(t, modelUser.ID, u.ID)
	assert.Equal(t, modelUser.Username, u.Username)
	assert.Equal(t, "タロウ", u.Nickname)
	assert.Equal(t, "三年一組", u.Affiliation)
	assert.False(t, u.IsAdmin())

	modelUser.Nickname.Valid = false
	modelUser.Affiliation.Valid = false
	u = toDomainUser(modelUser)
	assert.Equal(t, "", u.Nickname)
	assert.Equal(t, "", u.Affiliation)
}

func TestToModelUser(t *testing.T) {
	u := &domain.User{
		Username:     "hanako",
		PasswordHash: "$2a$10$hash",
		Role:         domain.RoleAdmin,
	}

	m := toModelUser(u)
	assert.NotNil(t, m)
	assert.Equal(t, u.Username, m.Username)
	assert.Equal(t, domain.RoleAdmin, m.UserRole)
	assert.False(t, m.Nickname.Valid, "empty nickname stores as NULL")
}

func TestUserDatabaseAdapter_GetUserByUsername_Success(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewUserDatabaseAdapter(db)

	now := time.Now()
	rows := sqlmock.NewRows(userRowColumns).
		AddRow("user1", "taro", "$2a$10$hash", "タロウ", nil, domain.RoleStudent, now, now, nil)

	mock.ExpectQuery(`SELECT .* FROM users\s+WHERE username = :1\s+AND deleted_at IS NULL`).
		WithArgs("taro").
		WillReturnRows(rows)

	u, err := repo.GetUserByUsername(context.Background(), "taro")

	assert.NoError(t, err)
	assert.NotNil(t, u)
	assert.Equal(t, "user1", u.ID)
	assert.Equal(t, "taro", u.Username)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDatabaseAdapter_GetUserByUsername_NotFound(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewUserDatabaseAdapter(db)

	mock.ExpectQuery(`SELECT .* FROM users\s+WHERE username = :1`).
		WithArgs("nobody").
		WillReturnError(sql.ErrNoRows)

	u, err := repo.GetUserByUsername(context.Background(), "nobody")

	assert.NoError(t, err, "not found is nil, nil")
	assert.Nil(t, u)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserDatabaseAdapter_SaveUser(t *testing.T) {
	db, mock := setupTestDB(t)
	defer db.Close()
	repo := NewUserDatabaseAdapter(db)

	u := &domain.User{
		Username:     "taro",
		PasswordHash: "$2a$10$hash",
		Role:         domain.RoleStudent,
	}

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnResult(sqlmock.NewResult(1, 1))

	err := repo.SaveUser(context.Background(), u)

	assert.NoError(t, err)
	assert.NotEmpty(t, u.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
