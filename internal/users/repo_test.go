package users

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/storefront-labs/storefront-backend/pkg/db"
	"github.com/storefront-labs/storefront-backend/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupUsersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	conn, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY DEFAULT (lower(hex(randomblob(4))) || '-' || lower(hex(randomblob(2))) || '-4' ||
    substr(lower(hex(randomblob(2))),2) || '-' || substr('89ab',abs(random())%4+1,1) ||
    substr(lower(hex(randomblob(2))),2) || '-' || lower(hex(randomblob(6)))),
  username TEXT NOT NULL,
  email TEXT,
  password_hash TEXT NOT NULL,
  is_admin INTEGER NOT NULL DEFAULT 0,
  last_login_at DATETIME,
  created_at DATETIME,
  updated_at DATETIME
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_users_username ON users (username);`
	require.NoError(t, conn.Exec(schema).Error)
	return conn
}

func seedUser(t *testing.T, conn *gorm.DB, username string) *models.User {
	t.Helper()

	row := &models.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: "$argon2id$stub",
	}
	require.NoError(t, conn.Create(row).Error)
	return row
}

func TestRepositoryCreatePersistsUser(t *testing.T) {
	conn := setupUsersTestDB(t)
	repo := NewRepository(conn)
	ctx := context.Background()

	email := "casey@example.com"
	_, err := repo.Create(ctx, CreateUserDTO{
		Username:     "casey",
		Email:        &email,
		PasswordHash: "$argon2id$stub",
	})
	require.NoError(t, err)

	found, err := repo.FindByUsername(ctx, "casey")
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, found.ID)
	assert.Equal(t, "casey", found.Username)
	require.NotNil(t, found.Email)
	assert.Equal(t, email, *found.Email)
	assert.False(t, found.IsAdmin)
}

func TestRepositoryDuplicateUsernameIsUniqueViolation(t *testing.T) {
	conn := setupUsersTestDB(t)
	seedUser(t, conn, "casey")

	dup := &models.User{
		ID:           uuid.New(),
		Username:     "casey",
		PasswordHash: "$argon2id$stub",
	}
	err := conn.Create(dup).Error
	require.Error(t, err)
	assert.True(t, db.IsUniqueViolation(err, "idx_users_username"))
}

func TestRepositoryFindByID(t *testing.T) {
	conn := setupUsersTestDB(t)
	repo := NewRepository(conn)
	seeded := seedUser(t, conn, "casey")

	found, err := repo.FindByID(context.Background(), seeded.ID)
	require.NoError(t, err)
	assert.Equal(t, seeded.Username, found.Username)

	_, err = repo.FindByID(context.Background(), uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryUpdateLastLogin(t *testing.T) {
	conn := setupUsersTestDB(t)
	repo := NewRepository(conn)
	seeded := seedUser(t, conn, "casey")
	ctx := context.Background()

	at := time.Now().UTC().Truncate(time.Second)
	require.NoError(t, repo.UpdateLastLogin(ctx, seeded.ID, at))

	found, err := repo.FindByID(ctx, seeded.ID)
	require.NoError(t, err)
	require.NotNil(t, found.LastLoginAt)
	assert.WithinDuration(t, at, *found.LastLoginAt, time.Second)
}
