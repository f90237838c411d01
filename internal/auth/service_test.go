package auth

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"library-admin/internal/config"
	"library-admin/internal/database"
	"library-admin/internal/entities"
)

func setupService(t *testing.T) (*Service, *database.Database, func()) {
	dbPath := "./test_auth_" + t.Name() + ".db"

	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	service := NewService(db.DB, config.Auth{BcryptCost: bcrypt.MinCost})

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}

	return service, db, cleanup
}

func seedUser(t *testing.T, service *Service, db *database.Database, username, password string, active bool) *entities.User {
	hash, err := service.HashPassword(password)
	require.NoError(t, err)

	user := &entities.User{Username: username, Email: username + "@example.com", PasswordHash: hash, IsActive: active}
	require.NoError(t, db.DB.Create(user).Error)
	return user
}

func TestAuthenticate_Success(t *testing.T) {
	service, db, cleanup := setupService(t)
	defer cleanup()

	created := seedUser(t, service, db, "alice", "secret123", true)

	user, err := service.Authenticate("alice", "secret123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestAuthenticate_UsernameCaseInsensitive(t *testing.T) {
	service, db, cleanup := setupService(t)
	defer cleanup()

	seedUser(t, service, db, "Alice", "secret123", true)

	_, err := service.Authenticate("aLiCe", "secret123")
	assert.NoError(t, err)
}

func TestAuthenticate_WrongPassword(t *testing.T) {
	service, db, cleanup := setupService(t)
	defer cleanup()

	seedUser(t, service, db, "alice", "secret123", true)

	_, err := service.Authenticate("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticate_UnknownUser_SameError(t *testing.T) {
	service, db, cleanup := setupService(t)
	defer cleanup()

	seedUser(t, service, db, "alice", "secret123", true)

	wrongPassErr := func() error {
		_, err := service.Authenticate("alice", "wrong")
		return err
	}()
	unknownUserErr := func() error {
		_, err := service.Authenticate("nobody", "whatever")
		return err
	}()

	// A failed login never reveals whether the username exists
	assert.Equal(t, wrongPassErr, unknownUserErr)
	assert.ErrorIs(t, unknownUserErr, ErrInvalidCredentials)
}

func TestAuthenticate_InactiveUser(t *testing.T) {
	service, db, cleanup := setupService(t)
	defer cleanup()

	seedUser(t, service, db, "alice", "secret123", false)

	_, err := service.Authenticate("alice", "secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}
