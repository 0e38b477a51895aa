package services

import (
	"testing"

	"billsplit-backend/internal/database"
	"billsplit-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestRegisterAndLoginUser(t *testing.T) {
	setupBillTestDB()
	t.Setenv("JWT_SECRET", "test-secret")

	u, err := RegisterUser("Alice", "alice@example.com", "Secret123", "")
	assert.NoError(t, err)
	assert.Equal(t, models.RoleUser, u.Role)
	assert.Equal(t, models.StatusActive, u.Status)
	assert.NotEqual(t, "Secret123", u.Password) // stored hashed

	// Duplicate email
	_, err = RegisterUser("Alice Again", "alice@example.com", "Secret123", "")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)

	token, logged, err := LoginUser("alice@example.com", "Secret123")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, u.ID, logged.ID)

	_, _, err = LoginUser("alice@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = LoginUser("nobody@example.com", "Secret123")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginInactiveUser(t *testing.T) {
	setupBillTestDB()
	t.Setenv("JWT_SECRET", "test-secret")

	u, err := RegisterUser("Bob", "bob@example.com", "Secret123", "")
	assert.NoError(t, err)

	database.DB.Model(&models.User{}).Where("id = ?", u.ID).Update("status", models.StatusInactive)

	_, _, err = LoginUser("bob@example.com", "Secret123")
	assert.ErrorIs(t, err, ErrAccountInactive)
}

func TestFindEligibleParticipants(t *testing.T) {
	setupBillTestDB()

	active := seedUser("active", models.RoleUser, models.StatusActive)
	seedUser("boss", models.RoleAdmin, models.StatusActive)
	seedUser("gone", models.RoleUser, models.StatusInactive)

	users, err := FindEligibleParticipants()
	assert.NoError(t, err)
	assert.Len(t, users, 1)
	assert.Equal(t, active.ID, users[0].ID)
}
