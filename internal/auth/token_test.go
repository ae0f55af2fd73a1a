package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talhaustundag/ecommerce-api/internal/domain"
)

func TestTokenRoundTrip(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	user := &domain.User{ID: 42, Role: domain.RoleAdmin}

	token, err := tm.Generate(user)
	require.NoError(t, err)

	userID, role, err := tm.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, domain.RoleAdmin, role)
}

func TestExpiredTokenRejected(t *testing.T) {
	tm := NewTokenManager("test-secret", -time.Minute)
	token, err := tm.Generate(&domain.User{ID: 1})
	require.NoError(t, err)

	_, _, err = tm.Validate(token)
	assert.Error(t, err)
}

func TestTokenFromOtherSecretRejected(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Generate(&domain.User{ID: 1})
	require.NoError(t, err)

	_, _, err = NewTokenManager("secret-b", time.Hour).Validate(token)
	assert.Error(t, err)
}

func TestGarbageTokenRejected(t *testing.T) {
	tm := NewTokenManager("test-secret", time.Hour)
	_, _, err := tm.Validate("not.a.token")
	assert.Error(t, err)
}

func TestPasswordHashing(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse battery staple", hash)

	assert.True(t, CheckPassword(hash, "correct horse battery staple"))
	assert.False(t, CheckPassword(hash, "wrong password"))
	assert.False(t, CheckPassword("not-a-hash", "anything"))
}
