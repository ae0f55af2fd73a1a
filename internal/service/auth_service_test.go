package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/talhaustundag/ecommerce-api/internal/auth"
	"github.com/talhaustundag/ecommerce-api/internal/domain"
)

func newAuthService(env *testEnv) *AuthService {
	tokens := auth.NewTokenManager("test-secret", time.Hour)
	return NewAuthService(env.users, tokens, testLogger())
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newAuthService(env)

	user, token, err := svc.Register(ctx, "Ada", "ada@example.com", "longenoughpassword")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, domain.RoleUser, user.Role)
	assert.NotEqual(t, "longenoughpassword", user.PasswordHash)

	loggedIn, token, err := svc.Login(ctx, "ada@example.com", "longenoughpassword")
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)
	assert.NotEmpty(t, token)
}

func TestAuthService_LoginFailuresAreUniform(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newAuthService(env)

	_, _, err := svc.Register(ctx, "Ada", "ada@example.com", "longenoughpassword")
	require.NoError(t, err)

	_, _, err = svc.Login(ctx, "ada@example.com", "wrongpassword")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@example.com", "whatever")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestAuthService_DuplicateRegistration(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newAuthService(env)

	_, _, err := svc.Register(ctx, "Ada", "ada@example.com", "longenoughpassword")
	require.NoError(t, err)

	_, _, err = svc.Register(ctx, "Imposter", "ada@example.com", "anotherpassword")
	assert.ErrorIs(t, err, domain.ErrEmailTaken)
}

func TestAuthService_UpdateProfile(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	svc := newAuthService(env)

	user, _, err := svc.Register(ctx, "Ada", "ada@example.com", "longenoughpassword")
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, user.ID, "Ada Lovelace")
	require.NoError(t, err)
	assert.Equal(t, "Ada Lovelace", updated.Name)
}
