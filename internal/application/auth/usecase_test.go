package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/epharma-api/internal/application/dto"
	"github.com/jhoicas/epharma-api/internal/domain"
	"github.com/jhoicas/epharma-api/internal/infrastructure/memory"
	"github.com/jhoicas/epharma-api/pkg/jwt"
)

func newAuth(t *testing.T) *AuthUseCase {
	t.Helper()
	uc := NewAuthUseCase(memory.NewStore().Users(), JWTConfig{Secret: "test-secret", ExpMinutes: 10, Issuer: "epharma"})
	uc.cost = bcrypt.MinCost
	return uc
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	uc := newAuth(t)

	user, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "admin", Password: "secreto123"})
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
	assert.Equal(t, "admin", user.Username)

	resp, err := uc.Login(ctx, dto.LoginRequest{Username: "admin", Password: "secreto123"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, resp.User.ID)

	claims, err := jwt.Parse("test-secret", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, "admin", claims.Username)
}

func TestRegister_Duplicate(t *testing.T) {
	ctx := context.Background()
	uc := newAuth(t)
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "admin", Password: "secreto123"})
	require.NoError(t, err)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Username: "admin", Password: "otraclave1"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()
	uc := newAuth(t)
	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "caja1", Password: "secreto123"})
	require.NoError(t, err)

	u, err := uc.Authenticate(ctx, "caja1", "secreto123")
	require.NoError(t, err)
	assert.Equal(t, "caja1", u.Username)
	assert.NotEqual(t, "secreto123", u.PasswordHash)

	_, err = uc.Authenticate(ctx, "caja1", "incorrecta")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Authenticate(ctx, "nadie", "secreto123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestUserExists(t *testing.T) {
	ctx := context.Background()
	uc := newAuth(t)

	ok, err := uc.UserExists(ctx, "caja1")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Username: "caja1", Password: "secreto123"})
	require.NoError(t, err)

	ok, err = uc.UserExists(ctx, "caja1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestUpdateAndDeleteUser(t *testing.T) {
	ctx := context.Background()
	uc := newAuth(t)
	u, err := uc.RegisterUser(ctx, dto.RegisterRequest{Username: "caja1", Password: "secreto123"})
	require.NoError(t, err)

	updated, err := uc.UpdateUser(ctx, u.ID, dto.UpdateUserRequest{Password: "nuevaclave9"})
	require.NoError(t, err)
	assert.Equal(t, "caja1", updated.Username)

	_, err = uc.Authenticate(ctx, "caja1", "secreto123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
	_, err = uc.Authenticate(ctx, "caja1", "nuevaclave9")
	require.NoError(t, err)

	list, err := uc.ListUsers(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.DeleteUser(ctx, u.ID))
	_, err = uc.GetUser(ctx, u.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestHasUsers(t *testing.T) {
	ctx := context.Background()
	uc := newAuth(t)

	has, err := uc.HasUsers(ctx)
	require.NoError(t, err)
	assert.False(t, has)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Username: "admin", Password: "secreto123"})
	require.NoError(t, err)

	has, err = uc.HasUsers(ctx)
	require.NoError(t, err)
	assert.True(t, has)
}
