package services

import (
	"context"
	"testing"
	"time"

	"pallet-service/internal/models"
	"pallet-service/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*models.User, error) {
	return f.users[username], nil
}

func (f *fakeUserRepo) CreateIfMissing(_ context.Context, user *models.User) (bool, error) {
	if _, ok := f.users[user.Username]; ok {
		return false, nil
	}
	f.users[user.Username] = user
	return true, nil
}

func newTestAuthService(t *testing.T) (AuthService, *fakeUserRepo) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	users := &fakeUserRepo{users: map[string]*models.User{}}
	manager := session.NewManager("test-secret", time.Hour, session.NewRedisStore(client))
	return NewAuthService(users, manager, zap.NewNop()), users
}

func TestAuthService_LoginAuthenticateLogout(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	created, err := svc.SeedUsers(ctx, map[string]string{"quai1": "secret"})
	require.NoError(t, err)
	assert.Equal(t, 1, created)

	token, err := svc.Login(ctx, " quai1 ", "secret")
	require.NoError(t, err)
	assert.Equal(t, "quai1", token.Username)

	username, err := svc.Authenticate(ctx, token.Value)
	require.NoError(t, err)
	assert.Equal(t, "quai1", username)

	require.NoError(t, svc.Logout(ctx, token.Value))
	_, err = svc.Authenticate(ctx, token.Value)
	assert.ErrorIs(t, err, session.ErrSessionNotFound)
}

func TestAuthService_InvalidCredentials(t *testing.T) {
	svc, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.SeedUsers(ctx, map[string]string{"quai1": "secret"})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "quai1", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, "nobody", "secret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_SeedKeepsExistingUsers(t *testing.T) {
	svc, users := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.SeedUsers(ctx, map[string]string{"chef": "first"})
	require.NoError(t, err)
	before := users.users["chef"].PasswordHash

	created, err := svc.SeedUsers(ctx, map[string]string{"chef": "second"})
	require.NoError(t, err)
	assert.Zero(t, created)
	assert.Equal(t, before, users.users["chef"].PasswordHash)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(before), []byte("first")))
}
