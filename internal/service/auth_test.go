package service

import (
	"strings"
	"testing"
	"time"

	"diascreen/internal/models"
	"diascreen/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAuthRepo struct {
	users  map[string]*models.User
	nextID int64
}

func newFakeAuthRepo() *fakeAuthRepo {
	return &fakeAuthRepo{users: make(map[string]*models.User)}
}

func (f *fakeAuthRepo) CreateUser(user *models.User) error {
	f.nextID++
	user.ID = f.nextID
	user.CreatedAt = time.Now()
	f.users[user.Username] = user
	return nil
}

func (f *fakeAuthRepo) GetUserByUsername(username string) (*models.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (f *fakeAuthRepo) UsernameExists(username string) (bool, error) {
	_, ok := f.users[username]
	return ok, nil
}

var testSecret = []byte("test-secret")

func newAuthService(repo repository.AuthRepository) AuthService {
	return NewAuthService(repo, testSecret, 24*time.Hour, zap.NewNop())
}

func TestRegister(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newAuthService(repo)

	user, err := svc.Register("alice", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.True(t, strings.HasPrefix(user.PasswordHash, "$argon2id$"))
	assert.NotContains(t, user.PasswordHash, "hunter2")
}

func TestRegisterDuplicate(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newAuthService(repo)

	_, err := svc.Register("alice", "hunter2")
	require.NoError(t, err)

	_, err = svc.Register("alice", "other")
	assert.ErrorIs(t, err, ErrUserAlreadyExists)
}

func TestLogin(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newAuthService(repo)

	_, err := svc.Register("alice", "hunter2")
	require.NoError(t, err)

	tokenString, expiresAt, err := svc.Login("alice", "hunter2")
	require.NoError(t, err)
	assert.True(t, expiresAt.After(time.Now()))

	claims := &models.Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return testSecret, nil
	})
	require.NoError(t, err)
	assert.True(t, token.Valid)
	assert.Equal(t, "alice", claims.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := newFakeAuthRepo()
	svc := newAuthService(repo)

	_, err := svc.Register("alice", "hunter2")
	require.NoError(t, err)

	_, _, err = svc.Login("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newAuthService(newFakeAuthRepo())

	_, _, err := svc.Login("nobody", "hunter2")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := hashPassword("hunter2")
	require.NoError(t, err)

	assert.True(t, verifyPassword(hash, "hunter2"))
	assert.False(t, verifyPassword(hash, "Hunter2"))

	// Two hashes of the same password differ by salt but both verify.
	other, err := hashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)
	assert.True(t, verifyPassword(other, "hunter2"))
}

func TestVerifyPasswordMalformedHash(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{"empty", ""},
		{"wrong algorithm", "$bcrypt$v=19$m=65536,t=1,p=4$c2FsdA$aGFzaA"},
		{"missing sections", "$argon2id$v=19$aGFzaA"},
		{"bad base64 salt", "$argon2id$v=19$m=65536,t=1,p=4$!!!$aGFzaA"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, verifyPassword(tt.hash, "hunter2"))
		})
	}
}
