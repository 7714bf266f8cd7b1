package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/PiyushPb/vichar-backend/internal/repository"
	"github.com/PiyushPb/vichar-backend/internal/utils"
)

func newAuthService(users repository.UserRepository) *AuthService {
	return NewAuthService(users, nil, zap.NewNop(), AuthConfig{
		JWTSecret:     "test-secret",
		SessionTTL:    15 * 24 * time.Hour,
		BcryptCost:    4,
		ServerURL:     "http://localhost:5000",
		ResetTokenTTL: time.Hour,
	})
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := repository.NewMemoryUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice@x.com", "Alice", "alice", "pw1"))

	err := svc.Register(ctx, "other@x.com", "Other", "alice", "pw2")
	require.ErrorIs(t, err, ErrUsernameTaken)

	// No second record appeared.
	_, err = repo.FindByCredentials(ctx, "other@x.com")
	require.ErrorIs(t, err, repository.ErrUserNotFound)
}

func TestRegisterDuplicateCredentials(t *testing.T) {
	repo := repository.NewMemoryUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice@x.com", "Alice", "alice", "pw1"))

	err := svc.Register(ctx, "alice@x.com", "Other", "other", "pw2")
	require.ErrorIs(t, err, ErrCredentialsTaken)
}

func TestLoginIssuesVerifiableToken(t *testing.T) {
	repo := repository.NewMemoryUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice@x.com", "Alice", "alice", "pw1"))

	user, token, err := svc.Login(ctx, "alice@x.com", "pw1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := utils.ParseSessionToken(token, "test-secret")
	require.NoError(t, err)
	require.Equal(t, user.ID.Hex(), claims.ID)
	require.Equal(t, "alice", claims.Username)
}

func TestLoginWrongPassword(t *testing.T) {
	repo := repository.NewMemoryUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice@x.com", "Alice", "alice", "pw1"))

	_, _, err := svc.Login(ctx, "alice@x.com", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@x.com", "pw1")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginByUsername(t *testing.T) {
	repo := repository.NewMemoryUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice@x.com", "Alice", "alice", "pw1"))

	_, token, err := svc.Login(ctx, "alice", "pw1")
	require.NoError(t, err)
	require.NotEmpty(t, token)
}

func TestCheckUsername(t *testing.T) {
	repo := repository.NewMemoryUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	available, err := svc.CheckUsername(ctx, "alice")
	require.NoError(t, err)
	require.True(t, available)

	require.NoError(t, svc.Register(ctx, "alice@x.com", "Alice", "alice", "pw1"))

	available, err = svc.CheckUsername(ctx, "alice")
	require.NoError(t, err)
	require.False(t, available)
}

func TestForgetAndResetPassword(t *testing.T) {
	repo := repository.NewMemoryUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice@x.com", "Alice", "alice", "pw1"))
	require.NoError(t, svc.ForgetPassword(ctx, "alice@x.com"))

	user, err := repo.FindByCredentials(ctx, "alice@x.com")
	require.NoError(t, err)
	require.NotEmpty(t, user.ResetToken)
	require.NotNil(t, user.ResetTokenExpiry)
	require.True(t, user.ResetTokenExpiry.After(time.Now()))

	_, err = svc.ResetPassword(ctx, user.ID.Hex(), "bogus-token", "")
	require.ErrorIs(t, err, ErrInvalidResetToken)

	_, err = svc.ResetPassword(ctx, user.ID.Hex(), user.ResetToken, "pw2")
	require.NoError(t, err)

	// New password works, old one does not, token is gone.
	_, _, err = svc.Login(ctx, "alice@x.com", "pw2")
	require.NoError(t, err)
	_, _, err = svc.Login(ctx, "alice@x.com", "pw1")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	user, err = repo.FindByCredentials(ctx, "alice@x.com")
	require.NoError(t, err)
	require.Empty(t, user.ResetToken)
	require.Nil(t, user.ResetTokenExpiry)
}

func TestResetPasswordExpiredTokenIsCleared(t *testing.T) {
	repo := repository.NewMemoryUserRepo()
	svc := newAuthService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Register(ctx, "alice@x.com", "Alice", "alice", "pw1"))
	user, err := repo.FindByCredentials(ctx, "alice@x.com")
	require.NoError(t, err)

	require.NoError(t, repo.SetResetToken(ctx, user.ID, "stale-token", time.Now().Add(-time.Minute)))

	_, err = svc.ResetPassword(ctx, user.ID.Hex(), "stale-token", "pw2")
	require.ErrorIs(t, err, ErrResetTokenExpired)

	user, err = repo.FindByCredentials(ctx, "alice@x.com")
	require.NoError(t, err)
	require.Empty(t, user.ResetToken)
}

func TestForgetPasswordUnknownUser(t *testing.T) {
	repo := repository.NewMemoryUserRepo()
	svc := newAuthService(repo)

	err := svc.ForgetPassword(context.Background(), "nobody@x.com")
	require.ErrorIs(t, err, ErrUserNotFound)
}
