package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/PiyushPb/vichar-backend/internal/events"
	"github.com/PiyushPb/vichar-backend/internal/models"
	"github.com/PiyushPb/vichar-backend/internal/repository"
	"github.com/PiyushPb/vichar-backend/internal/utils"
)

// AuthConfig carries the process-wide knobs the auth flows need.
type AuthConfig struct {
	JWTSecret     string
	SessionTTL    time.Duration
	BcryptCost    int
	ServerURL     string
	ResetTokenTTL time.Duration
}

// AuthService implements registration, login and password recovery.
type AuthService struct {
	users repository.UserRepository
	pub   *events.Publisher
	log   *zap.Logger
	cfg   AuthConfig
}

func NewAuthService(users repository.UserRepository, pub *events.Publisher, log *zap.Logger, cfg AuthConfig) *AuthService {
	return &AuthService{users: users, pub: pub, log: log, cfg: cfg}
}

// Register creates a new account. Username and credentials must both be
// unused.
func (s *AuthService) Register(ctx context.Context, credentials, name, username, password string) error {
	if _, err := s.users.FindByUsername(ctx, username); err == nil {
		return ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	if _, err := s.users.FindByCredentials(ctx, credentials); err == nil {
		return ErrCredentialsTaken
	} else if !errors.Is(err, repository.ErrUserNotFound) {
		return err
	}

	hash, err := utils.HashPassword(password, s.cfg.BcryptCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Credentials:  credentials,
		Name:         name,
		Username:     username,
		PasswordHash: hash,
		ProfilePic:   models.DefaultProfilePic,
		Following:    []primitive.ObjectID{},
		Followers:    []primitive.ObjectID{},
		Tweets:       []primitive.ObjectID{},
	}
	return s.users.Create(ctx, user)
}

// CheckUsername reports whether the username is still available.
func (s *AuthService) CheckUsername(ctx context.Context, username string) (bool, error) {
	_, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return false, nil
}

// Login resolves the account behind a credential (email, 9-digit phone or
// username), verifies the password and issues a session token.
func (s *AuthService) Login(ctx context.Context, credentials, password string) (*models.User, string, error) {
	var user *models.User
	var err error
	switch utils.ClassifyCredential(credentials) {
	case utils.CredentialEmail, utils.CredentialPhone:
		user, err = s.users.FindByCredentials(ctx, credentials)
	default:
		user, err = s.users.FindByUsername(ctx, credentials)
	}
	if errors.Is(err, repository.ErrUserNotFound) {
		utils.BurnPasswordCheck(password)
		return nil, "", ErrInvalidCredentials
	}
	if err != nil {
		return nil, "", err
	}

	if !utils.CheckPassword(password, user.PasswordHash) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := utils.GenerateSessionToken(user.ID.Hex(), user.Username, s.cfg.JWTSecret, s.cfg.SessionTTL)
	if err != nil {
		return nil, "", err
	}
	return user, token, nil
}

// ForgetPassword stores a fresh reset token on the account and publishes
// the reset link for a downstream notifier. Email delivery itself is out of
// scope.
func (s *AuthService) ForgetPassword(ctx context.Context, credentials string) error {
	user, err := s.users.FindByCredentials(ctx, credentials)
	if errors.Is(err, repository.ErrUserNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	token, err := utils.GenerateResetToken()
	if err != nil {
		return err
	}
	expiry := time.Now().Add(s.cfg.ResetTokenTTL)
	if err := s.users.SetResetToken(ctx, user.ID, token, expiry); err != nil {
		return err
	}

	link := fmt.Sprintf("%s/v1/auth/resetPassword/%s/%s", strings.TrimRight(s.cfg.ServerURL, "/"), user.ID.Hex(), token)
	s.log.Info("password reset link issued", zap.String("user_id", user.ID.Hex()))

	if err := s.pub.PublishPasswordResetRequested(ctx, events.PasswordResetRequestedEvent{
		UserID:    user.ID.Hex(),
		ResetLink: link,
	}); err != nil {
		s.log.Warn("publish password reset event failed", zap.Error(err))
	}
	return nil
}

// ResetPassword validates a reset token and, when a new password is
// supplied, replaces the stored one and clears the token. An expired token
// is cleared on sight.
func (s *AuthService) ResetPassword(ctx context.Context, userID, resetToken, newPassword string) (*models.User, error) {
	id, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}

	if user.ResetToken == "" || user.ResetToken != resetToken {
		return nil, ErrInvalidResetToken
	}
	if user.ResetTokenExpiry == nil || time.Now().After(*user.ResetTokenExpiry) {
		if err := s.users.ClearResetToken(ctx, user.ID); err != nil {
			s.log.Warn("clear stale reset token failed", zap.Error(err))
		}
		return nil, ErrResetTokenExpired
	}

	if newPassword != "" {
		hash, err := utils.HashPassword(newPassword, s.cfg.BcryptCost)
		if err != nil {
			return nil, err
		}
		if err := s.users.SetPassword(ctx, user.ID, hash); err != nil {
			return nil, err
		}
		if err := s.users.ClearResetToken(ctx, user.ID); err != nil {
			return nil, err
		}
		user.PasswordHash = hash
		user.ResetToken = ""
		user.ResetTokenExpiry = nil
	}
	return user, nil
}
