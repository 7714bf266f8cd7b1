package services

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/PiyushPb/vichar-backend/internal/events"
	"github.com/PiyushPb/vichar-backend/internal/models"
	"github.com/PiyushPb/vichar-backend/internal/repository"
	"github.com/PiyushPb/vichar-backend/internal/utils"
)

const searchLimit = 20

// UserService implements profile lookup, profile mutation and the follow
// graph.
type UserService struct {
	users      repository.UserRepository
	pub        *events.Publisher
	log        *zap.Logger
	bcryptCost int
}

func NewUserService(users repository.UserRepository, pub *events.Publisher, log *zap.Logger, bcryptCost int) *UserService {
	return &UserService{users: users, pub: pub, log: log, bcryptCost: bcryptCost}
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

func (s *UserService) GetCurrent(ctx context.Context, callerID primitive.ObjectID) (*models.User, error) {
	user, err := s.users.FindByID(ctx, callerID)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// GetSummary serves the trimmed name/username/picture projection.
func (s *UserService) GetSummary(ctx context.Context, id primitive.ObjectID) (*models.UserSummary, error) {
	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &models.UserSummary{
		ID:         user.ID,
		Username:   user.Username,
		Name:       user.Name,
		ProfilePic: user.ProfilePic,
	}, nil
}

// UpdateProfile changes username, name and email. Omitted fields keep their
// stored values, and a new username or email must not belong to a different
// account.
func (s *UserService) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd repository.ProfileUpdate) (*models.User, error) {
	if _, err := s.users.FindByID(ctx, id); errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUserNotFound
	} else if err != nil {
		return nil, err
	}

	if upd.Username != nil {
		if other, err := s.users.FindByUsername(ctx, *upd.Username); err == nil && other.ID != id {
			return nil, ErrUsernameTaken
		} else if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			return nil, err
		}
	}

	if upd.Email != nil && *upd.Email != "" {
		if other, err := s.users.FindByEmail(ctx, *upd.Email); err == nil && other.ID != id {
			return nil, ErrEmailTaken
		} else if err != nil && !errors.Is(err, repository.ErrUserNotFound) {
			return nil, err
		}
	}

	user, err := s.users.UpdateProfile(ctx, id, upd)
	if errors.Is(err, repository.ErrUserNotFound) {
		return nil, ErrUserNotFound
	}
	return user, err
}

// ChangePassword verifies the old password before storing a new hash.
func (s *UserService) ChangePassword(ctx context.Context, id primitive.ObjectID, oldPassword, newPassword string) error {
	if oldPassword == "" || newPassword == "" {
		return ErrMissingPasswords
	}

	user, err := s.users.FindByID(ctx, id)
	if errors.Is(err, repository.ErrUserNotFound) {
		return ErrUserNotFound
	}
	if err != nil {
		return err
	}

	if !utils.CheckPassword(oldPassword, user.PasswordHash) {
		return ErrWrongOldPassword
	}

	hash, err := utils.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	return s.users.SetPassword(ctx, id, hash)
}

// Search returns at most 20 users whose username or name starts with the
// query, case-insensitively. An empty query yields an empty list.
func (s *UserService) Search(ctx context.Context, query string) ([]models.User, error) {
	if len(query) == 0 {
		return []models.User{}, nil
	}
	return s.users.Search(ctx, query, searchLimit)
}

// Follow adds the reciprocal follower/following references.
func (s *UserService) Follow(ctx context.Context, callerID, targetID primitive.ObjectID) error {
	if callerID == targetID {
		return ErrSelfFollow
	}

	following, err := s.users.IsFollowing(ctx, callerID, targetID)
	if err != nil {
		return err
	}
	if following {
		return ErrAlreadyFollowing
	}

	if err := s.users.AddFollow(ctx, callerID, targetID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.pub.PublishUserFollowed(ctx, events.UserFollowedEvent{
		FollowerID: callerID.Hex(),
		FollowedID: targetID.Hex(),
	}); err != nil {
		s.log.Warn("publish user followed event failed", zap.Error(err))
	}
	return nil
}

// Unfollow removes the reciprocal references added by Follow.
func (s *UserService) Unfollow(ctx context.Context, callerID, targetID primitive.ObjectID) error {
	following, err := s.users.IsFollowing(ctx, callerID, targetID)
	if err != nil {
		return err
	}
	if !following {
		return ErrNotFollowing
	}

	if err := s.users.RemoveFollow(ctx, callerID, targetID); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
