package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/PiyushPb/vichar-backend/internal/models"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrTweetNotFound = errors.New("tweet not found")
)

// ProfileUpdate carries the fields a profile PATCH may change. A nil field
// was omitted from the request and keeps its stored value.
type ProfileUpdate struct {
	Username *string
	Name     *string
	Email    *string
}

// UserRepository persists user documents.
type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByCredentials(ctx context.Context, credentials string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) (*models.User, error)
	SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error
	SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expiry time.Time) error
	ClearResetToken(ctx context.Context, id primitive.ObjectID) error
	Search(ctx context.Context, prefix string, limit int64) ([]models.User, error)
	IsFollowing(ctx context.Context, followerID, targetID primitive.ObjectID) (bool, error)
	AddFollow(ctx context.Context, followerID, targetID primitive.ObjectID) error
	RemoveFollow(ctx context.Context, followerID, targetID primitive.ObjectID) error
}

// TweetRepository persists tweet documents. Create also appends the new
// tweet id to the owner's tweets list.
type TweetRepository interface {
	Create(ctx context.Context, t *models.Tweet) error
	FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tweet, error)
	List(ctx context.Context) ([]models.Tweet, error)
	ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Tweet, error)
	ToggleLike(ctx context.Context, tweetID, userID primitive.ObjectID) (*models.Tweet, error)
}
