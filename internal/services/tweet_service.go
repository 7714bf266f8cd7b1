package services

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/PiyushPb/vichar-backend/internal/events"
	"github.com/PiyushPb/vichar-backend/internal/models"
	"github.com/PiyushPb/vichar-backend/internal/repository"
)

// TweetService implements posting, feeds and like toggling.
type TweetService struct {
	tweets repository.TweetRepository
	pub    *events.Publisher
	log    *zap.Logger
}

func NewTweetService(tweets repository.TweetRepository, pub *events.Publisher, log *zap.Logger) *TweetService {
	return &TweetService{tweets: tweets, pub: pub, log: log}
}

// Create persists a new tweet owned by callerID and appends its id to the
// owner's tweets list.
func (s *TweetService) Create(ctx context.Context, callerID primitive.ObjectID, text string, images []string) (*models.Tweet, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyTweet
	}
	if images == nil {
		images = []string{}
	}

	tweet := &models.Tweet{
		UserID:   callerID,
		Text:     text,
		Images:   images,
		Likes:    models.Likes{Count: 0, Users: []primitive.ObjectID{}},
		Comments: []models.Comment{},
	}
	if err := s.tweets.Create(ctx, tweet); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.pub.PublishTweetCreated(ctx, events.TweetCreatedEvent{
		TweetID:   tweet.ID.Hex(),
		UserID:    callerID.Hex(),
		CreatedAt: tweet.CreatedAt,
	}); err != nil {
		s.log.Warn("publish tweet created event failed", zap.Error(err))
	}
	return tweet, nil
}

// List returns every tweet, newest first.
func (s *TweetService) List(ctx context.Context) ([]models.Tweet, error) {
	return s.tweets.List(ctx)
}

// ListByUser returns one user's tweets, newest first.
func (s *TweetService) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Tweet, error) {
	return s.tweets.ListByUser(ctx, userID)
}

// ToggleLike adds the caller's like when absent, removes it when present,
// and returns the updated tweet.
func (s *TweetService) ToggleLike(ctx context.Context, callerID, tweetID primitive.ObjectID) (*models.Tweet, error) {
	tweet, err := s.tweets.ToggleLike(ctx, tweetID, callerID)
	if errors.Is(err, repository.ErrTweetNotFound) {
		return nil, ErrTweetNotFound
	}
	return tweet, err
}
