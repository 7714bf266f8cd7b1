package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/PiyushPb/vichar-backend/internal/repository"
)

func newTweetFixture(t *testing.T) (*TweetService, *repository.MemoryUserRepo, *repository.MemoryTweetRepo) {
	t.Helper()
	users := repository.NewMemoryUserRepo()
	tweets := repository.NewMemoryTweetRepo(users)
	return NewTweetService(tweets, nil, zap.NewNop()), users, tweets
}

func TestCreateTweetAppendsToOwner(t *testing.T) {
	svc, users, _ := newTweetFixture(t)
	ctx := context.Background()

	alice := seedUser(t, users, "alice@x.com", "Alice", "alice", "pw1")

	tweet, err := svc.Create(ctx, alice.ID, "hello", nil)
	require.NoError(t, err)
	require.False(t, tweet.ID.IsZero())
	require.Equal(t, "hello", tweet.Text)
	require.NotNil(t, tweet.Images)
	require.Empty(t, tweet.Images)
	require.Zero(t, tweet.Likes.Count)

	got, err := users.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, []primitive.ObjectID{tweet.ID}, got.Tweets)

	listed, err := svc.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	require.Equal(t, tweet.ID, listed[0].ID)
}

func TestCreateTweetEmpty(t *testing.T) {
	svc, users, _ := newTweetFixture(t)

	alice := seedUser(t, users, "alice@x.com", "Alice", "alice", "pw1")

	_, err := svc.Create(context.Background(), alice.ID, "   ", nil)
	require.ErrorIs(t, err, ErrEmptyTweet)
}

func TestCreateTweetUnknownOwner(t *testing.T) {
	svc, _, tweets := newTweetFixture(t)

	_, err := svc.Create(context.Background(), primitive.NewObjectID(), "hello", nil)
	require.ErrorIs(t, err, ErrUserNotFound)

	// Nothing was left behind.
	all, err := tweets.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestListNewestFirst(t *testing.T) {
	svc, users, _ := newTweetFixture(t)
	ctx := context.Background()

	alice := seedUser(t, users, "alice@x.com", "Alice", "alice", "pw1")
	bob := seedUser(t, users, "bob@x.com", "Bob", "bob", "pw2")

	first, err := svc.Create(ctx, alice.ID, "first", nil)
	require.NoError(t, err)
	second, err := svc.Create(ctx, bob.ID, "second", nil)
	require.NoError(t, err)
	third, err := svc.Create(ctx, alice.ID, "third", nil)
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	require.Equal(t, third.ID, all[0].ID)
	require.Equal(t, second.ID, all[1].ID)
	require.Equal(t, first.ID, all[2].ID)

	mine, err := svc.ListByUser(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	require.Equal(t, third.ID, mine[0].ID)
	require.Equal(t, first.ID, mine[1].ID)
}

func TestToggleLike(t *testing.T) {
	svc, users, _ := newTweetFixture(t)
	ctx := context.Background()

	alice := seedUser(t, users, "alice@x.com", "Alice", "alice", "pw1")
	bob := seedUser(t, users, "bob@x.com", "Bob", "bob", "pw2")

	tweet, err := svc.Create(ctx, alice.ID, "hello", nil)
	require.NoError(t, err)

	liked, err := svc.ToggleLike(ctx, bob.ID, tweet.ID)
	require.NoError(t, err)
	require.Equal(t, 1, liked.Likes.Count)
	require.Contains(t, liked.Likes.Users, bob.ID)

	liked, err = svc.ToggleLike(ctx, alice.ID, tweet.ID)
	require.NoError(t, err)
	require.Equal(t, 2, liked.Likes.Count)
	require.Len(t, liked.Likes.Users, liked.Likes.Count)

	// A second toggle by the same user undoes the like.
	unliked, err := svc.ToggleLike(ctx, bob.ID, tweet.ID)
	require.NoError(t, err)
	require.Equal(t, 1, unliked.Likes.Count)
	require.NotContains(t, unliked.Likes.Users, bob.ID)
	require.Len(t, unliked.Likes.Users, unliked.Likes.Count)
}

func TestToggleLikeUnknownTweet(t *testing.T) {
	svc, users, _ := newTweetFixture(t)

	alice := seedUser(t, users, "alice@x.com", "Alice", "alice", "pw1")

	_, err := svc.ToggleLike(context.Background(), alice.ID, primitive.NewObjectID())
	require.ErrorIs(t, err, ErrTweetNotFound)
}
