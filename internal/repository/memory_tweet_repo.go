package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/PiyushPb/vichar-backend/internal/models"
)

type memoryTweet struct {
	tweet models.Tweet
	seq   int
}

// MemoryTweetRepo is an in-memory TweetRepository for testing. It shares a
// MemoryUserRepo so created tweets land on the owner's tweets list, like the
// Mongo implementation.
type MemoryTweetRepo struct {
	mu     sync.RWMutex
	tweets map[primitive.ObjectID]memoryTweet
	users  *MemoryUserRepo
	nexts  int
}

// NewMemoryTweetRepo builds an empty in-memory tweet store.
func NewMemoryTweetRepo(users *MemoryUserRepo) *MemoryTweetRepo {
	return &MemoryTweetRepo{tweets: make(map[primitive.ObjectID]memoryTweet), users: users}
}

func (r *MemoryTweetRepo) Create(_ context.Context, t *models.Tweet) error {
	r.mu.Lock()
	if t.ID.IsZero() {
		t.ID = primitive.NewObjectID()
	}
	t.CreatedAt = time.Now().UTC()
	r.nexts++
	r.tweets[t.ID] = memoryTweet{tweet: *t, seq: r.nexts}
	r.mu.Unlock()

	if err := r.users.appendToTweets(t.UserID, t.ID); err != nil {
		r.mu.Lock()
		delete(r.tweets, t.ID)
		r.mu.Unlock()
		return err
	}
	return nil
}

func (r *MemoryTweetRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.Tweet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	mt, ok := r.tweets[id]
	if !ok {
		return nil, ErrTweetNotFound
	}
	copied := mt.tweet
	return &copied, nil
}

func (r *MemoryTweetRepo) list(match func(models.Tweet) bool) []models.Tweet {
	r.mu.RLock()
	defer r.mu.RUnlock()
	selected := []memoryTweet{}
	for _, mt := range r.tweets {
		if match(mt.tweet) {
			selected = append(selected, mt)
		}
	}
	// Newest first; seq breaks ties within the same clock tick.
	sort.Slice(selected, func(i, j int) bool {
		if !selected[i].tweet.CreatedAt.Equal(selected[j].tweet.CreatedAt) {
			return selected[i].tweet.CreatedAt.After(selected[j].tweet.CreatedAt)
		}
		return selected[i].seq > selected[j].seq
	})
	out := make([]models.Tweet, len(selected))
	for i, mt := range selected {
		out[i] = mt.tweet
	}
	return out
}

func (r *MemoryTweetRepo) List(_ context.Context) ([]models.Tweet, error) {
	return r.list(func(models.Tweet) bool { return true }), nil
}

func (r *MemoryTweetRepo) ListByUser(_ context.Context, userID primitive.ObjectID) ([]models.Tweet, error) {
	return r.list(func(t models.Tweet) bool { return t.UserID == userID }), nil
}

func (r *MemoryTweetRepo) ToggleLike(_ context.Context, tweetID, userID primitive.ObjectID) (*models.Tweet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	mt, ok := r.tweets[tweetID]
	if !ok {
		return nil, ErrTweetNotFound
	}
	liked := false
	for _, id := range mt.tweet.Likes.Users {
		if id == userID {
			liked = true
			break
		}
	}
	if liked {
		mt.tweet.Likes.Users = removeID(mt.tweet.Likes.Users, userID)
		mt.tweet.Likes.Count--
	} else {
		mt.tweet.Likes.Users = append(mt.tweet.Likes.Users, userID)
		mt.tweet.Likes.Count++
	}
	r.tweets[tweetID] = mt
	copied := mt.tweet
	return &copied, nil
}
