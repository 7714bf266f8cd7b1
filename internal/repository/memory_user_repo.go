package repository

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/PiyushPb/vichar-backend/internal/models"
)

// MemoryUserRepo is an in-memory UserRepository for testing.
type MemoryUserRepo struct {
	mu    sync.RWMutex
	users map[primitive.ObjectID]models.User
}

// NewMemoryUserRepo builds an empty in-memory user store.
func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{users: make(map[primitive.ObjectID]models.User)}
}

func (r *MemoryUserRepo) Create(_ context.Context, u *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Credentials == u.Credentials || existing.Username == u.Username {
			return errors.New("duplicate key")
		}
		if u.Email != "" && existing.Email == u.Email {
			return errors.New("duplicate key")
		}
	}
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	r.users[u.ID] = *u
	return nil
}

func (r *MemoryUserRepo) find(match func(models.User) bool) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if match(u) {
			copied := u
			return &copied, nil
		}
	}
	return nil, ErrUserNotFound
}

func (r *MemoryUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.ID == id })
}

func (r *MemoryUserRepo) FindByUsername(_ context.Context, username string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Username == username })
}

func (r *MemoryUserRepo) FindByCredentials(_ context.Context, credentials string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Credentials == credentials })
}

func (r *MemoryUserRepo) FindByEmail(_ context.Context, email string) (*models.User, error) {
	return r.find(func(u models.User) bool { return u.Email != "" && u.Email == email })
}

func (r *MemoryUserRepo) UpdateProfile(_ context.Context, id primitive.ObjectID, upd ProfileUpdate) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, ErrUserNotFound
	}
	if upd.Username != nil {
		u.Username = *upd.Username
	}
	if upd.Name != nil {
		u.Name = *upd.Name
	}
	if upd.Email != nil {
		u.Email = *upd.Email
	}
	u.UpdatedAt = time.Now().UTC()
	r.users[id] = u
	copied := u
	return &copied, nil
}

func (r *MemoryUserRepo) SetPassword(_ context.Context, id primitive.ObjectID, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.PasswordHash = hash
	u.UpdatedAt = time.Now().UTC()
	r.users[id] = u
	return nil
}

func (r *MemoryUserRepo) SetResetToken(_ context.Context, id primitive.ObjectID, token string, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return ErrUserNotFound
	}
	u.ResetToken = token
	exp := expiry.UTC()
	u.ResetTokenExpiry = &exp
	r.users[id] = u
	return nil
}

func (r *MemoryUserRepo) ClearResetToken(_ context.Context, id primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil
	}
	u.ResetToken = ""
	u.ResetTokenExpiry = nil
	r.users[id] = u
	return nil
}

func (r *MemoryUserRepo) Search(_ context.Context, prefix string, limit int64) ([]models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	lower := strings.ToLower(prefix)
	out := []models.User{}
	for _, u := range r.users {
		if int64(len(out)) >= limit {
			break
		}
		if strings.HasPrefix(strings.ToLower(u.Username), lower) ||
			strings.HasPrefix(strings.ToLower(u.Name), lower) {
			out = append(out, u)
		}
	}
	return out, nil
}

func (r *MemoryUserRepo) IsFollowing(_ context.Context, followerID, targetID primitive.ObjectID) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	u, ok := r.users[followerID]
	if !ok {
		return false, nil
	}
	for _, id := range u.Following {
		if id == targetID {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryUserRepo) AddFollow(_ context.Context, followerID, targetID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	follower, ok := r.users[followerID]
	if !ok {
		return ErrUserNotFound
	}
	target, ok := r.users[targetID]
	if !ok {
		return ErrUserNotFound
	}
	follower.Following = appendUnique(follower.Following, targetID)
	target.Followers = appendUnique(target.Followers, followerID)
	r.users[followerID] = follower
	r.users[targetID] = target
	return nil
}

func (r *MemoryUserRepo) RemoveFollow(_ context.Context, followerID, targetID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	follower, ok := r.users[followerID]
	if !ok {
		return ErrUserNotFound
	}
	target, ok := r.users[targetID]
	if !ok {
		return ErrUserNotFound
	}
	follower.Following = removeID(follower.Following, targetID)
	target.Followers = removeID(target.Followers, followerID)
	r.users[followerID] = follower
	r.users[targetID] = target
	return nil
}

// appendToTweets mirrors the Mongo $push used on tweet creation.
func (r *MemoryUserRepo) appendToTweets(userID, tweetID primitive.ObjectID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	u.Tweets = append(u.Tweets, tweetID)
	r.users[userID] = u
	return nil
}

func appendUnique(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}
