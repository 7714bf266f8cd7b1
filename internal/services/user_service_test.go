package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/PiyushPb/vichar-backend/internal/models"
	"github.com/PiyushPb/vichar-backend/internal/repository"
	"github.com/PiyushPb/vichar-backend/internal/utils"
)

func seedUser(t *testing.T, repo *repository.MemoryUserRepo, credentials, name, username, password string) *models.User {
	t.Helper()
	hash, err := utils.HashPassword(password, 4)
	require.NoError(t, err)
	u := &models.User{
		Credentials:  credentials,
		Name:         name,
		Username:     username,
		PasswordHash: hash,
		Following:    []primitive.ObjectID{},
		Followers:    []primitive.ObjectID{},
		Tweets:       []primitive.ObjectID{},
	}
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestFollowUnfollowRestoresState(t *testing.T) {
	repo := repository.NewMemoryUserRepo()
	svc := NewUserService(repo, nil, zap.NewNop(), 4)
	ctx := context.Background()

	alice := seedUser(t, repo, "alice@x.com", "Alice", "alice", "pw1")
	bob := seedUser(t, repo, "bob@x.com", "Bob", "bob", "pw2")

	require.NoError(t, svc.Follow(ctx, alice.ID, bob.ID))

	got, err := repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, []primitive.ObjectID{bob.ID}, got.Following)

	got, err = repo.FindByID(ctx, bob.ID)
	require.NoError(t, err)
	require.Equal(t, []primitive.ObjectID{alice.ID}, got.Followers)

	require.ErrorIs(t, svc.Follow(ctx, alice.ID, bob.ID), ErrAlreadyFollowing)

	require.NoError(t, svc.Unfollow(ctx, alice.ID, bob.ID))

	got, err = repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	require.Empty(t, got.Following)

	got, err = repo.FindByID(ctx, bob.ID)
	require.NoError(t, err)
	require.Empty(t, got.Followers)

	require.ErrorIs(t, svc.Unfollow(ctx, alice.ID, bob.ID), ErrNotFollowing)
}

func TestFollowSelf(t *testing.T) {
	repo := repository.NewMemoryUserRepo()
	svc := NewUserService(repo, nil, zap.NewNop(), 4)

	alice := seedUser(t, repo, "alice@x.com", "Alice", "alice", "pw1")
	require.ErrorIs(t, svc.Follow(context.Background(), alice.ID, alice.ID), ErrSelfFollow)
}

func TestSearchEmptyQuery(t *testing.T) {
	repo := repository.NewMemoryUserRepo()
	svc := NewUserService(repo, nil, zap.NewNop(), 4)

	seedUser(t, repo, "alice@x.com", "Alice", "alice", "pw1")
	seedUser(t, repo, "bob@x.com", "Bob", "bob", "pw2")

	users, err := svc.Search(context.Background(), "")
	require.NoError(t, err)
	require.Empty(t, users)
}

func TestSearchPrefixCaseInsensitive(t *testing.T) {
	repo := repository.NewMemoryUserRepo()
	svc := NewUserService(repo, nil, zap.NewNop(), 4)
	ctx := context.Background()

	seedUser(t, repo, "alice@x.com", "Alice Smith", "alice", "pw1")
	seedUser(t, repo, "albert@x.com", "Albert", "albert", "pw2")
	seedUser(t, repo, "bob@x.com", "Bob", "bob", "pw3")

	users, err := svc.Search(ctx, "AL")
	require.NoError(t, err)
	require.Len(t, users, 2)

	users, err = svc.Search(ctx, "bo")
	require.NoError(t, err)
	require.Len(t, users, 1)
	require.Equal(t, "bob", users[0].Username)
}

func TestChangePassword(t *testing.T) {
	repo := repository.NewMemoryUserRepo()
	svc := NewUserService(repo, nil, zap.NewNop(), 4)
	ctx := context.Background()

	alice := seedUser(t, repo, "alice@x.com", "Alice", "alice", "pw1")

	require.ErrorIs(t, svc.ChangePassword(ctx, alice.ID, "", "pw2"), ErrMissingPasswords)
	require.ErrorIs(t, svc.ChangePassword(ctx, alice.ID, "wrong", "pw2"), ErrWrongOldPassword)
	require.ErrorIs(t, svc.ChangePassword(ctx, primitive.NewObjectID(), "pw1", "pw2"), ErrUserNotFound)

	require.NoError(t, svc.ChangePassword(ctx, alice.ID, "pw1", "pw2"))

	got, err := repo.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	require.True(t, utils.CheckPassword("pw2", got.PasswordHash))
	require.False(t, utils.CheckPassword("pw1", got.PasswordHash))
}

func strp(s string) *string { return &s }

func TestUpdateProfileConflicts(t *testing.T) {
	repo := repository.NewMemoryUserRepo()
	svc := NewUserService(repo, nil, zap.NewNop(), 4)
	ctx := context.Background()

	seedUser(t, repo, "alice@x.com", "Alice", "alice", "pw1")
	bob := seedUser(t, repo, "bob@x.com", "Bob", "bob", "pw2")

	_, err := svc.UpdateProfile(ctx, bob.ID, repository.ProfileUpdate{Username: strp("alice"), Name: strp("Bob"), Email: strp("bob@y.com")})
	require.ErrorIs(t, err, ErrUsernameTaken)

	_, err = svc.UpdateProfile(ctx, primitive.NewObjectID(), repository.ProfileUpdate{Username: strp("ghost"), Name: strp("Ghost")})
	require.ErrorIs(t, err, ErrUserNotFound)

	updated, err := svc.UpdateProfile(ctx, bob.ID, repository.ProfileUpdate{Username: strp("bobby"), Name: strp("Bobby"), Email: strp("bobby@x.com")})
	require.NoError(t, err)
	require.Equal(t, "bobby", updated.Username)
	require.Equal(t, "Bobby", updated.Name)
	require.Equal(t, "bobby@x.com", updated.Email)
}

func TestUpdateProfileEmailConflict(t *testing.T) {
	repo := repository.NewMemoryUserRepo()
	svc := NewUserService(repo, nil, zap.NewNop(), 4)
	ctx := context.Background()

	alice := seedUser(t, repo, "alice@x.com", "Alice", "alice", "pw1")
	bob := seedUser(t, repo, "bob@x.com", "Bob", "bob", "pw2")

	_, err := svc.UpdateProfile(ctx, alice.ID, repository.ProfileUpdate{Email: strp("alice@mail.com")})
	require.NoError(t, err)

	_, err = svc.UpdateProfile(ctx, bob.ID, repository.ProfileUpdate{Email: strp("alice@mail.com")})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestUpdateProfilePartialPatch(t *testing.T) {
	repo := repository.NewMemoryUserRepo()
	svc := NewUserService(repo, nil, zap.NewNop(), 4)
	ctx := context.Background()

	alice := seedUser(t, repo, "alice@x.com", "Alice", "alice", "pw1")
	_, err := svc.UpdateProfile(ctx, alice.ID, repository.ProfileUpdate{Email: strp("alice@mail.com")})
	require.NoError(t, err)

	// A name-only patch must leave username and email untouched.
	updated, err := svc.UpdateProfile(ctx, alice.ID, repository.ProfileUpdate{Name: strp("Alice Cooper")})
	require.NoError(t, err)
	require.Equal(t, "Alice Cooper", updated.Name)
	require.Equal(t, "alice", updated.Username)
	require.Equal(t, "alice@mail.com", updated.Email)

	got, err := repo.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, alice.ID, got.ID)
}

func TestGetSummary(t *testing.T) {
	repo := repository.NewMemoryUserRepo()
	svc := NewUserService(repo, nil, zap.NewNop(), 4)
	ctx := context.Background()

	alice := seedUser(t, repo, "alice@x.com", "Alice", "alice", "pw1")

	summary, err := svc.GetSummary(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, alice.ID, summary.ID)
	require.Equal(t, "alice", summary.Username)

	_, err = svc.GetSummary(ctx, primitive.NewObjectID())
	require.ErrorIs(t, err, ErrUserNotFound)
}
