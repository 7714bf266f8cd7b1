package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/PiyushPb/vichar-backend/internal/models"
)

type mongoTweetRepo struct {
	col   *mongo.Collection
	users *mongo.Collection
	txn   bool
}

// NewMongoTweetRepo builds a Mongo-backed tweet repository. It also needs
// the users collection so a created tweet can be appended to its owner's
// tweets list in the same unit of work.
func NewMongoTweetRepo(db *mongo.Database, collection, userCollection string, transactions bool) (TweetRepository, error) {
	col := db.Collection(collection)
	_, err := col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create tweet indexes: %w", err)
	}
	return &mongoTweetRepo{col: col, users: db.Collection(userCollection), txn: transactions}, nil
}

func (r *mongoTweetRepo) Create(ctx context.Context, t *models.Tweet) error {
	t.CreatedAt = time.Now().UTC()
	return runTxn(ctx, r.col.Database().Client(), r.txn, func(ctx context.Context) error {
		res, err := r.col.InsertOne(ctx, t)
		if err != nil {
			return err
		}
		if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
			t.ID = oid
		}

		upd, err := r.users.UpdateByID(ctx, t.UserID, bson.M{"$push": bson.M{"tweets": t.ID}})
		if err != nil {
			return err
		}
		if upd.MatchedCount == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}

func (r *mongoTweetRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Tweet, error) {
	var t models.Tweet
	err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrTweetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *mongoTweetRepo) list(ctx context.Context, filter bson.M) ([]models.Tweet, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	tweets := []models.Tweet{}
	if err := cur.All(ctx, &tweets); err != nil {
		return nil, err
	}
	return tweets, nil
}

func (r *mongoTweetRepo) List(ctx context.Context) ([]models.Tweet, error) {
	return r.list(ctx, bson.M{})
}

func (r *mongoTweetRepo) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Tweet, error) {
	return r.list(ctx, bson.M{"userId": userID})
}

// ToggleLike flips userID's membership in the tweet's like set with guarded
// conditional updates, so count and membership cannot diverge under
// concurrent togglers.
func (r *mongoTweetRepo) ToggleLike(ctx context.Context, tweetID, userID primitive.ObjectID) (*models.Tweet, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	// Like: only matches while the user is absent from the set.
	var t models.Tweet
	err := r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": tweetID, "likes.users": bson.M{"$ne": userID}},
		bson.M{"$addToSet": bson.M{"likes.users": userID}, "$inc": bson.M{"likes.count": 1}},
		opts,
	).Decode(&t)
	if err == nil {
		return &t, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, err
	}

	// Unlike: only matches while the user is present.
	err = r.col.FindOneAndUpdate(ctx,
		bson.M{"_id": tweetID, "likes.users": userID},
		bson.M{"$pull": bson.M{"likes.users": userID}, "$inc": bson.M{"likes.count": -1}},
		opts,
	).Decode(&t)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrTweetNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}
