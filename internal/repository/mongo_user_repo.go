package repository

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/PiyushPb/vichar-backend/internal/models"
)

type mongoUserRepo struct {
	col *mongo.Collection
	txn bool
}

// NewMongoUserRepo builds a Mongo-backed user repository and ensures the
// uniqueness indexes the data model requires.
func NewMongoUserRepo(db *mongo.Database, collection string, transactions bool) (UserRepository, error) {
	col := db.Collection(collection)
	_, err := col.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "credentials", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
		{Keys: bson.D{{Key: "phone", Value: 1}}, Options: options.Index().SetUnique(true).SetSparse(true)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create user indexes: %w", err)
	}
	return &mongoUserRepo{col: col, txn: transactions}, nil
}

func (r *mongoUserRepo) Create(ctx context.Context, u *models.User) error {
	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now
	res, err := r.col.InsertOne(ctx, u)
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		u.ID = oid
	}
	return nil
}

func (r *mongoUserRepo) findOne(ctx context.Context, filter bson.M) (*models.User, error) {
	var u models.User
	err := r.col.FindOne(ctx, filter).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *mongoUserRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *mongoUserRepo) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *mongoUserRepo) FindByCredentials(ctx context.Context, credentials string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"credentials": credentials})
}

func (r *mongoUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *mongoUserRepo) UpdateProfile(ctx context.Context, id primitive.ObjectID, upd ProfileUpdate) (*models.User, error) {
	set := bson.M{"updated_at": time.Now().UTC()}
	unset := bson.M{}
	if upd.Username != nil {
		set["username"] = *upd.Username
	}
	if upd.Name != nil {
		set["name"] = *upd.Name
	}
	if upd.Email != nil {
		if *upd.Email == "" {
			// Clearing the email removes the field entirely so the sparse
			// unique index skips the document.
			unset["email"] = ""
		} else {
			set["email"] = *upd.Email
		}
	}
	update := bson.M{"$set": set}
	if len(unset) > 0 {
		update["$unset"] = unset
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var u models.User
	err := r.col.FindOneAndUpdate(ctx, bson.M{"_id": id}, update, opts).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *mongoUserRepo) SetPassword(ctx context.Context, id primitive.ObjectID, hash string) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"password":   hash,
		"updated_at": time.Now().UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *mongoUserRepo) SetResetToken(ctx context.Context, id primitive.ObjectID, token string, expiry time.Time) error {
	res, err := r.col.UpdateByID(ctx, id, bson.M{"$set": bson.M{
		"resetToken":       token,
		"resetTokenExpiry": expiry.UTC(),
	}})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *mongoUserRepo) ClearResetToken(ctx context.Context, id primitive.ObjectID) error {
	_, err := r.col.UpdateByID(ctx, id, bson.M{"$unset": bson.M{
		"resetToken":       "",
		"resetTokenExpiry": "",
	}})
	return err
}

func (r *mongoUserRepo) Search(ctx context.Context, prefix string, limit int64) ([]models.User, error) {
	re := primitive.Regex{Pattern: "^" + regexp.QuoteMeta(prefix), Options: "i"}
	filter := bson.M{"$or": []bson.M{
		{"username": re},
		{"name": re},
	}}

	cur, err := r.col.Find(ctx, filter, options.Find().SetLimit(limit))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *mongoUserRepo) IsFollowing(ctx context.Context, followerID, targetID primitive.ObjectID) (bool, error) {
	err := r.col.FindOne(ctx, bson.M{"_id": followerID, "following": targetID}).Err()
	if errors.Is(err, mongo.ErrNoDocuments) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// AddFollow adds targetID to the follower's following set and followerID to
// the target's followers set. $addToSet keeps both sets duplicate-free even
// when the precondition check races with another caller.
func (r *mongoUserRepo) AddFollow(ctx context.Context, followerID, targetID primitive.ObjectID) error {
	return runTxn(ctx, r.col.Database().Client(), r.txn, func(ctx context.Context) error {
		res, err := r.col.UpdateByID(ctx, targetID, bson.M{"$addToSet": bson.M{"followers": followerID}})
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return ErrUserNotFound
		}
		res, err = r.col.UpdateByID(ctx, followerID, bson.M{"$addToSet": bson.M{"following": targetID}})
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}

func (r *mongoUserRepo) RemoveFollow(ctx context.Context, followerID, targetID primitive.ObjectID) error {
	return runTxn(ctx, r.col.Database().Client(), r.txn, func(ctx context.Context) error {
		res, err := r.col.UpdateByID(ctx, targetID, bson.M{"$pull": bson.M{"followers": followerID}})
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return ErrUserNotFound
		}
		res, err = r.col.UpdateByID(ctx, followerID, bson.M{"$pull": bson.M{"following": targetID}})
		if err != nil {
			return err
		}
		if res.MatchedCount == 0 {
			return ErrUserNotFound
		}
		return nil
	})
}
