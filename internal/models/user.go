package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultProfilePic is applied to users who never uploaded a picture.
const DefaultProfilePic = "https://img.freepik.com/premium-vector/user-profile-icon-flat-style-member-avatar-vector-illustration-isolated-background-human-permission-sign-business-concept_157943-15752.jpg"

// OTPEntry is an opaque one-time-passcode record attached to a user.
// The schema carries these, no endpoint exercises them.
type OTPEntry struct {
	OTP int `bson:"otp" json:"otp"`
}

// User is a registered account. Credentials is the login identifier
// (email or phone) and is distinct from Username.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Credentials  string             `bson:"credentials" json:"credentials"`
	Username     string             `bson:"username" json:"username"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email,omitempty" json:"email,omitempty"`
	Phone        string             `bson:"phone,omitempty" json:"phone,omitempty"`
	PasswordHash string             `bson:"password,omitempty" json:"-"`

	Bio        string     `bson:"bio,omitempty" json:"bio,omitempty"`
	ProfilePic string     `bson:"profilePic,omitempty" json:"profilePic,omitempty"`
	Gender     string     `bson:"gender,omitempty" json:"gender,omitempty"`
	Location   string     `bson:"location,omitempty" json:"location,omitempty"`
	DOB        *time.Time `bson:"dob,omitempty" json:"dob,omitempty"`

	IsVerified bool `bson:"isVerified" json:"isVerified"`
	IsReported bool `bson:"isReported" json:"isReported"`
	IsBanned   bool `bson:"isBanned" json:"isBanned"`

	OTPs []OTPEntry `bson:"tokens,omitempty" json:"-"`

	Following []primitive.ObjectID `bson:"following" json:"following"`
	Followers []primitive.ObjectID `bson:"followers" json:"followers"`
	Tweets    []primitive.ObjectID `bson:"tweets" json:"tweets"`

	// A reset token, once present, always carries a companion expiry.
	ResetToken       string     `bson:"resetToken,omitempty" json:"-"`
	ResetTokenExpiry *time.Time `bson:"resetTokenExpiry,omitempty" json:"-"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// UserSummary is the trimmed projection served by the userUID lookup.
type UserSummary struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	Username   string             `bson:"username" json:"username"`
	Name       string             `bson:"name" json:"name"`
	ProfilePic string             `bson:"profilePic,omitempty" json:"profilePic,omitempty"`
}
