package services

import "errors"

var (
	ErrUsernameTaken      = errors.New("username already in use")
	ErrCredentialsTaken   = errors.New("email / phone already in use")
	ErrEmailTaken         = errors.New("email already exists, please choose a different email")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUserNotFound       = errors.New("no user found")
	ErrTweetNotFound      = errors.New("tweet not found")
	ErrEmptyTweet         = errors.New("tweet cannot be empty")
	ErrMissingPasswords   = errors.New("old password and new password are required")
	ErrWrongOldPassword   = errors.New("old password is incorrect")
	ErrInvalidResetToken  = errors.New("invalid token")
	ErrResetTokenExpired  = errors.New("reset token has expired")
	ErrAlreadyFollowing   = errors.New("you have already followed this user")
	ErrNotFollowing       = errors.New("you are not following this user")
	ErrSelfFollow         = errors.New("you cannot follow yourself")
)
