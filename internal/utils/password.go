package utils

import "golang.org/x/crypto/bcrypt"

// placeholderHash is compared against when no user matches a login, so the
// miss path and the wrong-password path cost the same.
const placeholderHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// HashPassword hashes a plaintext password with bcrypt.
func HashPassword(plaintext string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// CheckPassword reports whether plaintext matches the stored hash.
func CheckPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}

// BurnPasswordCheck runs a bcrypt comparison against a fixed hash and
// discards the result.
func BurnPasswordCheck(plaintext string) {
	_ = bcrypt.CompareHashAndPassword([]byte(placeholderHash), []byte(plaintext))
}
