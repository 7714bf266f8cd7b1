package utils

import "regexp"

// CredentialKind classifies what a caller typed into the credentials field.
type CredentialKind int

const (
	CredentialUsername CredentialKind = iota
	CredentialEmail
	CredentialPhone
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,6}$`)
	phonePattern = regexp.MustCompile(`^\d{9}$`)
)

// ClassifyCredential decides whether a login identifier is an email address,
// a 9-digit phone number, or a plain username.
func ClassifyCredential(credential string) CredentialKind {
	switch {
	case emailPattern.MatchString(credential):
		return CredentialEmail
	case phonePattern.MatchString(credential):
		return CredentialPhone
	default:
		return CredentialUsername
	}
}
