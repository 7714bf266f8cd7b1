package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassifyCredential(t *testing.T) {
	cases := []struct {
		in   string
		want CredentialKind
	}{
		{"alice@x.com", CredentialEmail},
		{"a.b-c_d@sub.example.co", CredentialEmail},
		{"123456789", CredentialPhone},
		{"12345678", CredentialUsername},
		{"1234567890", CredentialUsername},
		{"alice", CredentialUsername},
		{"alice@", CredentialUsername},
		{"alice@x.toolongtld", CredentialUsername},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ClassifyCredential(tc.in), "input %q", tc.in)
	}
}

func TestGenerateResetToken(t *testing.T) {
	a, err := GenerateResetToken()
	require.NoError(t, err)
	require.Len(t, a, 40)

	b, err := GenerateResetToken()
	require.NoError(t, err)
	require.NotEqual(t, a, b)
}
