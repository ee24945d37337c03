package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/blogapi-go/auth"
)

func TestHashPasswordRoundTrip(t *testing.T) {
	hash, err := auth.HashPassword("testpassword123")
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
	assert.NotEqual(t, "testpassword123", hash)

	assert.True(t, auth.VerifyPassword("testpassword123", hash))
	assert.False(t, auth.VerifyPassword("wrongpassword", hash))
}

func TestHashPasswordSaltsEachCall(t *testing.T) {
	first, err := auth.HashPassword("testpassword123")
	require.NoError(t, err)
	second, err := auth.HashPassword("testpassword123")
	require.NoError(t, err)

	// Same plaintext, different digests; both verify independently.
	assert.NotEqual(t, first, second)
	assert.True(t, auth.VerifyPassword("testpassword123", first))
	assert.True(t, auth.VerifyPassword("testpassword123", second))
}

func TestVerifyPasswordMalformedDigest(t *testing.T) {
	tests := []struct {
		name   string
		digest string
	}{
		{"empty digest", ""},
		{"not a bcrypt hash", "invalidhash"},
		{"truncated hash", "$2a$10$abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, auth.VerifyPassword("testpassword123", tt.digest))
		})
	}
}
