package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHashPassword(t *testing.T) {
	tests := []struct {
		name     string
		password string
	}{
		{
			name:     "valid password",
			password: "testpassword123",
		},
		{
			name:     "empty password",
			password: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := HashPassword(tt.password)
			assert.NoError(t, err)
			assert.NotEmpty(t, hash)
			assert.NotEqual(t, tt.password, hash)

			assert.True(t, CheckPasswordHash(tt.password, hash))
			assert.False(t, CheckPasswordHash(tt.password+"x", hash))
		})
	}
}

func TestHashPassword_SaltedPerCall(t *testing.T) {
	first, err := HashPassword("Abc12345!")
	assert.NoError(t, err)
	second, err := HashPassword("Abc12345!")
	assert.NoError(t, err)

	// Embedded salt makes every hash unique
	assert.NotEqual(t, first, second)
	assert.True(t, CheckPasswordHash("Abc12345!", first))
	assert.True(t, CheckPasswordHash("Abc12345!", second))
}

func TestCheckPasswordHash_MalformedHash(t *testing.T) {
	// A corrupt stored hash must read as a mismatch, never a crash
	assert.False(t, CheckPasswordHash("whatever", "not-a-bcrypt-hash"))
	assert.False(t, CheckPasswordHash("whatever", ""))
}
