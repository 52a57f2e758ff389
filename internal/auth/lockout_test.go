package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLockoutPolicy_Defaults(t *testing.T) {
	policy := NewLockoutPolicy(0, 0)
	assert.Equal(t, DefaultLockoutThreshold, policy.Threshold)
	assert.Equal(t, DefaultLockoutDuration, policy.Duration)
}

func TestLockoutPolicy_IsLocked(t *testing.T) {
	policy := NewLockoutPolicy(5, 15*time.Minute)
	now := time.Now()
	future := now.Add(10 * time.Minute)
	past := now.Add(-10 * time.Minute)

	tests := []struct {
		name string
		user *User
		want bool
	}{
		{
			name: "never locked",
			user: &User{},
			want: false,
		},
		{
			name: "inside lockout window",
			user: &User{LockoutUntil: &future},
			want: true,
		},
		{
			name: "lockout expired, evaluated lazily",
			user: &User{LockoutUntil: &past},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, policy.IsLocked(tt.user, now))
		})
	}
}

func TestLockoutPolicy_ShouldLock(t *testing.T) {
	policy := NewLockoutPolicy(5, 15*time.Minute)

	assert.False(t, policy.ShouldLock(4))
	assert.True(t, policy.ShouldLock(5))
	assert.True(t, policy.ShouldLock(6))
}

func TestLockoutPolicy_LockUntil(t *testing.T) {
	policy := NewLockoutPolicy(5, 15*time.Minute)
	now := time.Now()

	until := policy.LockUntil(now)
	assert.Equal(t, now.Add(15*time.Minute), until)
	assert.True(t, until.After(now))
}
