package auth

import "time"

// LockoutPolicy decides when repeated failed logins lock an account and for
// how long. Expiry is lazy: nothing clears lockout_until on a timer, the
// next attempt after it passes is simply treated as unlocked.
type LockoutPolicy struct {
	Threshold int
	Duration  time.Duration
}

const (
	DefaultLockoutThreshold = 5
	DefaultLockoutDuration  = 15 * time.Minute
)

func NewLockoutPolicy(threshold int, duration time.Duration) LockoutPolicy {
	if threshold <= 0 {
		threshold = DefaultLockoutThreshold
	}
	if duration <= 0 {
		duration = DefaultLockoutDuration
	}
	return LockoutPolicy{Threshold: threshold, Duration: duration}
}

// IsLocked reports whether the account is inside an active lockout window.
func (p LockoutPolicy) IsLocked(user *User, now time.Time) bool {
	return user.LockoutUntil != nil && user.LockoutUntil.After(now)
}

// ShouldLock reports whether the given post-increment failure count reaches
// the threshold.
func (p LockoutPolicy) ShouldLock(failedAttempts int) bool {
	return failedAttempts >= p.Threshold
}

func (p LockoutPolicy) LockUntil(now time.Time) time.Time {
	return now.Add(p.Duration)
}
