package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Shobhit-Singhh/harmony/internal/access"
)

type User struct {
	ID           uuid.UUID     `gorm:"type:uuid;primaryKey"`
	Username     string        `gorm:"size:50"`
	Email        string        `gorm:"size:255;uniqueIndex;not null"`
	PhoneNumber  *string       `gorm:"size:20;uniqueIndex"`
	PasswordHash string        `gorm:"size:255;not null"`
	Role         access.Role   `gorm:"size:20;default:standard"`
	Status       access.Status `gorm:"size:20;default:active"`

	IsVerified          bool `gorm:"default:false"`
	OnboardingCompleted bool `gorm:"default:false"`
	CreatedAt           time.Time
	UpdatedAt           time.Time

	// Login bookkeeping. LockoutUntil and PasswordChangedAt stay nil until
	// the first lockout / password change.
	LastLoginAt         *time.Time
	FailedLoginAttempts int `gorm:"default:0"`
	LockoutUntil        *time.Time
	PasswordChangedAt   *time.Time

	Profile *UserProfile `gorm:"foreignKey:ID;references:ID;constraint:OnDelete:CASCADE"`
}

func (User) TableName() string {
	return "users"
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserProfile shares its primary key with the owning user row and is
// cascade-deleted with it.
type UserProfile struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey"`

	FullName    *string    `gorm:"size:255"`
	DateOfBirth *time.Time `gorm:"type:date"`
	Gender      *string    `gorm:"size:20"`
	Location    *string    `gorm:"size:255"`
	Timezone    *string    `gorm:"size:50"`

	PillarWeights map[string]float64 `gorm:"type:jsonb;serializer:json"`
	Medications   []string           `gorm:"type:jsonb;serializer:json"`
	Conditions    []string           `gorm:"type:jsonb;serializer:json"`
	CrisisContact *string            `gorm:"size:255"`

	PreferredLanguage *string         `gorm:"size:20"`
	PrivacySettings   map[string]bool `gorm:"type:jsonb;serializer:json"`

	LastUpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (UserProfile) TableName() string {
	return "user_profiles"
}
