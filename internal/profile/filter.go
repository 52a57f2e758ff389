package profile

import (
	"time"

	"github.com/google/uuid"

	"github.com/Shobhit-Singhh/harmony/internal/access"
	"github.com/Shobhit-Singhh/harmony/internal/auth"
)

// View is the profile shape returned to callers, after privacy filtering.
type View struct {
	ID uuid.UUID `json:"id"`

	FullName    *string    `json:"full_name,omitempty"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	Gender      *string    `json:"gender,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Timezone    *string    `json:"timezone,omitempty"`

	PillarWeights map[string]float64 `json:"pillar_weights,omitempty"`
	Medications   []string           `json:"medications,omitempty"`
	Conditions    []string           `json:"conditions,omitempty"`
	CrisisContact *string            `json:"crisis_contact,omitempty"`

	PreferredLanguage *string         `json:"preferred_language,omitempty"`
	PrivacySettings   map[string]bool `json:"privacy_settings,omitempty"`

	LastUpdatedAt time.Time `json:"last_updated_at"`
}

func newView(p *auth.UserProfile) *View {
	return &View{
		ID:                p.ID,
		FullName:          p.FullName,
		DateOfBirth:       p.DateOfBirth,
		Gender:            p.Gender,
		Location:          p.Location,
		Timezone:          p.Timezone,
		PillarWeights:     p.PillarWeights,
		Medications:       p.Medications,
		Conditions:        p.Conditions,
		CrisisContact:     p.CrisisContact,
		PreferredLanguage: p.PreferredLanguage,
		PrivacySettings:   p.PrivacySettings,
		LastUpdatedAt:     p.LastUpdatedAt,
	}
}

// Visible reports whether the profile is visible to non-owner, non-admin
// viewers. A profile without privacy settings, or without the show_profile
// flag, is visible. Flipping the two defaults below changes the policy to
// default-deny.
func Visible(p *auth.UserProfile) bool {
	if p.PrivacySettings == nil {
		return true
	}
	show, ok := p.PrivacySettings["show_profile"]
	if !ok {
		return true
	}
	return show
}

// Filter redacts a profile according to the viewer's relationship to the
// subject. Owners and admins see everything; other viewers of a hidden
// profile get only the identity key and a privacy marker.
func Filter(p *auth.UserProfile, viewer access.Requester) *View {
	if access.IsSelf(viewer, p.ID) || access.IsAdmin(viewer) {
		return newView(p)
	}

	if !Visible(p) {
		return &View{
			ID:              p.ID,
			PrivacySettings: map[string]bool{"show_profile": false},
			LastUpdatedAt:   p.LastUpdatedAt,
		}
	}

	return newView(p)
}
