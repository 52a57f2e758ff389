package access

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRoleAndStatusValidity(t *testing.T) {
	assert.True(t, RoleStandard.Valid())
	assert.True(t, RoleClinician.Valid())
	assert.True(t, RoleAdmin.Valid())
	assert.False(t, Role("superuser").Valid())

	assert.True(t, StatusActive.Valid())
	assert.True(t, StatusSuspended.Valid())
	assert.True(t, StatusDeactivated.Valid())
	assert.True(t, StatusBanned.Valid())
	assert.False(t, Status("deleted").Valid())
}

func TestPredicates(t *testing.T) {
	ownerID := uuid.New()
	otherID := uuid.New()

	self := Requester{ID: ownerID, Role: RoleStandard}
	admin := Requester{ID: otherID, Role: RoleAdmin}
	clinician := Requester{ID: otherID, Role: RoleClinician}
	stranger := Requester{ID: otherID, Role: RoleStandard}

	tests := []struct {
		name      string
		requester Requester
		canRead   bool
		canWrite  bool
		canRole   bool
		canStatus bool
	}{
		{
			name:      "self",
			requester: self,
			canRead:   true,
			canWrite:  true,
		},
		{
			name:      "admin",
			requester: admin,
			canRead:   true,
			canWrite:  true,
			canRole:   true,
			canStatus: true,
		},
		{
			// Clinician carries no elevated access over standard users
			name:      "clinician",
			requester: clinician,
		},
		{
			name:      "unrelated standard user",
			requester: stranger,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.canRead, CanRead(tt.requester, ownerID))
			assert.Equal(t, tt.canWrite, CanWrite(tt.requester, ownerID))
			assert.Equal(t, tt.canWrite, CanDelete(tt.requester, ownerID))
			assert.Equal(t, tt.canRole, CanChangeRole(tt.requester))
			assert.Equal(t, tt.canStatus, CanChangeStatus(tt.requester))
		})
	}
}
