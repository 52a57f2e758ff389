// Package access holds the role/status enumerations and the pure
// authorization predicates. Predicates have no store access; callers load
// the requesting account first and pass its identity and role.
package access

import "github.com/google/uuid"

type Role string

const (
	RoleStandard  Role = "standard"
	RoleClinician Role = "clinician"
	RoleAdmin     Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleStandard, RoleClinician, RoleAdmin:
		return true
	}
	return false
}

type Status string

const (
	StatusActive      Status = "active"
	StatusSuspended   Status = "suspended"
	StatusDeactivated Status = "deactivated"
	StatusBanned      Status = "banned"
)

func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusSuspended, StatusDeactivated, StatusBanned:
		return true
	}
	return false
}

// Requester identifies the authenticated caller for predicate checks.
type Requester struct {
	ID   uuid.UUID
	Role Role
}

func IsSelf(requester Requester, targetID uuid.UUID) bool {
	return requester.ID == targetID
}

func IsAdmin(requester Requester) bool {
	return requester.Role == RoleAdmin
}

// CanRead allows self or admin. Profile reads by other viewers are not
// denied here; they pass through the privacy filter instead.
func CanRead(requester Requester, targetID uuid.UUID) bool {
	return IsSelf(requester, targetID) || IsAdmin(requester)
}

func CanWrite(requester Requester, targetID uuid.UUID) bool {
	return IsSelf(requester, targetID) || IsAdmin(requester)
}

// CanChangeRole is admin-only regardless of ownership.
func CanChangeRole(requester Requester) bool {
	return IsAdmin(requester)
}

// CanChangeStatus is admin-only.
func CanChangeStatus(requester Requester) bool {
	return IsAdmin(requester)
}

// CanDelete allows self or admin, for both soft and hard deletes.
func CanDelete(requester Requester, targetID uuid.UUID) bool {
	return IsSelf(requester, targetID) || IsAdmin(requester)
}
