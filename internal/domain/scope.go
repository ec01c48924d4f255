package domain

import "github.com/google/uuid"

// Requester is the identity behind a request, as resolved by the auth layer.
type Requester struct {
	ID   uuid.UUID
	Role UserRole
}

// IsAdmin reports whether the requester has the admin role.
func (r Requester) IsAdmin() bool {
	return r.Role.IsAdmin()
}

// ScopeKind tags the variant held by an AccessScope.
type ScopeKind int

const (
	// ScopeOwner is the zero value so that an uninitialised scope never
	// grants unrestricted access.
	ScopeOwner ScopeKind = iota
	ScopeAdmin
)

// AccessScope is the visibility and write predicate over audit records.
// It is either Admin (unrestricted) or Owner(userID): a record is in an
// owner scope when it has no editor yet or its editor is that user.
type AccessScope struct {
	kind   ScopeKind
	userID uuid.UUID
}

// AdminScope returns the unrestricted scope.
func AdminScope() AccessScope {
	return AccessScope{kind: ScopeAdmin}
}

// OwnerScope returns the scope limited to unclaimed records and records
// last edited by userID.
func OwnerScope(userID uuid.UUID) AccessScope {
	return AccessScope{kind: ScopeOwner, userID: userID}
}

// ResolveScope derives the access scope for a requester from its role.
func ResolveScope(r Requester) AccessScope {
	if r.IsAdmin() {
		return AdminScope()
	}
	return OwnerScope(r.ID)
}

// Kind returns the variant tag.
func (s AccessScope) Kind() ScopeKind { return s.kind }

// IsAdmin reports whether s is the unrestricted scope.
func (s AccessScope) IsAdmin() bool { return s.kind == ScopeAdmin }

// OwnerID returns the owner of an Owner scope. ok is false for Admin.
func (s AccessScope) OwnerID() (id uuid.UUID, ok bool) {
	if s.kind != ScopeOwner {
		return uuid.Nil, false
	}
	return s.userID, true
}

// Permits reports whether a record with the given editor is visible and
// writable under s. A nil editor means the record is unclaimed.
func (s AccessScope) Permits(editingUserID *uuid.UUID) bool {
	if s.kind == ScopeAdmin || editingUserID == nil {
		return true
	}
	return *editingUserID == s.userID
}

func (s AccessScope) String() string {
	if s.kind == ScopeAdmin {
		return "admin"
	}
	return "owner:" + s.userID.String()
}
