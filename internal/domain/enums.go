package domain

// Conformity is the assessment outcome recorded on an audit.
// An audit without a conformity value counts as pending.
type Conformity string

const (
	ConformityCompliant    Conformity = "compliant"
	ConformityNonCompliant Conformity = "non_compliant"

	// ConformityPending is never stored. It names the implicit bucket for
	// regulations with no audit or an audit without a status.
	ConformityPending Conformity = "pending"
)

func (c Conformity) String() string { return string(c) }

// IsValid reports whether c may be stored on an audit record.
func (c Conformity) IsValid() bool {
	switch c {
	case ConformityCompliant, ConformityNonCompliant:
		return true
	}
	return false
}

// IsFilter reports whether c may be used to filter audit lists.
func (c Conformity) IsFilter() bool {
	return c.IsValid() || c == ConformityPending
}

// Priority ranks the urgency of an audit's action plan.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) String() string { return string(p) }

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// Feasibility estimates how hard the action plan is to carry out.
type Feasibility string

const (
	FeasibilityEasy      Feasibility = "easy"
	FeasibilityModerate  Feasibility = "moderate"
	FeasibilityDifficult Feasibility = "difficult"
)

func (f Feasibility) String() string { return string(f) }

func (f Feasibility) IsValid() bool {
	switch f {
	case FeasibilityEasy, FeasibilityModerate, FeasibilityDifficult:
		return true
	}
	return false
}

// UserRole represents the authorization level of a user.
type UserRole string

const (
	UserRoleUser  UserRole = "user"
	UserRoleAdmin UserRole = "admin"
)

func (r UserRole) String() string { return string(r) }

func (r UserRole) IsValid() bool {
	switch r {
	case UserRoleUser, UserRoleAdmin:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}
