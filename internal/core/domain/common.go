package domain

import "time"

// Timestamps holds the standard creation/update audit pair carried by most entities.
type Timestamps struct {
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// Scope restricts queries to what a non-administrator caller may see: rows tied to
// their own team-member record or to clients that member is actively allocated to.
// A nil *Scope means unrestricted (administrator) access. A non-nil Scope with an
// empty MemberID belongs to a caller with no linked team member and matches nothing.
type Scope struct {
	MemberID  string
	ClientIDs []string
}

// Empty reports whether the scope can never match any row.
func (s *Scope) Empty() bool {
	return s != nil && s.MemberID == "" && len(s.ClientIDs) == 0
}
