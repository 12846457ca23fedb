package domain

// UserRole is the platform-wide role gating which operations a caller may invoke.
type UserRole string

const (
	RoleAdmin        UserRole = "admin"
	RoleManager      UserRole = "manager"
	RoleCollaborator UserRole = "collaborator"
)

// Caller identifies the authenticated request principal as supplied by the
// auth middleware: an opaque user id, the role gating operations, and the
// email used as fallback when resolving the caller's team-member record.
type Caller struct {
	UserID string
	Email  string
	Role   UserRole
}

// IsAdmin reports whether the caller bypasses visibility scoping.
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}

// User is an authenticated platform account. Team members link back to users via
// TeamMember.UserID; a user without a linked member record sees empty scoped results.
type User struct {
	UserID         string   `json:"userID" db:"user_id"`
	Email          string   `json:"email" db:"email"`
	Name           string   `json:"name" db:"name"`
	HashedPassword string   `json:"-" db:"hashed_password"`
	Role           UserRole `json:"role" db:"role"`
	IsActive       bool     `json:"isActive" db:"is_active"`
	Timestamps
}
