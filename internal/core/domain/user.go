package domain

import "time"

// Role is the coarse-grained identity classification of a user.
// The system uses a single flat enumeration; capabilities are derived
// from it, never stored.
type Role string

const (
	RoleAdmin   Role = "ADMIN"
	RoleEncoder Role = "ENCODER"
	RoleViewer  Role = "VIEWER"
)

// ValidRole reports whether r is one of the three known roles.
func ValidRole(r Role) bool {
	return r == RoleAdmin || r == RoleEncoder || r == RoleViewer
}

// User models an account in the system. Inactive users are treated as
// unauthenticated for every authorization decision.
type User struct {
	ID           string     `bson:"_id" json:"id"`
	Email        string     `bson:"email" json:"email"`
	Username     string     `bson:"username" json:"username"`
	FirstName    string     `bson:"first_name" json:"first_name"`
	LastName     string     `bson:"last_name" json:"last_name"`
	PasswordHash string     `bson:"password_hash" json:"-"`
	Role         Role       `bson:"role" json:"role"`
	Department   string     `bson:"department,omitempty" json:"department,omitempty"`
	IsActive     bool       `bson:"is_active" json:"is_active"`
	LastLogin    *time.Time `bson:"last_login,omitempty" json:"last_login,omitempty"`
	CreatedAt    time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time  `bson:"updated_at" json:"updated_at"`
}
