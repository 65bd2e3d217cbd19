package domain

import "time"

// Role decides what a user may see and do.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleEmployee Role = "employee"
)

// User is an account that can sign in.
type User struct {
	ID           string    `bson:"_id"`
	Email        string    `bson:"email"`
	PasswordHash string    `bson:"password_hash"`
	FirstName    string    `bson:"first_name"`
	LastName     string    `bson:"last_name"`
	Role         Role      `bson:"role"`
	CreatedAt    time.Time `bson:"created_at"`
}

// Caller is the authenticated identity behind a request.
type Caller struct {
	ID   string
	Role Role
}

// IsAdmin reports whether the caller has the admin role.
func (c Caller) IsAdmin() bool {
	return c.Role == RoleAdmin
}
