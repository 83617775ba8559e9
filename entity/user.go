package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role is the closed set of roles a user can hold. Stored as its string
// value; anything outside the set is rejected at validation time.
type Role string

const (
	SuperAdminRole  Role = "superadmin"
	SchoolAdminRole Role = "schooladmin"
	TeacherRole     Role = "teacher"
	StudentRole     Role = "student"
)

func (r Role) Valid() bool {
	switch r {
	case SuperAdminRole, SchoolAdminRole, TeacherRole, StudentRole:
		return true
	}
	return false
}

// Privileged reports whether the role may perform administrative mutations
// at all. Scoping to a particular school is the access policy's job.
func (r Role) Privileged() bool {
	return r == SuperAdminRole || r == SchoolAdminRole
}

type User struct {
	ID           string    `json:"id" bson:"_id"`
	Username     string    `json:"username" bson:"username" validate:"required,min=3"`
	Email        string    `json:"email" bson:"email" validate:"required,email"`
	PasswordHash string    `json:"-" bson:"password"`
	Role         Role      `json:"role" bson:"role" validate:"required"`
	SchoolID     string    `json:"school_id,omitempty" bson:"school_id,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`

	// School is filled on populated reads, never stored.
	School *School `json:"school,omitempty" bson:"-"`
}

// UserPatch carries a partial update; nil fields are left untouched.
type UserPatch struct {
	Username *string `json:"username,omitempty" validate:"omitempty,min=3"`
	Email    *string `json:"email,omitempty" validate:"omitempty,email"`
	Role     *Role   `json:"role,omitempty"`
	SchoolID *string `json:"school_id,omitempty"`
}

func (p UserPatch) Empty() bool {
	return p.Username == nil && p.Email == nil && p.Role == nil && p.SchoolID == nil
}

func NewUser(username, email, passwordHash string, role Role, schoolID string) *User {
	return &User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		SchoolID:     schoolID,
		CreatedAt:    time.Now(),
	}
}

// Registration is the self-service signup payload. The plaintext password
// exists only here; it is hashed before a User record is built.
type Registration struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Role     Role   `json:"role" validate:"required"`
	SchoolID string `json:"school_id,omitempty"`
}

// Principal is the authenticated identity attached to a request.
type Principal struct {
	UserID   string `json:"user_id"`
	Role     Role   `json:"role"`
	SchoolID string `json:"school_id,omitempty"`
}

func (p *Principal) IsSuperAdmin() bool {
	return p != nil && p.Role == SuperAdminRole
}
