package entity

import (
	"time"

	"github.com/google/uuid"
)

// School is the root of the tenancy hierarchy. Its ID is immutable after
// creation; users and classrooms are scoped by it.
type School struct {
	ID              string    `json:"id" bson:"_id"`
	Name            string    `json:"name" bson:"name" validate:"required,min=2"`
	Address         string    `json:"address" bson:"address" validate:"required"`
	Phone           string    `json:"phone" bson:"phone" validate:"required,min=5"`
	Email           string    `json:"email" bson:"email" validate:"required,email"`
	Website         string    `json:"website" bson:"website" validate:"required,url"`
	EstablishedDate time.Time `json:"established_date" bson:"established_date" validate:"required"`
	AdminID         string    `json:"admin_id,omitempty" bson:"admin_id,omitempty"`
	CreatedAt       time.Time `json:"created_at" bson:"created_at"`

	// Admin is filled on populated reads, never stored.
	Admin *User `json:"admin,omitempty" bson:"-"`
}

type SchoolPatch struct {
	Name            *string    `json:"name,omitempty" validate:"omitempty,min=2"`
	Address         *string    `json:"address,omitempty"`
	Phone           *string    `json:"phone,omitempty" validate:"omitempty,min=5"`
	Email           *string    `json:"email,omitempty" validate:"omitempty,email"`
	Website         *string    `json:"website,omitempty" validate:"omitempty,url"`
	EstablishedDate *time.Time `json:"established_date,omitempty"`
	AdminID         *string    `json:"admin_id,omitempty"`
}

func (p SchoolPatch) Empty() bool {
	return p.Name == nil && p.Address == nil && p.Phone == nil && p.Email == nil &&
		p.Website == nil && p.EstablishedDate == nil && p.AdminID == nil
}

// Stamp assigns a fresh identity and creation time. The identity is
// immutable afterwards; patches carry no ID field.
func (s *School) Stamp() {
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now()
}
