package entity

import (
	"time"

	"github.com/google/uuid"
)

// Student belongs to exactly one classroom and, through it, to one school.
type Student struct {
	ID          string    `json:"id" bson:"_id"`
	Name        string    `json:"name" bson:"name" validate:"required,min=1"`
	Email       string    `json:"email,omitempty" bson:"email,omitempty" validate:"omitempty,email"`
	Address     string    `json:"address,omitempty" bson:"address,omitempty"`
	Age         int       `json:"age,omitempty" bson:"age,omitempty" validate:"omitempty,gte=3,lte=100"`
	ClassroomID string    `json:"classroom_id" bson:"classroom_id" validate:"required"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`

	// Classroom is filled on populated reads, never stored.
	Classroom *Classroom `json:"classroom,omitempty" bson:"-"`
}

type StudentPatch struct {
	Name        *string `json:"name,omitempty" validate:"omitempty,min=1"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email"`
	Address     *string `json:"address,omitempty"`
	Age         *int    `json:"age,omitempty" validate:"omitempty,gte=3,lte=100"`
	ClassroomID *string `json:"classroom_id,omitempty"`
}

func (p StudentPatch) Empty() bool {
	return p.Name == nil && p.Email == nil && p.Address == nil && p.Age == nil && p.ClassroomID == nil
}

func (s *Student) Stamp() {
	s.ID = uuid.NewString()
	s.CreatedAt = time.Now()
}
