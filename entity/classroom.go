package entity

import (
	"time"

	"github.com/google/uuid"
)

// Classroom belongs to exactly one school. Capacity bounds the number of
// students that may reference it at any instant.
type Classroom struct {
	ID        string    `json:"id" bson:"_id"`
	Name      string    `json:"name" bson:"name" validate:"required,min=1"`
	SchoolID  string    `json:"school_id" bson:"school_id" validate:"required"`
	Capacity  int       `json:"capacity" bson:"capacity" validate:"required,gt=0"`
	Resources []string  `json:"resources,omitempty" bson:"resources,omitempty"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`

	// School is filled on populated reads, never stored.
	School *School `json:"school,omitempty" bson:"-"`
}

type ClassroomPatch struct {
	Name      *string   `json:"name,omitempty" validate:"omitempty,min=1"`
	SchoolID  *string   `json:"school_id,omitempty"`
	Capacity  *int      `json:"capacity,omitempty" validate:"omitempty,gt=0"`
	Resources *[]string `json:"resources,omitempty"`
}

func (p ClassroomPatch) Empty() bool {
	return p.Name == nil && p.SchoolID == nil && p.Capacity == nil && p.Resources == nil
}

func (c *Classroom) Stamp() {
	c.ID = uuid.NewString()
	c.CreatedAt = time.Now()
}
