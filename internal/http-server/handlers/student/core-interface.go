package student

import (
	"context"

	"SchoolDesk/entity"
)

type Core interface {
	Create(ctx context.Context, principal *entity.Principal, student *entity.Student) (*entity.Student, error)
	List(ctx context.Context, principal *entity.Principal) ([]entity.Student, error)
	GetByClassroom(ctx context.Context, principal *entity.Principal, classroomID string) ([]entity.Student, error)
	GetByID(ctx context.Context, principal *entity.Principal, id string) (*entity.Student, error)
	Update(ctx context.Context, principal *entity.Principal, id string, patch entity.StudentPatch) (*entity.Student, error)
	Delete(ctx context.Context, principal *entity.Principal, id string) error
}
