package classroom

import (
	"context"

	"SchoolDesk/entity"
)

type Core interface {
	Create(ctx context.Context, principal *entity.Principal, classroom *entity.Classroom) (*entity.Classroom, error)
	List(ctx context.Context, principal *entity.Principal) ([]entity.Classroom, error)
	GetByID(ctx context.Context, principal *entity.Principal, id string) (*entity.Classroom, error)
	Update(ctx context.Context, principal *entity.Principal, id string, patch entity.ClassroomPatch) (*entity.Classroom, error)
	Delete(ctx context.Context, principal *entity.Principal, id string) error
}
