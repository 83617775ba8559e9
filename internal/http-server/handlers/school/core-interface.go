package school

import (
	"context"

	"SchoolDesk/entity"
)

type Core interface {
	Create(ctx context.Context, principal *entity.Principal, school *entity.School) (*entity.School, error)
	List(ctx context.Context, principal *entity.Principal) ([]entity.School, error)
	GetByID(ctx context.Context, principal *entity.Principal, id string) (*entity.School, error)
	Update(ctx context.Context, principal *entity.Principal, id string, patch entity.SchoolPatch) (*entity.School, error)
	Delete(ctx context.Context, principal *entity.Principal, id string) error
}
