package user

import (
	"context"

	"SchoolDesk/entity"
)

type Core interface {
	Register(ctx context.Context, in entity.Registration) (*entity.User, error)
	Authenticate(ctx context.Context, email, password string) (*entity.User, string, error)
	List(ctx context.Context, principal *entity.Principal) ([]entity.User, error)
	GetByID(ctx context.Context, principal *entity.Principal, id string) (*entity.User, error)
	Update(ctx context.Context, principal *entity.Principal, id string, patch entity.UserPatch) (*entity.User, error)
	Delete(ctx context.Context, principal *entity.Principal, id string) error
}
