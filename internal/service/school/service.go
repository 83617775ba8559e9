package school

import (
	"context"
	"fmt"
	"log/slog"

	"SchoolDesk/entity"
	"SchoolDesk/internal/lib/sl"
	"SchoolDesk/internal/lib/validate"
	"SchoolDesk/internal/service/access"
)

type Store interface {
	InsertSchool(ctx context.Context, school *entity.School) error
	GetSchoolByID(ctx context.Context, id string) (*entity.School, error)
	ListSchools(ctx context.Context) ([]entity.School, error)
	UpdateSchool(ctx context.Context, id string, patch entity.SchoolPatch) (*entity.School, error)
	DeleteSchool(ctx context.Context, id string) error
}

// UserLookup resolves the linked admin user for populated reads and counts
// tenants on delete.
type UserLookup interface {
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	CountUsersBySchool(ctx context.Context, schoolID string) (int64, error)
}

type ClassroomCounter interface {
	CountClassroomsBySchool(ctx context.Context, schoolID string) (int64, error)
}

type Notifier interface {
	Publish(event string, data any)
}

// Service manages the school records at the root of the tenancy hierarchy.
// Every mutation is superadmin-only, enforced here regardless of what the
// routing layer already checked.
type Service struct {
	store      Store
	users      UserLookup
	classrooms ClassroomCounter
	policy     access.Policy
	events     Notifier
	log        *slog.Logger
}

func NewService(store Store, users UserLookup, classrooms ClassroomCounter, policy access.Policy, logger *slog.Logger) *Service {
	return &Service{
		store:      store,
		users:      users,
		classrooms: classrooms,
		policy:     policy,
		log:        logger.With(sl.Module("school-service")),
	}
}

func (s *Service) SetNotifier(events Notifier) {
	s.events = events
}

func (s *Service) notify(event string, data any) {
	if s.events != nil {
		s.events.Publish(event, data)
	}
}

func (s *Service) Create(ctx context.Context, principal *entity.Principal, school *entity.School) (*entity.School, error) {
	if err := s.policy.AuthorizeSuperAdmin(principal, access.ActionCreate); err != nil {
		return nil, err
	}
	if err := validate.Struct(school); err != nil {
		return nil, err
	}

	if school.AdminID != "" {
		if _, err := s.users.GetUserByID(ctx, school.AdminID); err != nil {
			return nil, entity.InvalidReferencef("admin user %q", school.AdminID)
		}
	}

	school.Stamp()
	school.Admin = nil
	if err := s.store.InsertSchool(ctx, school); err != nil {
		return nil, err
	}

	s.log.Info("school created",
		slog.String("id", school.ID),
		slog.String("name", school.Name),
	)
	s.notify("school.created", school)
	return school, nil
}

func (s *Service) List(ctx context.Context, principal *entity.Principal) ([]entity.School, error) {
	if err := s.policy.AuthorizeSuperAdmin(principal, access.ActionList); err != nil {
		return nil, err
	}

	schools, err := s.store.ListSchools(ctx)
	if err != nil {
		return nil, err
	}
	for i := range schools {
		s.populateAdmin(ctx, &schools[i])
	}
	return schools, nil
}

func (s *Service) GetByID(ctx context.Context, principal *entity.Principal, id string) (*entity.School, error) {
	if err := s.policy.AuthorizeSuperAdmin(principal, access.ActionRead); err != nil {
		return nil, err
	}

	school, err := s.store.GetSchoolByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.populateAdmin(ctx, school)
	return school, nil
}

func (s *Service) Update(ctx context.Context, principal *entity.Principal, id string, patch entity.SchoolPatch) (*entity.School, error) {
	if err := s.policy.AuthorizeSuperAdmin(principal, access.ActionUpdate); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, entity.Validationf("empty update")
	}
	if err := validate.Struct(patch); err != nil {
		return nil, err
	}

	if patch.AdminID != nil && *patch.AdminID != "" {
		if _, err := s.users.GetUserByID(ctx, *patch.AdminID); err != nil {
			return nil, entity.InvalidReferencef("admin user %q", *patch.AdminID)
		}
	}

	school, err := s.store.UpdateSchool(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.log.Info("school updated", slog.String("id", id))
	s.notify("school.updated", school)
	s.populateAdmin(ctx, school)
	return school, nil
}

// Delete refuses while classrooms or users still reference the school;
// cascading here would silently destroy tenant data.
func (s *Service) Delete(ctx context.Context, principal *entity.Principal, id string) error {
	if err := s.policy.AuthorizeSuperAdmin(principal, access.ActionDelete); err != nil {
		return err
	}

	if _, err := s.store.GetSchoolByID(ctx, id); err != nil {
		return err
	}

	classrooms, err := s.classrooms.CountClassroomsBySchool(ctx, id)
	if err != nil {
		return err
	}
	if classrooms > 0 {
		return fmt.Errorf("%w: school has %d classrooms", entity.ErrConflict, classrooms)
	}

	users, err := s.users.CountUsersBySchool(ctx, id)
	if err != nil {
		return err
	}
	if users > 0 {
		return fmt.Errorf("%w: school has %d users", entity.ErrConflict, users)
	}

	if err := s.store.DeleteSchool(ctx, id); err != nil {
		return err
	}

	s.log.Info("school deleted", slog.String("id", id))
	s.notify("school.deleted", map[string]string{"id": id})
	return nil
}

func (s *Service) populateAdmin(ctx context.Context, school *entity.School) {
	if school == nil || school.AdminID == "" {
		return
	}
	admin, err := s.users.GetUserByID(ctx, school.AdminID)
	if err != nil {
		s.log.Warn("resolving school admin",
			slog.String("school_id", school.ID),
			slog.String("admin_id", school.AdminID),
			sl.Err(err),
		)
		return
	}
	school.Admin = admin
}
