package classroom

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
	InsertClassroom(ctx context.Context, classroom *entity.Classroom) error
	GetClassroomByID(ctx context.Context, id string) (*entity.Classroom, error)
	ListClassrooms(ctx context.Context) ([]entity.Classroom, error)
	ListClassroomsBySchool(ctx context.Context, schoolID string) ([]entity.Classroom, error)
	UpdateClassroom(ctx context.Context, id string, patch entity.ClassroomPatch) (*entity.Classroom, error)
	DeleteClassroom(ctx context.Context, id string) error
}

type SchoolLookup interface {
	GetSchoolByID(ctx context.Context, id string) (*entity.School, error)
}

type StudentCounter interface {
	CountStudentsByClassroom(ctx context.Context, classroomID string) (int64, error)
}

type Notifier interface {
	Publish(event string, data any)
}

// Service manages classrooms. Every operation is scoped through the access
// policy against the owning school.
type Service struct {
	store    Store
	schools  SchoolLookup
	students StudentCounter
	policy   access.Policy
	events   Notifier
	log      *slog.Logger
}

func NewService(store Store, schools SchoolLookup, students StudentCounter, policy access.Policy, logger *slog.Logger) *Service {
	return &Service{
		store:    store,
		schools:  schools,
		students: students,
		policy:   policy,
		log:      logger.With(sl.Module("classroom-service")),
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

func (s *Service) Create(ctx context.Context, principal *entity.Principal, classroom *entity.Classroom) (*entity.Classroom, error) {
	if err := validate.Struct(classroom); err != nil {
		return nil, err
	}

	school, err := s.schools.GetSchoolByID(ctx, classroom.SchoolID)
	if err != nil {
		return nil, entity.InvalidReferencef("school %q", classroom.SchoolID)
	}

	if err := s.policy.Authorize(principal, access.ActionCreate, school.ID); err != nil {
		return nil, err
	}

	classroom.Stamp()
	classroom.School = nil
	if err := s.store.InsertClassroom(ctx, classroom); err != nil {
		return nil, err
	}

	s.log.Info("classroom created",
		slog.String("id", classroom.ID),
		slog.String("school_id", classroom.SchoolID),
	)
	s.notify("classroom.created", classroom)
	return classroom, nil
}

// List returns every classroom for a superadmin and the principal's own
// school's classrooms for a schooladmin. Everyone else is denied.
func (s *Service) List(ctx context.Context, principal *entity.Principal) ([]entity.Classroom, error) {
	if principal == nil || !principal.Role.Privileged() {
		return nil, fmt.Errorf("%w: list classrooms", entity.ErrAccessDenied)
	}

	var (
		classrooms []entity.Classroom
		err        error
	)
	if principal.IsSuperAdmin() {
		classrooms, err = s.store.ListClassrooms(ctx)
	} else {
		classrooms, err = s.store.ListClassroomsBySchool(ctx, principal.SchoolID)
	}
	if err != nil {
		return nil, err
	}

	for i := range classrooms {
		s.populateSchool(ctx, &classrooms[i])
	}
	return classrooms, nil
}

func (s *Service) GetByID(ctx context.Context, principal *entity.Principal, id string) (*entity.Classroom, error) {
	classroom, err := s.store.GetClassroomByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.policy.Authorize(principal, access.ActionRead, classroom.SchoolID); err != nil {
		return nil, err
	}

	s.populateSchool(ctx, classroom)
	return classroom, nil
}

// Update mutates a classroom after checking the principal against its
// current school and, on a move, against the destination school too. A
// capacity reduction below the current occupancy is refused.
func (s *Service) Update(ctx context.Context, principal *entity.Principal, id string, patch entity.ClassroomPatch) (*entity.Classroom, error) {
	if patch.Empty() {
		return nil, entity.Validationf("empty update")
	}
	if err := validate.Struct(patch); err != nil {
		return nil, err
	}

	classroom, err := s.store.GetClassroomByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.policy.Authorize(principal, access.ActionUpdate, classroom.SchoolID); err != nil {
		return nil, err
	}

	if patch.SchoolID != nil && *patch.SchoolID != classroom.SchoolID {
		dest, err := s.schools.GetSchoolByID(ctx, *patch.SchoolID)
		if err != nil {
			return nil, entity.InvalidReferencef("school %q", *patch.SchoolID)
		}
		if err := s.policy.Authorize(principal, access.ActionUpdate, dest.ID); err != nil {
			return nil, err
		}
	}

	if patch.Capacity != nil {
		occupied, err := s.students.CountStudentsByClassroom(ctx, id)
		if err != nil {
			return nil, err
		}
		if int64(*patch.Capacity) < occupied {
			return nil, fmt.Errorf("%w: capacity %d below %d enrolled students",
				entity.ErrCapacityExceeded, *patch.Capacity, occupied)
		}
	}

	updated, err := s.store.UpdateClassroom(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.log.Info("classroom updated", slog.String("id", id))
	s.notify("classroom.updated", updated)
	s.populateSchool(ctx, updated)
	return updated, nil
}

// Delete refuses while students still reference the classroom.
func (s *Service) Delete(ctx context.Context, principal *entity.Principal, id string) error {
	classroom, err := s.store.GetClassroomByID(ctx, id)
	if err != nil {
		return err
	}

	if err := s.policy.Authorize(principal, access.ActionDelete, classroom.SchoolID); err != nil {
		return err
	}

	occupied, err := s.students.CountStudentsByClassroom(ctx, id)
	if err != nil {
		return err
	}
	if occupied > 0 {
		return fmt.Errorf("%w: classroom has %d students", entity.ErrConflict, occupied)
	}

	if err := s.store.DeleteClassroom(ctx, id); err != nil {
		return err
	}

	s.log.Info("classroom deleted", slog.String("id", id))
	s.notify("classroom.deleted", map[string]string{"id": id})
	return nil
}

func (s *Service) populateSchool(ctx context.Context, classroom *entity.Classroom) {
	if classroom == nil || classroom.SchoolID == "" {
		return
	}
	school, err := s.schools.GetSchoolByID(ctx, classroom.SchoolID)
	if err != nil {
		s.log.Warn("resolving classroom school",
			slog.String("classroom_id", classroom.ID),
			slog.String("school_id", classroom.SchoolID),
			sl.Err(err),
		)
		return
	}
	classroom.School = school
}
