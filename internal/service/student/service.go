package student

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
	InsertStudent(ctx context.Context, student *entity.Student) error
	GetStudentByID(ctx context.Context, id string) (*entity.Student, error)
	ListStudents(ctx context.Context) ([]entity.Student, error)
	ListStudentsByClassroom(ctx context.Context, classroomID string) ([]entity.Student, error)
	CountStudentsByClassroom(ctx context.Context, classroomID string) (int64, error)
	UpdateStudent(ctx context.Context, id string, patch entity.StudentPatch) (*entity.Student, error)
	DeleteStudent(ctx context.Context, id string) error
}

type ClassroomLookup interface {
	GetClassroomByID(ctx context.Context, id string) (*entity.Classroom, error)
	ListClassroomsBySchool(ctx context.Context, schoolID string) ([]entity.Classroom, error)
}

type Notifier interface {
	Publish(event string, data any)
}

// Service manages students. A student's school is its classroom's school;
// all scoping runs through that resolution.
type Service struct {
	store      Store
	classrooms ClassroomLookup
	policy     access.Policy
	admissions *classroomLocks
	events     Notifier
	log        *slog.Logger
}

func NewService(store Store, classrooms ClassroomLookup, policy access.Policy, logger *slog.Logger) *Service {
	return &Service{
		store:      store,
		classrooms: classrooms,
		policy:     policy,
		admissions: newClassroomLocks(),
		log:        logger.With(sl.Module("student-service")),
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

// Create admits a student into a classroom. The occupancy check and the
// insert run under the classroom's admission lock so concurrent creations
// cannot both pass a last-seat check.
func (s *Service) Create(ctx context.Context, principal *entity.Principal, student *entity.Student) (*entity.Student, error) {
	if err := validate.Struct(student); err != nil {
		return nil, err
	}

	classroom, err := s.classrooms.GetClassroomByID(ctx, student.ClassroomID)
	if err != nil {
		return nil, entity.InvalidReferencef("classroom %q", student.ClassroomID)
	}

	if err := s.policy.Authorize(principal, access.ActionCreate, classroom.SchoolID); err != nil {
		return nil, err
	}

	lock := s.admissions.get(classroom.ID)
	lock.Lock()
	defer lock.Unlock()

	if err := s.admit(ctx, classroom); err != nil {
		return nil, err
	}

	student.Stamp()
	student.Classroom = nil
	if err := s.store.InsertStudent(ctx, student); err != nil {
		return nil, err
	}

	s.log.Info("student created",
		slog.String("id", student.ID),
		slog.String("classroom_id", student.ClassroomID),
	)
	s.notify("student.created", student)
	return student, nil
}

func (s *Service) List(ctx context.Context, principal *entity.Principal) ([]entity.Student, error) {
	if principal == nil || !principal.Role.Privileged() {
		return nil, fmt.Errorf("%w: list students", entity.ErrAccessDenied)
	}

	if principal.IsSuperAdmin() {
		students, err := s.store.ListStudents(ctx)
		if err != nil {
			return nil, err
		}
		s.populateClassrooms(ctx, students)
		return students, nil
	}

	// Scoped roles see the students of their own school's classrooms.
	classrooms, err := s.classrooms.ListClassroomsBySchool(ctx, principal.SchoolID)
	if err != nil {
		return nil, err
	}

	var students []entity.Student
	for i := range classrooms {
		enrolled, err := s.store.ListStudentsByClassroom(ctx, classrooms[i].ID)
		if err != nil {
			return nil, err
		}
		for j := range enrolled {
			enrolled[j].Classroom = &classrooms[i]
		}
		students = append(students, enrolled...)
	}
	return students, nil
}

func (s *Service) GetByClassroom(ctx context.Context, principal *entity.Principal, classroomID string) ([]entity.Student, error) {
	classroom, err := s.classrooms.GetClassroomByID(ctx, classroomID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.Authorize(principal, access.ActionRead, classroom.SchoolID); err != nil {
		return nil, err
	}

	students, err := s.store.ListStudentsByClassroom(ctx, classroomID)
	if err != nil {
		return nil, err
	}
	for i := range students {
		students[i].Classroom = classroom
	}
	return students, nil
}

func (s *Service) GetByID(ctx context.Context, principal *entity.Principal, id string) (*entity.Student, error) {
	student, err := s.store.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	classroom, err := s.classrooms.GetClassroomByID(ctx, student.ClassroomID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.Authorize(principal, access.ActionRead, classroom.SchoolID); err != nil {
		return nil, err
	}

	student.Classroom = classroom
	return student, nil
}

// Update mutates a student. A classroom move is checked against both the
// current and the destination classroom's school, and re-runs admission
// control on the destination; the seat being vacated does not count there.
func (s *Service) Update(ctx context.Context, principal *entity.Principal, id string, patch entity.StudentPatch) (*entity.Student, error) {
	if patch.Empty() {
		return nil, entity.Validationf("empty update")
	}
	if err := validate.Struct(patch); err != nil {
		return nil, err
	}

	student, err := s.store.GetStudentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	current, err := s.classrooms.GetClassroomByID(ctx, student.ClassroomID)
	if err != nil {
		return nil, err
	}

	if err := s.policy.Authorize(principal, access.ActionUpdate, current.SchoolID); err != nil {
		return nil, err
	}

	if patch.ClassroomID != nil && *patch.ClassroomID != student.ClassroomID {
		dest, err := s.classrooms.GetClassroomByID(ctx, *patch.ClassroomID)
		if err != nil {
			return nil, entity.InvalidReferencef("classroom %q", *patch.ClassroomID)
		}
		if err := s.policy.Authorize(principal, access.ActionUpdate, dest.SchoolID); err != nil {
			return nil, err
		}

		lock := s.admissions.get(dest.ID)
		lock.Lock()
		defer lock.Unlock()

		if err := s.admit(ctx, dest); err != nil {
			return nil, err
		}
	}

	updated, err := s.store.UpdateStudent(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.log.Info("student updated", slog.String("id", id))
	s.notify("student.updated", updated)
	return updated, nil
}

func (s *Service) Delete(ctx context.Context, principal *entity.Principal, id string) error {
	student, err := s.store.GetStudentByID(ctx, id)
	if err != nil {
		return err
	}

	classroom, err := s.classrooms.GetClassroomByID(ctx, student.ClassroomID)
	if err != nil {
		return err
	}

	if err := s.policy.Authorize(principal, access.ActionDelete, classroom.SchoolID); err != nil {
		return err
	}

	if err := s.store.DeleteStudent(ctx, id); err != nil {
		return err
	}

	s.log.Info("student deleted", slog.String("id", id))
	s.notify("student.deleted", map[string]string{"id": id})
	return nil
}

// admit checks occupancy against capacity. Callers hold the classroom's
// admission lock. On a move the count never includes the mover, who still
// references the old classroom, so the vacated seat needs no adjustment.
func (s *Service) admit(ctx context.Context, classroom *entity.Classroom) error {
	occupied, err := s.store.CountStudentsByClassroom(ctx, classroom.ID)
	if err != nil {
		return err
	}
	if occupied >= int64(classroom.Capacity) {
		return fmt.Errorf("%w: classroom %q is full (%d/%d)",
			entity.ErrCapacityExceeded, classroom.ID, occupied, classroom.Capacity)
	}
	return nil
}

func (s *Service) populateClassrooms(ctx context.Context, students []entity.Student) {
	cache := make(map[string]*entity.Classroom)
	for i := range students {
		id := students[i].ClassroomID
		classroom, ok := cache[id]
		if !ok {
			var err error
			classroom, err = s.classrooms.GetClassroomByID(ctx, id)
			if err != nil {
				s.log.Warn("resolving student classroom",
					slog.String("student_id", students[i].ID),
					slog.String("classroom_id", id),
					sl.Err(err),
				)
				continue
			}
			cache[id] = classroom
		}
		students[i].Classroom = classroom
	}
}
