package classroom

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"SchoolDesk/entity"
	"SchoolDesk/internal/database/memory"
	"SchoolDesk/internal/service/access"
)

var superadmin = &entity.Principal{UserID: "root", Role: entity.SuperAdminRole}

func newTestService(t *testing.T) (*Service, *memory.Store) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	return NewService(store, store, store, access.NewPolicy(), log), store
}

func seedSchool(t *testing.T, store *memory.Store, name string) *entity.School {
	t.Helper()
	school := &entity.School{
		Name:            name,
		Address:         "12 Elm Street",
		Phone:           "+1555000111",
		Email:           "office@school.example",
		Website:         "https://school.example",
		EstablishedDate: time.Date(1987, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	school.Stamp()
	if err := store.InsertSchool(context.Background(), school); err != nil {
		t.Fatal(err)
	}
	return school
}

func seedStudent(t *testing.T, store *memory.Store, classroomID string) *entity.Student {
	t.Helper()
	student := &entity.Student{Name: "Alice", ClassroomID: classroomID}
	student.Stamp()
	if err := store.InsertStudent(context.Background(), student); err != nil {
		t.Fatal(err)
	}
	return student
}

func TestCreate(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	school := seedSchool(t, store, "Northwood High")

	created, err := svc.Create(ctx, superadmin, &entity.Classroom{Name: "1-A", SchoolID: school.ID, Capacity: 25})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("Create left ID empty")
	}

	if _, err := svc.Create(ctx, superadmin, &entity.Classroom{Name: "1-B", SchoolID: "missing", Capacity: 25}); !errors.Is(err, entity.ErrInvalidReference) {
		t.Fatalf("missing school = %v, want ErrInvalidReference", err)
	}

	if _, err := svc.Create(ctx, superadmin, &entity.Classroom{Name: "1-C", SchoolID: school.ID, Capacity: 0}); !errors.Is(err, entity.ErrValidation) {
		t.Fatalf("zero capacity = %v, want ErrValidation", err)
	}
}

func TestTenantScoping(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	schoolA := seedSchool(t, store, "School A")
	schoolB := seedSchool(t, store, "School B")

	adminA := &entity.Principal{UserID: "sa", Role: entity.SchoolAdminRole, SchoolID: schoolA.ID}

	own, err := svc.Create(ctx, adminA, &entity.Classroom{Name: "A-1", SchoolID: schoolA.ID, Capacity: 10})
	if err != nil {
		t.Fatalf("Create in own school: %v", err)
	}

	if _, err := svc.Create(ctx, adminA, &entity.Classroom{Name: "B-1", SchoolID: schoolB.ID, Capacity: 10}); !errors.Is(err, entity.ErrAccessDenied) {
		t.Fatalf("Create in other school = %v, want ErrAccessDenied", err)
	}

	foreign, err := svc.Create(ctx, superadmin, &entity.Classroom{Name: "B-1", SchoolID: schoolB.ID, Capacity: 10})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.GetByID(ctx, adminA, foreign.ID); !errors.Is(err, entity.ErrAccessDenied) {
		t.Fatalf("GetByID foreign = %v, want ErrAccessDenied", err)
	}

	// schooladmin listing sees only its own school
	listed, err := svc.List(ctx, adminA)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != own.ID {
		t.Fatalf("List = %+v, want only %s", listed, own.ID)
	}

	all, err := svc.List(ctx, superadmin)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("List as superadmin = %d classrooms, want 2", len(all))
	}

	teacher := &entity.Principal{UserID: "t", Role: entity.TeacherRole, SchoolID: schoolA.ID}
	if _, err := svc.List(ctx, teacher); !errors.Is(err, entity.ErrAccessDenied) {
		t.Fatalf("List as teacher = %v, want ErrAccessDenied", err)
	}

	// a move into a school the principal does not administer is denied
	if _, err := svc.Update(ctx, adminA, own.ID, entity.ClassroomPatch{SchoolID: &schoolB.ID}); !errors.Is(err, entity.ErrAccessDenied) {
		t.Fatalf("move to other school = %v, want ErrAccessDenied", err)
	}
}

func TestUpdateCapacityBelowOccupancy(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	school := seedSchool(t, store, "Northwood High")

	classroom, err := svc.Create(ctx, superadmin, &entity.Classroom{Name: "1-A", SchoolID: school.ID, Capacity: 3})
	if err != nil {
		t.Fatal(err)
	}
	seedStudent(t, store, classroom.ID)
	seedStudent(t, store, classroom.ID)

	low := 1
	if _, err := svc.Update(ctx, superadmin, classroom.ID, entity.ClassroomPatch{Capacity: &low}); !errors.Is(err, entity.ErrCapacityExceeded) {
		t.Fatalf("shrink below occupancy = %v, want ErrCapacityExceeded", err)
	}

	exact := 2
	updated, err := svc.Update(ctx, superadmin, classroom.ID, entity.ClassroomPatch{Capacity: &exact})
	if err != nil {
		t.Fatalf("shrink to occupancy: %v", err)
	}
	if updated.Capacity != 2 {
		t.Fatalf("capacity = %d, want 2", updated.Capacity)
	}
}

func TestDeleteRefusedWhileOccupied(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	school := seedSchool(t, store, "Northwood High")

	classroom, err := svc.Create(ctx, superadmin, &entity.Classroom{Name: "1-A", SchoolID: school.ID, Capacity: 3})
	if err != nil {
		t.Fatal(err)
	}
	student := seedStudent(t, store, classroom.ID)

	if err := svc.Delete(ctx, superadmin, classroom.ID); !errors.Is(err, entity.ErrConflict) {
		t.Fatalf("Delete occupied = %v, want ErrConflict", err)
	}

	if err := store.DeleteStudent(ctx, student.ID); err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, superadmin, classroom.ID); err != nil {
		t.Fatalf("Delete empty: %v", err)
	}
}
