package student

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
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
	return NewService(store, store, access.NewPolicy(), log), store
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

func seedClassroom(t *testing.T, store *memory.Store, schoolID, name string, capacity int) *entity.Classroom {
	t.Helper()
	classroom := &entity.Classroom{Name: name, SchoolID: schoolID, Capacity: capacity}
	classroom.Stamp()
	if err := store.InsertClassroom(context.Background(), classroom); err != nil {
		t.Fatal(err)
	}
	return classroom
}

func TestCreate(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	school := seedSchool(t, store, "Northwood High")
	classroom := seedClassroom(t, store, school.ID, "1-A", 2)

	created, err := svc.Create(ctx, superadmin, &entity.Student{Name: "Alice", ClassroomID: classroom.ID, Age: 12})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatal("Create left ID empty")
	}

	if _, err := svc.Create(ctx, superadmin, &entity.Student{Name: "Bob", ClassroomID: "missing"}); !errors.Is(err, entity.ErrInvalidReference) {
		t.Fatalf("missing classroom = %v, want ErrInvalidReference", err)
	}

	if _, err := svc.Create(ctx, superadmin, &entity.Student{Name: "", ClassroomID: classroom.ID}); !errors.Is(err, entity.ErrValidation) {
		t.Fatalf("empty name = %v, want ErrValidation", err)
	}
}

func TestCreateRefusedWhenFull(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	school := seedSchool(t, store, "Northwood High")
	classroom := seedClassroom(t, store, school.ID, "1-A", 1)

	if _, err := svc.Create(ctx, superadmin, &entity.Student{Name: "Alice", ClassroomID: classroom.ID}); err != nil {
		t.Fatal(err)
	}

	_, err := svc.Create(ctx, superadmin, &entity.Student{Name: "Bob", ClassroomID: classroom.ID})
	if !errors.Is(err, entity.ErrCapacityExceeded) {
		t.Fatalf("Create into full classroom = %v, want ErrCapacityExceeded", err)
	}
}

// Two concurrent admissions for the last seat must resolve to exactly one
// success; the occupancy check and insert run under the classroom lock.
func TestConcurrentAdmissionLastSeat(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	school := seedSchool(t, store, "Northwood High")
	classroom := seedClassroom(t, store, school.ID, "1-A", 1)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.Create(ctx, superadmin, &entity.Student{
				Name:        "Racer",
				ClassroomID: classroom.ID,
			})
		}(i)
	}
	wg.Wait()

	var admitted, refused int
	for _, err := range results {
		switch {
		case err == nil:
			admitted++
		case errors.Is(err, entity.ErrCapacityExceeded):
			refused++
		default:
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if admitted != 1 || refused != 1 {
		t.Fatalf("admitted=%d refused=%d, want exactly one of each", admitted, refused)
	}

	count, err := store.CountStudentsByClassroom(ctx, classroom.ID)
	if err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("occupancy = %d, want 1", count)
	}
}

func TestTenantScoping(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	schoolA := seedSchool(t, store, "School A")
	schoolB := seedSchool(t, store, "School B")
	roomA := seedClassroom(t, store, schoolA.ID, "A-1", 10)
	roomB := seedClassroom(t, store, schoolB.ID, "B-1", 10)

	adminA := &entity.Principal{UserID: "sa", Role: entity.SchoolAdminRole, SchoolID: schoolA.ID}

	own, err := svc.Create(ctx, adminA, &entity.Student{Name: "Alice", ClassroomID: roomA.ID})
	if err != nil {
		t.Fatalf("Create in own school: %v", err)
	}

	if _, err := svc.Create(ctx, adminA, &entity.Student{Name: "Eve", ClassroomID: roomB.ID}); !errors.Is(err, entity.ErrAccessDenied) {
		t.Fatalf("Create in other school = %v, want ErrAccessDenied", err)
	}

	foreign, err := svc.Create(ctx, superadmin, &entity.Student{Name: "Bob", ClassroomID: roomB.ID})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.GetByID(ctx, adminA, foreign.ID); !errors.Is(err, entity.ErrAccessDenied) {
		t.Fatalf("GetByID foreign = %v, want ErrAccessDenied", err)
	}

	if _, err := svc.GetByClassroom(ctx, adminA, roomB.ID); !errors.Is(err, entity.ErrAccessDenied) {
		t.Fatalf("GetByClassroom foreign = %v, want ErrAccessDenied", err)
	}

	// a cross-tenant move is denied and the student stays put
	if _, err := svc.Update(ctx, adminA, own.ID, entity.StudentPatch{ClassroomID: &roomB.ID}); !errors.Is(err, entity.ErrAccessDenied) {
		t.Fatalf("cross-tenant move = %v, want ErrAccessDenied", err)
	}
	kept, err := store.GetStudentByID(ctx, own.ID)
	if err != nil {
		t.Fatal(err)
	}
	if kept.ClassroomID != roomA.ID {
		t.Fatalf("student moved to %s despite denial", kept.ClassroomID)
	}

	// schooladmin listing covers only its own school's classrooms
	listed, err := svc.List(ctx, adminA)
	if err != nil {
		t.Fatal(err)
	}
	if len(listed) != 1 || listed[0].ID != own.ID {
		t.Fatalf("List = %+v, want only %s", listed, own.ID)
	}

	all, err := svc.List(ctx, superadmin)
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 2 {
		t.Fatalf("List as superadmin = %d students, want 2", len(all))
	}
}

func TestMoveBetweenClassrooms(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	school := seedSchool(t, store, "Northwood High")
	source := seedClassroom(t, store, school.ID, "1-A", 1)
	dest := seedClassroom(t, store, school.ID, "1-B", 1)

	student, err := svc.Create(ctx, superadmin, &entity.Student{Name: "Alice", ClassroomID: source.ID})
	if err != nil {
		t.Fatal(err)
	}
	blocker, err := svc.Create(ctx, superadmin, &entity.Student{Name: "Bob", ClassroomID: dest.ID})
	if err != nil {
		t.Fatal(err)
	}

	// destination is full
	if _, err := svc.Update(ctx, superadmin, student.ID, entity.StudentPatch{ClassroomID: &dest.ID}); !errors.Is(err, entity.ErrCapacityExceeded) {
		t.Fatalf("move into full classroom = %v, want ErrCapacityExceeded", err)
	}

	if err := svc.Delete(ctx, superadmin, blocker.ID); err != nil {
		t.Fatal(err)
	}

	moved, err := svc.Update(ctx, superadmin, student.ID, entity.StudentPatch{ClassroomID: &dest.ID})
	if err != nil {
		t.Fatalf("move into vacated classroom: %v", err)
	}
	if moved.ClassroomID != dest.ID {
		t.Fatalf("classroom = %s, want %s", moved.ClassroomID, dest.ID)
	}

	// the vacated seat is free again
	if _, err := svc.Create(ctx, superadmin, &entity.Student{Name: "Carol", ClassroomID: source.ID}); err != nil {
		t.Fatalf("refill vacated seat: %v", err)
	}

	// moving to a missing classroom is a reference failure
	missing := "missing"
	if _, err := svc.Update(ctx, superadmin, moved.ID, entity.StudentPatch{ClassroomID: &missing}); !errors.Is(err, entity.ErrInvalidReference) {
		t.Fatalf("move to missing classroom = %v, want ErrInvalidReference", err)
	}
}

func TestGetByClassroomPopulates(t *testing.T) {
	svc, store := newTestService(t)
	ctx := context.Background()
	school := seedSchool(t, store, "Northwood High")
	classroom := seedClassroom(t, store, school.ID, "1-A", 5)

	if _, err := svc.Create(ctx, superadmin, &entity.Student{Name: "Alice", ClassroomID: classroom.ID}); err != nil {
		t.Fatal(err)
	}

	students, err := svc.GetByClassroom(ctx, superadmin, classroom.ID)
	if err != nil {
		t.Fatalf("GetByClassroom: %v", err)
	}
	if len(students) != 1 {
		t.Fatalf("GetByClassroom = %d students, want 1", len(students))
	}
	if students[0].Classroom == nil || students[0].Classroom.ID != classroom.ID {
		t.Fatalf("classroom not populated: %+v", students[0].Classroom)
	}

	if _, err := svc.GetByClassroom(ctx, superadmin, "missing"); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("missing classroom = %v, want ErrNotFound", err)
	}
}
