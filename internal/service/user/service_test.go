package user

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
	"SchoolDesk/internal/service/auth"

	"golang.org/x/crypto/bcrypt"
)

var superadmin = &entity.Principal{UserID: "root", Role: entity.SuperAdminRole}

func newTestService(t *testing.T) (*Service, *auth.Service, *memory.Store) {
	t.Helper()
	store := memory.New()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	authService := auth.NewService(store, time.Hour, bcrypt.MinCost, log)
	svc := NewService(store, store, authService, authService, access.NewPolicy(), log)
	return svc, authService, store
}

func seedSchool(t *testing.T, store *memory.Store) *entity.School {
	t.Helper()
	school := &entity.School{
		Name:            "Northwood High",
		Address:         "12 Elm Street",
		Phone:           "+1555000111",
		Email:           "office@northwood.example",
		Website:         "https://northwood.example",
		EstablishedDate: time.Date(1987, 9, 1, 0, 0, 0, 0, time.UTC),
	}
	school.Stamp()
	if err := store.InsertSchool(context.Background(), school); err != nil {
		t.Fatal(err)
	}
	return school
}

func TestRegisterAndAuthenticate(t *testing.T) {
	svc, authService, store := newTestService(t)
	ctx := context.Background()
	school := seedSchool(t, store)

	user, err := svc.Register(ctx, entity.Registration{
		Username: "jsmith",
		Email:    "jsmith@northwood.example",
		Password: "hunter22",
		Role:     entity.SchoolAdminRole,
		SchoolID: school.ID,
	})
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.PasswordHash == "hunter22" {
		t.Fatal("password stored in plaintext")
	}

	got, token, err := svc.Authenticate(ctx, "jsmith@northwood.example", "hunter22")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if got.ID != user.ID || token == "" {
		t.Fatalf("Authenticate = user %s token %q", got.ID, token)
	}

	principal, err := authService.AuthenticateByToken(ctx, token)
	if err != nil {
		t.Fatalf("AuthenticateByToken: %v", err)
	}
	if principal.UserID != user.ID || principal.Role != entity.SchoolAdminRole || principal.SchoolID != school.ID {
		t.Fatalf("principal = %+v", principal)
	}
}

func TestAuthenticateFailures(t *testing.T) {
	svc, _, store := newTestService(t)
	ctx := context.Background()
	school := seedSchool(t, store)

	if _, err := svc.Register(ctx, entity.Registration{
		Username: "jsmith",
		Email:    "jsmith@northwood.example",
		Password: "hunter22",
		Role:     entity.TeacherRole,
		SchoolID: school.ID,
	}); err != nil {
		t.Fatal(err)
	}

	// wrong password and unknown email fail identically
	if _, _, err := svc.Authenticate(ctx, "jsmith@northwood.example", "wrong"); !errors.Is(err, entity.ErrInvalidCredentials) {
		t.Fatalf("wrong password = %v, want ErrInvalidCredentials", err)
	}
	if _, _, err := svc.Authenticate(ctx, "nobody@northwood.example", "hunter22"); !errors.Is(err, entity.ErrInvalidCredentials) {
		t.Fatalf("unknown email = %v, want ErrInvalidCredentials", err)
	}
}

func TestRegisterRejections(t *testing.T) {
	svc, _, store := newTestService(t)
	ctx := context.Background()
	school := seedSchool(t, store)

	tests := []struct {
		name string
		in   entity.Registration
		want error
	}{
		{
			name: "superadmin role refused",
			in:   entity.Registration{Username: "evil", Email: "evil@x.example", Password: "secret1", Role: entity.SuperAdminRole},
			want: entity.ErrAccessDenied,
		},
		{
			name: "unknown role",
			in:   entity.Registration{Username: "odd", Email: "odd@x.example", Password: "secret1", Role: "janitor"},
			want: entity.ErrValidation,
		},
		{
			name: "schooladmin without school",
			in:   entity.Registration{Username: "sa", Email: "sa@x.example", Password: "secret1", Role: entity.SchoolAdminRole},
			want: entity.ErrValidation,
		},
		{
			name: "missing school reference",
			in:   entity.Registration{Username: "t1", Email: "t1@x.example", Password: "secret1", Role: entity.TeacherRole, SchoolID: "missing"},
			want: entity.ErrInvalidReference,
		},
		{
			name: "short password",
			in:   entity.Registration{Username: "t2", Email: "t2@x.example", Password: "abc", Role: entity.TeacherRole, SchoolID: school.ID},
			want: entity.ErrValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Register(ctx, tt.in); !errors.Is(err, tt.want) {
				t.Errorf("Register = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, store := newTestService(t)
	ctx := context.Background()
	school := seedSchool(t, store)

	in := entity.Registration{
		Username: "jsmith",
		Email:    "jsmith@northwood.example",
		Password: "hunter22",
		Role:     entity.TeacherRole,
		SchoolID: school.ID,
	}
	if _, err := svc.Register(ctx, in); err != nil {
		t.Fatal(err)
	}

	in.Username = "jsmith2"
	if _, err := svc.Register(ctx, in); !errors.Is(err, entity.ErrConflict) {
		t.Fatalf("duplicate email = %v, want ErrConflict", err)
	}
}

func TestGetByIDSelfOrSuperAdmin(t *testing.T) {
	svc, _, store := newTestService(t)
	ctx := context.Background()
	school := seedSchool(t, store)

	user, err := svc.Register(ctx, entity.Registration{
		Username: "jsmith",
		Email:    "jsmith@northwood.example",
		Password: "hunter22",
		Role:     entity.TeacherRole,
		SchoolID: school.ID,
	})
	if err != nil {
		t.Fatal(err)
	}

	self := &entity.Principal{UserID: user.ID, Role: entity.TeacherRole, SchoolID: school.ID}
	got, err := svc.GetByID(ctx, self, user.ID)
	if err != nil {
		t.Fatalf("GetByID self: %v", err)
	}
	if got.School == nil || got.School.ID != school.ID {
		t.Fatalf("GetByID school = %+v, want %s", got.School, school.ID)
	}

	if _, err := svc.GetByID(ctx, superadmin, user.ID); err != nil {
		t.Fatalf("GetByID superadmin: %v", err)
	}

	other := &entity.Principal{UserID: "someone-else", Role: entity.TeacherRole, SchoolID: school.ID}
	if _, err := svc.GetByID(ctx, other, user.ID); !errors.Is(err, entity.ErrAccessDenied) {
		t.Fatalf("GetByID other = %v, want ErrAccessDenied", err)
	}
}

func TestUpdateAndDeleteSuperAdminOnly(t *testing.T) {
	svc, _, store := newTestService(t)
	ctx := context.Background()
	school := seedSchool(t, store)

	user, err := svc.Register(ctx, entity.Registration{
		Username: "jsmith",
		Email:    "jsmith@northwood.example",
		Password: "hunter22",
		Role:     entity.TeacherRole,
		SchoolID: school.ID,
	})
	if err != nil {
		t.Fatal(err)
	}

	schooladmin := &entity.Principal{UserID: "sa", Role: entity.SchoolAdminRole, SchoolID: school.ID}
	name := "renamed"
	if _, err := svc.Update(ctx, schooladmin, user.ID, entity.UserPatch{Username: &name}); !errors.Is(err, entity.ErrAccessDenied) {
		t.Fatalf("Update as schooladmin = %v, want ErrAccessDenied", err)
	}

	role := entity.SchoolAdminRole
	updated, err := svc.Update(ctx, superadmin, user.ID, entity.UserPatch{Role: &role})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Role != entity.SchoolAdminRole {
		t.Fatalf("Update role = %s", updated.Role)
	}

	badRole := entity.Role("janitor")
	if _, err := svc.Update(ctx, superadmin, user.ID, entity.UserPatch{Role: &badRole}); !errors.Is(err, entity.ErrValidation) {
		t.Fatalf("Update bad role = %v, want ErrValidation", err)
	}

	badSchool := "missing"
	if _, err := svc.Update(ctx, superadmin, user.ID, entity.UserPatch{SchoolID: &badSchool}); !errors.Is(err, entity.ErrInvalidReference) {
		t.Fatalf("Update bad school = %v, want ErrInvalidReference", err)
	}

	if err := svc.Delete(ctx, schooladmin, user.ID); !errors.Is(err, entity.ErrAccessDenied) {
		t.Fatalf("Delete as schooladmin = %v, want ErrAccessDenied", err)
	}
	if err := svc.Delete(ctx, superadmin, user.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, superadmin, user.ID); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("Delete again = %v, want ErrNotFound", err)
	}
}
