package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"SchoolDesk/entity"
	"SchoolDesk/internal/database/memory"

	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T, ttl time.Duration) (*Service, *memory.Store) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	return NewService(store, ttl, bcrypt.MinCost, log), store
}

func TestHashVerify(t *testing.T) {
	svc, _ := newTestService(t, time.Hour)

	digest, err := svc.Hash("hunter22")
	if err != nil {
		t.Fatalf("Hash: %v", err)
	}
	if digest == "hunter22" {
		t.Fatal("digest equals plaintext")
	}
	if !svc.Verify("hunter22", digest) {
		t.Fatal("Verify rejected correct password")
	}
	if svc.Verify("wrong", digest) {
		t.Fatal("Verify accepted wrong password")
	}
}

func TestTokenRoundTrip(t *testing.T) {
	svc, store := newTestService(t, time.Hour)
	ctx := context.Background()

	user := entity.NewUser("jsmith", "jsmith@x.example", "digest", entity.SchoolAdminRole, "school-a")
	if err := store.InsertUser(ctx, user); err != nil {
		t.Fatal(err)
	}

	token, err := svc.IssueToken(ctx, user.ID)
	if err != nil {
		t.Fatalf("IssueToken: %v", err)
	}

	principal, err := svc.AuthenticateByToken(ctx, token)
	if err != nil {
		t.Fatalf("AuthenticateByToken: %v", err)
	}
	if principal.UserID != user.ID || principal.Role != entity.SchoolAdminRole || principal.SchoolID != "school-a" {
		t.Fatalf("principal = %+v", principal)
	}

	if _, err := svc.AuthenticateByToken(ctx, "forged"); !errors.Is(err, entity.ErrInvalidCredentials) {
		t.Fatalf("forged token = %v, want ErrInvalidCredentials", err)
	}

	if err := svc.RevokeToken(ctx, token); err != nil {
		t.Fatalf("RevokeToken: %v", err)
	}
	if _, err := svc.AuthenticateByToken(ctx, token); !errors.Is(err, entity.ErrInvalidCredentials) {
		t.Fatalf("revoked token = %v, want ErrInvalidCredentials", err)
	}
}

func TestExpiredTokenRemoved(t *testing.T) {
	svc, store := newTestService(t, -time.Minute)
	ctx := context.Background()

	user := entity.NewUser("jsmith", "jsmith@x.example", "digest", entity.TeacherRole, "school-a")
	if err := store.InsertUser(ctx, user); err != nil {
		t.Fatal(err)
	}

	token, err := svc.IssueToken(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.AuthenticateByToken(ctx, token); !errors.Is(err, entity.ErrInvalidCredentials) {
		t.Fatalf("expired token = %v, want ErrInvalidCredentials", err)
	}

	// expired tokens are deleted on sight
	if _, err := store.GetToken(ctx, token); !errors.Is(err, entity.ErrNotFound) {
		t.Fatalf("expired token still stored: %v", err)
	}
}

func TestTokenBoundToDeletedUser(t *testing.T) {
	svc, store := newTestService(t, time.Hour)
	ctx := context.Background()

	user := entity.NewUser("jsmith", "jsmith@x.example", "digest", entity.TeacherRole, "school-a")
	if err := store.InsertUser(ctx, user); err != nil {
		t.Fatal(err)
	}

	token, err := svc.IssueToken(ctx, user.ID)
	if err != nil {
		t.Fatal(err)
	}
	if err := store.DeleteUser(ctx, user.ID); err != nil {
		t.Fatal(err)
	}

	if _, err := svc.AuthenticateByToken(ctx, token); !errors.Is(err, entity.ErrInvalidCredentials) {
		t.Fatalf("token for deleted user = %v, want ErrInvalidCredentials", err)
	}
}
