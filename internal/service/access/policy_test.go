package access

import (
	"errors"
	"testing"

	"SchoolDesk/entity"
)

func TestAllow(t *testing.T) {
	policy := NewPolicy()

	tests := []struct {
		name      string
		principal *entity.Principal
		schoolID  string
		want      bool
	}{
		{
			name:      "superadmin anywhere",
			principal: &entity.Principal{UserID: "u1", Role: entity.SuperAdminRole},
			schoolID:  "school-a",
			want:      true,
		},
		{
			name:      "superadmin without school",
			principal: &entity.Principal{UserID: "u1", Role: entity.SuperAdminRole},
			schoolID:  "",
			want:      true,
		},
		{
			name:      "schooladmin own school",
			principal: &entity.Principal{UserID: "u2", Role: entity.SchoolAdminRole, SchoolID: "school-a"},
			schoolID:  "school-a",
			want:      true,
		},
		{
			name:      "schooladmin other school",
			principal: &entity.Principal{UserID: "u2", Role: entity.SchoolAdminRole, SchoolID: "school-a"},
			schoolID:  "school-b",
			want:      false,
		},
		{
			name:      "schooladmin without own school",
			principal: &entity.Principal{UserID: "u2", Role: entity.SchoolAdminRole},
			schoolID:  "",
			want:      false,
		},
		{
			name:      "teacher denied",
			principal: &entity.Principal{UserID: "u3", Role: entity.TeacherRole, SchoolID: "school-a"},
			schoolID:  "school-a",
			want:      false,
		},
		{
			name:      "student denied",
			principal: &entity.Principal{UserID: "u4", Role: entity.StudentRole, SchoolID: "school-a"},
			schoolID:  "school-a",
			want:      false,
		},
		{
			name:      "nil principal denied",
			principal: nil,
			schoolID:  "school-a",
			want:      false,
		},
		{
			name:      "unknown role denied",
			principal: &entity.Principal{UserID: "u5", Role: "janitor", SchoolID: "school-a"},
			schoolID:  "school-a",
			want:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, action := range []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete, ActionList} {
				if got := policy.Allow(tt.principal, action, tt.schoolID); got != tt.want {
					t.Errorf("Allow(%s) = %v, want %v", action, got, tt.want)
				}
			}
		})
	}
}

func TestAuthorize(t *testing.T) {
	policy := NewPolicy()

	admin := &entity.Principal{UserID: "u1", Role: entity.SchoolAdminRole, SchoolID: "school-a"}
	if err := policy.Authorize(admin, ActionUpdate, "school-a"); err != nil {
		t.Fatalf("Authorize own school: %v", err)
	}

	err := policy.Authorize(admin, ActionUpdate, "school-b")
	if !errors.Is(err, entity.ErrAccessDenied) {
		t.Fatalf("Authorize other school = %v, want ErrAccessDenied", err)
	}
}

func TestAuthorizeSuperAdmin(t *testing.T) {
	policy := NewPolicy()

	if err := policy.AuthorizeSuperAdmin(&entity.Principal{Role: entity.SuperAdminRole}, ActionDelete); err != nil {
		t.Fatalf("superadmin: %v", err)
	}

	for _, role := range []entity.Role{entity.SchoolAdminRole, entity.TeacherRole, entity.StudentRole} {
		err := policy.AuthorizeSuperAdmin(&entity.Principal{Role: role, SchoolID: "school-a"}, ActionDelete)
		if !errors.Is(err, entity.ErrAccessDenied) {
			t.Errorf("role %s = %v, want ErrAccessDenied", role, err)
		}
	}

	if err := policy.AuthorizeSuperAdmin(nil, ActionRead); !errors.Is(err, entity.ErrAccessDenied) {
		t.Errorf("nil principal = %v, want ErrAccessDenied", err)
	}
}
