package access

import (
	"fmt"

	"SchoolDesk/entity"
)

// Action is the closed set of administrative operations the policy rules on.
type Action string

const (
	ActionCreate Action = "create"
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionList   Action = "list"
)

// Policy decides whether a principal may act on a record owned by a given
// school. It holds no state and performs no I/O.
type Policy struct{}

func NewPolicy() Policy {
	return Policy{}
}

// Allow implements the tenancy rules: superadmin acts everywhere,
// schooladmin only inside its own school, everyone else nowhere. A
// schooladmin without a school of its own is denied outright.
func (Policy) Allow(p *entity.Principal, _ Action, schoolID string) bool {
	if p == nil {
		return false
	}
	switch p.Role {
	case entity.SuperAdminRole:
		return true
	case entity.SchoolAdminRole:
		return p.SchoolID != "" && p.SchoolID == schoolID
	default:
		return false
	}
}

// Authorize is Allow with a typed denial for callers that propagate errors.
func (pl Policy) Authorize(p *entity.Principal, action Action, schoolID string) error {
	if !pl.Allow(p, action, schoolID) {
		return fmt.Errorf("%w: %s on school %q", entity.ErrAccessDenied, action, schoolID)
	}
	return nil
}

// AuthorizeSuperAdmin gates operations on tenancy roots (schools, users)
// that no school-scoped role may perform.
func (Policy) AuthorizeSuperAdmin(p *entity.Principal, action Action) error {
	if p == nil || p.Role != entity.SuperAdminRole {
		return fmt.Errorf("%w: %s requires superadmin", entity.ErrAccessDenied, action)
	}
	return nil
}
