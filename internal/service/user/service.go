package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"SchoolDesk/entity"
	"SchoolDesk/internal/lib/sl"
	"SchoolDesk/internal/lib/validate"
	"SchoolDesk/internal/service/access"
)

type Store interface {
	InsertUser(ctx context.Context, user *entity.User) error
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
	GetUserByEmail(ctx context.Context, email string) (*entity.User, error)
	ListUsers(ctx context.Context) ([]entity.User, error)
	UpdateUser(ctx context.Context, id string, patch entity.UserPatch) (*entity.User, error)
	DeleteUser(ctx context.Context, id string) error
}

type SchoolLookup interface {
	GetSchoolByID(ctx context.Context, id string) (*entity.School, error)
}

// Hasher is the external password-hashing capability.
type Hasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenIssuer is the external token-issuing capability used at login.
type TokenIssuer interface {
	IssueToken(ctx context.Context, userID string) (string, error)
}

type Notifier interface {
	Publish(event string, data any)
}

// Service is the user directory.
type Service struct {
	store   Store
	schools SchoolLookup
	hasher  Hasher
	tokens  TokenIssuer
	policy  access.Policy
	events  Notifier
	log     *slog.Logger
}

func NewService(store Store, schools SchoolLookup, hasher Hasher, tokens TokenIssuer, policy access.Policy, logger *slog.Logger) *Service {
	return &Service{
		store:   store,
		schools: schools,
		hasher:  hasher,
		tokens:  tokens,
		policy:  policy,
		log:     logger.With(sl.Module("user-service")),
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

// Register creates a user. Superadmins are never minted here: they come
// from the bootstrap path or from an existing superadmin's role update.
func (s *Service) Register(ctx context.Context, in entity.Registration) (*entity.User, error) {
	if err := validate.Struct(in); err != nil {
		return nil, err
	}
	if !in.Role.Valid() {
		return nil, entity.Validationf("unknown role %q", in.Role)
	}
	if in.Role == entity.SuperAdminRole {
		return nil, fmt.Errorf("%w: cannot self-register as superadmin", entity.ErrAccessDenied)
	}
	if in.Role == entity.SchoolAdminRole && in.SchoolID == "" {
		return nil, entity.Validationf("role %q requires a school", in.Role)
	}

	if in.SchoolID != "" {
		if _, err := s.schools.GetSchoolByID(ctx, in.SchoolID); err != nil {
			return nil, entity.InvalidReferencef("school %q", in.SchoolID)
		}
	}

	if existing, err := s.store.GetUserByEmail(ctx, in.Email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: email already registered", entity.ErrConflict)
	} else if err != nil && !errors.Is(err, entity.ErrNotFound) {
		return nil, err
	}

	digest, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}

	user := entity.NewUser(in.Username, in.Email, digest, in.Role, in.SchoolID)
	if err := s.store.InsertUser(ctx, user); err != nil {
		return nil, err
	}

	s.log.Info("user registered",
		slog.String("id", user.ID),
		slog.String("role", string(user.Role)),
	)
	s.notify("user.created", user)
	return user, nil
}

// Authenticate resolves email+password to {user, token}. Unknown email and
// wrong password are indistinguishable on purpose.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*entity.User, string, error) {
	user, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, entity.ErrNotFound) {
			return nil, "", entity.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		return nil, "", entity.ErrInvalidCredentials
	}

	token, err := s.tokens.IssueToken(ctx, user.ID)
	if err != nil {
		return nil, "", err
	}

	s.log.Info("user authenticated", slog.String("id", user.ID))
	return user, token, nil
}

func (s *Service) List(ctx context.Context, principal *entity.Principal) ([]entity.User, error) {
	if err := s.policy.AuthorizeSuperAdmin(principal, access.ActionList); err != nil {
		return nil, err
	}
	return s.store.ListUsers(ctx)
}

func (s *Service) GetByID(ctx context.Context, principal *entity.Principal, id string) (*entity.User, error) {
	// A user may always read its own record.
	if principal == nil || (principal.UserID != id && principal.Role != entity.SuperAdminRole) {
		return nil, fmt.Errorf("%w: read requires superadmin or self", entity.ErrAccessDenied)
	}

	user, err := s.store.GetUserByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.populateSchool(ctx, user)
	return user, nil
}

func (s *Service) Update(ctx context.Context, principal *entity.Principal, id string, patch entity.UserPatch) (*entity.User, error) {
	if err := s.policy.AuthorizeSuperAdmin(principal, access.ActionUpdate); err != nil {
		return nil, err
	}
	if patch.Empty() {
		return nil, entity.Validationf("empty update")
	}
	if err := validate.Struct(patch); err != nil {
		return nil, err
	}
	if patch.Role != nil && !patch.Role.Valid() {
		return nil, entity.Validationf("unknown role %q", *patch.Role)
	}

	if patch.SchoolID != nil && *patch.SchoolID != "" {
		if _, err := s.schools.GetSchoolByID(ctx, *patch.SchoolID); err != nil {
			return nil, entity.InvalidReferencef("school %q", *patch.SchoolID)
		}
	}

	user, err := s.store.UpdateUser(ctx, id, patch)
	if err != nil {
		return nil, err
	}

	s.log.Info("user updated", slog.String("id", id))
	s.notify("user.updated", user)
	return user, nil
}

func (s *Service) Delete(ctx context.Context, principal *entity.Principal, id string) error {
	if err := s.policy.AuthorizeSuperAdmin(principal, access.ActionDelete); err != nil {
		return err
	}

	if err := s.store.DeleteUser(ctx, id); err != nil {
		return err
	}

	s.log.Info("user deleted", slog.String("id", id))
	s.notify("user.deleted", map[string]string{"id": id})
	return nil
}

func (s *Service) populateSchool(ctx context.Context, user *entity.User) {
	if user == nil || user.SchoolID == "" {
		return
	}
	school, err := s.schools.GetSchoolByID(ctx, user.SchoolID)
	if err != nil {
		s.log.Warn("resolving user school",
			slog.String("user_id", user.ID),
			slog.String("school_id", user.SchoolID),
			sl.Err(err),
		)
		return
	}
	user.School = school
}
