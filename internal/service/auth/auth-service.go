package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"SchoolDesk/entity"
	"SchoolDesk/internal/lib/sl"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Repository is the slice of the store the auth service needs: token
// persistence plus user lookup for resolving tokens back to principals.
type Repository interface {
	InsertToken(ctx context.Context, token entity.Token) error
	GetToken(ctx context.Context, token string) (*entity.Token, error)
	DeleteToken(ctx context.Context, token string) error
	GetUserByID(ctx context.Context, id string) (*entity.User, error)
}

// Service implements the Hasher and token capabilities the user directory
// and the authenticate middleware depend on.
type Service struct {
	repository Repository
	tokenTTL   time.Duration
	bcryptCost int
	log        *slog.Logger
}

func NewService(repository Repository, tokenTTL time.Duration, bcryptCost int, logger *slog.Logger) *Service {
	if bcryptCost < bcrypt.MinCost || bcryptCost > bcrypt.MaxCost {
		bcryptCost = bcrypt.DefaultCost
	}
	return &Service{
		repository: repository,
		tokenTTL:   tokenTTL,
		bcryptCost: bcryptCost,
		log:        logger.With(sl.Module("auth-service")),
	}
}

func (s *Service) Hash(plaintext string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), s.bcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(digest), nil
}

func (s *Service) Verify(plaintext, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext)) == nil
}

// IssueToken mints an opaque token bound to the user and persists it.
func (s *Service) IssueToken(ctx context.Context, userID string) (string, error) {
	now := time.Now()
	token := entity.Token{
		Token:     uuid.NewString(),
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(s.tokenTTL),
	}

	if err := s.repository.InsertToken(ctx, token); err != nil {
		return "", err
	}

	s.log.Debug("token issued",
		slog.String("user_id", userID),
		sl.Secret("token", token.Token),
	)
	return token.Token, nil
}

// AuthenticateByToken resolves a presented token to a principal. Expired
// tokens are removed on sight; any resolution failure is reported as
// invalid credentials so the caller learns nothing else.
func (s *Service) AuthenticateByToken(ctx context.Context, token string) (*entity.Principal, error) {
	stored, err := s.repository.GetToken(ctx, token)
	if err != nil {
		return nil, entity.ErrInvalidCredentials
	}

	if stored.Expired(time.Now()) {
		if err := s.repository.DeleteToken(ctx, token); err != nil {
			s.log.Warn("deleting expired token", sl.Err(err))
		}
		return nil, entity.ErrInvalidCredentials
	}

	user, err := s.repository.GetUserByID(ctx, stored.UserID)
	if err != nil {
		return nil, entity.ErrInvalidCredentials
	}

	return &entity.Principal{
		UserID:   user.ID,
		Role:     user.Role,
		SchoolID: user.SchoolID,
	}, nil
}

// RevokeToken invalidates a previously issued token (logout).
func (s *Service) RevokeToken(ctx context.Context, token string) error {
	return s.repository.DeleteToken(ctx, token)
}
