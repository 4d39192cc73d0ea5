package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/eventcal/calendar-api/internal/domain/entity"
	repo "github.com/eventcal/calendar-api/internal/domain/repository"
	"github.com/eventcal/calendar-api/internal/infrastructure/revocation"
	"github.com/eventcal/calendar-api/pkg/helpers"
)

var (
	// ErrInvalidCredentials is returned for unknown email and for wrong
	// password alike, so a caller cannot probe which accounts exist.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrDuplicateUsername  = errors.New("username already exists")
)

// AuthService owns registration, login, and logout. Tokens are bearer
// credentials; logout revokes the presented token in the blacklist, all
// other tokens for the identity stay valid.
type AuthService struct {
	Repo        repo.UserRepository
	Hasher      *helpers.PasswordHasher
	JWT         *helpers.JWTManager
	Revocations revocation.Store
	Logger      *logrus.Logger
}

func NewAuthService(r repo.UserRepository, hasher *helpers.PasswordHasher, jwt *helpers.JWTManager, revocations revocation.Store, logger *logrus.Logger) *AuthService {
	return &AuthService{Repo: r, Hasher: hasher, JWT: jwt, Revocations: revocations, Logger: logger}
}

// AuthResult is what a successful register/login hands back to the HTTP layer.
type AuthResult struct {
	User        *entity.User
	AccessToken string
	ExpiresAt   time.Time
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
	Address  string
}

// Register creates a credential and immediately issues a token for it.
// The pre-insert lookup gives a friendly error on the common path; the
// unique index on users.email is what actually guarantees at most one of
// two concurrent registrations succeeds.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*AuthResult, error) {
	if existing, err := s.Repo.GetByEmail(in.Email); err == nil && existing != nil {
		return nil, ErrDuplicateEmail
	}

	// Hashing is pure CPU work; no shared lock is held here.
	hash, err := s.Hasher.Hash(in.Password)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).Error("password hashing failed")
		}
		return nil, err
	}

	u := &entity.User{
		Email:        in.Email,
		Username:     in.Username,
		PasswordHash: hash,
		Address:      in.Address,
	}
	if err := s.Repo.Create(u); err != nil {
		switch {
		case errors.Is(err, repo.ErrDuplicateEmail):
			return nil, ErrDuplicateEmail
		case errors.Is(err, repo.ErrDuplicateUsername):
			return nil, ErrDuplicateUsername
		}
		return nil, err
	}

	return s.issue(u)
}

// Login verifies the password and issues a fresh token. Multiple concurrent
// sessions are allowed; earlier tokens are not invalidated.
func (s *AuthService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.Repo.GetByEmail(email)
	if err != nil || u == nil {
		return nil, ErrInvalidCredentials
	}
	if !s.Hasher.Verify(password, u.PasswordHash) {
		return nil, ErrInvalidCredentials
	}
	return s.issue(u)
}

// Logout revokes the presented token. It succeeds regardless of whether the
// token was already revoked or already expired.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.JWT.ParseToken(token)
	if err != nil {
		// Expired or malformed; there is nothing left to revoke.
		return nil
	}
	if err := s.Revocations.Revoke(ctx, token, claims.ExpiresAt.Time); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", claims.UserID).Error("token revocation failed")
		}
		return err
	}
	if s.Logger != nil {
		s.Logger.WithField("user_id", claims.UserID).Debug("token revoked")
	}
	return nil
}

func (s *AuthService) issue(u *entity.User) (*AuthResult, error) {
	token, exp, err := s.JWT.GenerateToken(u.ID, u.Email, u.Username)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return nil, err
	}
	return &AuthResult{User: u, AccessToken: token, ExpiresAt: exp}, nil
}
