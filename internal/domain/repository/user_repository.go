package repository

import (
	"errors"

	"github.com/eventcal/calendar-api/internal/domain/entity"
)

var (
	ErrNotFound = errors.New("not found")

	// ErrDuplicateEmail is returned by Create when another user already holds
	// the email. The check rides on the database unique index, so two
	// concurrent registrations with the same email can never both succeed.
	ErrDuplicateEmail    = errors.New("duplicate email")
	ErrDuplicateUsername = errors.New("duplicate username")
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	Create(u *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
	GetAll() ([]*entity.User, error)
	Update(u *entity.User) error
	Delete(id string) error
}
