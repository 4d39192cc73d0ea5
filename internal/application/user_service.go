package application

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/eventcal/calendar-api/internal/domain/entity"
	repo "github.com/eventcal/calendar-api/internal/domain/repository"
)

var ErrUserNotFound = errors.New("user not found")

// UserService handles user reads and profile maintenance. Credentials are
// AuthService's concern; nothing here touches passwords or tokens.
type UserService struct {
	Repo   repo.UserRepository
	Logger *logrus.Logger
}

func NewUserService(r repo.UserRepository, logger *logrus.Logger) *UserService {
	return &UserService{Repo: r, Logger: logger}
}

func (s *UserService) GetAll() ([]*entity.User, error) {
	return s.Repo.GetAll()
}

func (s *UserService) GetByID(id string) (*entity.User, error) {
	u, err := s.Repo.GetByID(id)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

type UpdateUserInput struct {
	Username string
	Address  string
}

func (s *UserService) Update(id string, in UpdateUserInput) (*entity.User, error) {
	u, err := s.Repo.GetByID(id)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if in.Username != "" {
		u.Username = in.Username
	}
	if in.Address != "" {
		u.Address = in.Address
	}
	if err := s.Repo.Update(u); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) Delete(id string) error {
	if err := s.Repo.Delete(id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}
