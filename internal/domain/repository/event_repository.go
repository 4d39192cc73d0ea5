package repository

import "github.com/eventcal/calendar-api/internal/domain/entity"

// EventRepository defines the interface for event-related database operations.
type EventRepository interface {
	Create(e *entity.Event) error
	GetByID(id string) (*entity.Event, error)
	GetAll() ([]*entity.Event, error)
	Update(e *entity.Event) error
	Delete(id string) error

	ListParticipants(eventID string) ([]*entity.User, error)
	AddParticipant(eventID, userID string) error
	RemoveParticipant(eventID, userID string) error
}
