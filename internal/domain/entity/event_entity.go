package entity

import (
	"time"
)

// Event is a calendar entry owned by a user. Participants are kept in a
// join table and loaded separately.
type Event struct {
	ID          string
	Title       string
	Description string
	Location    string
	Date        time.Time
	Time        string
	FreeSlots   int
	DateRange   string
	OwnerID     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
