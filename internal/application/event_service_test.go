package application

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventcal/calendar-api/internal/domain/entity"
	repo "github.com/eventcal/calendar-api/internal/domain/repository"
)

type fakeEventRepo struct {
	mu           sync.Mutex
	byID         map[string]*entity.Event
	participants map[string][]string
	users        *fakeUserRepo
	nextID       int
}

func newFakeEventRepo(users *fakeUserRepo) *fakeEventRepo {
	return &fakeEventRepo{
		byID:         make(map[string]*entity.Event),
		participants: make(map[string][]string),
		users:        users,
	}
}

func (f *fakeEventRepo) Create(e *entity.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	e.ID = fmt.Sprintf("event-%d", f.nextID)
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEventRepo) GetByID(id string) (*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if e, ok := f.byID[id]; ok {
		cp := *e
		return &cp, nil
	}
	return nil, repo.ErrNotFound
}

func (f *fakeEventRepo) GetAll() ([]*entity.Event, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*entity.Event, 0, len(f.byID))
	for _, e := range f.byID {
		cp := *e
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeEventRepo) Update(e *entity.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[e.ID]; !ok {
		return repo.ErrNotFound
	}
	cp := *e
	f.byID[e.ID] = &cp
	return nil
}

func (f *fakeEventRepo) Delete(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return repo.ErrNotFound
	}
	delete(f.byID, id)
	delete(f.participants, id)
	return nil
}

func (f *fakeEventRepo) ListParticipants(eventID string) ([]*entity.User, error) {
	f.mu.Lock()
	ids := append([]string(nil), f.participants[eventID]...)
	f.mu.Unlock()

	out := make([]*entity.User, 0, len(ids))
	for _, id := range ids {
		u, err := f.users.GetByID(id)
		if err != nil {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeEventRepo) AddParticipant(eventID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range f.participants[eventID] {
		if id == userID {
			return nil
		}
	}
	f.participants[eventID] = append(f.participants[eventID], userID)
	return nil
}

func (f *fakeEventRepo) RemoveParticipant(eventID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := f.participants[eventID]
	for i, id := range ids {
		if id == userID {
			f.participants[eventID] = append(ids[:i], ids[i+1:]...)
			return nil
		}
	}
	return nil
}

var _ repo.EventRepository = (*fakeEventRepo)(nil)

func newTestEventService() (*EventService, *fakeUserRepo) {
	users := newFakeUserRepo()
	events := newFakeEventRepo(users)
	// No publisher and no search client; both paths are optional.
	return NewEventService(events, users, nil, nil, "", quietLogger()), users
}

func seedUser(t *testing.T, users *fakeUserRepo, username, email string) *entity.User {
	t.Helper()
	u := &entity.User{Username: username, Email: email, PasswordHash: "x"}
	require.NoError(t, users.Create(u))
	return u
}

func TestEventService_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestEventService()
	owner := seedUser(t, users, "owner_01", "o@x.com")

	e, err := svc.Create(ctx, owner.ID, EventInput{
		Title:     "Team offsite",
		Location:  "Berlin",
		Date:      time.Date(2026, 9, 10, 0, 0, 0, 0, time.UTC),
		Time:      "10:00",
		FreeSlots: 20,
	})
	require.NoError(t, err)
	require.NotEmpty(t, e.ID)
	assert.Equal(t, owner.ID, e.OwnerID)

	got, err := svc.GetByID(e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Team offsite", got.Title)

	_, err = svc.GetByID("missing")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestEventService_UpdateAndDelete(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestEventService()
	owner := seedUser(t, users, "owner_01", "o@x.com")

	e, err := svc.Create(ctx, owner.ID, EventInput{Title: "Before", Location: "Berlin", Date: time.Now(), FreeSlots: 5})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, e.ID, EventInput{Title: "After", Location: "Hamburg", Date: e.Date, FreeSlots: 3})
	require.NoError(t, err)
	assert.Equal(t, "After", updated.Title)
	assert.Equal(t, "Hamburg", updated.Location)

	_, err = svc.Update(ctx, "missing", EventInput{Title: "X"})
	assert.ErrorIs(t, err, ErrEventNotFound)

	require.NoError(t, svc.Delete(ctx, e.ID))
	_, err = svc.GetByID(e.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, e.ID), ErrEventNotFound)
}

func TestEventService_Participants(t *testing.T) {
	ctx := context.Background()
	svc, users := newTestEventService()
	owner := seedUser(t, users, "owner_01", "o@x.com")
	guest := seedUser(t, users, "guest_01", "g@x.com")

	e, err := svc.Create(ctx, owner.ID, EventInput{Title: "Meetup", Location: "Berlin", Date: time.Now(), FreeSlots: 10})
	require.NoError(t, err)

	_, err = svc.AddParticipant(ctx, e.ID, guest.ID)
	require.NoError(t, err)

	// Joining twice does not duplicate the entry.
	_, err = svc.AddParticipant(ctx, e.ID, guest.ID)
	require.NoError(t, err)

	list, err := svc.Participants(e.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "g@x.com", list[0].Email)

	_, err = svc.AddParticipant(ctx, "missing", guest.ID)
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = svc.AddParticipant(ctx, e.ID, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)

	require.NoError(t, svc.RemoveParticipant(ctx, e.ID, guest.ID))
	list, err = svc.Participants(e.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	assert.ErrorIs(t, svc.RemoveParticipant(ctx, "missing", guest.ID), ErrEventNotFound)
}
