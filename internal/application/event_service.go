package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/sirupsen/logrus"

	"github.com/eventcal/calendar-api/internal/domain/entity"
	repo "github.com/eventcal/calendar-api/internal/domain/repository"
	"github.com/eventcal/calendar-api/pkg/helpers"
	"github.com/eventcal/calendar-api/pkg/mailer"
)

var ErrEventNotFound = errors.New("event not found")

// EventService handles event CRUD, the participant list, search indexing,
// and participant notifications. Indexing and notifications are best-effort;
// a failure there never fails the request.
type EventService struct {
	Events        repo.EventRepository
	Users         repo.UserRepository
	Pub           *helpers.RabbitPublisher
	ES            *elasticsearch.Client
	ESEventsIndex string
	Logger        *logrus.Logger
}

func NewEventService(events repo.EventRepository, users repo.UserRepository, pub *helpers.RabbitPublisher, es *elasticsearch.Client, esEventsIndex string, logger *logrus.Logger) *EventService {
	return &EventService{
		Events:        events,
		Users:         users,
		Pub:           pub,
		ES:            es,
		ESEventsIndex: esEventsIndex,
		Logger:        logger,
	}
}

type EventInput struct {
	Title       string
	Description string
	Location    string
	Date        time.Time
	Time        string
	FreeSlots   int
	DateRange   string
}

func (s *EventService) GetAll() ([]*entity.Event, error) {
	return s.Events.GetAll()
}

func (s *EventService) GetByID(id string) (*entity.Event, error) {
	e, err := s.Events.GetByID(id)
	if err != nil || e == nil {
		return nil, ErrEventNotFound
	}
	return e, nil
}

func (s *EventService) Create(ctx context.Context, ownerID string, in EventInput) (*entity.Event, error) {
	e := &entity.Event{
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Date:        in.Date,
		Time:        in.Time,
		FreeSlots:   in.FreeSlots,
		DateRange:   in.DateRange,
		OwnerID:     ownerID,
	}
	if err := s.Events.Create(e); err != nil {
		return nil, err
	}
	_ = s.indexEvent(ctx, e)
	return e, nil
}

func (s *EventService) Update(ctx context.Context, id string, in EventInput) (*entity.Event, error) {
	e, err := s.Events.GetByID(id)
	if err != nil || e == nil {
		return nil, ErrEventNotFound
	}
	e.Title = in.Title
	e.Description = in.Description
	e.Location = in.Location
	e.Date = in.Date
	e.Time = in.Time
	e.FreeSlots = in.FreeSlots
	e.DateRange = in.DateRange
	if err := s.Events.Update(e); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	_ = s.indexEvent(ctx, e)
	return e, nil
}

func (s *EventService) Delete(ctx context.Context, id string) error {
	if err := s.Events.Delete(id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrEventNotFound
		}
		return err
	}
	s.deleteFromIndex(ctx, id)
	return nil
}

func (s *EventService) Participants(eventID string) ([]*entity.User, error) {
	if _, err := s.Events.GetByID(eventID); err != nil {
		return nil, ErrEventNotFound
	}
	return s.Events.ListParticipants(eventID)
}

// AddParticipant joins a user to an event and queues a notification email
// for them. Joining twice is a no-op.
func (s *EventService) AddParticipant(ctx context.Context, eventID, userID string) (*entity.Event, error) {
	e, err := s.Events.GetByID(eventID)
	if err != nil || e == nil {
		return nil, ErrEventNotFound
	}
	u, err := s.Users.GetByID(userID)
	if err != nil || u == nil {
		return nil, ErrUserNotFound
	}
	if err := s.Events.AddParticipant(eventID, userID); err != nil {
		return nil, err
	}

	if s.Pub != nil {
		job := mailer.NotifyJob{
			To:      u.Email,
			Subject: "You joined " + e.Title,
			Text:    fmt.Sprintf("Hi %s,\n\nYou are now a participant of %q at %s on %s.", u.Username, e.Title, e.Location, e.Date.Format("02 January 2006")),
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("event_id", eventID).Warn("notify publish failed")
		}
	}
	return e, nil
}

func (s *EventService) RemoveParticipant(ctx context.Context, eventID, userID string) error {
	if _, err := s.Events.GetByID(eventID); err != nil {
		return ErrEventNotFound
	}
	return s.Events.RemoveParticipant(eventID, userID)
}

func (s *EventService) indexEvent(ctx context.Context, e *entity.Event) error {
	if s.ES == nil || s.ESEventsIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":          e.ID,
		"title":       e.Title,
		"description": e.Description,
		"location":    e.Location,
		"date":        e.Date.Format(time.RFC3339),
		"owner_id":    e.OwnerID,
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESEventsIndex, DocumentID: e.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("event_id", e.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("event_id", e.ID).Warn("es index response error")
	}
	return nil
}

func (s *EventService) deleteFromIndex(ctx context.Context, id string) {
	if s.ES == nil || s.ESEventsIndex == "" {
		return
	}
	req := esapi.DeleteRequest{Index: s.ESEventsIndex, DocumentID: id}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if res, err := req.Do(c, s.ES); err == nil {
		_ = res.Body.Close()
	}
}

// Search performs a multi_match query over title, description, and location.
func (s *EventService) Search(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESEventsIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"title^2", "description", "location"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(s.ES.Search.WithContext(c), s.ES.Search.WithIndex(s.ESEventsIndex), s.ES.Search.WithBody(strings.NewReader(string(b))))
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
