package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/eventcal/calendar-api/internal/application"
	"github.com/eventcal/calendar-api/internal/domain/entity"
	"github.com/eventcal/calendar-api/internal/interface/middleware"
	"github.com/eventcal/calendar-api/pkg/response"
	"github.com/eventcal/calendar-api/pkg/validation"
)

type EventHandler struct {
	Svc    *application.EventService
	Logger *logrus.Logger
}

func NewEventHandler(svc *application.EventService, logger *logrus.Logger) *EventHandler {
	return &EventHandler{Svc: svc, Logger: logger}
}

type eventRequest struct {
	Title       string    `json:"title" binding:"required"`
	Description string    `json:"description" binding:"required"`
	Location    string    `json:"location" binding:"required"`
	Date        time.Time `json:"date" binding:"required"`
	Time        string    `json:"time"`
	FreeSlots   int       `json:"freeSlots" binding:"gte=0"`
	DateRange   string    `json:"dateRange"`
}

type addParticipantRequest struct {
	UserID string `json:"userId" binding:"required,uuid"`
}

func eventView(e *entity.Event) gin.H {
	return gin.H{
		"id":          e.ID,
		"title":       e.Title,
		"description": e.Description,
		"location":    e.Location,
		"date":        e.Date,
		"time":        e.Time,
		"freeSlots":   e.FreeSlots,
		"dateRange":   e.DateRange,
		"ownerId":     e.OwnerID,
		"created_at":  e.CreatedAt,
		"updated_at":  e.UpdatedAt,
	}
}

func (h *EventHandler) input(req eventRequest) application.EventInput {
	return application.EventInput{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		Date:        req.Date,
		Time:        req.Time,
		FreeSlots:   req.FreeSlots,
		DateRange:   req.DateRange,
	}
}

// List GET /api/events
func (h *EventHandler) List(c *gin.Context) {
	events, err := h.Svc.GetAll()
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "No events were found!", nil)
		return
	}
	out := make([]gin.H, 0, len(events))
	for _, e := range events {
		out = append(out, eventView(e))
	}
	response.Success(c, http.StatusOK, out, "events", nil)
}

// Get GET /api/events/:eventId
func (h *EventHandler) Get(c *gin.Context) {
	e, err := h.Svc.GetByID(c.Param("eventId"))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "Event not found!", nil)
		return
	}
	response.Success(c, http.StatusOK, eventView(e), "event", nil)
}

// Create POST /api/events (guarded; the caller becomes the owner)
func (h *EventHandler) Create(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	ownerID := c.GetString(middleware.CtxUserIDKey)
	e, err := h.Svc.Create(c.Request.Context(), ownerID, h.input(req))
	if err != nil {
		response.Error[any](c, http.StatusBadRequest, "failed to create event", nil)
		return
	}
	response.Success(c, http.StatusCreated, eventView(e), "event created", nil)
}

// Update PUT /api/events/:eventId (guarded)
func (h *EventHandler) Update(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	e, err := h.Svc.Update(c.Request.Context(), c.Param("eventId"), h.input(req))
	if err != nil {
		if errors.Is(err, application.ErrEventNotFound) {
			response.Error[any](c, http.StatusNotFound, "Event not found!", nil)
			return
		}
		response.Error[any](c, http.StatusConflict, "failed to update event", nil)
		return
	}
	response.Success(c, http.StatusOK, eventView(e), "event updated", nil)
}

// Delete DELETE /api/events/:eventId (guarded)
func (h *EventHandler) Delete(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), c.Param("eventId")); err != nil {
		response.Error[any](c, http.StatusNotFound, "Event not found!", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// Participants GET /api/events/:eventId/participants
func (h *EventHandler) Participants(c *gin.Context) {
	users, err := h.Svc.Participants(c.Param("eventId"))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "Event not found!", nil)
		return
	}
	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, userView(u))
	}
	response.Success(c, http.StatusOK, out, "participants", nil)
}

// AddParticipant POST /api/events/:eventId/participants (guarded)
func (h *EventHandler) AddParticipant(c *gin.Context) {
	var req addParticipantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error[any](c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
		return
	}
	e, err := h.Svc.AddParticipant(c.Request.Context(), c.Param("eventId"), req.UserID)
	if err != nil {
		switch {
		case errors.Is(err, application.ErrEventNotFound):
			response.Error[any](c, http.StatusNotFound, "Event not found!", nil)
		case errors.Is(err, application.ErrUserNotFound):
			response.Error[any](c, http.StatusNotFound, "User not found!", nil)
		default:
			response.Error[any](c, http.StatusBadRequest, "failed to add participant", nil)
		}
		return
	}
	response.Success(c, http.StatusOK, eventView(e), "participant added", nil)
}

// RemoveParticipant DELETE /api/events/:eventId/participants/:userId (guarded)
func (h *EventHandler) RemoveParticipant(c *gin.Context) {
	err := h.Svc.RemoveParticipant(c.Request.Context(), c.Param("eventId"), c.Param("userId"))
	if err != nil {
		response.Error[any](c, http.StatusNotFound, "Event not found!", nil)
		return
	}
	c.Status(http.StatusNoContent)
}

// Search GET /api/events/search?q=
func (h *EventHandler) Search(c *gin.Context) {
	q := c.Query("q")
	if q == "" {
		response.Error[any](c, http.StatusBadRequest, "missing query", nil)
		return
	}
	size := 10
	res, err := h.Svc.Search(c.Request.Context(), q, size)
	if err != nil {
		response.Error[any](c, http.StatusInternalServerError, "search failed", nil)
		return
	}
	response.Success(c, http.StatusOK, res, "search results", nil)
}
