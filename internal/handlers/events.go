package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/event-registration-api/internal/catalog"
	"github.com/gdg-garage/event-registration-api/internal/registration"
	"go.uber.org/zap"
)

type EventsHandler struct {
	catalog *catalog.Catalog
	service *registration.Service
	logger  *zap.Logger
}

func NewEventsHandler(cat *catalog.Catalog, service *registration.Service, logger *zap.Logger) *EventsHandler {
	return &EventsHandler{catalog: cat, service: service, logger: logger}
}

type EventSummary struct {
	EventID      string          `json:"eventId"`
	Type         string          `json:"type" enum:"solo,team"`
	TeamSize     int             `json:"teamSize,omitempty"`
	Limit        int             `json:"limit"`
	Title        string          `json:"title"`
	Subtitle     string          `json:"subtitle,omitempty"`
	Duration     string          `json:"duration,omitempty"`
	Venue        string          `json:"venue,omitempty"`
	Rounds       []catalog.Round `json:"rounds,omitempty"`
	Rules        []string        `json:"rules,omitempty"`
	WhatsappLink string          `json:"whatsappLink,omitempty"`
}

func summarize(e catalog.Event) EventSummary {
	return EventSummary{
		EventID:      e.ID,
		Type:         string(e.Type),
		TeamSize:     e.TeamSize,
		Limit:        e.Limit,
		Title:        e.Title,
		Subtitle:     e.Subtitle,
		Duration:     e.Duration,
		Venue:        e.Venue,
		Rounds:       e.Rounds,
		Rules:        e.Rules,
		WhatsappLink: e.CommunicationLink,
	}
}

type ListEventsResponse struct {
	Body []EventSummary
}

func (h *EventsHandler) HandleList(ctx context.Context, input *struct{}) (*ListEventsResponse, error) {
	events := h.catalog.Events()
	res := &ListEventsResponse{Body: make([]EventSummary, 0, len(events))}
	for _, e := range events {
		res.Body = append(res.Body, summarize(e))
	}
	return res, nil
}

type EventRequest struct {
	EventID string `path:"eventId" doc:"Event identifier"`
}

type EventResponse struct {
	Body EventSummary
}

func (h *EventsHandler) HandleGet(ctx context.Context, input *EventRequest) (*EventResponse, error) {
	e, ok := h.catalog.Lookup(input.EventID)
	if !ok {
		return nil, huma.Error400BadRequest("Invalid event ID")
	}
	return &EventResponse{Body: summarize(e)}, nil
}

type CapacityResponse struct {
	Body struct {
		EventID    string `json:"eventId"`
		Registered int    `json:"registered"`
		Limit      int    `json:"limit"`
		Full       bool   `json:"full"`
	}
}

func (h *EventsHandler) HandleCapacity(ctx context.Context, input *EventRequest) (*CapacityResponse, error) {
	snap, err := h.service.Capacity(ctx, input.EventID)
	if err != nil {
		h.logger.Warn("capacity request failed", zap.String("event", input.EventID), zap.Error(err))
		return nil, httpError(err)
	}

	res := &CapacityResponse{}
	res.Body.EventID = snap.EventID
	res.Body.Registered = snap.Registered
	res.Body.Limit = snap.Limit
	res.Body.Full = snap.Full
	return res, nil
}
