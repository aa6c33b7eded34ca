// Package registration implements capacity lookups and registration
// submissions on top of a row store.
//
// Capacity is checked and rows are appended in two separate store round
// trips. With SerializeSubmissions the pair runs under a per-table mutex,
// which keeps a single process within the limit; several processes writing
// to the same store can still overshoot it.
package registration

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gdg-garage/event-registration-api/internal/catalog"
	"github.com/gdg-garage/event-registration-api/internal/models"
	"github.com/gdg-garage/event-registration-api/internal/rowstore"
	"go.uber.org/zap"
)

type Notifier interface {
	NotifyRegistration(ctx context.Context, event catalog.Event, registration models.Registration) error
}

type Options struct {
	// RegistrationsOpen is the global gate; when false every submission is
	// rejected before anything else is checked.
	RegistrationsOpen bool
	RequireEmail      bool
	// SerializeSubmissions holds a per-table lock across the capacity check
	// and the append.
	SerializeSubmissions bool
}

// Snapshot is the capacity of an event at the time it was computed.
type Snapshot struct {
	EventID    string
	Registered int
	Limit      int
	Full       bool
}

// Submission is the participant payload. For team events Phone and
// RollNumber may be comma-separated lists aligned with MemberName, unless
// Members is given.
type Submission struct {
	EventID    string
	Name       string
	Email      string
	Phone      string
	RollNumber string
	TeamID     string
	MemberName string
	Members    []models.Member
}

type Result struct {
	Message           string
	CommunicationLink string
	Registration      models.Registration
}

type Service struct {
	catalog  *catalog.Catalog
	store    rowstore.Store
	notifier Notifier
	opts     Options
	logger   *zap.Logger
	locks    eventLocks
	now      func() time.Time
}

// NewService wires the service. notifier may be nil.
func NewService(cat *catalog.Catalog, store rowstore.Store, notifier Notifier, opts Options, logger *zap.Logger) *Service {
	return &Service{
		catalog:  cat,
		store:    store,
		notifier: notifier,
		opts:     opts,
		logger:   logger,
		now:      time.Now,
	}
}

// Capacity reports how many registrations (or teams, for team events) an
// event has against its limit. It never writes.
func (s *Service) Capacity(ctx context.Context, eventID string) (Snapshot, error) {
	event, ok := s.catalog.Lookup(eventID)
	if !ok {
		return Snapshot{}, newError(ErrInvalidEvent, "Invalid event ID", nil)
	}
	return s.snapshot(ctx, event)
}

func (s *Service) snapshot(ctx context.Context, event catalog.Event) (Snapshot, error) {
	var (
		registered int
		err        error
	)
	if event.IsTeam() {
		registered, err = s.store.DistinctTeamCount(ctx, event.Table)
	} else {
		registered, err = s.store.RowCount(ctx, event.Table)
	}
	if err != nil {
		s.logger.Error("capacity lookup failed", zap.String("event", event.ID), zap.Error(err))
		return Snapshot{}, newError(ErrStoreUnavailable, "Server error. Please try again later.", err)
	}

	snap := Snapshot{
		EventID:    event.ID,
		Registered: registered,
		Limit:      event.Limit,
		Full:       registered >= event.Limit,
	}
	s.logger.Debug("capacity",
		zap.String("event", event.ID),
		zap.Int("registered", snap.Registered),
		zap.Int("limit", snap.Limit),
	)
	return snap, nil
}

// Submit validates sub, re-checks capacity and appends the registration.
func (s *Service) Submit(ctx context.Context, sub Submission) (*Result, error) {
	if !s.opts.RegistrationsOpen {
		return nil, newError(ErrRegistrationsClosed, "Registrations are currently closed.", nil)
	}

	event, ok := s.catalog.Lookup(sub.EventID)
	if !ok {
		return nil, newError(ErrInvalidEvent, "Invalid event ID", nil)
	}

	reg, err := s.buildRegistration(event, sub)
	if err != nil {
		return nil, err
	}

	if s.opts.SerializeSubmissions {
		unlock := s.locks.lock(event.Table)
		defer unlock()
	}

	snap, err := s.snapshot(ctx, event)
	if err != nil {
		return nil, err
	}
	if snap.Full {
		s.logger.Info("registration rejected, event full",
			zap.String("event", event.ID),
			zap.Int("registered", snap.Registered),
			zap.Int("limit", snap.Limit),
		)
		unit := "registrations"
		if event.IsTeam() {
			unit = "teams"
		}
		return nil, newError(ErrCapacityExceeded,
			fmt.Sprintf("Sorry, this event has reached its capacity limit of %d %s.", snap.Limit, unit), nil)
	}

	if err := s.persist(ctx, event, reg); err != nil {
		return nil, newError(ErrStoreUnavailable, "Server error. Please try again later.", err)
	}

	s.logger.Info("registration accepted",
		zap.String("event", event.ID),
		zap.String("team", reg.TeamID),
		zap.Int("members", len(reg.Members)),
	)

	if s.notifier != nil {
		if err := s.notifier.NotifyRegistration(ctx, event, reg); err != nil {
			s.logger.Warn("registration notification failed", zap.String("event", event.ID), zap.Error(err))
		}
	}

	return &Result{
		Message:           "Registered successfully!",
		CommunicationLink: event.CommunicationLink,
		Registration:      reg,
	}, nil
}

func (s *Service) buildRegistration(event catalog.Event, sub Submission) (models.Registration, error) {
	reg := models.Registration{
		Timestamp: s.now(),
		EventID:   event.ID,
		Email:     strings.TrimSpace(sub.Email),
	}
	if s.opts.RequireEmail && reg.Email == "" {
		return reg, newError(ErrInvalidPayload, "Missing required field: email", nil)
	}

	if event.IsTeam() {
		reg.TeamID = strings.TrimSpace(sub.TeamID)
		if len(sub.Members) > 0 {
			reg.Members = trimMembers(sub.Members)
		} else {
			reg.Members = membersFromLists(sub.MemberName, sub.RollNumber, sub.Phone)
		}
		if reg.TeamID == "" {
			return reg, newError(ErrInvalidPayload, "Missing required field: teamId", nil)
		}
		if !hasMemberName(reg.Members) {
			return reg, newError(ErrInvalidPayload, "At least one team member name is required", nil)
		}
		return reg, nil
	}

	reg.Name = strings.TrimSpace(sub.Name)
	reg.Phone = strings.TrimSpace(sub.Phone)
	reg.RollNumber = strings.TrimSpace(sub.RollNumber)
	if reg.Name == "" {
		return reg, newError(ErrInvalidPayload, "Missing required field: name", nil)
	}
	return reg, nil
}

func (s *Service) persist(ctx context.Context, event catalog.Event, reg models.Registration) error {
	if !event.IsTeam() {
		return s.store.AppendRow(ctx, event.Table, soloRow(reg))
	}

	rows := teamRows(reg)
	if batch, ok := s.store.(rowstore.BatchAppender); ok {
		return batch.AppendRows(ctx, event.Table, rows)
	}

	// Row by row: a failure part way leaves the earlier members written.
	for i, row := range rows {
		if err := s.store.AppendRow(ctx, event.Table, row); err != nil {
			s.logger.Error("team registration partially written",
				zap.String("event", event.ID),
				zap.String("team", reg.TeamID),
				zap.Int("written", i),
				zap.Int("total", len(rows)),
				zap.Error(err),
			)
			return fmt.Errorf("append member %d of %d: %w", i+1, len(rows), err)
		}
	}
	return nil
}

func trimMembers(members []models.Member) []models.Member {
	out := make([]models.Member, len(members))
	for i, m := range members {
		out[i] = models.Member{
			Name:       strings.TrimSpace(m.Name),
			RollNumber: strings.TrimSpace(m.RollNumber),
			Phone:      strings.TrimSpace(m.Phone),
		}
	}
	return out
}

func hasMemberName(members []models.Member) bool {
	for _, m := range members {
		if m.Name != "" {
			return true
		}
	}
	return false
}
