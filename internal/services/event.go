package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"announcehub/internal/domain"
)

type eventService struct {
	eventRepo      domain.EventRepository
	speakerRepo    domain.SpeakerRepository
	contextTimeout time.Duration
}

func NewEventService(eventRepo domain.EventRepository, speakerRepo domain.SpeakerRepository, timeout time.Duration) domain.EventService {
	return &eventService{
		eventRepo:      eventRepo,
		speakerRepo:    speakerRepo,
		contextTimeout: timeout,
	}
}

func (s *eventService) CreateEvent(ctx context.Context, event *domain.Event) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if event.OwnerID == "" {
		return fmt.Errorf("event owner is required")
	}
	if event.Name == "" {
		return fmt.Errorf("event name is required: %w", domain.ErrInvalidInput)
	}
	if event.Timezone == "" {
		event.Timezone = "UTC"
	}
	if err := validateEventSettings(event.Timezone, event.DripDaysBefore, event.DripStartTime); err != nil {
		return err
	}

	event.CreatedAt = time.Now()
	event.UpdatedAt = time.Now()

	return s.eventRepo.Create(ctx, event)
}

func (s *eventService) GetEventByID(ctx context.Context, eventID string) (*domain.Event, []*domain.Speaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get event: %w", err)
	}

	speakers, err := s.speakerRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("list speakers: %w", err)
	}
	if speakers == nil {
		speakers = []*domain.Speaker{}
	}

	return event, speakers, nil
}

func (s *eventService) ListEventsByOwner(ctx context.Context, ownerID string) ([]*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	events, err := s.eventRepo.ListByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	if events == nil {
		events = []*domain.Event{}
	}
	return events, nil
}

func (s *eventService) UpdateEvent(ctx context.Context, eventID, ownerID string, upd domain.EventUpdate) (*domain.Event, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}

	tz := event.Timezone
	if upd.Timezone != nil {
		tz = *upd.Timezone
	}
	days := event.DripDaysBefore
	if upd.DripDaysBefore != nil {
		days = upd.DripDaysBefore
	}
	startTime := event.DripStartTime
	if upd.DripStartTime != nil {
		startTime = upd.DripStartTime
	}
	if err := validateEventSettings(tz, days, startTime); err != nil {
		return nil, err
	}

	updated, err := s.eventRepo.Update(ctx, eventID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *eventService) DeleteEvent(ctx context.Context, eventID string, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != ownerID {
		return domain.ErrForbidden
	}
	if err := s.eventRepo.Delete(ctx, eventID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete event: %w", err)
	}
	return nil
}

// validateEventSettings checks the timezone and drip defaults an event may
// carry. Zero values are fine; present values must parse.
func validateEventSettings(timezone string, dripDaysBefore *int, dripStartTime *string) error {
	if timezone != "" {
		if _, err := time.LoadLocation(timezone); err != nil {
			return fmt.Errorf("unknown timezone %q: %w", timezone, domain.ErrInvalidInput)
		}
	}
	if dripDaysBefore != nil && *dripDaysBefore <= 0 {
		return fmt.Errorf("drip days before event must be positive: %w", domain.ErrInvalidInput)
	}
	if dripStartTime != nil {
		if !validClock(*dripStartTime) {
			return fmt.Errorf("invalid drip start time %q: %w", *dripStartTime, domain.ErrInvalidInput)
		}
	}
	return nil
}

func validClock(s string) bool {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if _, err := time.Parse(layout, s); err == nil {
			return true
		}
	}
	return false
}
