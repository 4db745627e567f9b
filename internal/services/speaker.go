package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"announcehub/internal/domain"
)

type speakerService struct {
	eventRepo      domain.EventRepository
	speakerRepo    domain.SpeakerRepository
	contextTimeout time.Duration
}

func NewSpeakerService(eventRepo domain.EventRepository, speakerRepo domain.SpeakerRepository, timeout time.Duration) domain.SpeakerService {
	return &speakerService{
		eventRepo:      eventRepo,
		speakerRepo:    speakerRepo,
		contextTimeout: timeout,
	}
}

// ownedEvent resolves the event and enforces ownership. Every speaker
// operation goes through it.
func (s *speakerService) ownedEvent(ctx context.Context, eventID, ownerID string) (*domain.Event, error) {
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
	return event, nil
}

func (s *speakerService) AddSpeaker(ctx context.Context, eventID, ownerID string, speaker *domain.Speaker) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.ownedEvent(ctx, eventID, ownerID); err != nil {
		return err
	}

	speaker.Name = strings.TrimSpace(speaker.Name)
	if speaker.Name == "" {
		return fmt.Errorf("speaker name is required: %w", domain.ErrInvalidInput)
	}
	speaker.EventID = eventID
	speaker.CreatedAt = time.Now()
	speaker.UpdatedAt = speaker.CreatedAt

	if err := s.speakerRepo.Create(ctx, speaker); err != nil {
		return fmt.Errorf("create speaker: %w", err)
	}
	return nil
}

func (s *speakerService) GetSpeaker(ctx context.Context, eventID, speakerID, ownerID string) (*domain.Speaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.ownedEvent(ctx, eventID, ownerID); err != nil {
		return nil, err
	}

	speaker, err := s.speakerRepo.GetByID(ctx, speakerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get speaker: %w", err)
	}
	if speaker.EventID != eventID {
		return nil, domain.ErrNotFound
	}
	return speaker, nil
}

func (s *speakerService) ListSpeakers(ctx context.Context, eventID, ownerID string) ([]*domain.Speaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.ownedEvent(ctx, eventID, ownerID); err != nil {
		return nil, err
	}

	speakers, err := s.speakerRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list speakers: %w", err)
	}
	if speakers == nil {
		speakers = []*domain.Speaker{}
	}
	return speakers, nil
}

func (s *speakerService) UpdateSpeaker(ctx context.Context, eventID, speakerID, ownerID string, upd domain.SpeakerUpdate) (*domain.Speaker, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.ownedEvent(ctx, eventID, ownerID); err != nil {
		return nil, err
	}

	speaker, err := s.speakerRepo.GetByID(ctx, speakerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get speaker: %w", err)
	}
	if speaker.EventID != eventID {
		return nil, domain.ErrNotFound
	}
	if upd.Name != nil && strings.TrimSpace(*upd.Name) == "" {
		return nil, fmt.Errorf("speaker name is required: %w", domain.ErrInvalidInput)
	}

	updated, err := s.speakerRepo.Update(ctx, speakerID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update speaker: %w", err)
	}
	return updated, nil
}

func (s *speakerService) RemoveSpeaker(ctx context.Context, eventID, speakerID, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.ownedEvent(ctx, eventID, ownerID); err != nil {
		return err
	}

	speaker, err := s.speakerRepo.GetByID(ctx, speakerID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get speaker: %w", err)
	}
	if speaker.EventID != eventID {
		return domain.ErrNotFound
	}
	if err := s.speakerRepo.Delete(ctx, speakerID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete speaker: %w", err)
	}
	return nil
}
