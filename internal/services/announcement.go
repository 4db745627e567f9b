package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"announcehub/internal/domain"
)

type announcementService struct {
	eventRepo         domain.EventRepository
	speakerRepo       domain.SpeakerRepository
	announcementRepo  domain.AnnouncementRepository
	socialAccountRepo domain.SocialAccountRepository
	copyGen           domain.CopyGenerator
	publishers        map[domain.Platform]domain.SocialPublisher
	contextTimeout    time.Duration
}

func NewAnnouncementService(eventRepo domain.EventRepository,
	speakerRepo domain.SpeakerRepository,
	announcementRepo domain.AnnouncementRepository,
	socialAccountRepo domain.SocialAccountRepository,
	copyGen domain.CopyGenerator,
	publishers map[domain.Platform]domain.SocialPublisher,
	timeout time.Duration,
) domain.AnnouncementService {
	return &announcementService{
		eventRepo:         eventRepo,
		speakerRepo:       speakerRepo,
		announcementRepo:  announcementRepo,
		socialAccountRepo: socialAccountRepo,
		copyGen:           copyGen,
		publishers:        publishers,
		contextTimeout:    timeout,
	}
}

func (s *announcementService) ownedEvent(ctx context.Context, eventID, ownerID string) (*domain.Event, error) {
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

// concretePlatforms expands the "all" wildcard, validates the rest and
// dedupes, keeping a fixed order.
func concretePlatforms(platforms []domain.Platform) ([]domain.Platform, error) {
	if len(platforms) == 0 {
		platforms = []domain.Platform{domain.PlatformAll}
	}
	seen := make(map[domain.Platform]struct{})
	var out []domain.Platform
	add := func(p domain.Platform) {
		if _, ok := seen[p]; ok {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for _, p := range platforms {
		if !domain.ValidPlatform(p) {
			return nil, fmt.Errorf("unknown platform %q: %w", p, domain.ErrInvalidInput)
		}
		if p == domain.PlatformAll {
			add(domain.PlatformLinkedIn)
			add(domain.PlatformTwitter)
			add(domain.PlatformInstagram)
			continue
		}
		add(p)
	}
	return out, nil
}

func maxBodyLength(platform domain.Platform) int {
	if platform == domain.PlatformTwitter {
		return domain.TwitterMaxLength
	}
	return domain.MaxAnnouncementLength
}

func (s *announcementService) GenerateAnnouncements(ctx context.Context, eventID, ownerID string, platforms []domain.Platform) ([]*domain.Announcement, []string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.ownedEvent(ctx, eventID, ownerID)
	if err != nil {
		return nil, nil, err
	}
	targets, err := concretePlatforms(platforms)
	if err != nil {
		return nil, nil, err
	}

	speakers, err := s.speakerRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, nil, fmt.Errorf("list speakers: %w", err)
	}
	if len(speakers) == 0 {
		return nil, nil, domain.ErrNoSpeakers
	}

	description := ""
	if event.Description != nil {
		description = *event.Description
	}

	var created []*domain.Announcement
	var failed []string
	for _, speaker := range speakers {
		for _, platform := range targets {
			// One announcement per speaker and platform; regeneration is an
			// explicit delete-then-generate.
			if _, err := s.announcementRepo.GetBySpeakerAndPlatform(ctx, speaker.ID, platform); err == nil {
				continue
			} else if !errors.Is(err, domain.ErrNotFound) {
				failed = append(failed, fmt.Sprintf("%s (%s): %v", speaker.Name, platform, err))
				continue
			}

			body, err := s.copyGen.Generate(ctx, domain.CopyRequest{
				EventName:        event.Name,
				EventDescription: description,
				EventDate:        event.StartDate,
				Platform:         platform,
				SpeakerName:      speaker.Name,
				SpeakerTitle:     speaker.Title,
				SpeakerCompany:   speaker.Company,
				SpeakerBio:       speaker.Bio,
				MaxLength:        maxBodyLength(platform),
			})
			if err != nil {
				failed = append(failed, fmt.Sprintf("%s (%s): %v", speaker.Name, platform, err))
				continue
			}

			var imageURL *string
			if speaker.HeadshotURL != "" {
				u := speaker.HeadshotURL
				imageURL = &u
			}
			announcement := domain.NewAnnouncement(eventID, speaker.ID, platform, body, imageURL, time.Now())
			if err := s.announcementRepo.Create(ctx, announcement); err != nil {
				failed = append(failed, fmt.Sprintf("%s (%s): %v", speaker.Name, platform, err))
				continue
			}
			created = append(created, announcement)
		}
	}
	if created == nil {
		created = []*domain.Announcement{}
	}
	return created, failed, nil
}

func (s *announcementService) ListAnnouncements(ctx context.Context, eventID, ownerID, speakerID string, platform domain.Platform) ([]*domain.Announcement, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, err := s.ownedEvent(ctx, eventID, ownerID); err != nil {
		return nil, err
	}
	if platform != "" && !domain.ValidPlatform(platform) {
		return nil, fmt.Errorf("unknown platform %q: %w", platform, domain.ErrInvalidInput)
	}

	announcements, err := s.announcementRepo.ListByEventID(ctx, eventID, speakerID, platform)
	if err != nil {
		return nil, fmt.Errorf("list announcements: %w", err)
	}
	if announcements == nil {
		announcements = []*domain.Announcement{}
	}
	return announcements, nil
}

// ownedAnnouncement resolves the announcement and checks that the caller
// owns its event.
func (s *announcementService) ownedAnnouncement(ctx context.Context, announcementID, ownerID string) (*domain.Announcement, *domain.Event, error) {
	announcement, err := s.announcementRepo.GetByID(ctx, announcementID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, nil, domain.ErrNotFound
		}
		return nil, nil, fmt.Errorf("get announcement: %w", err)
	}
	event, err := s.ownedEvent(ctx, announcement.EventID, ownerID)
	if err != nil {
		return nil, nil, err
	}
	return announcement, event, nil
}

func (s *announcementService) UpdateAnnouncement(ctx context.Context, announcementID, ownerID string, upd domain.AnnouncementUpdate) (*domain.Announcement, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	announcement, _, err := s.ownedAnnouncement(ctx, announcementID, ownerID)
	if err != nil {
		return nil, err
	}
	if announcement.IsPublished() {
		return nil, domain.ErrAlreadyPublished
	}
	if upd.Body != nil {
		if *upd.Body == "" {
			return nil, fmt.Errorf("announcement body is required: %w", domain.ErrInvalidInput)
		}
		if len(*upd.Body) > maxBodyLength(announcement.Platform) {
			return nil, fmt.Errorf("announcement body exceeds %d characters: %w", maxBodyLength(announcement.Platform), domain.ErrInvalidInput)
		}
	}

	updated, err := s.announcementRepo.Update(ctx, announcementID, upd)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("update announcement: %w", err)
	}
	return updated, nil
}

func (s *announcementService) DeleteAnnouncement(ctx context.Context, announcementID, ownerID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	if _, _, err := s.ownedAnnouncement(ctx, announcementID, ownerID); err != nil {
		return err
	}
	if err := s.announcementRepo.Delete(ctx, announcementID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("delete announcement: %w", err)
	}
	return nil
}

func (s *announcementService) PublishAnnouncement(ctx context.Context, announcementID, ownerID string) (*domain.Announcement, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	announcement, _, err := s.ownedAnnouncement(ctx, announcementID, ownerID)
	if err != nil {
		return nil, err
	}
	if announcement.IsPublished() {
		return nil, domain.ErrAlreadyPublished
	}

	result, err := s.pushToPlatform(ctx, ownerID, announcement.Platform, announcement.Body, announcement.ImageURL)
	if err != nil {
		return nil, err
	}

	published, err := s.announcementRepo.MarkPublished(ctx, announcementID, result.PostURL, result.PostedAt)
	if err != nil {
		return nil, fmt.Errorf("mark announcement published: %w", err)
	}
	return published, nil
}

// pushToPlatform looks up the caller's connection for the platform and hands
// the post to the matching publisher.
func (s *announcementService) pushToPlatform(ctx context.Context, ownerID string, platform domain.Platform, body string, imageURL *string) (*domain.PublishResult, error) {
	account, err := s.socialAccountRepo.GetByUserAndPlatform(ctx, ownerID, platform)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", platform, domain.ErrNotConnected)
		}
		return nil, fmt.Errorf("get social account: %w", err)
	}
	if account.IsExpired(time.Now()) {
		return nil, fmt.Errorf("%s token expired: %w", platform, domain.ErrNotConnected)
	}
	publisher, ok := s.publishers[platform]
	if !ok {
		return nil, fmt.Errorf("no publisher for platform %q", platform)
	}

	result, err := publisher.Publish(ctx, domain.SocialPost{
		Text:        body,
		ImageURL:    imageURL,
		AccessToken: account.AccessToken,
		Handle:      account.Handle,
	})
	if err != nil {
		return nil, fmt.Errorf("publish to %s: %w", platform, err)
	}
	return result, nil
}
