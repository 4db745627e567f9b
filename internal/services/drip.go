package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"announcehub/internal/domain"
	"announcehub/internal/scheduling"
)

type dripService struct {
	eventRepo         domain.EventRepository
	speakerRepo       domain.SpeakerRepository
	postRepo          domain.ScheduledPostRepository
	announcementRepo  domain.AnnouncementRepository
	socialAccountRepo domain.SocialAccountRepository
	publishers        map[domain.Platform]domain.SocialPublisher
	userRepo          domain.UserRepository
	emailService      domain.EmailService
	contextTimeout    time.Duration
}

func NewDripService(eventRepo domain.EventRepository,
	speakerRepo domain.SpeakerRepository,
	postRepo domain.ScheduledPostRepository,
	announcementRepo domain.AnnouncementRepository,
	socialAccountRepo domain.SocialAccountRepository,
	publishers map[domain.Platform]domain.SocialPublisher,
	userRepo domain.UserRepository,
	emailService domain.EmailService,
	timeout time.Duration,
) domain.ScheduleService {
	return &dripService{
		eventRepo:         eventRepo,
		speakerRepo:       speakerRepo,
		postRepo:          postRepo,
		announcementRepo:  announcementRepo,
		socialAccountRepo: socialAccountRepo,
		publishers:        publishers,
		userRepo:          userRepo,
		emailService:      emailService,
		contextTimeout:    timeout,
	}
}

// planInputs is everything a scheduling run needs, loaded and validated up
// front so preview and commit cannot drift apart.
type planInputs struct {
	event    *domain.Event
	speakers []*domain.Speaker
	existing []*domain.ScheduledPost
	cfg      domain.DripConfig
}

func (s *dripService) loadPlanInputs(ctx context.Context, eventID, ownerID string, req domain.ScheduleRequest) (*planInputs, error) {
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
	if event.StartDate == nil {
		return nil, fmt.Errorf("event has no start date: %w", domain.ErrInvalidInput)
	}
	if req.DaysBeforeEvent != nil && *req.DaysBeforeEvent <= 0 {
		return nil, fmt.Errorf("days before event must be positive: %w", domain.ErrInvalidInput)
	}
	if req.Platform != "" && !domain.ValidPlatform(req.Platform) {
		return nil, fmt.Errorf("unknown platform %q: %w", req.Platform, domain.ErrInvalidInput)
	}

	speakers, err := s.speakerRepo.ListByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list speakers: %w", err)
	}
	if len(speakers) == 0 {
		return nil, domain.ErrNoSpeakers
	}

	existing, err := s.postRepo.ListActiveByEventID(ctx, eventID)
	if err != nil {
		return nil, fmt.Errorf("list scheduled posts: %w", err)
	}

	return &planInputs{
		event:    event,
		speakers: speakers,
		existing: existing,
		cfg:      domain.ResolveDripConfig(event, req.DaysBeforeEvent, req.StartTime, req.AvoidWeekends, req.Platform),
	}, nil
}

func conflictWarnings(proposals []*domain.ScheduleProposal) []string {
	var warnings []string
	for _, p := range proposals {
		if p.HasConflict {
			warnings = append(warnings, fmt.Sprintf("%s: %s", p.SpeakerName, p.ConflictReason))
		}
	}
	return warnings
}

func (s *dripService) PreviewSchedule(ctx context.Context, eventID, ownerID string, req domain.ScheduleRequest) (*domain.SchedulePreview, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	in, err := s.loadPlanInputs(ctx, eventID, ownerID, req)
	if err != nil {
		return nil, err
	}
	proposals, err := scheduling.Plan(in.event, in.speakers, in.existing, in.cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrInvalidInput)
	}

	return &domain.SchedulePreview{
		Proposals: proposals,
		Warnings:  conflictWarnings(proposals),
		Stats:     scheduling.Summarize(proposals),
	}, nil
}

func (s *dripService) CommitSchedule(ctx context.Context, eventID, ownerID string, req domain.ScheduleRequest) (*domain.ScheduleCommitResult, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	in, err := s.loadPlanInputs(ctx, eventID, ownerID, req)
	if err != nil {
		return nil, err
	}
	proposals, err := scheduling.Plan(in.event, in.speakers, in.existing, in.cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", err.Error(), domain.ErrInvalidInput)
	}

	speakersByID := make(map[string]*domain.Speaker, len(in.speakers))
	for _, sp := range in.speakers {
		speakersByID[sp.ID] = sp
	}

	result := &domain.ScheduleCommitResult{
		BatchID:   uuid.NewString(),
		Proposals: proposals,
	}
	var created []*domain.ScheduledPost
	writeFailures := 0
	for _, proposal := range proposals {
		if proposal.HasConflict {
			result.SkippedCount++
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s skipped: %s", proposal.SpeakerName, proposal.ConflictReason))
			continue
		}

		postText := s.postTextFor(ctx, speakersByID[proposal.SpeakerID], proposal.Platform, in.event)
		post := domain.NewScheduledPost(eventID, proposal.SpeakerID, result.BatchID, proposal.Platform,
			proposal.ScheduledAt, in.event.Timezone, postText, time.Now())
		if err := s.postRepo.Create(ctx, post); err != nil {
			result.SkippedCount++
			writeFailures++
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: create scheduled post: %v", proposal.SpeakerName, err))
			continue
		}
		result.ScheduledCount++
		created = append(created, post)
	}
	result.Success = writeFailures == 0

	if len(created) > 0 {
		s.sendScheduleDigest(ctx, in.event, result, created)
	}
	return result, nil
}

// postTextFor picks the announcement body committed onto the reservation.
// For the "all" platform any existing per-platform copy is acceptable, in a
// fixed probe order. Without any announcement a plain one-liner is used so a
// reservation never goes out empty.
func (s *dripService) postTextFor(ctx context.Context, speaker *domain.Speaker, platform domain.Platform, event *domain.Event) string {
	if speaker == nil {
		return ""
	}
	probe := []domain.Platform{platform}
	if platform == domain.PlatformAll {
		probe = []domain.Platform{domain.PlatformLinkedIn, domain.PlatformTwitter, domain.PlatformInstagram}
	}
	for _, p := range probe {
		if a, err := s.announcementRepo.GetBySpeakerAndPlatform(ctx, speaker.ID, p); err == nil {
			return a.Body
		}
	}
	return fmt.Sprintf("%s is speaking at %s!", speaker.Name, event.Name)
}

// sendScheduleDigest emails the organizer a summary of the committed batch.
// Failures only produce a warning on the result.
func (s *dripService) sendScheduleDigest(ctx context.Context, event *domain.Event, result *domain.ScheduleCommitResult, created []*domain.ScheduledPost) {
	if s.emailService == nil || s.userRepo == nil {
		return
	}
	owner, err := s.userRepo.GetByID(ctx, event.OwnerID)
	if err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("schedule digest email not sent: %v", err))
		return
	}

	loc, err := time.LoadLocation(event.Timezone)
	if err != nil {
		loc = time.UTC
	}
	first, last := created[0].ScheduledAt, created[0].ScheduledAt
	for _, post := range created[1:] {
		if post.ScheduledAt.Before(first) {
			first = post.ScheduledAt
		}
		if post.ScheduledAt.After(last) {
			last = post.ScheduledAt
		}
	}

	data := &domain.ScheduleDigestEmailData{
		Email:          owner.Email,
		FirstName:      owner.Name,
		EventName:      event.Name,
		ScheduledCount: result.ScheduledCount,
		SkippedCount:   result.SkippedCount,
		FirstPostAt:    first.In(loc).Format("Mon, 02 Jan 2006 15:04"),
		LastPostAt:     last.In(loc).Format("Mon, 02 Jan 2006 15:04"),
	}
	if err := s.emailService.SendScheduleDigest(ctx, data); err != nil {
		result.Warnings = append(result.Warnings, fmt.Sprintf("schedule digest email not sent: %v", err))
	}
}

func (s *dripService) ListScheduledPosts(ctx context.Context, eventID, ownerID string, status domain.PostStatus, params domain.PaginationParams) ([]*domain.ScheduledPost, int, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	event, err := s.eventRepo.GetByID(ctx, eventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, 0, domain.ErrNotFound
		}
		return nil, 0, fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != ownerID {
		return nil, 0, domain.ErrForbidden
	}
	if status != "" && !domain.ValidPostStatus(status) {
		return nil, 0, fmt.Errorf("unknown status %q: %w", status, domain.ErrInvalidInput)
	}

	posts, total, err := s.postRepo.ListByEventID(ctx, eventID, status, params)
	if err != nil {
		return nil, 0, fmt.Errorf("list scheduled posts: %w", err)
	}
	if posts == nil {
		posts = []*domain.ScheduledPost{}
	}
	return posts, total, nil
}

// ownedPost resolves the post and checks that the caller owns its event.
func (s *dripService) ownedPost(ctx context.Context, postID, ownerID string) (*domain.ScheduledPost, error) {
	post, err := s.postRepo.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get scheduled post: %w", err)
	}
	event, err := s.eventRepo.GetByID(ctx, post.EventID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	if event.OwnerID != ownerID {
		return nil, domain.ErrForbidden
	}
	return post, nil
}

func (s *dripService) CancelScheduledPost(ctx context.Context, postID, ownerID string) (*domain.ScheduledPost, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	post, err := s.ownedPost(ctx, postID, ownerID)
	if err != nil {
		return nil, err
	}
	switch post.Status {
	case domain.PostStatusCancelled:
		// Cancelling twice is a no-op.
		return post, nil
	case domain.PostStatusPosted:
		return nil, domain.ErrAlreadyPublished
	case domain.PostStatusFailed:
		return nil, fmt.Errorf("failed posts cannot be cancelled: %w", domain.ErrInvalidInput)
	}

	updated, err := s.postRepo.UpdateStatus(ctx, postID, domain.PostStatusCancelled, nil)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("cancel scheduled post: %w", err)
	}
	return updated, nil
}

func (s *dripService) PublishScheduledPost(ctx context.Context, postID, ownerID string) (*domain.ScheduledPost, error) {
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	post, err := s.ownedPost(ctx, postID, ownerID)
	if err != nil {
		return nil, err
	}
	switch post.Status {
	case domain.PostStatusPosted:
		return nil, domain.ErrAlreadyPublished
	case domain.PostStatusCancelled:
		return nil, fmt.Errorf("cancelled posts cannot be published: %w", domain.ErrInvalidInput)
	}

	publishErrs := s.publishPost(ctx, post, ownerID)
	if len(publishErrs) > 0 {
		msg := strings.Join(publishErrs, "; ")
		if updated, uerr := s.postRepo.UpdateStatus(ctx, postID, domain.PostStatusFailed, &msg); uerr == nil {
			return updated, fmt.Errorf("publish scheduled post: %s", msg)
		}
		return nil, fmt.Errorf("publish scheduled post: %s", msg)
	}

	updated, err := s.postRepo.UpdateStatus(ctx, postID, domain.PostStatusPosted, nil)
	if err != nil {
		return nil, fmt.Errorf("mark scheduled post posted: %w", err)
	}
	return updated, nil
}

// publishPost pushes the post text to its platform, or to every connected
// platform when the post targets "all". A partial fan-out failure fails the
// post; the successful platforms are not rolled back.
func (s *dripService) publishPost(ctx context.Context, post *domain.ScheduledPost, ownerID string) []string {
	targets := []domain.Platform{post.Platform}
	if post.Platform == domain.PlatformAll {
		accounts, err := s.socialAccountRepo.ListByUserID(ctx, ownerID)
		if err != nil {
			return []string{fmt.Sprintf("list social accounts: %v", err)}
		}
		targets = targets[:0]
		for _, account := range accounts {
			targets = append(targets, account.Platform)
		}
		if len(targets) == 0 {
			return []string{domain.ErrNotConnected.Error()}
		}
	}

	announcement := s.announcementFor(ctx, post)

	var errs []string
	for _, platform := range targets {
		account, err := s.socialAccountRepo.GetByUserAndPlatform(ctx, ownerID, platform)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				errs = append(errs, fmt.Sprintf("%s: %s", platform, domain.ErrNotConnected))
			} else {
				errs = append(errs, fmt.Sprintf("%s: %v", platform, err))
			}
			continue
		}
		if account.IsExpired(time.Now()) {
			errs = append(errs, fmt.Sprintf("%s: token expired", platform))
			continue
		}
		publisher, ok := s.publishers[platform]
		if !ok {
			errs = append(errs, fmt.Sprintf("%s: no publisher", platform))
			continue
		}

		var imageURL *string
		if announcement != nil && announcement.ImageURL != nil {
			imageURL = announcement.ImageURL
		}
		result, err := publisher.Publish(ctx, domain.SocialPost{
			Text:        post.PostText,
			ImageURL:    imageURL,
			AccessToken: account.AccessToken,
			Handle:      account.Handle,
		})
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", platform, err))
			continue
		}
		// Best effort: reflect the live URL on the matching announcement.
		if a, err := s.announcementRepo.GetBySpeakerAndPlatform(ctx, post.SpeakerID, platform); err == nil && !a.IsPublished() {
			_, _ = s.announcementRepo.MarkPublished(ctx, a.ID, result.PostURL, result.PostedAt)
		}
	}
	return errs
}

// announcementFor finds any announcement carrying the image for the post's
// speaker, preferring the post's own platform.
func (s *dripService) announcementFor(ctx context.Context, post *domain.ScheduledPost) *domain.Announcement {
	probe := []domain.Platform{post.Platform, domain.PlatformLinkedIn, domain.PlatformTwitter, domain.PlatformInstagram}
	for _, p := range probe {
		if p == domain.PlatformAll {
			continue
		}
		if a, err := s.announcementRepo.GetBySpeakerAndPlatform(ctx, post.SpeakerID, p); err == nil {
			return a
		}
	}
	return nil
}
