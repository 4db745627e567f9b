package domain

import (
	"context"
	"time"
)

// DripConfig collects the knobs the drip scheduler runs with after request
// overrides, event settings and built-in defaults have been merged.
type DripConfig struct {
	DaysBeforeEvent int
	StartTime       string
	AvoidWeekends   bool
	Platform        Platform
}

// ResolveDripConfig merges scheduling parameters with request values taking
// precedence over event settings, which take precedence over defaults.
func ResolveDripConfig(event *Event, daysBefore *int, startTime *string, avoidWeekends *bool, platform Platform) DripConfig {
	cfg := DripConfig{
		DaysBeforeEvent: DefaultDripDaysBefore,
		StartTime:       DefaultDripStartTime,
		AvoidWeekends:   true,
		Platform:        PlatformAll,
	}
	if event != nil {
		if event.DripDaysBefore != nil {
			cfg.DaysBeforeEvent = *event.DripDaysBefore
		}
		if event.DripStartTime != nil {
			cfg.StartTime = *event.DripStartTime
		}
	}
	if daysBefore != nil {
		cfg.DaysBeforeEvent = *daysBefore
	}
	if startTime != nil {
		cfg.StartTime = *startTime
	}
	if avoidWeekends != nil {
		cfg.AvoidWeekends = *avoidWeekends
	}
	if platform != "" {
		cfg.Platform = platform
	}
	return cfg
}

// ScheduleProposal is one speaker's computed posting slot. When no slot
// satisfies the window and conflict rules, HasConflict is set and
// ScheduledAt holds the weekend-adjusted ideal time for reference.
// swagger:model ScheduleProposal
type ScheduleProposal struct {
	SpeakerID       string    `json:"speaker_id"`
	SpeakerName     string    `json:"speaker_name"`
	Platform        Platform  `json:"platform"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DaysBeforeEvent int       `json:"days_before_event"`
	HasConflict     bool      `json:"has_conflict"`
	ConflictReason  string    `json:"conflict_reason,omitempty"`
}

// ScheduleStats summarizes a planning run.
// swagger:model ScheduleStats
type ScheduleStats struct {
	TotalSpeakers int `json:"total_speakers"`
	Schedulable   int `json:"schedulable"`
	Conflicts     int `json:"conflicts"`
}

// SchedulePreview is the dry-run result of the drip scheduler.
// swagger:model SchedulePreview
type SchedulePreview struct {
	Proposals []*ScheduleProposal `json:"preview"`
	Warnings  []string            `json:"warnings,omitempty"`
	Stats     ScheduleStats       `json:"stats"`
}

// ScheduleCommitResult reports what a commit run actually reserved.
// Proposals echoes the per-speaker outcomes, including skipped conflicts.
// swagger:model ScheduleCommitResult
type ScheduleCommitResult struct {
	Success        bool                `json:"success"`
	BatchID        string              `json:"batch_id"`
	ScheduledCount int                 `json:"scheduled_count"`
	SkippedCount   int                 `json:"skipped_count"`
	Warnings       []string            `json:"warnings,omitempty"`
	Proposals      []*ScheduleProposal `json:"preview"`
}

// ScheduleRequest carries the optional per-request overrides for a
// scheduling run. Nil fields fall back to event settings, then defaults.
type ScheduleRequest struct {
	DaysBeforeEvent *int
	StartTime       *string
	AvoidWeekends   *bool
	Platform        Platform
}

// ScheduleService defines the interface for drip campaign scheduling.
type ScheduleService interface {
	// PreviewSchedule computes slots without writing anything.
	PreviewSchedule(ctx context.Context, eventID, ownerID string, req ScheduleRequest) (*SchedulePreview, error)
	// CommitSchedule re-runs the planner and reserves a scheduled post for
	// every conflict-free proposal. Speakers whose slot could not be
	// computed are skipped, not failed.
	CommitSchedule(ctx context.Context, eventID, ownerID string, req ScheduleRequest) (*ScheduleCommitResult, error)
	ListScheduledPosts(ctx context.Context, eventID, ownerID string, status PostStatus, params PaginationParams) ([]*ScheduledPost, int, error)
	CancelScheduledPost(ctx context.Context, postID, ownerID string) (*ScheduledPost, error)
	// PublishScheduledPost pushes a pending post to its platform now,
	// regardless of its scheduled time.
	PublishScheduledPost(ctx context.Context, postID, ownerID string) (*ScheduledPost, error)
}
