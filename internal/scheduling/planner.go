package scheduling

import (
	"fmt"
	"sort"
	"time"

	"announcehub/internal/domain"
)

const (
	// Posting window in the event's local time. The end hour is exclusive:
	// 14:59 is inside, 15:00 is not.
	windowStartHour = 8
	windowEndHour   = 15

	// conflictBuffer is the minimum distance to any occupied slot. Exactly
	// one buffer apart is not a conflict.
	conflictBuffer = time.Hour

	// minSpacing is the minimum distance between consecutive placed
	// proposals within one run.
	minSpacing = 12 * time.Hour
)

// NoSlotReason is reported on proposals for which no candidate slot
// satisfied the window, conflict and spacing rules.
const NoSlotReason = "No available time slot within posting window (8am-3pm)"

// altOffsets is the probe order around the ideal slot once the ideal itself
// is rejected: nearest first, later before earlier.
var altOffsets = []time.Duration{
	time.Hour, -time.Hour,
	2 * time.Hour, -2 * time.Hour,
	3 * time.Hour, -3 * time.Hour,
}

// Plan computes one posting slot per speaker, spreading posts across the
// days leading up to the event. Speakers are processed in creation order;
// earlier-added speakers land further from the event date. Slots already
// occupied by active scheduled posts are treated as conflicts.
//
// Plan never writes anything and is safe to call for previews. Proposals
// that could not be placed come back with HasConflict set and ScheduledAt
// holding the weekend-adjusted ideal time.
func Plan(event *domain.Event, speakers []*domain.Speaker, existing []*domain.ScheduledPost, cfg domain.DripConfig) ([]*domain.ScheduleProposal, error) {
	if event.StartDate == nil {
		return nil, fmt.Errorf("event %s has no start date", event.ID)
	}
	if cfg.DaysBeforeEvent <= 0 {
		return nil, fmt.Errorf("days before event must be positive, got %d", cfg.DaysBeforeEvent)
	}
	tz := event.Timezone
	if tz == "" {
		tz = "UTC"
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", tz, err)
	}
	hour, min, sec, err := parseClock(cfg.StartTime)
	if err != nil {
		return nil, err
	}
	if len(speakers) == 0 {
		return nil, nil
	}

	ordered := sortSpeakers(speakers)
	interval := cfg.DaysBeforeEvent / len(ordered)
	if interval < 1 {
		interval = 1
	}

	occupied := make([]time.Time, 0, len(existing))
	for _, post := range existing {
		if post.IsActive() {
			occupied = append(occupied, post.ScheduledAt)
		}
	}

	year, month, day := event.StartDate.Date()
	eventStart := time.Date(year, month, day, hour, min, sec, 0, loc)

	proposals := make([]*domain.ScheduleProposal, 0, len(ordered))
	var lastPlaced *time.Time
	for i, speaker := range ordered {
		target := cfg.DaysBeforeEvent - i*interval
		ideal := eventStart.AddDate(0, 0, -target)
		if cfg.AvoidWeekends {
			ideal = shiftOffWeekend(ideal)
		}

		proposal := &domain.ScheduleProposal{
			SpeakerID:       speaker.ID,
			SpeakerName:     speaker.Name,
			Platform:        cfg.Platform,
			DaysBeforeEvent: target,
		}

		slot, ok := findSlot(ideal, occupied, lastPlaced)
		if !ok {
			proposal.ScheduledAt = ideal
			proposal.HasConflict = true
			proposal.ConflictReason = NoSlotReason
			proposals = append(proposals, proposal)
			continue
		}

		proposal.ScheduledAt = slot
		proposals = append(proposals, proposal)
		occupied = append(occupied, slot)
		placed := slot
		lastPlaced = &placed
	}
	return proposals, nil
}

// Summarize counts placed and conflicted proposals.
func Summarize(proposals []*domain.ScheduleProposal) domain.ScheduleStats {
	stats := domain.ScheduleStats{TotalSpeakers: len(proposals)}
	for _, p := range proposals {
		if p.HasConflict {
			stats.Conflicts++
		} else {
			stats.Schedulable++
		}
	}
	return stats
}

// findSlot tries the ideal time and then hourly offsets around it, returning
// the first candidate that is inside the posting window, at least
// conflictBuffer away from every occupied slot, and at least minSpacing away
// from the previously placed proposal.
func findSlot(ideal time.Time, occupied []time.Time, lastPlaced *time.Time) (time.Time, bool) {
	for _, candidate := range candidates(ideal) {
		if !inWindow(candidate) {
			continue
		}
		if conflicts(candidate, occupied) {
			continue
		}
		if lastPlaced != nil && absDiff(candidate, *lastPlaced) < minSpacing {
			continue
		}
		return candidate, true
	}
	return time.Time{}, false
}

func candidates(ideal time.Time) []time.Time {
	out := make([]time.Time, 0, 1+len(altOffsets))
	out = append(out, ideal)
	for _, offset := range altOffsets {
		out = append(out, ideal.Add(offset))
	}
	return out
}

func inWindow(t time.Time) bool {
	h := t.Hour()
	return h >= windowStartHour && h < windowEndHour
}

func conflicts(t time.Time, occupied []time.Time) bool {
	for _, o := range occupied {
		if absDiff(t, o) < conflictBuffer {
			return true
		}
	}
	return false
}

// shiftOffWeekend pushes Saturday and Sunday slots to the following Monday.
func shiftOffWeekend(t time.Time) time.Time {
	switch t.Weekday() {
	case time.Saturday:
		return t.AddDate(0, 0, 2)
	case time.Sunday:
		return t.AddDate(0, 0, 1)
	}
	return t
}

// sortSpeakers orders by creation time, oldest first, with ID as a stable
// tiebreaker. The input slice is not modified.
func sortSpeakers(speakers []*domain.Speaker) []*domain.Speaker {
	ordered := make([]*domain.Speaker, len(speakers))
	copy(ordered, speakers)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].CreatedAt.Equal(ordered[j].CreatedAt) {
			return ordered[i].ID < ordered[j].ID
		}
		return ordered[i].CreatedAt.Before(ordered[j].CreatedAt)
	})
	return ordered
}

func absDiff(a, b time.Time) time.Duration {
	d := a.Sub(b)
	if d < 0 {
		return -d
	}
	return d
}

// parseClock parses HH:MM or HH:MM:SS.
func parseClock(s string) (int, int, int, error) {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, s); err == nil {
			h, m, sec := t.Clock()
			return h, m, sec, nil
		}
	}
	return 0, 0, 0, fmt.Errorf("invalid start time %q, want HH:MM or HH:MM:SS", s)
}
