package recording

import (
	"math"
	"sort"
	"time"
)

func sortedEvents(events []Event) []Event {
	out := make([]Event, len(events))
	copy(out, events)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}

// Summarize builds the read view of a session. The stored record is not modified.
func Summarize(s *Session) Summary {
	events := sortedEvents(s.Events)

	var lastTimestamp int64
	if len(events) > 0 {
		lastTimestamp = events[len(events)-1].Timestamp
	}

	var end *time.Time
	switch {
	case s.EndedAt != nil:
		t := *s.EndedAt
		end = &t
	case s.Completed:
		t := s.StartedAt.Add(time.Duration(lastTimestamp) * time.Millisecond)
		end = &t
	}

	elapsedMs := float64(lastTimestamp)
	if end != nil {
		elapsedMs = float64(end.Sub(s.StartedAt).Milliseconds())
	}
	duration := int64(math.Floor(elapsedMs/1000 + 0.5))
	if duration < 0 {
		duration = 0
	}

	stats := Stats{TotalEvents: len(events)}
	for _, e := range events {
		switch e.Type {
		case EventClick:
			stats.Clicks++
		case EventScroll:
			if e.ScrollY != nil && *e.ScrollY > stats.ScrollDepth {
				stats.ScrollDepth = *e.ScrollY
			}
		}
	}

	return Summary{
		ID:        s.ID,
		StartedAt: s.StartedAt,
		EndedAt:   end,
		Duration:  duration,
		Metadata:  s.Metadata,
		Events:    events,
		Stats:     stats,
		Completed: s.Completed,
		UpdatedAt: s.UpdatedAt,
	}
}

type Timeline struct {
	SessionID  string  `json:"sessionId"`
	DurationMs int64   `json:"durationMs"`
	Events     []Event `json:"events"`
}

// ReplayTimeline returns the events in playback order and the playback length,
// which covers both the last event and the summarized duration.
func ReplayTimeline(s *Session) Timeline {
	summary := Summarize(s)

	var last int64
	if n := len(summary.Events); n > 0 {
		last = summary.Events[n-1].Timestamp
	}
	durationMs := summary.Duration * 1000
	if last > durationMs {
		durationMs = last
	}

	return Timeline{
		SessionID:  s.ID,
		DurationMs: durationMs,
		Events:     summary.Events,
	}
}
