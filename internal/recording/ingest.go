package recording

import (
	"sort"
	"time"
)

const maxTrackedBatches = 256

// Apply merges a batch into a session and returns the updated session with the
// number of events appended. A nil existing session starts a new record.
func Apply(existing *Session, b Batch, defaults Defaults, now time.Time) (*Session, int) {
	s := existing
	if s == nil {
		s = &Session{
			ID:        b.SessionID,
			StartedAt: initialStart(b, now),
			Events:    []Event{},
		}
	}

	if b.Metadata != nil {
		s.Metadata = MergeMetadata(b.Metadata, s.Metadata, defaults)
	}

	appended := 0
	if len(b.Events) > 0 && (b.BatchID == "" || !s.hasBatch(b.BatchID)) {
		s.Events = mergeEvents(s.Events, b.Events)
		appended = len(b.Events)
	}
	if b.BatchID != "" && !s.hasBatch(b.BatchID) {
		s.BatchIDs = append(s.BatchIDs, b.BatchID)
		if len(s.BatchIDs) > maxTrackedBatches {
			s.BatchIDs = s.BatchIDs[len(s.BatchIDs)-maxTrackedBatches:]
		}
	}

	if b.Completed {
		s.Completed = true
	}

	switch {
	case b.EndedAt != nil:
		t := b.EndedAt.UTC()
		s.EndedAt = &t
	case b.Completed:
		t := now.UTC()
		s.EndedAt = &t
	}

	s.UpdatedAt = now.UTC()
	return s, appended
}

func initialStart(b Batch, now time.Time) time.Time {
	if b.StartedAt != nil {
		return b.StartedAt.UTC()
	}
	if b.Metadata != nil && b.Metadata.StartedAt != "" {
		if t, err := ParseTime(b.Metadata.StartedAt); err == nil {
			return t
		}
	}
	return now.UTC()
}

// mergeEvents merges incoming into the already sorted stored slice. On equal
// timestamps stored events come first and incoming keep their arrival order.
func mergeEvents(stored, incoming []Event) []Event {
	batch := make([]Event, len(incoming))
	copy(batch, incoming)
	sort.SliceStable(batch, func(i, j int) bool {
		return batch[i].Timestamp < batch[j].Timestamp
	})

	if !sort.SliceIsSorted(stored, func(i, j int) bool { return stored[i].Timestamp < stored[j].Timestamp }) {
		sort.SliceStable(stored, func(i, j int) bool {
			return stored[i].Timestamp < stored[j].Timestamp
		})
	}

	out := make([]Event, 0, len(stored)+len(batch))
	i, j := 0, 0
	for i < len(stored) && j < len(batch) {
		if batch[j].Timestamp < stored[i].Timestamp {
			out = append(out, batch[j])
			j++
			continue
		}
		out = append(out, stored[i])
		i++
	}
	out = append(out, stored[i:]...)
	out = append(out, batch[j:]...)
	return out
}

// ParseTime accepts RFC 3339 timestamps with or without fractional seconds.
func ParseTime(value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		return time.Time{}, err
	}
	return t.UTC(), nil
}
