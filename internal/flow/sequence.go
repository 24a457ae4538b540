package flow

import (
	"sort"

	"github.com/eleven-am/insight-backend/internal/recording"
)

// ExtractSequence returns the pages a session visited in order, collapsing
// adjacent repeats.
func ExtractSequence(s *recording.Session) []string {
	var pages []string
	push := func(page string) {
		if n := len(pages); n > 0 && pages[n-1] == page {
			return
		}
		pages = append(pages, page)
	}

	if page, ok := NormalizePageValue(s.Metadata.URL); ok {
		push(page)
	}

	events := make([]recording.Event, len(s.Events))
	copy(events, s.Events)
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Timestamp < events[j].Timestamp
	})

	for _, e := range events {
		if page, ok := eventPage(e); ok {
			push(page)
		}
	}
	return pages
}

func eventPage(e recording.Event) (string, bool) {
	for _, candidate := range []string{e.Target, e.URL, e.Href, e.Location} {
		if candidate == "" {
			continue
		}
		if page, ok := NormalizePageValue(candidate); ok {
			return page, true
		}
	}
	return "", false
}
