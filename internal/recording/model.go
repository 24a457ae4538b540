package recording

import (
	"time"

	"github.com/eleven-am/insight-backend/internal/dto"
)

type EventType string

const (
	EventMouseMove  EventType = "mousemove"
	EventClick      EventType = "click"
	EventScroll     EventType = "scroll"
	EventHover      EventType = "hover"
	EventNavigation EventType = "navigation"
)

const (
	PhaseEnter = "enter"
	PhaseLeave = "leave"
)

const (
	DeviceDesktop = "desktop"
	DeviceMobile  = "mobile"
	DeviceTablet  = "tablet"
)

// Event is one interaction sample. Timestamp is milliseconds since session start.
type Event struct {
	Type      EventType `json:"type"`
	Timestamp int64     `json:"timestamp"`
	X         *float64  `json:"x,omitempty"`
	Y         *float64  `json:"y,omitempty"`
	ScrollX   *float64  `json:"scrollX,omitempty"`
	ScrollY   *float64  `json:"scrollY,omitempty"`
	Button    *float64  `json:"button,omitempty"`
	Target    string    `json:"target,omitempty"`
	Phase     string    `json:"phase,omitempty"`
	URL       string    `json:"url,omitempty"`
	Href      string    `json:"href,omitempty"`
	Location  string    `json:"location,omitempty"`
}

type Screen struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type Metadata struct {
	URL              string  `json:"url,omitempty"`
	UserAgent        string  `json:"userAgent,omitempty"`
	Device           string  `json:"device,omitempty"`
	Browser          string  `json:"browser,omitempty"`
	Language         string  `json:"language,omitempty"`
	Screen           *Screen `json:"screen,omitempty"`
	UserID           *string `json:"userId"`
	Referrer         string  `json:"referrer,omitempty"`
	Timezone         string  `json:"timezone,omitempty"`
	DevicePixelRatio float64 `json:"devicePixelRatio,omitempty"`
}

// Session is the stored record for one monitored browsing session.
type Session struct {
	ID        string     `json:"id"`
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
	Metadata  Metadata   `json:"metadata"`
	Events    []Event    `json:"events"`
	Completed bool       `json:"completed"`
	UpdatedAt time.Time  `json:"updatedAt"`
	BatchIDs  []string   `json:"batchIds,omitempty"`
}

func (s *Session) RedisKey() string {
	return RedisKey(s.ID)
}

func RedisKey(id string) string {
	return "recording:" + id
}

func (s *Session) hasBatch(id string) bool {
	for _, b := range s.BatchIDs {
		if b == id {
			return true
		}
	}
	return false
}

type Stats struct {
	Clicks      int     `json:"clicks"`
	ScrollDepth float64 `json:"scrollDepth"`
	TotalEvents int     `json:"totalEvents"`
}

// Summary is the read view of a Session.
type Summary struct {
	ID        string     `json:"id"`
	StartedAt time.Time  `json:"startedAt"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
	Duration  int64      `json:"duration"`
	Metadata  Metadata   `json:"metadata"`
	Events    []Event    `json:"events"`
	Stats     Stats      `json:"stats"`
	Completed bool       `json:"completed"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Batch is one ingest request after validation and event normalization.
type Batch struct {
	SessionID string
	BatchID   string
	Events    []Event
	Metadata  *dto.MetadataPayload
	Completed bool
	StartedAt *time.Time
	EndedAt   *time.Time
}

// Defaults carries request-derived fallbacks for metadata fields.
type Defaults struct {
	Origin         string
	AcceptLanguage string
}
