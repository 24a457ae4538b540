package dto

type EventPayload struct {
	Type      string   `json:"type" example:"click"`
	Timestamp int64    `json:"timestamp" example:"1520"`
	X         *float64 `json:"x,omitempty" example:"640"`
	Y         *float64 `json:"y,omitempty" example:"412"`
	ScrollX   *float64 `json:"scrollX,omitempty"`
	ScrollY   *float64 `json:"scrollY,omitempty"`
	Button    *int     `json:"button,omitempty"`
	Target    string   `json:"target,omitempty" example:"button#checkout"`
	Phase     string   `json:"phase,omitempty" example:"enter"`
	URL       string   `json:"url,omitempty" example:"https://shop.example.com/cart"`
}

type ScreenPayload struct {
	Width  int `json:"width" example:"1440"`
	Height int `json:"height" example:"900"`
}

type MetadataPayload struct {
	StartedAt        string         `json:"startedAt,omitempty" example:"2024-01-01T00:00:00Z"`
	URL              string         `json:"url,omitempty" example:"https://shop.example.com/"`
	UserAgent        string         `json:"userAgent,omitempty"`
	Referrer         string         `json:"referrer,omitempty"`
	Language         string         `json:"language,omitempty" example:"en-US"`
	Timezone         string         `json:"timezone,omitempty" example:"Europe/Berlin"`
	DevicePixelRatio float64        `json:"devicePixelRatio,omitempty" example:"2"`
	Screen           *ScreenPayload `json:"screen,omitempty"`
	Device           string         `json:"device,omitempty" example:"desktop"`
	Browser          string         `json:"browser,omitempty" example:"Chrome"`
	UserID           *string        `json:"userId,omitempty"`
}

// IngestRequest is decoded loosely: events stay as raw objects so that the
// merge engine can coerce their fields.
type IngestRequest struct {
	SessionID string           `json:"sessionId" example:"3f0c9a4e-4c1e-4f7c-9d0a-1b2c3d4e5f60"`
	BatchID   string           `json:"batchId,omitempty"`
	StartedAt string           `json:"startedAt,omitempty"`
	EndedAt   string           `json:"endedAt,omitempty"`
	Completed bool             `json:"completed,omitempty"`
	Metadata  *MetadataPayload `json:"metadata,omitempty"`
	Events    []map[string]any `json:"events,omitempty"`
}

// BatchPayload is what the delivery client sends.
type BatchPayload struct {
	SessionID string           `json:"sessionId"`
	BatchID   string           `json:"batchId,omitempty"`
	StartedAt string           `json:"startedAt,omitempty"`
	EndedAt   string           `json:"endedAt,omitempty"`
	Completed bool             `json:"completed,omitempty"`
	Metadata  *MetadataPayload `json:"metadata,omitempty"`
	Events    []EventPayload   `json:"events"`
}

type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}
