package dashboard

import (
	"encoding/json"
	"time"

	"gorm.io/datatypes"
)

type Trend string

const (
	TrendUp      Trend = "up"
	TrendDown    Trend = "down"
	TrendNeutral Trend = "neutral"
)

// Metric is a headline figure. Value holds either a JSON number or a JSON string.
type Metric struct {
	Name      string         `gorm:"primaryKey" json:"name"`
	Value     datatypes.JSON `gorm:"not null" json:"value"`
	Change    float64        `json:"change"`
	Trend     Trend          `gorm:"not null" json:"trend"`
	Position  int            `gorm:"index" json:"-"`
	UpdatedAt time.Time      `json:"-"`
}

func NumberValue(v float64) datatypes.JSON {
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}

func TextValue(v string) datatypes.JSON {
	b, _ := json.Marshal(v)
	return datatypes.JSON(b)
}

type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

type Alert struct {
	ID               string    `gorm:"primaryKey" json:"id"`
	Type             string    `gorm:"not null" json:"type"`
	Severity         Severity  `gorm:"not null;index" json:"severity"`
	Title            string    `gorm:"not null" json:"title"`
	Description      string    `json:"description"`
	Timestamp        time.Time `gorm:"index" json:"timestamp"`
	Resolved         bool      `json:"resolved"`
	AffectedSessions int       `json:"affectedSessions"`
}

type User struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Role      string    `gorm:"not null" json:"role"`
	Avatar    *string   `json:"avatar,omitempty"`
	LastLogin time.Time `json:"lastLogin"`
}

func (User) TableName() string {
	return "dashboard_users"
}
