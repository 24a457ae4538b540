package funnel

import (
	"time"

	"github.com/eleven-am/insight-backend/internal/shared"
)

// Funnel is an ordered list of page routes. Pages and StepNames are parallel.
type Funnel struct {
	ID        string             `gorm:"primaryKey" json:"id"`
	Name      string             `gorm:"not null" json:"name"`
	Pages     shared.StringSlice `gorm:"type:text;not null" json:"pages"`
	StepNames shared.StringSlice `gorm:"type:text;not null" json:"step_names"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

func (f *Funnel) StepName(i int) string {
	if i < len(f.StepNames) && f.StepNames[i] != "" {
		return f.StepNames[i]
	}
	return f.Pages[i]
}
