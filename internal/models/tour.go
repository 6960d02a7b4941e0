package models

import (
	"time"

	"github.com/google/uuid"
)

// Tour is an ordered grouping of highlights with scheduling metadata
type Tour struct {
	ID          uuid.UUID   `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	Name        string      `json:"name" db:"name" gorm:"not null"`
	Description string      `json:"description" db:"description" gorm:"not null"`
	Duration    int         `json:"duration" db:"duration" gorm:"not null;default:0"` // minutes
	StartTime   *time.Time  `json:"start_time" db:"start_time"`
	Highlights  []Highlight `json:"highlights" db:"-" gorm:"-"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// TableName pins the table used by migrations and hand written queries.
func (Tour) TableName() string { return "tours" }

// TourHighlight places a highlight at a position inside a tour
type TourHighlight struct {
	TourID      uuid.UUID  `db:"tour_id" gorm:"type:uuid;primaryKey"`
	HighlightID uuid.UUID  `db:"highlight_id" gorm:"type:uuid;primaryKey"`
	Position    int        `db:"position" gorm:"not null"`
	Tour        *Tour      `db:"-" gorm:"constraint:OnDelete:CASCADE"`
	Highlight   *Highlight `db:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName pins the join table name.
func (TourHighlight) TableName() string { return "tour_highlights" }
