package models

import (
	"time"

	"github.com/google/uuid"
)

// Feedback is a rating with a comment left by a user on a highlight or a tour.
// Exactly one of TourID and HighlightID is set.
type Feedback struct {
	ID          uuid.UUID  `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	TourID      *uuid.UUID `json:"tourId,omitempty" db:"tour_id" gorm:"type:uuid;index"`
	HighlightID *uuid.UUID `json:"highlightId,omitempty" db:"highlight_id" gorm:"type:uuid;index"`
	UserID      uuid.UUID  `json:"userId" db:"user_id" gorm:"type:uuid;not null;index"`
	Rating      int        `json:"rating" db:"rating" gorm:"not null;check:rating BETWEEN 1 AND 5"`
	Comment     string     `json:"comment" db:"comment" gorm:"not null"`
	IsApproved  bool       `json:"is_approved" db:"is_approved" gorm:"not null;default:false"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`

	Tour      *Tour      `json:"-" db:"-" gorm:"constraint:OnDelete:CASCADE"`
	Highlight *Highlight `json:"-" db:"-" gorm:"constraint:OnDelete:CASCADE"`
	User      *User      `json:"-" db:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName pins the table used by migrations and hand written queries.
func (Feedback) TableName() string { return "feedbacks" }
