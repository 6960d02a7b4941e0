package models

import (
	"time"

	"github.com/google/uuid"
)

// Category tags what kind of place a highlight is
type Category string

const (
	CategoryAttraction    Category = "attraction"
	CategoryMuseum        Category = "museum"
	CategoryRestaurant    Category = "restaurant"
	CategoryCafe          Category = "cafe"
	CategoryBar           Category = "bar"
	CategoryShop          Category = "shop"
	CategoryNature        Category = "nature"
	CategoryViewpoint     Category = "viewpoint"
	CategoryAccommodation Category = "accommodation"
	CategoryEvent         Category = "event"
	CategoryOther         Category = "other"
)

// Categories lists every accepted category in display order.
var Categories = []Category{
	CategoryAttraction,
	CategoryMuseum,
	CategoryRestaurant,
	CategoryCafe,
	CategoryBar,
	CategoryShop,
	CategoryNature,
	CategoryViewpoint,
	CategoryAccommodation,
	CategoryEvent,
	CategoryOther,
}

// Highlight is a point of interest shown on the map.
// IsApproved is false while the highlight is only a user suggestion.
type Highlight struct {
	ID                  uuid.UUID `json:"id" db:"id" gorm:"type:uuid;primaryKey"`
	Name                string    `json:"name" db:"name" gorm:"not null"`
	Description         string    `json:"description" db:"description" gorm:"not null"`
	Category            Category  `json:"category" db:"category" gorm:"type:varchar(32);not null;index"`
	Latitude            *float64  `json:"latitude" db:"latitude"`
	Longitude           *float64  `json:"longitude" db:"longitude"`
	IsApproved          bool      `json:"is_approved" db:"is_approved" gorm:"not null;default:false;index"`
	BusinessDescription *string   `json:"businessDescription" db:"business_description"`
	CreatedAt           time.Time `json:"created_at" db:"created_at"`
	UpdatedAt           time.Time `json:"updated_at" db:"updated_at"`
}

// TableName pins the table used by migrations and hand written queries.
func (Highlight) TableName() string { return "highlights" }

// HighlightSuggester links a highlight to the users who suggested it
type HighlightSuggester struct {
	HighlightID uuid.UUID  `db:"highlight_id" gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID  `db:"user_id" gorm:"type:uuid;primaryKey"`
	Highlight   *Highlight `db:"-" gorm:"constraint:OnDelete:CASCADE"`
	User        *User      `db:"-" gorm:"constraint:OnDelete:CASCADE"`
}

// TableName pins the join table name.
func (HighlightSuggester) TableName() string { return "highlight_suggesters" }
