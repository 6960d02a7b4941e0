package dto

// CreateTourRequest represents the payload to create a tour
type CreateTourRequest struct {
	Name         string   `json:"name" validate:"required,max=200"`
	Description  string   `json:"description" validate:"required,max=5000"`
	Duration     int      `json:"duration" validate:"gte=0,lte=10080"` // minutes
	StartTime    *string  `json:"start_time"`                          // RFC3339
	HighlightIDs []string `json:"highlight_ids" validate:"omitempty,dive,uuid"`
}

// UpdateTourRequest carries the fields to change; nil fields are kept.
// A present highlight_ids array replaces the tour's highlights.
type UpdateTourRequest struct {
	Name         *string   `json:"name" validate:"omitempty,min=1,max=200"`
	Description  *string   `json:"description" validate:"omitempty,min=1,max=5000"`
	Duration     *int      `json:"duration" validate:"omitempty,gte=0,lte=10080"`
	StartTime    *string   `json:"start_time"`
	HighlightIDs *[]string `json:"highlight_ids" validate:"omitempty,dive,uuid"`
}

// TourResponse represents a tour in API responses
type TourResponse struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Duration    int                 `json:"duration"`
	StartTime   *string             `json:"start_time"`
	Highlights  []HighlightResponse `json:"highlights,omitempty"`
	CreatedAt   string              `json:"created_at"`
	UpdatedAt   string              `json:"updated_at"`
}
