package dto

// FeedbackRequest is the body for creating or editing a feedback
type FeedbackRequest struct {
	Rating  int    `json:"rating" validate:"required,min=1,max=5"`
	Comment string `json:"comment" validate:"required,max=2000"`
}

// FeedbackResponse represents a feedback in API responses
type FeedbackResponse struct {
	ID          string  `json:"id"`
	TourID      *string `json:"tourId,omitempty"`
	HighlightID *string `json:"highlightId,omitempty"`
	UserID      string  `json:"userId"`
	Rating      int     `json:"rating"`
	Comment     string  `json:"comment"`
	IsApproved  bool    `json:"is_approved"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}
