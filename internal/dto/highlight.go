package dto

// CreateHighlightRequest represents the payload to create or suggest a highlight
type CreateHighlightRequest struct {
	Name                string   `json:"name" validate:"required,max=200"`
	Description         string   `json:"description" validate:"required,max=5000"`
	Category            string   `json:"category" validate:"required,oneof=attraction museum restaurant cafe bar shop nature viewpoint accommodation event other"`
	Latitude            *float64 `json:"latitude" validate:"required_with=Longitude,omitempty,gte=-90,lte=90"`
	Longitude           *float64 `json:"longitude" validate:"required_with=Latitude,omitempty,gte=-180,lte=180"`
	BusinessDescription *string  `json:"businessDescription" validate:"omitempty,max=5000"`
}

// UpdateHighlightRequest carries the fields to change; nil fields are kept
type UpdateHighlightRequest struct {
	Name                *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Description         *string  `json:"description" validate:"omitempty,min=1,max=5000"`
	Category            *string  `json:"category" validate:"omitempty,oneof=attraction museum restaurant cafe bar shop nature viewpoint accommodation event other"`
	Latitude            *float64 `json:"latitude" validate:"omitempty,gte=-90,lte=90"`
	Longitude           *float64 `json:"longitude" validate:"omitempty,gte=-180,lte=180"`
	BusinessDescription *string  `json:"businessDescription" validate:"omitempty,max=5000"`
}

// HighlightResponse represents a highlight in API responses
type HighlightResponse struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	Category            string   `json:"category"`
	Latitude            *float64 `json:"latitude"`
	Longitude           *float64 `json:"longitude"`
	IsApproved          bool     `json:"is_approved"`
	BusinessDescription *string  `json:"businessDescription"`
	CreatedAt           string   `json:"created_at"`
	UpdatedAt           string   `json:"updated_at"`
}
