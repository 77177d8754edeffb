package ads

import "time"

// CreateRequest is the body of POST /api/ads.
type CreateRequest struct {
	Title       string `json:"title" validate:"required,min=3"`
	Description string `json:"description" validate:"required,min=10"`
}

// UpdateRequest is the body of PATCH /api/ads/{id}. Both fields are optional;
// absent fields keep their stored values.
type UpdateRequest struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=3"`
	Description *string `json:"description,omitempty" validate:"omitempty,min=10"`
}

// AdResponse is the public view of an advertisement. The author field carries
// the author's display name rather than their ID.
type AdResponse struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
	Author      string    `json:"author"`
}

// DeleteResponse confirms a successful deletion.
type DeleteResponse struct {
	Status string `json:"status"`
}

func toResponse(ad *Ad) *AdResponse {
	return &AdResponse{
		ID:          ad.ID,
		Title:       ad.Title,
		Description: ad.Description,
		CreatedAt:   ad.CreatedAt,
		Author:      ad.AuthorName,
	}
}
