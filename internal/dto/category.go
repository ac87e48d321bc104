package dto

import (
	"time"

	"github.com/google/uuid"
)

// CategoryRequest is the payload for creating or renaming a category
type CategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// CategoryResponse is the API shape of a category
type CategoryResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
