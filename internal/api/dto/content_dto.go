package dto

import (
	"time"

	"github.com/cuongbtq/tunel-admin/internal/api/storage"
	"github.com/cuongbtq/tunel-admin/internal/upload"
)

// UpdateHomepageRequest is the body of PUT /api/content/homepage
type UpdateHomepageRequest struct {
	Content storage.Homepage `json:"content"`
}

type HomepageResponse struct {
	Success     bool             `json:"success"`
	Content     storage.Homepage `json:"content"`
	LastUpdated time.Time        `json:"lastUpdated"`
	Message     string           `json:"message,omitempty"`
	Ignored     []string         `json:"ignoredSections,omitempty"`
}

type ImageResponse struct {
	Success bool         `json:"success"`
	Image   upload.Image `json:"image"`
	Message string       `json:"message"`
}

type ImagesResponse struct {
	Success bool           `json:"success"`
	Images  []upload.Image `json:"images"`
	Message string         `json:"message"`
}

type ImageListResponse struct {
	Success bool           `json:"success"`
	Images  []upload.Image `json:"images"`
	Total   int            `json:"total"`
}
