package model

import (
	"time"

	"github.com/google/uuid"
)

type Video struct {
	ID           uuid.UUID
	Title        string
	Description  string
	YouTubeID    string
	ThumbnailURL string
	IsActive     bool
	CreatedAt    time.Time
}

// SeedVideo is a catalog entry inserted at startup if not already present.
type SeedVideo struct {
	Title        string
	Description  string
	YouTubeID    string
	ThumbnailURL string
}

type VideoListItem struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	ThumbnailURL string `json:"thumbnail_url"`
}

type VideoPlayResponse struct {
	EmbedURL string `json:"embed_url"`
}
