package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidvault/backend/internal/model"
)

func (db *Postgres) EnsureVideoSchema(ctx context.Context) error {
	queries := []string{
		`
		CREATE TABLE IF NOT EXISTS videos (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			youtube_id TEXT NOT NULL UNIQUE,
			thumbnail_url TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
		`,
		`CREATE INDEX IF NOT EXISTS videos_is_active_idx ON videos(is_active)`,
	}

	for _, query := range queries {
		if _, err := db.Pool.Exec(ctx, query); err != nil {
			return err
		}
	}
	return nil
}

// UpsertSeedVideo inserts a catalog entry keyed on youtube_id. Existing
// rows only get their thumbnail refreshed so manual edits to title or
// description survive restarts.
func (db *Postgres) UpsertSeedVideo(ctx context.Context, seed model.SeedVideo) error {
	query := `
		INSERT INTO videos (title, description, youtube_id, thumbnail_url, is_active, created_at)
		VALUES ($1, $2, $3, $4, TRUE, NOW())
		ON CONFLICT (youtube_id) DO UPDATE SET
			thumbnail_url = EXCLUDED.thumbnail_url
	`
	_, err := db.Pool.Exec(ctx, query, seed.Title, seed.Description, seed.YouTubeID, seed.ThumbnailURL)
	return err
}

func (db *Postgres) ListActiveVideos(ctx context.Context, limit int) ([]model.Video, error) {
	query := `
		SELECT id, title, description, youtube_id, thumbnail_url, is_active, created_at
		FROM videos
		WHERE is_active = TRUE
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := db.Pool.Query(ctx, query, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []model.Video
	for rows.Next() {
		var v model.Video
		if err := rows.Scan(&v.ID, &v.Title, &v.Description, &v.YouTubeID, &v.ThumbnailURL, &v.IsActive, &v.CreatedAt); err != nil {
			return nil, err
		}
		list = append(list, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if list == nil {
		list = []model.Video{}
	}
	return list, nil
}

func (db *Postgres) GetActiveVideoByID(ctx context.Context, videoID uuid.UUID) (*model.Video, error) {
	query := `
		SELECT id, title, description, youtube_id, thumbnail_url, is_active, created_at
		FROM videos
		WHERE id = $1 AND is_active = TRUE
	`
	var v model.Video
	err := db.Pool.QueryRow(ctx, query, videoID).Scan(
		&v.ID,
		&v.Title,
		&v.Description,
		&v.YouTubeID,
		&v.ThumbnailURL,
		&v.IsActive,
		&v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}
