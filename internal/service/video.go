package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/vidvault/backend/internal/db"
	"github.com/vidvault/backend/internal/model"
)

const dashboardLimit = 10

type VideoRepository interface {
	UpsertSeedVideo(ctx context.Context, seed model.SeedVideo) error
	ListActiveVideos(ctx context.Context, limit int) ([]model.Video, error)
	GetActiveVideoByID(ctx context.Context, videoID uuid.UUID) (*model.Video, error)
}

type VideoService struct {
	repo VideoRepository
}

func NewVideoService(repo VideoRepository) *VideoService {
	return &VideoService{repo: repo}
}

func (s *VideoService) Seed(ctx context.Context) error {
	for _, seed := range seedVideos {
		if err := s.repo.UpsertSeedVideo(ctx, seed); err != nil {
			return err
		}
	}
	return nil
}

func (s *VideoService) Dashboard(ctx context.Context) ([]model.VideoListItem, error) {
	videos, err := s.repo.ListActiveVideos(ctx, dashboardLimit)
	if err != nil {
		return nil, err
	}

	list := make([]model.VideoListItem, 0, len(videos))
	for _, v := range videos {
		list = append(list, model.VideoListItem{
			ID:           v.ID.String(),
			Title:        v.Title,
			Description:  v.Description,
			ThumbnailURL: v.ThumbnailURL,
		})
	}
	return list, nil
}

func (s *VideoService) Play(ctx context.Context, videoID string) (*model.VideoPlayResponse, error) {
	id, err := uuid.Parse(videoID)
	if err != nil {
		return nil, ErrInvalidInput
	}

	video, err := s.repo.GetActiveVideoByID(ctx, id)
	if err != nil {
		if db.IsNoRows(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &model.VideoPlayResponse{
		EmbedURL: "https://www.youtube.com/embed/" + video.YouTubeID + "?enablejsapi=1",
	}, nil
}
