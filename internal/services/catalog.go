package services

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/harentsoaR/mamacare-api/internal/apperror"
	"github.com/harentsoaR/mamacare-api/internal/models"
)

type CatalogService struct {
	videos   VideoStore
	accounts HistoryStore
	metadata MetadataFetcher
	logger   *slog.Logger
}

func NewCatalogService(videos VideoStore, accounts HistoryStore, metadata MetadataFetcher, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		videos:   videos,
		accounts: accounts,
		metadata: metadata,
		logger:   logger,
	}
}

type UploadInput struct {
	YouTubeURL  string
	Description string // optional; the provider's description is used when empty
	Category    string
}

// Upload stores a doctor's video with metadata fetched from YouTube.
func (s *CatalogService) Upload(ctx context.Context, accountID string, role models.Role, in UploadInput) (*models.Video, error) {
	if role != models.RoleDoctor {
		return nil, apperror.Forbidden("Only doctors can upload videos")
	}

	md, err := s.metadata.FetchMetadata(ctx, in.YouTubeURL)
	if err != nil {
		return nil, fmt.Errorf("services/catalog: fetching metadata for %s: %w", in.YouTubeURL, err)
	}

	description := in.Description
	if description == "" {
		description = md.Description
	}

	video := &models.Video{
		YouTubeURL:  in.YouTubeURL,
		Title:       md.Title,
		Description: description,
		Category:    in.Category,
		UploadedBy:  accountID,
		UploadDate:  md.PublishedAt,
		ViewCount:   md.ViewCount,
		Thumbnail:   md.Thumbnail,
	}
	if err := s.videos.Insert(ctx, video); err != nil {
		return nil, fmt.Errorf("services/catalog: storing video: %w", err)
	}

	s.logger.Info("video uploaded",
		slog.String("videoID", video.ID.Hex()),
		slog.String("uploadedBy", accountID),
	)
	return video, nil
}

// List returns a doctor's own uploads, or for users every video with the ones
// already in their watch history first.
func (s *CatalogService) List(ctx context.Context, accountID string, role models.Role) ([]models.Video, error) {
	if role == models.RoleDoctor {
		videos, err := s.videos.List(ctx, accountID)
		if err != nil {
			return nil, fmt.Errorf("services/catalog: listing uploads of %s: %w", accountID, err)
		}
		return videos, nil
	}

	videos, err := s.videos.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("services/catalog: listing videos: %w", err)
	}
	history, err := s.accounts.WatchHistory(ctx, models.RoleUser, accountID)
	if err != nil {
		return nil, fmt.Errorf("services/catalog: loading history of %s: %w", accountID, err)
	}
	return WatchedFirst(videos, history), nil
}

// WatchedFirst stably partitions videos so that every video whose ID appears
// in history precedes every video that does not.
func WatchedFirst(videos []models.Video, history []string) []models.Video {
	watched := make(map[string]struct{}, len(history))
	for _, id := range history {
		watched[id] = struct{}{}
	}
	rank := func(v models.Video) int {
		if _, ok := watched[v.ID.Hex()]; ok {
			return 0
		}
		return 1
	}

	sorted := slices.Clone(videos)
	slices.SortStableFunc(sorted, func(a, b models.Video) int {
		return rank(a) - rank(b)
	})
	return sorted
}

// Delete removes a video. Only the doctor who uploaded it may do so.
func (s *CatalogService) Delete(ctx context.Context, accountID string, role models.Role, videoID string) error {
	video, err := s.videos.FindByID(ctx, videoID)
	if err != nil {
		return fmt.Errorf("services/catalog: finding %s: %w", videoID, err)
	}
	if role != models.RoleDoctor || video.UploadedBy != accountID {
		return apperror.Forbidden("Unauthorized to delete this video")
	}

	if err := s.videos.Delete(ctx, videoID); err != nil {
		return fmt.Errorf("services/catalog: deleting %s: %w", videoID, err)
	}

	s.logger.Info("video deleted",
		slog.String("videoID", videoID),
		slog.String("deletedBy", accountID),
	)
	return nil
}
