// Package services holds the business rules of the API: account signup and
// login, watch history and the video catalog. HTTP concerns stay in handlers.
package services

import (
	"context"

	"github.com/harentsoaR/mamacare-api/internal/models"
	"github.com/harentsoaR/mamacare-api/internal/youtube"
)

// HistoryStore reads and replaces an account's watch history.
type HistoryStore interface {
	WatchHistory(ctx context.Context, role models.Role, id string) ([]string, error)
	SetWatchHistory(ctx context.Context, role models.Role, id string, history []string) error
}

type AccountStore interface {
	HistoryStore
	EmailExists(ctx context.Context, role models.Role, email string) (bool, error)
	Create(ctx context.Context, account *models.Account) error
	FindByEmail(ctx context.Context, role models.Role, email string) (*models.Account, error)
	FindByID(ctx context.Context, role models.Role, id string) (*models.Account, error)
}

type VideoStore interface {
	Insert(ctx context.Context, video *models.Video) error
	List(ctx context.Context, uploadedBy string) ([]models.Video, error)
	FindByID(ctx context.Context, id string) (*models.Video, error)
	Delete(ctx context.Context, id string) error
}

type MetadataFetcher interface {
	FetchMetadata(ctx context.Context, url string) (youtube.Metadata, error)
}
