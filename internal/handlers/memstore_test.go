package handlers

import (
	"context"
	"errors"
	"slices"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/mamacare-api/internal/apperror"
	"github.com/harentsoaR/mamacare-api/internal/models"
	"github.com/harentsoaR/mamacare-api/internal/youtube"
)

// memAccounts is an in-memory services.AccountStore.
type memAccounts struct {
	mu   sync.Mutex
	byID map[models.Role]map[string]*models.Account
}

func newMemAccounts() *memAccounts {
	return &memAccounts{byID: map[models.Role]map[string]*models.Account{
		models.RoleUser:   {},
		models.RoleDoctor: {},
	}}
}

func (m *memAccounts) EmailExists(ctx context.Context, role models.Role, email string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.byID[role] {
		if a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *memAccounts) Create(ctx context.Context, account *models.Account) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	account.ID = primitive.NewObjectID()
	copied := *account
	m.byID[account.Role][account.ID.Hex()] = &copied
	return nil
}

func (m *memAccounts) FindByEmail(ctx context.Context, role models.Role, email string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, a := range m.byID[role] {
		if a.Email == email {
			copied := *a
			return &copied, nil
		}
	}
	return nil, apperror.AccountNotFound(string(role))
}

func (m *memAccounts) FindByID(ctx context.Context, role models.Role, id string) (*models.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[role][id]
	if !ok {
		return nil, apperror.AccountNotFound(string(role))
	}
	copied := *a
	return &copied, nil
}

func (m *memAccounts) WatchHistory(ctx context.Context, role models.Role, id string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[role][id]
	if !ok {
		return nil, apperror.AccountNotFound(string(role))
	}
	if a.WatchHistory == nil {
		return []string{}, nil
	}
	return slices.Clone(a.WatchHistory), nil
}

func (m *memAccounts) SetWatchHistory(ctx context.Context, role models.Role, id string, history []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	a, ok := m.byID[role][id]
	if !ok {
		return apperror.AccountNotFound(string(role))
	}
	a.WatchHistory = slices.Clone(history)
	return nil
}

// memVideos is an in-memory services.VideoStore that keeps insertion order.
type memVideos struct {
	mu     sync.Mutex
	videos []models.Video
}

func (m *memVideos) Insert(ctx context.Context, video *models.Video) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	video.ID = primitive.NewObjectID()
	m.videos = append(m.videos, *video)
	return nil
}

func (m *memVideos) List(ctx context.Context, uploadedBy string) ([]models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Video, 0, len(m.videos))
	for _, v := range m.videos {
		if uploadedBy == "" || v.UploadedBy == uploadedBy {
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *memVideos) FindByID(ctx context.Context, id string) (*models.Video, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, v := range m.videos {
		if v.ID.Hex() == id {
			copied := v
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("Video not found")
}

func (m *memVideos) Delete(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, v := range m.videos {
		if v.ID.Hex() == id {
			m.videos = slices.Delete(m.videos, i, i+1)
			return nil
		}
	}
	return apperror.NotFound("Video not found")
}

// stubFetcher resolves every URL it knows and rejects the rest.
type stubFetcher map[string]youtube.Metadata

func (s stubFetcher) FetchMetadata(ctx context.Context, url string) (youtube.Metadata, error) {
	if _, err := youtube.ExtractVideoID(url); err != nil {
		return youtube.Metadata{}, err
	}
	md, ok := s[url]
	if !ok {
		return youtube.Metadata{}, apperror.NotFound("YouTube video not found")
	}
	return md, nil
}

type stubPinger struct{ err error }

func (p stubPinger) Ping(ctx context.Context) error { return p.err }

var errPingFailed = errors.New("server selection timeout")
