package services

import (
	"context"
	"io"
	"log/slog"
	"slices"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/harentsoaR/mamacare-api/internal/apperror"
	"github.com/harentsoaR/mamacare-api/internal/models"
	"github.com/harentsoaR/mamacare-api/internal/youtube"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAccountStore is an in-memory AccountStore keyed by role and hex ID.
type fakeAccountStore struct {
	mu        sync.Mutex
	accounts  map[models.Role]map[string]*models.Account
	createErr error
	setCalls  int
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: map[models.Role]map[string]*models.Account{
		models.RoleUser:   {},
		models.RoleDoctor: {},
	}}
}

func (f *fakeAccountStore) EmailExists(ctx context.Context, role models.Role, email string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts[role] {
		if a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeAccountStore) Create(ctx context.Context, account *models.Account) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	account.ID = primitive.NewObjectID()
	copied := *account
	f.accounts[account.Role][account.ID.Hex()] = &copied
	return nil
}

func (f *fakeAccountStore) FindByEmail(ctx context.Context, role models.Role, email string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, a := range f.accounts[role] {
		if a.Email == email {
			copied := *a
			copied.WatchHistory = slices.Clone(a.WatchHistory)
			return &copied, nil
		}
	}
	return nil, apperror.AccountNotFound(string(role))
}

func (f *fakeAccountStore) FindByID(ctx context.Context, role models.Role, id string) (*models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[role][id]
	if !ok {
		return nil, apperror.AccountNotFound(string(role))
	}
	copied := *a
	copied.WatchHistory = slices.Clone(a.WatchHistory)
	return &copied, nil
}

func (f *fakeAccountStore) WatchHistory(ctx context.Context, role models.Role, id string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	a, ok := f.accounts[role][id]
	if !ok {
		return nil, apperror.AccountNotFound(string(role))
	}
	if a.WatchHistory == nil {
		return []string{}, nil
	}
	return slices.Clone(a.WatchHistory), nil
}

func (f *fakeAccountStore) SetWatchHistory(ctx context.Context, role models.Role, id string, history []string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.setCalls++
	a, ok := f.accounts[role][id]
	if !ok {
		return apperror.AccountNotFound(string(role))
	}
	a.WatchHistory = slices.Clone(history)
	return nil
}

func (f *fakeAccountStore) add(role models.Role, history []string) string {
	id := primitive.NewObjectID()
	f.accounts[role][id.Hex()] = &models.Account{ID: id, Role: role, WatchHistory: history}
	return id.Hex()
}

// fakeVideoStore keeps videos in insertion order.
type fakeVideoStore struct {
	videos    []models.Video
	insertErr error
	listArg   *string
}

func (f *fakeVideoStore) Insert(ctx context.Context, video *models.Video) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	video.ID = primitive.NewObjectID()
	f.videos = append(f.videos, *video)
	return nil
}

func (f *fakeVideoStore) List(ctx context.Context, uploadedBy string) ([]models.Video, error) {
	f.listArg = &uploadedBy
	out := make([]models.Video, 0)
	for _, v := range f.videos {
		if uploadedBy == "" || v.UploadedBy == uploadedBy {
			out = append(out, v)
		}
	}
	return out, nil
}

func (f *fakeVideoStore) FindByID(ctx context.Context, id string) (*models.Video, error) {
	for _, v := range f.videos {
		if v.ID.Hex() == id {
			copied := v
			return &copied, nil
		}
	}
	return nil, apperror.NotFound("Video not found")
}

func (f *fakeVideoStore) Delete(ctx context.Context, id string) error {
	for i, v := range f.videos {
		if v.ID.Hex() == id {
			f.videos = append(f.videos[:i], f.videos[i+1:]...)
			return nil
		}
	}
	return apperror.NotFound("Video not found")
}

func (f *fakeVideoStore) add(title, uploadedBy string) string {
	v := models.Video{ID: primitive.NewObjectID(), Title: title, UploadedBy: uploadedBy}
	f.videos = append(f.videos, v)
	return v.ID.Hex()
}

type fakeFetcher struct {
	metadata youtube.Metadata
	err      error
	calls    int
}

func (f *fakeFetcher) FetchMetadata(ctx context.Context, url string) (youtube.Metadata, error) {
	f.calls++
	return f.metadata, f.err
}
