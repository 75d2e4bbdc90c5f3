package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/harentsoaR/mamacare-api/internal/apperror"
	"github.com/harentsoaR/mamacare-api/internal/models"
)

type HistoryService struct {
	accounts HistoryStore
	logger   *slog.Logger
}

func NewHistoryService(accounts HistoryStore, logger *slog.Logger) *HistoryService {
	return &HistoryService{accounts: accounts, logger: logger}
}

// RecordView moves videoID to the front of the account's history and returns
// the stored list. The update is read-modify-write: of two concurrent views
// on the same account, the last write wins.
func (s *HistoryService) RecordView(ctx context.Context, accountID string, role models.Role, videoID string) ([]string, error) {
	if accountID == "" {
		return nil, apperror.InvalidArgument("user_id must be a non-empty string")
	}
	if videoID == "" {
		return nil, apperror.InvalidArgument("video_id must be a non-empty string")
	}

	history, err := s.accounts.WatchHistory(ctx, role, accountID)
	if err != nil {
		return nil, fmt.Errorf("services/history: loading %s: %w", accountID, err)
	}

	updated := MoveToFront(history, videoID, models.MaxWatchHistory)
	if err := s.accounts.SetWatchHistory(ctx, role, accountID, updated); err != nil {
		return nil, fmt.Errorf("services/history: saving %s: %w", accountID, err)
	}

	s.logger.Debug("watch history updated",
		slog.String("accountID", accountID),
		slog.String("videoID", videoID),
		slog.Int("length", len(updated)),
	)
	return updated, nil
}

func (s *HistoryService) GetHistory(ctx context.Context, accountID string, role models.Role) ([]string, error) {
	history, err := s.accounts.WatchHistory(ctx, role, accountID)
	if err != nil {
		return nil, fmt.Errorf("services/history: loading %s: %w", accountID, err)
	}
	return history, nil
}

// MoveToFront returns a new list with id first, followed by the remaining
// entries of history in order with duplicates dropped, truncated to limit
// entries. history is not modified.
func MoveToFront(history []string, id string, limit int) []string {
	if limit < 1 {
		limit = 1
	}
	out := make([]string, 0, min(len(history)+1, limit))
	out = append(out, id)
	seen := map[string]struct{}{id: {}}
	for _, v := range history {
		if len(out) == limit {
			break
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}
