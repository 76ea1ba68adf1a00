package history

import (
	"context"
	"time"
)

type store interface {
	Push(ctx context.Context, uid string, e Entry) error
	Range(ctx context.Context, uid string, limit int) ([]Entry, error)
	Size() int
}

// Service records and lists recent flight searches.
type Service struct {
	store store
	now   func() time.Time
}

func NewService(s *Store) *Service {
	return &Service{store: s, now: time.Now}
}

// Record stores a search when at least one field was extracted. Queries that
// yielded nothing are dropped.
func (s *Service) Record(ctx context.Context, uid string, e Entry) error {
	if e.Destination == "" && e.Dates == "" && e.OtherDetails == "" {
		return nil
	}
	if e.SearchedAt.IsZero() {
		e.SearchedAt = s.now().UTC()
	}
	return s.store.Push(ctx, uid, e)
}

// Recent returns up to limit entries, newest first. limit is clamped to
// [1, configured size].
func (s *Service) Recent(ctx context.Context, uid string, limit int) ([]Entry, error) {
	if limit <= 0 || limit > s.store.Size() {
		limit = s.store.Size()
	}
	entries, err := s.store.Range(ctx, uid, limit)
	if err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}
