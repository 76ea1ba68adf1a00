package history

import (
	"context"
	"errors"
	"testing"
	"time"
)

type memStore struct {
	lists   map[string][]Entry
	size    int
	pushErr error
	lastLim int
}

func newMemStore(size int) *memStore {
	return &memStore{lists: map[string][]Entry{}, size: size}
}

func (m *memStore) Push(_ context.Context, uid string, e Entry) error {
	if m.pushErr != nil {
		return m.pushErr
	}
	l := append([]Entry{e}, m.lists[uid]...)
	if len(l) > m.size {
		l = l[:m.size]
	}
	m.lists[uid] = l
	return nil
}

func (m *memStore) Range(_ context.Context, uid string, limit int) ([]Entry, error) {
	m.lastLim = limit
	l := m.lists[uid]
	if len(l) > limit {
		l = l[:limit]
	}
	return l, nil
}

func (m *memStore) Size() int { return m.size }

func TestRecord_SkipsEmptyEntries(t *testing.T) {
	ms := newMemStore(3)
	svc := &Service{store: ms, now: time.Now}

	if err := svc.Record(context.Background(), "u1", Entry{Query: "hmm"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if len(ms.lists["u1"]) != 0 {
		t.Errorf("empty entry was stored: %+v", ms.lists["u1"])
	}
}

func TestRecord_StampsTime(t *testing.T) {
	fixed := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	ms := newMemStore(3)
	svc := &Service{store: ms, now: func() time.Time { return fixed }}

	if err := svc.Record(context.Background(), "u1", Entry{Query: "to Paris", Destination: "Paris"}); err != nil {
		t.Fatalf("Record: %v", err)
	}
	got := ms.lists["u1"]
	if len(got) != 1 || !got[0].SearchedAt.Equal(fixed) {
		t.Fatalf("stored = %+v", got)
	}
}

func TestRecord_PropagatesStoreError(t *testing.T) {
	boom := errors.New("redis down")
	ms := newMemStore(3)
	ms.pushErr = boom
	svc := &Service{store: ms, now: time.Now}

	if err := svc.Record(context.Background(), "u1", Entry{Destination: "Rome"}); !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
}

func TestRecent_NewestFirstAndClamped(t *testing.T) {
	ms := newMemStore(2)
	svc := &Service{store: ms, now: time.Now}
	ctx := context.Background()

	for _, d := range []string{"Paris", "Rome", "Oslo"} {
		if err := svc.Record(ctx, "u1", Entry{Destination: d}); err != nil {
			t.Fatalf("Record(%s): %v", d, err)
		}
	}

	got, err := svc.Recent(ctx, "u1", 50)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if ms.lastLim != 2 {
		t.Errorf("limit passed to store = %d, want 2", ms.lastLim)
	}
	if len(got) != 2 || got[0].Destination != "Oslo" || got[1].Destination != "Rome" {
		t.Errorf("Recent = %+v", got)
	}
}

func TestRecent_UnknownCallerReturnsEmptySlice(t *testing.T) {
	svc := &Service{store: newMemStore(5), now: time.Now}

	got, err := svc.Recent(context.Background(), "nobody", 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("Recent = %#v, want empty non-nil slice", got)
	}
}
