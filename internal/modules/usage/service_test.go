package usage

import (
	"context"
	"errors"
	"testing"
)

// fakeStore is an in-memory stand-in for the Postgres store.
type fakeStore struct {
	rows      map[string]int
	allowance int
	ensureErr error
	useCalls  int
}

func newFakeStore(allowance int) *fakeStore {
	return &fakeStore{rows: map[string]int{}, allowance: allowance}
}

func (f *fakeStore) UseToken(_ context.Context, uid string) error {
	f.useCalls++
	left, ok := f.rows[uid]
	if !ok || left == 0 {
		return ErrInsufficientTokens
	}
	f.rows[uid] = left - 1
	return nil
}

func (f *fakeStore) EnsureUser(_ context.Context, uid string) error {
	if f.ensureErr != nil {
		return f.ensureErr
	}
	if _, ok := f.rows[uid]; !ok {
		f.rows[uid] = f.allowance
	}
	return nil
}

func TestService_UseToken_NewUserInitialised(t *testing.T) {
	fs := newFakeStore(3)
	svc := &Service{store: fs}

	if err := svc.UseToken(context.Background(), "u1"); err != nil {
		t.Fatalf("UseToken: %v", err)
	}
	if fs.rows["u1"] != 2 {
		t.Errorf("remaining = %d, want 2", fs.rows["u1"])
	}
	if fs.useCalls != 2 {
		t.Errorf("deduction attempts = %d, want 2 (miss then retry)", fs.useCalls)
	}
}

func TestService_UseToken_Exhausted(t *testing.T) {
	fs := newFakeStore(1)
	svc := &Service{store: fs}
	ctx := context.Background()

	if err := svc.UseToken(ctx, "u1"); err != nil {
		t.Fatalf("first UseToken: %v", err)
	}
	if err := svc.UseToken(ctx, "u1"); !errors.Is(err, ErrInsufficientTokens) {
		t.Fatalf("second UseToken error = %v, want ErrInsufficientTokens", err)
	}
}

func TestService_UseToken_EnsureFailure(t *testing.T) {
	boom := errors.New("db down")
	fs := newFakeStore(1)
	fs.ensureErr = boom
	svc := &Service{store: fs}

	if err := svc.UseToken(context.Background(), "u1"); !errors.Is(err, boom) {
		t.Errorf("error = %v, want %v", err, boom)
	}
}

func TestNewStore_DefaultAllowance(t *testing.T) {
	if s := NewStore(nil, 0); s.allowance != DefaultTokens {
		t.Errorf("allowance = %d, want %d", s.allowance, DefaultTokens)
	}
	if s := NewStore(nil, 7); s.allowance != 7 {
		t.Errorf("allowance = %d, want 7", s.allowance)
	}
}
