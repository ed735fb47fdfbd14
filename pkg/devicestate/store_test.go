package devicestate

import (
	"context"
	"errors"
	"testing"
	"time"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := New(Config{InMemory: true})
	if err != nil {
		t.Fatalf("failed to open in-memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestRecordAndGet(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	seen := time.Now().UTC().Truncate(time.Second)
	state := State{
		DeviceID:      "dev-1",
		LastSeenAt:    seen,
		PlayerVersion: "2.4.0",
		PlaylistID:    "pl-1",
		IPAddress:     "10.0.0.5",
	}

	if err := s.Record(ctx, state); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	got, err := s.Get(ctx, "dev-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !got.LastSeenAt.Equal(seen) {
		t.Errorf("LastSeenAt = %v, want %v", got.LastSeenAt, seen)
	}
	if got.PlayerVersion != "2.4.0" || got.PlaylistID != "pl-1" {
		t.Errorf("got %+v", got)
	}
}

func TestRecordFillsLastSeen(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	before := time.Now().UTC()
	if err := s.Record(ctx, State{DeviceID: "dev-1"}); err != nil {
		t.Fatalf("Record() error = %v", err)
	}

	got, err := s.Get(ctx, "dev-1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.LastSeenAt.Before(before) {
		t.Errorf("LastSeenAt = %v not filled in", got.LastSeenAt)
	}
}

func TestRecordRequiresDeviceID(t *testing.T) {
	s := newTestStore(t)

	if err := s.Record(context.Background(), State{}); err == nil {
		t.Error("Record() without device id succeeded")
	}
}

func TestGetNotFound(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Get(context.Background(), "never-seen")
	if !errors.Is(err, ErrStateNotFound) {
		t.Errorf("Get() error = %v, want ErrStateNotFound", err)
	}
}

func TestDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Record(ctx, State{DeviceID: "dev-1"}); err != nil {
		t.Fatal(err)
	}
	if err := s.Delete(ctx, "dev-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Get(ctx, "dev-1"); !errors.Is(err, ErrStateNotFound) {
		t.Errorf("state survived delete: %v", err)
	}

	// Deleting a missing device is not an error
	if err := s.Delete(ctx, "dev-1"); err != nil {
		t.Errorf("second Delete() error = %v", err)
	}
}

func TestHealthcheck(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	if err := s.Healthcheck(ctx); err != nil {
		t.Errorf("Healthcheck() error = %v", err)
	}

	s.Close()
	if err := s.Healthcheck(ctx); err == nil {
		t.Error("Healthcheck() on closed store succeeded")
	}
}
