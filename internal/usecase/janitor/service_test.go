package janitor

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"
)

// --- Mocks ---

type mockSessions struct {
	mu        sync.Mutex
	idle      []string
	idleErr   error
	deleteErr map[string]error
	cutoff    time.Time
	deleted   []string
}

func (m *mockSessions) IdleSince(_ context.Context, t time.Time) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cutoff = t
	return m.idle, m.idleErr
}

func (m *mockSessions) Delete(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.deleteErr[id]; err != nil {
		return err
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockSessions) deletedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.deleted)
}

// --- Tests ---

func TestSweep_RemovesIdle(t *testing.T) {
	now := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	store := &mockSessions{idle: []string{"a", "b", "c"}, deleteErr: map[string]error{"b": errors.New("timeout")}}
	svc := New(store, time.Minute, 30*time.Minute, zap.NewNop())
	svc.now = func() time.Time { return now }

	n, err := svc.Sweep(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n != 2 {
		t.Errorf("expected 2 removed, got %d", n)
	}
	if !store.cutoff.Equal(now.Add(-30 * time.Minute)) {
		t.Errorf("wrong cutoff %v", store.cutoff)
	}
}

func TestSweep_ListError(t *testing.T) {
	store := &mockSessions{idleErr: errors.New("conn refused")}
	svc := New(store, time.Minute, time.Hour, zap.NewNop())

	if _, err := svc.Sweep(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestRun_SweepsOnTick(t *testing.T) {
	store := &mockSessions{idle: []string{"a"}}
	svc := New(store, 5*time.Millisecond, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Run(ctx) }()

	deadline := time.After(2 * time.Second)
	for store.deletedCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("no sweep happened")
		case <-time.After(5 * time.Millisecond):
		}
	}
	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run returned %v", err)
	}
}

func TestRun_DisabledWaitsForCancel(t *testing.T) {
	store := &mockSessions{idle: []string{"a"}}
	svc := New(store, 0, time.Hour, zap.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := svc.Run(ctx); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if store.deletedCount() != 0 {
		t.Error("disabled janitor must not sweep")
	}
}
