package classify

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/campusbot/internal/domain/chat"
)

// --- Mocks ---

type mockDetector struct {
	result   *chat.Classification
	err      error
	block    bool
	deadline bool
}

func (m *mockDetector) Detect(ctx context.Context, _, _ string, _ []chat.Turn) (*chat.Classification, error) {
	_, m.deadline = ctx.Deadline()
	if m.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	return m.result, m.err
}

// --- Tests ---

func TestClassify_ReturnsResult(t *testing.T) {
	det := &mockDetector{result: &chat.Classification{Action: "get_office_info", Confidence: 0.9}}
	svc := New(det, 0, 0, zap.NewNop())

	c := svc.Classify(context.Background(), "where is the registrar", "s-1", nil)
	if c == nil || c.Action != "get_office_info" {
		t.Fatalf("unexpected classification: %+v", c)
	}
	if !det.deadline {
		t.Error("expected detector to be called with a deadline")
	}
}

func TestClassify_NilOnErrorOrEmpty(t *testing.T) {
	tests := []struct {
		name string
		det  *mockDetector
	}{
		{"error", &mockDetector{err: errors.New("unavailable")}},
		{"nil result", &mockDetector{}},
		{"empty result", &mockDetector{result: &chat.Classification{Confidence: 0.9}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := New(tc.det, 0, 0, zap.NewNop())
			if c := svc.Classify(context.Background(), "x", "s-1", nil); c != nil {
				t.Errorf("expected nil, got %+v", c)
			}
		})
	}
}

func TestClassify_Timeout(t *testing.T) {
	svc := New(&mockDetector{block: true}, 0, 10*time.Millisecond, zap.NewNop())

	start := time.Now()
	if c := svc.Classify(context.Background(), "x", "s-1", nil); c != nil {
		t.Errorf("expected nil on timeout, got %+v", c)
	}
	if time.Since(start) > time.Second {
		t.Error("timeout not enforced")
	}
}

func TestTrusted(t *testing.T) {
	svc := New(&mockDetector{}, 0, 0, zap.NewNop())

	tests := []struct {
		name string
		c    *chat.Classification
		want bool
	}{
		{"nil", nil, false},
		{"below", &chat.Classification{Confidence: 0.1}, false},
		{"just below", &chat.Classification{Confidence: 0.299}, false},
		{"at threshold", &chat.Classification{Confidence: 0.3}, true},
		{"above", &chat.Classification{Confidence: 0.8}, true},
	}
	for _, tc := range tests {
		if got := svc.Trusted(tc.c); got != tc.want {
			t.Errorf("%s: Trusted() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestNew_CustomThreshold(t *testing.T) {
	svc := New(&mockDetector{}, 0.5, 0, zap.NewNop())
	if svc.Trusted(&chat.Classification{Confidence: 0.4}) {
		t.Error("0.4 should be below a 0.5 threshold")
	}
	if svc.Threshold() != 0.5 {
		t.Errorf("threshold = %v", svc.Threshold())
	}
}
