package workflow

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/mbaumgart/perdiem/pkg/backend"
	"github.com/mbaumgart/perdiem/pkg/lifecycle"
)

type stubBackend struct {
	allowances map[string]float64
	err        error
}

func (s *stubBackend) Start(*lifecycle.Coordinator) error { return nil }

func (s *stubBackend) Allowances(context.Context) (map[string]float64, error) {
	return s.allowances, s.err
}

func (s *stubBackend) FindTicket(context.Context, string) (*backend.Ticket, error) {
	return nil, backend.ErrTicketNotFound
}

func (s *stubBackend) UpdateTicket(context.Context, *backend.Ticket) error { return nil }

func testRuntime(be backend.System) *Runtime {
	return &Runtime{
		Backend: be,
		Logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func TestFetchAllowances(t *testing.T) {
	t.Run("loads rate table", func(t *testing.T) {
		rt := testRuntime(&stubBackend{
			allowances: map[string]float64{"Berlin": 68, "Zurich": 95},
		})

		got := fetchAllowances(context.Background(), rt)
		if len(got) != 2 {
			t.Fatalf("entries = %d, want 2", len(got))
		}
		if got["Zurich"] != 95 {
			t.Errorf("Zurich rate = %v, want 95", got["Zurich"])
		}
	})

	t.Run("backend failure degrades to empty table", func(t *testing.T) {
		rt := testRuntime(&stubBackend{
			err: errors.New("connection refused"),
		})

		got := fetchAllowances(context.Background(), rt)
		if got == nil {
			t.Fatal("expected empty map, got nil")
		}
		if len(got) != 0 {
			t.Errorf("entries = %d, want 0", len(got))
		}
	})
}
