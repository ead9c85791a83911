package backend_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mbaumgart/perdiem/pkg/backend"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newClient(t *testing.T, baseURL string) backend.System {
	t.Helper()
	sys, err := backend.New(&backend.Config{
		BaseURL:  baseURL,
		Username: "auditor",
		Password: "secret",
		Timeout:  "5s",
	}, discardLogger())
	if err != nil {
		t.Fatalf("New error: %v", err)
	}
	return sys
}

func requireBasicAuth(t *testing.T, r *http.Request) {
	t.Helper()
	user, pass, ok := r.BasicAuth()
	if !ok || user != "auditor" || pass != "secret" {
		t.Errorf("basic auth = %q/%q (ok=%v), want auditor/secret", user, pass, ok)
	}
}

func TestAllowances(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requireBasicAuth(t, r)
		if r.URL.Path != "/allowances" {
			t.Errorf("path = %q, want /allowances", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"Oslo": 75.5, "Bergen": 60}`)
	}))
	defer srv.Close()

	sys := newClient(t, srv.URL)
	rates, err := sys.Allowances(context.Background())
	if err != nil {
		t.Fatalf("Allowances error: %v", err)
	}
	if len(rates) != 2 {
		t.Fatalf("rates length = %d, want 2", len(rates))
	}
	if rates["Oslo"] != 75.5 {
		t.Errorf("Oslo rate = %v, want 75.5", rates["Oslo"])
	}
	if rates["Bergen"] != 60 {
		t.Errorf("Bergen rate = %v, want 60", rates["Bergen"])
	}
}

func TestAllowancesUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	sys := newClient(t, srv.URL)
	_, err := sys.Allowances(context.Background())
	if !errors.Is(err, backend.ErrUnexpectedStatus) {
		t.Errorf("err = %v, want ErrUnexpectedStatus", err)
	}
}

func TestFindTicket(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requireBasicAuth(t, r)
		if r.URL.Path != "/travelTicket" {
			t.Errorf("path = %q, want /travelTicket", r.URL.Path)
		}
		if got := r.URL.Query().Get("ticketID"); got != "TR-42" {
			t.Errorf("ticketID = %q, want TR-42", got)
		}
		w.Header().Set("Content-Type", "application/json")
		io.WriteString(w, `{"ticketStatus": "OPEN", "destination": "Oslo"}`)
	}))
	defer srv.Close()

	sys := newClient(t, srv.URL)
	ticket, err := sys.FindTicket(context.Background(), "TR-42")
	if err != nil {
		t.Fatalf("FindTicket error: %v", err)
	}
	if ticket.ID != "TR-42" {
		t.Errorf("ID = %q, want TR-42", ticket.ID)
	}
	if ticket.Status() != "OPEN" {
		t.Errorf("Status() = %q, want OPEN", ticket.Status())
	}
	if ticket.Fields["destination"] != "Oslo" {
		t.Errorf("destination = %v, want Oslo", ticket.Fields["destination"])
	}
}

func TestFindTicketNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	sys := newClient(t, srv.URL)
	_, err := sys.FindTicket(context.Background(), "missing")
	if !errors.Is(err, backend.ErrTicketNotFound) {
		t.Errorf("err = %v, want ErrTicketNotFound", err)
	}
}

func TestFindTicketEmptyID(t *testing.T) {
	sys := newClient(t, "http://localhost:0")
	_, err := sys.FindTicket(context.Background(), "")
	if !errors.Is(err, backend.ErrTicketNotFound) {
		t.Errorf("err = %v, want ErrTicketNotFound", err)
	}
}

func TestUpdateTicket(t *testing.T) {
	var body map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requireBasicAuth(t, r)
		if r.Method != http.MethodPut {
			t.Errorf("method = %q, want PUT", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q, want application/json", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	sys := newClient(t, srv.URL)
	ticket := &backend.Ticket{
		ID:     "TR-42",
		Fields: map[string]any{"destination": "Oslo"},
	}
	ticket.SetStatus(false, "claimed total does not match invoices")

	if err := sys.UpdateTicket(context.Background(), ticket); err != nil {
		t.Fatalf("UpdateTicket error: %v", err)
	}
	if body["ticketStatus"] != backend.StatusRejected {
		t.Errorf("ticketStatus = %v, want %s", body["ticketStatus"], backend.StatusRejected)
	}
	if body["comment"] != "claimed total does not match invoices" {
		t.Errorf("comment = %v", body["comment"])
	}
	if body["destination"] != "Oslo" {
		t.Errorf("destination = %v, want Oslo (payload must carry original fields)", body["destination"])
	}
}

func TestUpdateTicketUnexpectedStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	sys := newClient(t, srv.URL)
	ticket := &backend.Ticket{ID: "TR-42", Fields: map[string]any{}}
	err := sys.UpdateTicket(context.Background(), ticket)
	if !errors.Is(err, backend.ErrUnexpectedStatus) {
		t.Errorf("err = %v, want ErrUnexpectedStatus", err)
	}
}

func TestSetStatus(t *testing.T) {
	ticket := &backend.Ticket{ID: "TR-1", Fields: map[string]any{}}

	ticket.SetStatus(true, "all checks passed")
	if ticket.Status() != backend.StatusApproved {
		t.Errorf("Status() = %q, want %s", ticket.Status(), backend.StatusApproved)
	}

	ticket.SetStatus(false, "period mismatch")
	if ticket.Status() != backend.StatusRejected {
		t.Errorf("Status() = %q, want %s", ticket.Status(), backend.StatusRejected)
	}
	if ticket.Fields["comment"] != "period mismatch" {
		t.Errorf("comment = %v, want period mismatch", ticket.Fields["comment"])
	}
}

func TestReadOnlySuppressesUpdates(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	sys := backend.ReadOnly(newClient(t, srv.URL))
	ticket := &backend.Ticket{ID: "TR-42", Fields: map[string]any{}}
	if err := sys.UpdateTicket(context.Background(), ticket); err != nil {
		t.Fatalf("UpdateTicket error: %v", err)
	}
	if called {
		t.Error("read-only client reached the backend on update")
	}
}

func TestConfigFinalize(t *testing.T) {
	t.Run("defaults and env", func(t *testing.T) {
		t.Setenv("TEST_BACKEND_URL", "http://backend:8080")
		t.Setenv("TEST_BACKEND_USER", "svc")
		t.Setenv("TEST_BACKEND_PASS", "pw")

		cfg := &backend.Config{}
		env := &backend.Env{
			BaseURL:  "TEST_BACKEND_URL",
			Username: "TEST_BACKEND_USER",
			Password: "TEST_BACKEND_PASS",
			Timeout:  "TEST_BACKEND_TIMEOUT",
		}
		if err := cfg.Finalize(env); err != nil {
			t.Fatalf("Finalize error: %v", err)
		}
		if cfg.BaseURL != "http://backend:8080" {
			t.Errorf("BaseURL = %q", cfg.BaseURL)
		}
		if cfg.Timeout != "10s" {
			t.Errorf("Timeout = %q, want 10s default", cfg.Timeout)
		}
	})

	t.Run("missing credentials", func(t *testing.T) {
		cfg := &backend.Config{BaseURL: "http://backend:8080"}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("Finalize expected error for missing credentials")
		}
	})

	t.Run("invalid base url", func(t *testing.T) {
		cfg := &backend.Config{BaseURL: "not-a-url", Username: "u", Password: "p"}
		if err := cfg.Finalize(nil); err == nil {
			t.Error("Finalize expected error for invalid base_url")
		}
	})
}
