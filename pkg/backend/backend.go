// Package backend provides the HTTP client for the expense ticketing backend.
// It covers the allowance rate table and the travel ticket record used to
// track the status of an expense claim.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/mbaumgart/perdiem/pkg/lifecycle"
)

// Ticket is a travel ticket record in the backend. Fields holds the full
// backend payload so updates can write the record back unchanged apart from
// status and comment.
type Ticket struct {
	ID     string
	Fields map[string]any
}

// Status values written back to the backend after an audit.
const (
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

const (
	fieldStatus  = "ticketStatus"
	fieldComment = "comment"
)

// SetStatus records the audit outcome on the ticket payload.
func (t *Ticket) SetStatus(approved bool, comment string) {
	status := StatusRejected
	if approved {
		status = StatusApproved
	}
	t.Fields[fieldStatus] = status
	t.Fields[fieldComment] = comment
}

// Status returns the ticket status field, if present.
func (t *Ticket) Status() string {
	s, _ := t.Fields[fieldStatus].(string)
	return s
}

// System defines the backend operations the audit workflow depends on.
type System interface {
	// Start registers a startup hook that probes backend connectivity.
	Start(lc *lifecycle.Coordinator) error
	// Allowances fetches the city-to-daily-rate table.
	Allowances(ctx context.Context) (map[string]float64, error)
	// FindTicket fetches a travel ticket by ID. Returns ErrTicketNotFound
	// when the backend reports 404.
	FindTicket(ctx context.Context, ticketID string) (*Ticket, error)
	// UpdateTicket writes the ticket record back to the backend.
	UpdateTicket(ctx context.Context, ticket *Ticket) error
}

type client struct {
	http    *http.Client
	baseURL string
	user    string
	pass    string
	logger  *slog.Logger
}

// New creates a backend client from the given configuration.
func New(cfg *Config, logger *slog.Logger) (System, error) {
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("invalid backend base_url: %w", err)
	}

	return &client{
		http:    &http.Client{Timeout: cfg.TimeoutDuration()},
		baseURL: cfg.BaseURL,
		user:    cfg.Username,
		pass:    cfg.Password,
		logger:  logger.With("system", "backend"),
	}, nil
}

func (c *client) Start(lc *lifecycle.Coordinator) error {
	c.logger.Info("starting backend client")

	lc.OnStartup(func() {
		if _, err := c.Allowances(lc.Context()); err != nil {
			c.logger.Error("backend probe failed", "error", err)
			return
		}
		c.logger.Info("backend reachable", "base_url", c.baseURL)
	})

	return nil
}

func (c *client) Allowances(ctx context.Context) (map[string]float64, error) {
	resp, err := c.request(ctx, http.MethodGet, "/allowances", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("fetch allowances: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: fetch allowances: HTTP %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	var raw map[string]json.Number
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse allowances: %w", err)
	}

	rates := make(map[string]float64, len(raw))
	for city, rate := range raw {
		v, err := rate.Float64()
		if err != nil {
			return nil, fmt.Errorf("parse allowance for %s: %w", city, err)
		}
		rates[city] = v
	}

	c.logger.Info("allowances loaded", "entries", len(rates))
	return rates, nil
}

func (c *client) FindTicket(ctx context.Context, ticketID string) (*Ticket, error) {
	if ticketID == "" {
		return nil, ErrTicketNotFound
	}

	params := url.Values{"ticketID": {ticketID}}
	resp, err := c.request(ctx, http.MethodGet, "/travelTicket", params, nil)
	if err != nil {
		return nil, fmt.Errorf("find ticket %s: %w", ticketID, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrTicketNotFound
	default:
		return nil, fmt.Errorf("%w: find ticket %s: HTTP %d", ErrUnexpectedStatus, ticketID, resp.StatusCode)
	}

	var fields map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&fields); err != nil {
		return nil, fmt.Errorf("parse ticket %s: %w", ticketID, err)
	}

	c.logger.Info("ticket found", "ticket_id", ticketID)
	return &Ticket{ID: ticketID, Fields: fields}, nil
}

func (c *client) UpdateTicket(ctx context.Context, ticket *Ticket) error {
	if ticket == nil || ticket.ID == "" {
		return ErrTicketNotFound
	}

	payload, err := json.Marshal(ticket.Fields)
	if err != nil {
		return fmt.Errorf("marshal ticket %s: %w", ticket.ID, err)
	}

	resp, err := c.request(ctx, http.MethodPut, "/travelTicket", nil, payload)
	if err != nil {
		return fmt.Errorf("update ticket %s: %w", ticket.ID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf(
			"%w: update ticket %s: HTTP %d: %s",
			ErrUnexpectedStatus, ticket.ID, resp.StatusCode, body,
		)
	}

	c.logger.Info("ticket updated", "ticket_id", ticket.ID, "status", ticket.Status())
	return nil
}

func (c *client) request(
	ctx context.Context,
	method string,
	path string,
	params url.Values,
	payload []byte,
) (*http.Response, error) {
	endpoint := c.baseURL + path
	if len(params) > 0 {
		endpoint += "?" + params.Encode()
	}

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, err
	}

	req.SetBasicAuth(c.user, c.pass)
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}

	c.logger.Debug(
		"backend request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"duration", time.Since(start),
	)

	return resp, nil
}
