package audits_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/mbaumgart/perdiem/internal/audits"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", audits.ErrNotFound, http.StatusNotFound},
		{"duplicate", audits.ErrDuplicate, http.StatusConflict},
		{"already reviewed", audits.ErrAlreadyReviewed, http.StatusConflict},
		{"wrapped already reviewed", fmt.Errorf("review: %w", audits.ErrAlreadyReviewed), http.StatusConflict},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("find failed: %w", audits.ErrNotFound), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := audits.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
