package prompts_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/mbaumgart/perdiem/internal/prompts"
)

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", prompts.ErrNotFound, http.StatusNotFound},
		{"duplicate", prompts.ErrDuplicate, http.StatusConflict},
		{"invalid stage", prompts.ErrInvalidStage, http.StatusBadRequest},
		{"unknown error", errors.New("something else"), http.StatusInternalServerError},
		{"wrapped not found", fmt.Errorf("find failed: %w", prompts.ErrNotFound), http.StatusNotFound},
		{"wrapped invalid stage", fmt.Errorf("decode failed: %w", prompts.ErrInvalidStage), http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := prompts.MapHTTPStatus(tt.err); got != tt.want {
				t.Errorf("MapHTTPStatus(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}
