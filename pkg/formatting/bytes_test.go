package formatting_test

import (
	"testing"

	"github.com/mbaumgart/perdiem/pkg/formatting"
)

func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name      string
		n         int64
		precision int
		want      string
	}{
		{"zero", 0, 2, "0 B"},
		{"bytes", 512, 0, "512 B"},
		{"kilobytes", 2048, 1, "2.0 KB"},
		{"megabytes", 50 * 1024 * 1024, 0, "50 MB"},
		{"negative precision clamped", 1024, -1, "1 KB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatting.FormatBytes(tt.n, tt.precision); got != tt.want {
				t.Errorf("FormatBytes(%d, %d) = %q, want %q", tt.n, tt.precision, got, tt.want)
			}
		})
	}
}

func TestParseBytes(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int64
		wantErr bool
	}{
		{"bare number", "1024", 1024, false},
		{"megabytes", "50MB", 50 * 1024 * 1024, false},
		{"lowercase unit", "2kb", 2048, false},
		{"spaced unit", "1 GB", 1024 * 1024 * 1024, false},
		{"fractional", "1.5KB", 1536, false},
		{"empty", "", 0, true},
		{"unknown unit", "5XB", 0, true},
		{"not a number", "many MB", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := formatting.ParseBytes(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseBytes(%q) expected error, got %d", tt.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseBytes(%q) error: %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseBytes(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}
