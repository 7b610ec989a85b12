package database

import (
	"context"
	"strings"
	"testing"
)

// Validation runs before any database write, so a nil handle is fine for the
// rejection cases.

func TestSeedTheatersRejectsInvalidTimezone(t *testing.T) {
	err := SeedTheaters(context.Background(), nil, "AMC Empire 25|Mars/Olympus_Mons")
	if err == nil {
		t.Fatal("expected an error for an unknown IANA timezone")
	}
	if !strings.Contains(err.Error(), "Mars/Olympus_Mons") {
		t.Fatalf("error should name the offending timezone: %v", err)
	}
}

func TestSeedTheatersRejectsMalformedEntries(t *testing.T) {
	tests := []struct {
		name string
		catalog string
	}{
		{"missing separator", "AMC Empire 25"},
		{"empty name", "|America/New_York"},
		{"empty timezone", "AMC Empire 25|"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := SeedTheaters(context.Background(), nil, tt.catalog); err == nil {
				t.Fatalf("catalog %q should be rejected", tt.catalog)
			}
		})
	}
}

func TestSeedTheatersEmptySpecIsNoop(t *testing.T) {
	if err := SeedTheaters(context.Background(), nil, "  "); err != nil {
		t.Fatalf("empty catalog must be a no-op, got %v", err)
	}
}
