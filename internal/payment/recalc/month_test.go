package recalc

import (
	"testing"
	"time"
)

func TestPreviousMonth(t *testing.T) {
	tests := []struct {
		month string
		want  string
	}{
		{"2025-02", "2025-01"},
		{"2025-01", "2024-12"},
		{"2024-03", "2024-02"},
	}

	for _, tt := range tests {
		t.Run(tt.month, func(t *testing.T) {
			got, err := PreviousMonth(tt.month)
			if err != nil {
				t.Fatalf("PreviousMonth(%q) error: %v", tt.month, err)
			}
			if got != tt.want {
				t.Fatalf("PreviousMonth(%q) = %q, want %q", tt.month, got, tt.want)
			}
		})
	}

	if _, err := PreviousMonth("January 2025"); err == nil {
		t.Fatal("expected error for malformed month")
	}
	if _, err := PreviousMonth("2025-13"); err == nil {
		t.Fatal("expected error for month out of range")
	}
}

func TestNextMonth(t *testing.T) {
	got, err := NextMonth("2024-12")
	if err != nil {
		t.Fatalf("NextMonth error: %v", err)
	}
	if got != "2025-01" {
		t.Fatalf("NextMonth(2024-12) = %q, want 2025-01", got)
	}
}

func TestDueDate(t *testing.T) {
	got, err := DueDate("2025-03", 10)
	if err != nil {
		t.Fatalf("DueDate error: %v", err)
	}
	want := time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("DueDate(2025-03, 10) = %v, want %v", got, want)
	}
}
