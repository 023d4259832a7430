package export

import (
	"strings"
	"testing"
)

func TestWrite(t *testing.T) {
	rows := []Row{
		{
			FlatNumber:    "A-101",
			ResidentName:  "Sharma",
			Month:         "2025-01",
			AmountDue:     3000,
			AmountPaid:    3000,
			Status:        "PAID",
			DueDate:       "2025-01-10",
			PaymentDate:   "2025-01-08",
			PaymentMethod: "UPI",
			Remarks:       "Maintenance: ₹3,000.00",
		},
		{
			FlatNumber:   "B-204",
			ResidentName: "Rao, Priya",
			Month:        "2025-01",
			AmountDue:    5000,
			AmountPaid:   0,
			Status:       "PENDING",
			DueDate:      "2025-01-10",
		},
	}

	var sb strings.Builder
	if err := Write(&sb, rows); err != nil {
		t.Fatalf("Write error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "flat_number,resident_name,month") {
		t.Fatalf("unexpected header: %q", lines[0])
	}
	if !strings.Contains(lines[1], "A-101") || !strings.Contains(lines[1], "3000.00") {
		t.Fatalf("unexpected first row: %q", lines[1])
	}
	// A name containing a comma must be quoted
	if !strings.Contains(lines[2], `"Rao, Priya"`) {
		t.Fatalf("expected quoted name in second row: %q", lines[2])
	}
}

func TestWriteEmpty(t *testing.T) {
	var sb strings.Builder
	if err := Write(&sb, nil); err != nil {
		t.Fatalf("Write error: %v", err)
	}
	if got := strings.TrimSpace(sb.String()); !strings.HasPrefix(got, "flat_number") || strings.Contains(got, "\n") {
		t.Fatalf("expected only the header line, got %q", got)
	}
}
