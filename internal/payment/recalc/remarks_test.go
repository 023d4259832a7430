package recalc

import "testing"

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0.00"},
		{5, "5.00"},
		{999.9, "999.90"},
		{3000, "3,000.00"},
		{12500.5, "12,500.50"},
		{1234567.89, "1,234,567.89"},
		{-2500, "-2,500.00"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatAmount(tt.in); got != tt.want {
				t.Fatalf("FormatAmount(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRemarks(t *testing.T) {
	got := Remarks(3000, 0)
	want := "Maintenance: ₹3,000.00"
	if got != want {
		t.Fatalf("Remarks without carry = %q, want %q", got, want)
	}

	got = Remarks(3000, 2000)
	want = "Maintenance: ₹3,000.00 (includes carry forward ₹2,000.00 from previous month)"
	if got != want {
		t.Fatalf("Remarks with carry = %q, want %q", got, want)
	}
}
