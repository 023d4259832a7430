package recalc

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		due  float64
		paid float64
		want Status
	}{
		{"fully paid", 3000, 3000, StatusPaid},
		{"overpaid", 3000, 3500, StatusPaid},
		{"partial", 3000, 1000, StatusPartial},
		{"tiny partial", 3000, 0.01, StatusPartial},
		{"unpaid", 3000, 0, StatusPending},
		{"zero due zero paid", 0, 0, StatusPaid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.due, tt.paid); got != tt.want {
				t.Fatalf("Classify(%v, %v) = %s, want %s", tt.due, tt.paid, got, tt.want)
			}
		})
	}
}

func TestClassifyByDate(t *testing.T) {
	tests := []struct {
		name      string
		due       float64
		paid      float64
		duePassed bool
		want      Status
	}{
		{"fully paid past due", 3000, 3000, true, StatusPaid},
		{"partial past due", 3000, 1000, true, StatusPartial},
		{"unpaid past due", 3000, 0, true, StatusOverdue},
		{"unpaid not yet due", 3000, 0, false, StatusPending},
		{"partial not yet due", 3000, 1000, false, StatusPartial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyByDate(tt.due, tt.paid, tt.duePassed); got != tt.want {
				t.Fatalf("ClassifyByDate(%v, %v, %v) = %s, want %s", tt.due, tt.paid, tt.duePassed, got, tt.want)
			}
		})
	}
}
