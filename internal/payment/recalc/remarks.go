package recalc

import (
	"fmt"
	"math"
	"strings"
)

// FormatAmount renders a currency amount with two decimals and thousands
// separators, e.g. 12500 -> "12,500.00". The output must stay stable: it
// appears on receipts and in payment remarks shown to residents.
func FormatAmount(v float64) string {
	s := fmt.Sprintf("%.2f", math.Abs(v))
	parts := strings.SplitN(s, ".", 2)
	whole, frac := parts[0], parts[1]

	var b strings.Builder
	if v < 0 {
		b.WriteByte('-')
	}
	lead := len(whole) % 3
	if lead > 0 {
		b.WriteString(whole[:lead])
		if len(whole) > lead {
			b.WriteByte(',')
		}
	}
	for i := lead; i < len(whole); i += 3 {
		b.WriteString(whole[i : i+3])
		if i+3 < len(whole) {
			b.WriteByte(',')
		}
	}
	b.WriteByte('.')
	b.WriteString(frac)
	return b.String()
}

// Remarks builds the human-readable breakdown stored on a recalculated
// payment: the base maintenance charge plus, when present, the balance
// carried over from the previous month.
func Remarks(baseMaintenance, carryForward float64) string {
	if carryForward > 0 {
		return fmt.Sprintf("Maintenance: ₹%s (includes carry forward ₹%s from previous month)",
			FormatAmount(baseMaintenance), FormatAmount(carryForward))
	}
	return fmt.Sprintf("Maintenance: ₹%s", FormatAmount(baseMaintenance))
}
