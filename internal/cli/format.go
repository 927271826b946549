package cli

import (
	"fmt"
	"strconv"
)

// Absent is printed where a derived metric has no defined value.
const Absent = "—"

// FormatMoney formats a monetary amount with two decimals.
func FormatMoney(amount float64) string {
	return fmt.Sprintf("%.2f", amount)
}

// FormatPrice formats a price with sensible precision.
func FormatPrice(price float64) string {
	if price >= 10 {
		return fmt.Sprintf("%.2f", price)
	}
	return fmt.Sprintf("%.4f", price)
}

// FormatQty formats a quantity, dropping a trailing ".00" for whole lots.
func FormatQty(qty float64) string {
	if qty == float64(int64(qty)) {
		return strconv.FormatInt(int64(qty), 10)
	}
	return fmt.Sprintf("%.2f", qty)
}

// FormatOptional formats an optional value, rendering absence explicitly.
func FormatOptional(v *float64, format func(float64) string) string {
	if v == nil {
		return Absent
	}
	return format(*v)
}

// FormatOptionalDays formats an optional day count.
func FormatOptionalDays(v *int) string {
	if v == nil {
		return Absent
	}
	return fmt.Sprintf("%dd", *v)
}

// FormatR formats an R-multiple.
func FormatR(r float64) string {
	return fmt.Sprintf("%.2fR", r)
}

// FormatPercent formats a percentage.
func FormatPercent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

// TruncateString truncates a string to max length with ellipsis.
func TruncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
