package format

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// Count formats an integer with thousands separators, e.g. 1234567 as
// "1,234,567".
func Count[T ~int | ~int64 | ~uint | ~uint64](n T) string {
	return printer.Sprintf("%d", n)
}

// Bytes formats a byte count with a binary unit.
func Bytes(n uint64) string {
	const unit = 1024
	if n < unit {
		return printer.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return printer.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}

// Truncate shortens s to its first and last edge characters around an
// ellipsis when it is longer than limit.
func Truncate(s string, limit, edge int) (string, bool) {
	if len(s) <= limit || 2*edge >= len(s) {
		return s, false
	}
	return s[:edge] + "..." + s[len(s)-edge:], true
}
