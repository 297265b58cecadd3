// Package format renders durations, counts and long digit strings for
// terminal output.
package format

import (
	"fmt"
	"time"
)

// FormatExecutionDuration formats a duration as microseconds below a
// millisecond, milliseconds below a second and time.Duration.String above.
func FormatExecutionDuration(d time.Duration) string {
	switch {
	case d <= 0:
		return "< 1µs"
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.Round(time.Millisecond).String()
}
