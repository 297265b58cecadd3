// Package ui provides theme and color support for the command-line output.
// It defines color schemes, ANSI escape accessors, terminal detection and
// lipgloss panels shared by the cli, calibration and app packages.
package ui
