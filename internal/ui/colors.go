package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// ColorReset returns the escape sequence clearing all attributes.
func ColorReset() string { return GetCurrentTheme().Reset }

// ColorBold returns the bold escape sequence.
func ColorBold() string { return GetCurrentTheme().Bold }

// ColorUnderline returns the underline escape sequence.
func ColorUnderline() string { return GetCurrentTheme().Underline }

// ColorRed returns the error color.
func ColorRed() string { return GetCurrentTheme().Error }

// ColorGreen returns the success color.
func ColorGreen() string { return GetCurrentTheme().Success }

// ColorYellow returns the warning color.
func ColorYellow() string { return GetCurrentTheme().Warning }

// ColorBlue returns the primary color.
func ColorBlue() string { return GetCurrentTheme().Primary }

// ColorCyan returns the info color.
func ColorCyan() string { return GetCurrentTheme().Info }

// ColorDim returns the secondary color.
func ColorDim() string { return GetCurrentTheme().Secondary }

var (
	errorLabel = color.New(color.FgRed, color.Bold)
	warnLabel  = color.New(color.FgYellow, color.Bold)
)

// PrintError writes "error: <message>" with a red label. The label is plain
// when colors are disabled.
func PrintError(w io.Writer, format string, a ...any) {
	errorLabel.Fprint(w, "error:")
	fmt.Fprintf(w, " "+format+"\n", a...)
}

// PrintWarning writes "warning: <message>" with a yellow label.
func PrintWarning(w io.Writer, format string, a ...any) {
	warnLabel.Fprint(w, "warning:")
	fmt.Fprintf(w, " "+format+"\n", a...)
}
