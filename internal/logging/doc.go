// Package logging provides the logging interface shared by the engine, the
// calibration runner and the command line. It hides the zerolog backend so
// components log structured fields without depending on it directly.
package logging
