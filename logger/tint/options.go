package tint

import "log/slog"

// Options configures a Handler.
type Options struct {
	// Level reports the minimum record level that will be logged.
	// If nil, defaults to slog.LevelInfo.
	Level slog.Leveler

	// AddSource causes the handler to compute the source code position
	// of the log statement and add it to the output.
	AddSource bool

	// NoColor disables color output. If not explicitly set, color is
	// auto-detected based on whether the writer is a terminal.
	NoColor bool

	// TimeFormat is the format used for timestamps.
	// Defaults to "15:04:05.000" if empty.
	TimeFormat string
}
