// Package logging constructs the slog loggers used across the pipeline and
// provides thin attribute helpers so call sites stay terse.
//
// Components accept an optional *slog.Logger and fall back to a no-op logger;
// NewComponentLogger stamps a component attribute so interleaved output from
// concurrent handlers remains attributable.
package logging
