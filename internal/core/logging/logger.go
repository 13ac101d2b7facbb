// Package logging provides component loggers and context-derived log fields.
package logging

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Component creates a new logger with a component identifier derived from the
// global logger. Events logged with a context pick up the fields attached by
// WithCommand and WithTaskID.
func Component(name string) zerolog.Logger {
	return log.Hook(ContextHook{}).With().Str("cmp", name).Logger()
}
