// Package logging adapts zerolog to the narrow Logger interface the domain
// packages depend on.
package logging

import (
	"github.com/rs/zerolog"

	"github.com/jalenlum/email-list-backend/internal/auth"
)

type zerologAdapter struct {
	log zerolog.Logger
}

// NewZerologLogger wraps a zerolog.Logger. Variadic args are interpreted as
// alternating key/value pairs, matching how the domain packages call it.
func NewZerologLogger(log zerolog.Logger) auth.Logger {
	return &zerologAdapter{log: log}
}

func (l *zerologAdapter) Debug(msg string, args ...any) {
	l.log.Debug().Fields(fields(args)).Msg(msg)
}

func (l *zerologAdapter) Info(msg string, args ...any) {
	l.log.Info().Fields(fields(args)).Msg(msg)
}

func (l *zerologAdapter) Warn(msg string, args ...any) {
	l.log.Warn().Fields(fields(args)).Msg(msg)
}

func (l *zerologAdapter) Error(msg string, args ...any) {
	l.log.Error().Fields(fields(args)).Msg(msg)
}

func fields(args []any) map[string]any {
	if len(args) == 0 {
		return nil
	}

	out := make(map[string]any, len(args)/2)
	for i := 0; i+1 < len(args); i += 2 {
		key, ok := args[i].(string)
		if !ok {
			continue
		}
		out[key] = args[i+1]
	}
	return out
}
