package signals

import "log/slog"

type Option func(*Registry)

// WithBackend replaces the detected backend.
func WithBackend(b Backend) Option {
	return func(r *Registry) { r.backend = b }
}

func WithPolicy(p Policy) Option {
	return func(r *Registry) { r.policy = p }
}

// WithLogger sets the logger for swallowed failures (debug level) and
// handler panics (error level). A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}
