// Package core provides the runtime tier of the automaton engine.
// Options for configuring Runner instances.
package core

import "log/slog"

// WithID names the runner in logs and published step records.
func WithID(id string) Option {
	return func(r *Runner) {
		r.id = id
	}
}

// WithLogger configures the Runner with a custom slog.Logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Runner) {
		r.logger = logger
	}
}

// WithPublisher configures the Runner with a step Publisher.
func WithPublisher(p Publisher) Option {
	return func(r *Runner) {
		r.publisher = p
	}
}
