// SPDX-License-Identifier: MIT

package solver

import "log/slog"

// Option configures a solver at construction.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger routes monitor output to logger instead of slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

func gatherOptions(opts []Option) options {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	return o
}
