package trend

import "log/slog"

const defaultHistoryLimit = 256

// options is shared by the streaming filters in this package.
type options struct {
	logger       *slog.Logger
	historyLimit int
}

func defaultOptions() options {
	return options{
		logger:       slog.New(slog.DiscardHandler),
		historyLimit: defaultHistoryLimit,
	}
}

/* ---------- Functional options ---------- */

// Option configures a streaming filter.
type Option func(*options)

// WithLogger routes debug output (rejected prices, crossovers) to l.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHistoryLimit bounds how many past outputs a streaming filter keeps for
// crossovers and plotting. Values below 2 are raised to 2.
func WithHistoryLimit(n int) Option {
	return func(o *options) {
		if n < 2 {
			n = 2
		}
		o.historyLimit = n
	}
}

func applyOptions(opts []Option) options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return o
}
