package auth

import "github.com/go-logr/logr"

type options struct {
	logger logr.Logger
}

// Option configures an Authenticator or a Resolver.
type Option func(*options)

// WithLogger sets the logger. Failures are logged at V(1).
func WithLogger(l logr.Logger) Option {
	return func(o *options) { o.logger = l }
}

func resolveOptions(opts []Option) options {
	var o options
	for _, fn := range opts {
		fn(&o)
	}
	if o.logger.GetSink() == nil {
		o.logger = logr.Discard()
	}
	return o
}
