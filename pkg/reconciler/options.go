package reconciler

import (
	"time"

	"github.com/agentstation/foiafix/pkg/constants"
	"github.com/agentstation/foiafix/pkg/errors"
)

// options configures a reconciler.
type options struct {
	cacheTTL time.Duration
}

func defaultOptions() *options {
	return &options{}
}

// Option is a function that configures a Reconciler.
type Option func(*options) error

func (options *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(options); err != nil {
			return nil, err
		}
	}
	return options, nil
}

// newOptions returns reconciler options with default values.
func newOptions(opts ...Option) (*options, error) {
	return defaultOptions().apply(opts...)
}

// WithCache memoizes successful resolutions for ttl. A zero ttl uses the
// package default.
func WithCache(ttl time.Duration) Option {
	return func(o *options) error {
		if ttl < 0 {
			return &errors.ValidationError{
				Field:   "cache_ttl",
				Value:   ttl,
				Message: "cannot be negative",
			}
		}
		if ttl == 0 {
			ttl = constants.CacheTTL
		}
		o.cacheTTL = ttl
		return nil
	}
}
