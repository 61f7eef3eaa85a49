package repair

import (
	"github.com/rs/zerolog"

	"github.com/agentstation/foiafix/pkg/constants"
	"github.com/agentstation/foiafix/pkg/errors"
)

// Mode selects how unresolved components are treated.
type Mode string

// String returns the string representation of a mode.
func (m Mode) String() string {
	return string(m)
}

const (
	// ModeRepair fails a document on any unresolved component.
	ModeRepair Mode = "repair"
	// ModeAudit records unresolved components and keeps going.
	ModeAudit Mode = "audit"
)

type options struct {
	mode          Mode
	logger        *zerolog.Logger
	maxTextLength int
	sections      []Section
}

func defaultOptions() *options {
	return &options{
		mode:          ModeRepair,
		maxTextLength: constants.MaxTextLength,
		sections:      Sections(),
	}
}

// Option configures an Engine.
type Option func(*options) error

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithMode sets repair or audit mode.
func WithMode(mode Mode) Option {
	return func(o *options) error {
		switch mode {
		case ModeRepair, ModeAudit:
			o.mode = mode
			return nil
		default:
			return &errors.ValidationError{Field: "mode", Value: mode, Message: "must be repair or audit"}
		}
	}
}

// WithLogger sets the logger. By default the logger is taken from the
// context passed to Repair.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}

// WithMaxTextLength overrides the free-text length bound.
func WithMaxTextLength(n int) Option {
	return func(o *options) error {
		if n <= 0 {
			return &errors.ValidationError{Field: "max_text_length", Value: n, Message: "must be positive"}
		}
		o.maxTextLength = n
		return nil
	}
}

// WithSections replaces the section template table.
func WithSections(sections []Section) Option {
	return func(o *options) error {
		o.sections = sections
		return nil
	}
}
