// Package foiafix reconciles FOIA annual report documents against the
// reference registry of agencies and components, and repairs them so they
// validate against the report schema.
//
// A Client works on one input tree laid out as <year>/<file>.xml. Repairs are
// written twice per document: a canonical single-line form under the output
// directory and an indented form under the formatted directory. The
// diagnostics runners read the same tree without writing anything.
//
// Example usage:
//
//	client, err := foiafix.New(
//	    foiafix.WithRegistryDir("helpers/data"),
//	    foiafix.WithInputDir("input"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	summary, err := client.RepairYear(ctx, "2008")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, f := range summary.Failures {
//	    fmt.Println(f.File, f.Err)
//	}
package foiafix

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/agentstation/foiafix/pkg/diagnostics"
	"github.com/agentstation/foiafix/pkg/errors"
	"github.com/agentstation/foiafix/pkg/logging"
	"github.com/agentstation/foiafix/pkg/reconciler"
	"github.com/agentstation/foiafix/pkg/registry"
	"github.com/agentstation/foiafix/pkg/repair"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Repairer runs batch repairs.
type Repairer interface {
	// RepairYear repairs every document filed for year.
	RepairYear(ctx context.Context, year string) (*Summary, error)
}

// Diagnoser runs read-only review reports.
type Diagnoser interface {
	AuditYear(ctx context.Context, year string) (*diagnostics.Audit, error)
	StructureYear(ctx context.Context, year string) ([]diagnostics.StructureMismatch, error)
	OrgChanges(ctx context.Context, through string) (*diagnostics.ModelTracker, error)
	EndYears(ctx context.Context, year, final string) ([]diagnostics.EndYear, error)
	RegistryDuplicates() *diagnostics.Table
}

// Client repairs and diagnoses a tree of report documents.
type Client interface {
	Repairer
	Diagnoser

	// Registry returns the loaded registry.
	Registry() *registry.Registry
}

// client is the internal implementation of the Client interface.
type client struct {
	options  *options
	registry *registry.Registry
	resolver *reconciler.Reconciler
	corpus   *diagnostics.Corpus
}

// New creates a Client. The registry is loaded eagerly so configuration
// problems surface before any document is touched.
func New(opts ...Option) (Client, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, err
	}

	reg := o.registry
	if reg == nil {
		if reg, err = registry.Load(o.registryFS); err != nil {
			return nil, errors.NewConfigError("registry", "cannot load registry", err)
		}
	}

	var recOpts []reconciler.Option
	if o.cacheTTL > 0 {
		recOpts = append(recOpts, reconciler.WithCache(o.cacheTTL))
	}
	resolver, err := reconciler.New(reg, recOpts...)
	if err != nil {
		return nil, err
	}

	c := &client{
		options:  o,
		registry: reg,
		resolver: resolver,
		corpus:   diagnostics.NewCorpus(o.inputFS),
	}

	log := c.logger()
	log.Debug().
		Int("agencies", len(reg.Agencies())).
		Msg("Registry loaded")
	for _, fix := range reg.InvalidFixes() {
		log.Warn().
			Str("scope", fix.Scope).
			Str("from", fix.From).
			Str("to", fix.To).
			Msg("Fix points at an abbreviation that is not registered")
	}

	return c, nil
}

// Registry returns the loaded registry.
func (c *client) Registry() *registry.Registry {
	return c.registry
}

func (c *client) logger() *zerolog.Logger {
	if c.options.logger != nil {
		return c.options.logger
	}
	return logging.Default()
}

// context tags ctx with the operation and year. A logger configured with
// WithLogger replaces the one ctx carries.
func (c *client) context(ctx context.Context, operation, year string) context.Context {
	if c.options.logger != nil {
		ctx = logging.WithLogger(ctx, c.options.logger)
	}
	ctx = logging.WithOperation(ctx, operation)
	if year != "" {
		ctx = logging.WithYear(ctx, year)
	}
	return ctx
}

func (c *client) engine(mode repair.Mode) (*repair.Engine, error) {
	return repair.New(c.resolver, c.registry,
		repair.WithMode(mode),
		repair.WithMaxTextLength(c.options.maxTextLength),
	)
}

func validYear(year string) error {
	if !diagnostics.ValidYear(year) {
		return errors.NewValidationError("year", year, "must be a four digit year")
	}
	return nil
}
