package foiafix

import (
	"context"

	"github.com/agentstation/foiafix/pkg/diagnostics"
	"github.com/agentstation/foiafix/pkg/logging"
	"github.com/agentstation/foiafix/pkg/repair"
)

// visitFunc receives one audited document. res is nil when the document
// could not be read; err carries the engine or read failure.
type visitFunc func(ctx context.Context, file string, res *repair.Result, err error)

// scan runs the engine in audit mode over every document of year. Documents
// are re-read from disk so audits never see repaired trees.
func (c *client) scan(ctx context.Context, year string, visit visitFunc) error {
	engine, err := c.engine(repair.ModeAudit)
	if err != nil {
		return err
	}
	files, err := c.corpus.Files(year)
	if err != nil {
		return err
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		docCtx := logging.WithFile(ctx, file)
		report, err := c.corpus.Open(year, file)
		if err != nil {
			logging.FromContext(docCtx).Error().Err(err).Msg("Document not read")
			visit(docCtx, file, nil, err)
			continue
		}
		res, err := engine.Repair(docCtx, report)
		visit(docCtx, file, res, err)
	}
	return nil
}

// AuditYear lists every abbreviation in year that the registry and the fix
// tables cannot resolve.
func (c *client) AuditYear(ctx context.Context, year string) (*diagnostics.Audit, error) {
	if err := validYear(year); err != nil {
		return nil, err
	}
	ctx = c.context(ctx, "audit", year)

	audit := diagnostics.NewAudit(c.registry)
	err := c.scan(ctx, year, func(_ context.Context, file string, res *repair.Result, _ error) {
		audit.Add(file, res)
	})
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Info().
		Int("agencies", len(audit.UnresolvedAgencies())).
		Int("components", len(audit.UnresolvedComponents())).
		Int("invalid_fixes", len(audit.InvalidFixes())).
		Msg("Audit finished")
	return audit, nil
}

// StructureYear compares each document's organization model with the
// registry's. A document counts as centralized when no sub-unit survives
// pruning, or when its only sub-units carry the agency's own abbreviation;
// the registry counts an agency as centralized when its single component
// does. Both sides therefore treat "FTC within FTC" as centralized.
func (c *client) StructureYear(ctx context.Context, year string) ([]diagnostics.StructureMismatch, error) {
	if err := validYear(year); err != nil {
		return nil, err
	}
	ctx = c.context(ctx, "structure", year)

	var mismatches []diagnostics.StructureMismatch
	err := c.scan(ctx, year, func(ctx context.Context, file string, res *repair.Result, _ error) {
		if res == nil || res.Agency == "" {
			return
		}
		m := diagnostics.StructureCheck(year, file, res.Agency, res.Centralized(), c.registry)
		if m == nil {
			return
		}
		anomaly := m.Anomaly()
		logging.FromContext(ctx).Warn().
			Str("agency", m.Agency).
			Str("kind", anomaly.Kind).
			Msg(anomaly.Message)
		mismatches = append(mismatches, *m)
	})
	if err != nil {
		return nil, err
	}
	return mismatches, nil
}

// OrgChanges tracks every agency's organization model from the earliest
// input year through the given year, inclusive. The model is decided the same
// way as in StructureYear, so a report listing only a sub-unit named after
// the agency is centralized, not decentralized.
func (c *client) OrgChanges(ctx context.Context, through string) (*diagnostics.ModelTracker, error) {
	if err := validYear(through); err != nil {
		return nil, err
	}
	ctx = c.context(ctx, "org-changes", through)

	years, err := c.corpus.Years()
	if err != nil {
		return nil, err
	}

	tracker := diagnostics.NewModelTracker()
	for _, year := range years {
		if year > through {
			break
		}
		yearCtx := logging.WithYear(ctx, year)
		err := c.scan(yearCtx, year, func(ctx context.Context, _ string, res *repair.Result, _ error) {
			if res == nil || res.Agency == "" {
				return
			}
			change := tracker.Observe(year, res.Agency, diagnostics.ModelOf(res.Centralized()))
			if change != nil {
				logging.FromContext(ctx).Info().Str("agency", change.Agency).Msg(change.String())
			}
		})
		if err != nil {
			return nil, err
		}
	}

	for _, f := range tracker.MultipleFilings() {
		logging.FromContext(ctx).Warn().
			Str("agency", f.Agency).
			Str("year", f.Year).
			Int("reports", f.Count).
			Msg("Agency filed more than one report")
	}
	return tracker, nil
}

// EndYears reports the last year each component of year was filed again.
// An empty final means the latest year in the input tree.
func (c *client) EndYears(ctx context.Context, year, final string) ([]diagnostics.EndYear, error) {
	if err := validYear(year); err != nil {
		return nil, err
	}
	ctx = c.context(ctx, "end-years", year)

	if final == "" {
		years, err := c.corpus.Years()
		if err != nil {
			return nil, err
		}
		final = year
		if n := len(years); n > 0 && years[n-1] > final {
			final = years[n-1]
		}
	}
	logging.FromContext(ctx).Debug().Str("final", final).Msg("Searching later years")
	return diagnostics.EndYears(ctx, c.corpus, c.resolver, year, final)
}

// RegistryDuplicates lists component abbreviations registered more than once
// for the same agency.
func (c *client) RegistryDuplicates() *diagnostics.Table {
	for _, msg := range diagnostics.DuplicateMessages(c.registry) {
		c.logger().Warn().Msg(msg)
	}
	return diagnostics.RegistryDuplicates(c.registry)
}
