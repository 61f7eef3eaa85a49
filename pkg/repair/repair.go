// Package repair rewrites FOIA annual report documents so they validate
// against the report schema.
//
// The Engine resolves the filing agency and its components against the
// registry, prunes components that carry no data, checks the result against
// the registry's organization model, and injects placeholder data into every
// statistics section that is missing its mandatory content.
package repair

import (
	"context"
	"slices"

	"github.com/rs/zerolog"

	"github.com/agentstation/foiafix/pkg/errors"
	"github.com/agentstation/foiafix/pkg/logging"
	"github.com/agentstation/foiafix/pkg/niem"
	"github.com/agentstation/foiafix/pkg/reconciler"
)

// Resolver maps raw abbreviations to canonical ones.
type Resolver interface {
	ResolveAgency(raw string) (reconciler.Resolution, error)
	ResolveComponent(raw, agency string) (reconciler.Resolution, error)
}

// Registry is the registry query the consistency check needs.
type Registry interface {
	ComponentsOf(agency string) []string
}

// Deprecated and current names of the fiscal year element.
const (
	DeprecatedFiscalYearName = "foia:DocumentFiscalYear"
	FiscalYearName           = "foia:DocumentFiscalYearDate"
)

// Free-text fields bounded by the schema length limit.
var truncatedSections = []string{
	"foia:RequestDenialOtherReasonSection",
	"foia:AppealDenialOtherReasonSection",
}

const (
	otherDenialComponentName = "foia:ComponentOtherDenialReason"
	otherDenialReasonName    = "foia:OtherDenialReason"
	otherDenialTextName      = "foia:OtherDenialReasonDescriptionText"
)

// Engine repairs report documents. An Engine holds no per-document state and
// may be reused across a batch.
type Engine struct {
	resolver Resolver
	registry Registry
	opts     *options
}

// New creates an Engine.
func New(resolver Resolver, registry Registry, opts ...Option) (*Engine, error) {
	if resolver == nil {
		return nil, &errors.ValidationError{Field: "resolver", Message: "cannot be nil"}
	}
	if registry == nil {
		return nil, &errors.ValidationError{Field: "registry", Message: "cannot be nil"}
	}
	o, err := defaultOptions().apply(opts...)
	if err != nil {
		return nil, err
	}
	return &Engine{resolver: resolver, registry: registry, opts: o}, nil
}

// Mode returns the engine's mode.
func (e *Engine) Mode() Mode {
	return e.opts.mode
}

// Repair runs the pipeline over report, mutating it in place. On failure the
// partial Result is returned together with the error.
func (e *Engine) Repair(ctx context.Context, report *niem.Report) (*Result, error) {
	logger := e.logger(ctx)
	result := &Result{Stage: StageRaw}

	if err := e.resolveAgency(report, result); err != nil {
		result.fail()
		return result, err
	}
	result.advance(StageAgencyResolved)
	ctx = logging.WithAgency(logging.WithLogger(ctx, logger), result.Agency)
	logger = logging.FromContext(ctx)

	if err := e.resolveComponents(report, result, logger); err != nil {
		result.fail()
		return result, err
	}
	result.advance(StageComponentsResolved)

	e.prune(report, result, logger)
	result.advance(StagePruned)

	e.checkConsistency(result, logger)

	if report.Root().Rename(DeprecatedFiscalYearName, FiscalYearName) {
		result.RenamedFiscalYear = true
		logger.Debug().Msg("Renamed DocumentFiscalYear to DocumentFiscalYearDate")
	}

	if err := ctx.Err(); err != nil {
		result.fail()
		return result, err
	}

	e.repairSections(report, result)
	result.advance(StageSectionsRepaired)

	e.truncate(report, result, logger)
	result.advance(StageTruncated)

	result.advance(StageDone)
	logger.Debug().
		Int("components", len(result.Components)).
		Int("pruned", len(result.Pruned)).
		Int("injected", len(result.InjectedSections)).
		Msg("Repaired report")
	return result, nil
}

func (e *Engine) logger(ctx context.Context) *zerolog.Logger {
	if e.opts.logger != nil {
		return e.opts.logger
	}
	return logging.FromContext(ctx)
}

// resolveAgency rewrites the filing agency abbreviation. Failure is fatal in
// every mode.
func (e *Engine) resolveAgency(report *niem.Report, result *Result) error {
	raw, err := report.Agency()
	if err != nil {
		return err
	}

	res, err := e.resolver.ResolveAgency(raw)
	if err != nil {
		e.collect(result, err)
		return err
	}

	result.Agency = res.Canonical
	result.AgencyResolution = res
	return report.SetAgency(res.Canonical)
}

// resolveComponents rewrites every sub-unit abbreviation in the agency's
// scope. Unresolved sub-units keep their text and are always collected. In
// repair mode the first failure of a referenced sub-unit is returned after
// every sub-unit has been tried; unreferenced ones are pruned next and never
// fail the document.
func (e *Engine) resolveComponents(report *niem.Report, result *Result, logger *zerolog.Logger) error {
	refs := report.References()
	var first error
	for _, unit := range report.SubUnits() {
		res, err := e.resolver.ResolveComponent(unit.Abbreviation(), result.Agency)
		if err != nil {
			e.collect(result, err)
			_, referenced := refs[unit.ID()]
			if referenced && first == nil {
				first = err
			}
			logger.Warn().
				Err(err).
				Str("component", unit.Abbreviation()).
				Bool("referenced", referenced).
				Msg("Component not resolved")
			continue
		}
		if res.Changed() {
			logger.Debug().
				Str("from", res.Raw).
				Str("to", res.Canonical).
				Str("method", res.Method.String()).
				Msg("Rewrote component abbreviation")
		}
		unit.SetAbbreviation(res.Canonical)
		result.Resolutions = append(result.Resolutions, res)
	}

	if first != nil && e.opts.mode == ModeRepair {
		return first
	}
	return nil
}

func (e *Engine) collect(result *Result, err error) {
	var unresolved *errors.UnresolvedAbbreviationError
	var invalid *errors.InvalidFixError
	switch {
	case errors.As(err, &unresolved):
		result.Unresolved = append(result.Unresolved, unresolved)
	case errors.As(err, &invalid):
		result.InvalidFixes = append(result.InvalidFixes, invalid)
	}
}

// prune removes sub-units whose id is never referenced elsewhere in the
// document, keeping the order of the rest.
func (e *Engine) prune(report *niem.Report, result *Result, logger *zerolog.Logger) {
	refs := report.References()
	units := report.SubUnits()
	kept := make([]niem.SubUnit, 0, len(units))
	for _, unit := range units {
		if _, ok := refs[unit.ID()]; ok {
			kept = append(kept, unit)
			result.Components = append(result.Components, unit.Abbreviation())
			continue
		}
		result.Pruned = append(result.Pruned, unit.Abbreviation())
	}

	if len(kept) != len(units) {
		report.SetSubUnits(kept)
		logger.Debug().Strs("pruned", result.Pruned).Msg("Removed unreferenced components")
	}
}

// checkConsistency compares the pruned document against the registry's view
// of the agency. Mismatches are warnings only.
func (e *Engine) checkConsistency(result *Result, logger *zerolog.Logger) {
	agency := result.Agency
	var anomaly *errors.StructuralAnomalyError

	if len(result.Components) == 0 {
		if !slices.Contains(e.registry.ComponentsOf(agency), agency) {
			anomaly = &errors.StructuralAnomalyError{
				Agency:  agency,
				Kind:    errors.AnomalyMissingCentralComponent,
				Message: "appears to be centralized but there is not a matching component in the registry",
			}
		}
	} else if slices.Contains(result.Components, agency) {
		anomaly = &errors.StructuralAnomalyError{
			Agency:  agency,
			Kind:    errors.AnomalySelfComponent,
			Message: "appears to be decentralized but there is a component with an identical abbreviation",
		}
	}

	if anomaly != nil {
		result.Anomalies = append(result.Anomalies, anomaly)
		logger.Warn().Str("kind", anomaly.Kind).Msg(anomaly.Error())
	}
}

func (e *Engine) repairSections(report *niem.Report, result *Result) {
	root := report.Root()
	for _, s := range e.opts.sections {
		switch s.apply(root) {
		case outcomeInjected:
			result.InjectedSections = append(result.InjectedSections, s.Name)
		case outcomeFilled:
			result.FilledSections = append(result.FilledSections, s.Name)
		}
	}
}

// truncate replaces over-long denial reason descriptions with a sentinel.
// The removed text is logged and kept on the Result for manual re-entry.
func (e *Engine) truncate(report *niem.Report, result *Result, logger *zerolog.Logger) {
	limit := e.opts.maxTextLength
	for _, name := range truncatedSections {
		section := report.Section(name)
		if section == nil {
			continue
		}
		for _, component := range section.ChildrenNamed(otherDenialComponentName) {
			for _, reason := range component.ChildrenNamed(otherDenialReasonName) {
				for _, field := range reason.ChildrenNamed(otherDenialTextName) {
					if tooLong := truncateField(field, limit); tooLong != nil {
						result.Truncations = append(result.Truncations, tooLong)
						logger.Warn().
							Str("section", name).
							Str("removed_text", tooLong.Original).
							Msg("Removed text longer than the schema allows; it will need to be added later")
					}
				}
			}
		}
	}
}
