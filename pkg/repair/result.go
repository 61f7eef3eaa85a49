package repair

import (
	"github.com/agentstation/foiafix/pkg/errors"
	"github.com/agentstation/foiafix/pkg/reconciler"
)

// Stage is a step of the repair pipeline. A document moves through the
// stages in order and ends in StageDone or StageFailed.
type Stage string

// String returns the string representation of a stage.
func (s Stage) String() string {
	return string(s)
}

// Pipeline stages.
const (
	StageRaw                Stage = "raw"
	StageAgencyResolved     Stage = "agency-resolved"
	StageComponentsResolved Stage = "components-resolved"
	StagePruned             Stage = "pruned"
	StageSectionsRepaired   Stage = "sections-repaired"
	StageTruncated          Stage = "truncated"
	StageDone               Stage = "done"
	StageFailed             Stage = "failed"
)

// Result describes what the engine did to one document.
type Result struct {
	// Agency is the canonical filing agency, empty if it could not be resolved.
	Agency string
	Stage  Stage
	// FailedAt is the last stage reached before a failure.
	FailedAt Stage

	AgencyResolution reconciler.Resolution
	Resolutions      []reconciler.Resolution
	Unresolved       []*errors.UnresolvedAbbreviationError
	InvalidFixes     []*errors.InvalidFixError

	// Components are the sub-unit abbreviations left after pruning.
	Components []string
	// Pruned are the sub-unit abbreviations removed as unreferenced.
	Pruned []string

	Anomalies         []*errors.StructuralAnomalyError
	RenamedFiscalYear bool
	InjectedSections  []string
	FilledSections    []string
	Truncations       []*errors.FieldTooLongError
}

// Centralized reports whether the document, after pruning, describes the
// agency as a single reporting unit. A sub-unit carrying the agency's own
// abbreviation does not count as a separate component.
func (r *Result) Centralized() bool {
	for _, c := range r.Components {
		if c != r.Agency {
			return false
		}
	}
	return true
}

// Failed reports whether the document could not be repaired.
func (r *Result) Failed() bool {
	return r.Stage == StageFailed
}

func (r *Result) advance(stage Stage) {
	r.Stage = stage
}

func (r *Result) fail() {
	r.FailedAt = r.Stage
	r.Stage = StageFailed
}
