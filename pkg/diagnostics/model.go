package diagnostics

import (
	"fmt"
	"strconv"

	"github.com/agentstation/foiafix/pkg/errors"
)

// Model is an agency's organization model.
type Model string

// Organization models.
const (
	Centralized   Model = "centralized"
	Decentralized Model = "decentralized"
)

// ModelOf returns the model for a centralized flag.
func ModelOf(centralized bool) Model {
	if centralized {
		return Centralized
	}
	return Decentralized
}

// ModelChange is a year-over-year flip in an agency's organization model.
type ModelChange struct {
	Year   string
	Agency string
	From   Model
	To     Model
}

// String renders the change as a log line.
func (c ModelChange) String() string {
	return fmt.Sprintf("In %s %s changed from %s to %s.", c.Year, c.Agency, c.From, c.To)
}

// Filing counts the reports one agency filed in one year.
type Filing struct {
	Year   string
	Agency string
	Count  int
}

// ModelTracker records organization model observations in year order and
// reports flips.
type ModelTracker struct {
	last    map[string]Model
	changes []ModelChange
	counts  map[string]map[string]int
	years   []string
}

// NewModelTracker creates an empty tracker.
func NewModelTracker() *ModelTracker {
	return &ModelTracker{
		last:   make(map[string]Model),
		counts: make(map[string]map[string]int),
	}
}

// Observe records the model of one document. Observations must arrive in
// year order. A flip from the agency's previous observation is returned.
func (t *ModelTracker) Observe(year, agency string, model Model) *ModelChange {
	if t.counts[year] == nil {
		t.counts[year] = make(map[string]int)
		t.years = append(t.years, year)
	}
	t.counts[year][agency]++

	prev, seen := t.last[agency]
	t.last[agency] = model
	if !seen || prev == model {
		return nil
	}
	change := ModelChange{Year: year, Agency: agency, From: prev, To: model}
	t.changes = append(t.changes, change)
	return &change
}

// Changes returns every flip observed so far.
func (t *ModelTracker) Changes() []ModelChange {
	return t.changes
}

// MultipleFilings lists agencies that filed more than one report in a year.
func (t *ModelTracker) MultipleFilings() []Filing {
	var out []Filing
	for _, year := range t.years {
		for _, agency := range sortedKeys(t.counts[year]) {
			if n := t.counts[year][agency]; n > 1 {
				out = append(out, Filing{Year: year, Agency: agency, Count: n})
			}
		}
	}
	return out
}

// ChangesTable renders the observed flips.
func (t *ModelTracker) ChangesTable() *Table {
	table := &Table{
		Title:   "Organization model changes",
		Headers: []string{"Year", "Agency", "From", "To", "Message"},
	}
	for _, c := range t.changes {
		table.append(c.Year, c.Agency, string(c.From), string(c.To), c.String())
	}
	return table
}

// FilingsTable renders agencies with more than one report in a year.
func (t *ModelTracker) FilingsTable() *Table {
	table := &Table{
		Title:   "Multiple reports",
		Headers: []string{"Year", "Agency", "Reports"},
	}
	for _, f := range t.MultipleFilings() {
		table.append(f.Year, f.Agency, strconv.Itoa(f.Count))
	}
	return table
}

// StructureMismatch is a document whose organization model disagrees with
// the registry's.
type StructureMismatch struct {
	Year     string
	File     string
	Agency   string
	Document Model
	Registry Model
}

// Anomaly converts the mismatch to a typed warning.
func (m StructureMismatch) Anomaly() *errors.StructuralAnomalyError {
	kind := errors.AnomalyCentralizedMismatch
	msg := "report is centralized but the registry is not"
	if m.Document == Decentralized {
		kind = errors.AnomalyDecentralizedMismatch
		msg = "registry is centralized but the report is not"
	}
	return &errors.StructuralAnomalyError{Agency: m.Agency, Kind: kind, Message: msg}
}

// CentralizationChecker is the registry query StructureCheck needs.
type CentralizationChecker interface {
	IsCentralized(agency string) bool
}

// StructureCheck compares one document's model with the registry's. It
// returns nil when they agree.
func StructureCheck(year, file, agency string, documentCentralized bool, reg CentralizationChecker) *StructureMismatch {
	registryCentralized := reg.IsCentralized(agency)
	if documentCentralized == registryCentralized {
		return nil
	}
	return &StructureMismatch{
		Year:     year,
		File:     file,
		Agency:   agency,
		Document: ModelOf(documentCentralized),
		Registry: ModelOf(registryCentralized),
	}
}

// StructureTable renders structure mismatches.
func StructureTable(mismatches []StructureMismatch) *Table {
	table := &Table{
		Title:   "Organization model mismatches",
		Headers: []string{"Year", "Agency", "Report", "Registry", "XML file"},
	}
	for _, m := range mismatches {
		table.append(m.Year, m.Agency, string(m.Document), string(m.Registry), m.File)
	}
	return table
}
