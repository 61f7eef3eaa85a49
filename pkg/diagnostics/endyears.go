package diagnostics

import (
	"context"
	"io/fs"
	"strconv"

	"github.com/agentstation/foiafix/pkg/abbrev"
	"github.com/agentstation/foiafix/pkg/errors"
	"github.com/agentstation/foiafix/pkg/logging"
	"github.com/agentstation/foiafix/pkg/reconciler"
)

// Unknown fills registry columns that could not be resolved.
const Unknown = "unknown"

// Resolver maps raw abbreviations to registry ones.
type Resolver interface {
	ResolveAgency(raw string) (reconciler.Resolution, error)
	ResolveComponent(raw, agency string) (reconciler.Resolution, error)
}

// EndYear is the last year a component was seen in the corpus.
type EndYear struct {
	XMLAgency    string
	Agency       string
	XMLComponent string
	Component    string
	LastYear     string
}

// EndYears lists every component filed in year and the last year in
// year+1..final where the same agency filed it again. Agencies and
// components are compared by their normalized abbreviations. A component
// never seen again ends in year itself.
func EndYears(ctx context.Context, corpus *Corpus, res Resolver, year, final string) ([]EndYear, error) {
	start, err := parseYear(year)
	if err != nil {
		return nil, err
	}
	end, err := parseYear(final)
	if err != nil {
		return nil, err
	}
	if end < start {
		return nil, errors.NewValidationError("final", final, "must not be before "+year)
	}

	files, err := corpus.Files(year)
	if err != nil {
		return nil, err
	}
	finder := &lastYearFinder{corpus: corpus, start: start, end: end}

	var rows []EndYear
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report, err := corpus.Report(year, file)
		if err != nil {
			return nil, err
		}
		rawAgency, err := report.Agency()
		if err != nil {
			return nil, errors.WrapDocument(file, "", err)
		}

		agency := Unknown
		if r, err := res.ResolveAgency(rawAgency); err == nil {
			agency = r.Canonical
		}

		for _, unit := range report.SubUnits() {
			rawComp := unit.Abbreviation()
			component := Unknown
			if agency != Unknown {
				if r, err := res.ResolveComponent(rawComp, agency); err == nil {
					component = r.Canonical
				}
			}
			last, err := finder.find(ctx, rawAgency, rawComp)
			if err != nil {
				return nil, err
			}
			rows = append(rows, EndYear{
				XMLAgency:    rawAgency,
				Agency:       agency,
				XMLComponent: rawComp,
				Component:    component,
				LastYear:     last,
			})
		}
	}
	return rows, nil
}

// EndYearsTable renders end year rows.
func EndYearsTable(rows []EndYear) *Table {
	t := &Table{
		Title:   "Component end years",
		Headers: []string{"Agency from XML", "Agency in registry", "Component from XML", "Component in registry", "Last year found"},
	}
	for _, r := range rows {
		t.append(r.XMLAgency, r.Agency, r.XMLComponent, r.Component, r.LastYear)
	}
	return t
}

type lastYearFinder struct {
	corpus *Corpus
	start  int
	end    int
	// filings maps year to normalized agency to the normalized components
	// filed under it that year.
	filings map[int]map[string]map[string]struct{}
}

func (f *lastYearFinder) find(ctx context.Context, agency, component string) (string, error) {
	agency = abbrev.Normalize(agency)
	component = abbrev.Normalize(component)

	last := f.start
	for y := f.start + 1; y <= f.end; y++ {
		filed, err := f.year(ctx, y)
		if err != nil {
			return "", err
		}
		if _, ok := filed[agency][component]; ok {
			last = y
		}
	}
	return strconv.Itoa(last), nil
}

func (f *lastYearFinder) year(ctx context.Context, y int) (map[string]map[string]struct{}, error) {
	if filed, ok := f.filings[y]; ok {
		return filed, nil
	}
	if f.filings == nil {
		f.filings = make(map[int]map[string]map[string]struct{})
	}

	year := strconv.Itoa(y)
	filed := make(map[string]map[string]struct{})
	files, err := f.corpus.Files(year)
	if errors.Is(err, fs.ErrNotExist) {
		logging.FromContext(ctx).Debug().Str("year", year).Msg("No reports for year")
		f.filings[y] = filed
		return filed, nil
	}
	if err != nil {
		return nil, err
	}

	for _, file := range files {
		report, err := f.corpus.Report(year, file)
		if err != nil {
			return nil, err
		}
		raw, err := report.Agency()
		if err != nil {
			return nil, errors.WrapDocument(file, "", err)
		}
		agency := abbrev.Normalize(raw)
		if filed[agency] == nil {
			filed[agency] = make(map[string]struct{})
		}
		for _, unit := range report.SubUnits() {
			filed[agency][abbrev.Normalize(unit.Abbreviation())] = struct{}{}
		}
	}
	f.filings[y] = filed
	return filed, nil
}

func parseYear(year string) (int, error) {
	if !ValidYear(year) {
		return 0, errors.NewValidationError("year", year, "must be a four digit year")
	}
	return strconv.Atoi(year)
}
