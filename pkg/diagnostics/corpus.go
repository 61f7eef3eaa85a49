package diagnostics

import (
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strings"

	"github.com/agentstation/foiafix/pkg/constants"
	"github.com/agentstation/foiafix/pkg/errors"
	"github.com/agentstation/foiafix/pkg/niem"
)

var yearPattern = regexp.MustCompile(`^\d{4}$`)

// ValidYear reports whether year is a four digit reporting year.
func ValidYear(year string) bool {
	return yearPattern.MatchString(year)
}

// Corpus reads report documents laid out as <year>/<file>.xml. Reports read
// through Report are memoized and must be treated as read-only.
type Corpus struct {
	fsys    fs.FS
	reports map[string]map[string]*niem.Report
}

// NewCorpus creates a Corpus over fsys.
func NewCorpus(fsys fs.FS) *Corpus {
	return &Corpus{
		fsys:    fsys,
		reports: make(map[string]map[string]*niem.Report),
	}
}

// Years returns the year directories present, in ascending order.
func (c *Corpus) Years() ([]string, error) {
	entries, err := fs.ReadDir(c.fsys, ".")
	if err != nil {
		return nil, errors.WrapIO("list", ".", err)
	}
	var years []string
	for _, e := range entries {
		if e.IsDir() && ValidYear(e.Name()) {
			years = append(years, e.Name())
		}
	}
	slices.Sort(years)
	return years, nil
}

// Files returns the report files for year, sorted by name.
func (c *Corpus) Files(year string) ([]string, error) {
	if !ValidYear(year) {
		return nil, errors.NewValidationError("year", year, "must be a four digit year")
	}
	entries, err := fs.ReadDir(c.fsys, year)
	if err != nil {
		return nil, errors.WrapIO("list", year, err)
	}
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(path.Ext(e.Name()), constants.ReportFileExt) {
			files = append(files, e.Name())
		}
	}
	slices.Sort(files)
	return files, nil
}

// Open decodes a fresh copy of a report that the caller may mutate.
func (c *Corpus) Open(year, file string) (*niem.Report, error) {
	name := path.Join(year, file)
	f, err := c.fsys.Open(name)
	if err != nil {
		return nil, errors.WrapIO("read", name, err)
	}
	defer f.Close()

	doc, err := niem.Decode(f)
	if err != nil {
		var parseErr *errors.ParseError
		if errors.As(err, &parseErr) {
			parseErr.File = name
		}
		return nil, err
	}
	return niem.NewReport(doc)
}

// Report returns a memoized, read-only copy of a report.
func (c *Corpus) Report(year, file string) (*niem.Report, error) {
	if r, ok := c.reports[year][file]; ok {
		return r, nil
	}
	r, err := c.Open(year, file)
	if err != nil {
		return nil, err
	}
	if c.reports[year] == nil {
		c.reports[year] = make(map[string]*niem.Report)
	}
	c.reports[year][file] = r
	return r, nil
}
