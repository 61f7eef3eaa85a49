package foiafix

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/agentstation/utc"
	"github.com/google/uuid"

	"github.com/agentstation/foiafix/pkg/constants"
	"github.com/agentstation/foiafix/pkg/diagnostics"
	"github.com/agentstation/foiafix/pkg/errors"
	"github.com/agentstation/foiafix/pkg/logging"
	"github.com/agentstation/foiafix/pkg/niem"
	"github.com/agentstation/foiafix/pkg/repair"
)

// Failure stages that happen outside the repair engine.
const (
	StageRead  = "read"
	StageWrite = "write"
)

// Failure is a document that could not be repaired.
type Failure struct {
	File  string
	Stage string
	Err   error
}

// Document pairs a file with what the engine did to it.
type Document struct {
	File   string
	Result *repair.Result
}

// Summary reports a batch repair run.
type Summary struct {
	RunID      string
	Year       string
	StartedAt  utc.Time
	FinishedAt utc.Time
	Duration   time.Duration

	Documents []Document
	Failures  []Failure
}

// Repaired returns the number of documents written.
func (s *Summary) Repaired() int {
	return len(s.Documents)
}

// Failed reports whether any document could not be repaired.
func (s *Summary) Failed() bool {
	return len(s.Failures) > 0
}

// FailuresTable renders the failed documents.
func (s *Summary) FailuresTable() *diagnostics.Table {
	t := &diagnostics.Table{
		Title:   "Failed documents",
		Headers: []string{"XML file", "Stage", "Error"},
	}
	for _, f := range s.Failures {
		t.Rows = append(t.Rows, []string{f.File, f.Stage, f.Err.Error()})
	}
	return t
}

// TruncationsTable renders the text removed from over-long fields so it can
// be re-entered by hand.
func (s *Summary) TruncationsTable() *diagnostics.Table {
	t := &diagnostics.Table{
		Title:   "Removed text",
		Headers: []string{"XML file", "Agency", "Field", "Length", "Removed text"},
	}
	for _, d := range s.Documents {
		for _, tr := range d.Result.Truncations {
			t.Rows = append(t.Rows, []string{d.File, d.Result.Agency, tr.Field, strconv.Itoa(tr.Length), tr.Original})
		}
	}
	return t
}

// RepairYear repairs every document filed for year. A document that fails
// is recorded in the Summary and the batch moves on; the returned error is
// reserved for failures that stop the whole run.
func (c *client) RepairYear(ctx context.Context, year string) (*Summary, error) {
	if err := validYear(year); err != nil {
		return nil, err
	}

	summary := &Summary{
		RunID:     uuid.NewString(),
		Year:      year,
		StartedAt: utc.Now(),
	}
	begin := time.Now()

	ctx = c.context(ctx, "repair", year)
	ctx = logging.WithRunID(ctx, summary.RunID)
	log := logging.FromContext(ctx)

	engine, err := c.engine(repair.ModeRepair)
	if err != nil {
		return nil, err
	}

	files, err := c.corpus.Files(year)
	if err != nil {
		return nil, err
	}
	log.Info().Int("documents", len(files)).Msg("Repairing reports")

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return summary, err
		}
		docCtx := logging.WithFile(ctx, file)
		result, failure := c.repairDocument(docCtx, engine, year, file)
		if failure != nil {
			logging.FromContext(docCtx).Error().
				Err(failure.Err).
				Str("stage", failure.Stage).
				Msg("Document not repaired")
			summary.Failures = append(summary.Failures, *failure)
			continue
		}
		summary.Documents = append(summary.Documents, Document{File: file, Result: result})
	}

	summary.FinishedAt = utc.Now()
	summary.Duration = time.Since(begin)
	log.Info().
		Int("repaired", summary.Repaired()).
		Int("failed", len(summary.Failures)).
		Dur("duration", summary.Duration).
		Msg("Repair finished")
	return summary, nil
}

func (c *client) repairDocument(ctx context.Context, engine *repair.Engine, year, file string) (*repair.Result, *Failure) {
	report, err := c.corpus.Open(year, file)
	if err != nil {
		return nil, &Failure{File: file, Stage: StageRead, Err: err}
	}

	result, err := engine.Repair(ctx, report)
	if err != nil {
		return result, &Failure{File: file, Stage: result.FailedAt.String(), Err: errors.WrapDocument(file, result.FailedAt.String(), err)}
	}

	if err := c.write(year, file, report.Document()); err != nil {
		return result, &Failure{File: file, Stage: StageWrite, Err: err}
	}
	return result, nil
}

// write stores the canonical and the indented form of doc.
func (c *client) write(year, file string, doc *niem.Document) error {
	var canonical, formatted bytes.Buffer
	if err := doc.Encode(&canonical); err != nil {
		return err
	}
	if err := doc.EncodeIndent(&formatted, c.options.indent); err != nil {
		return err
	}
	if err := writeFile(filepath.Join(c.options.outputDir, year, file), canonical.Bytes()); err != nil {
		return err
	}
	return writeFile(filepath.Join(c.options.formattedDir, year, file), formatted.Bytes())
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), constants.DirPermissions); err != nil {
		return errors.WrapIO("create", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, constants.FilePermissions); err != nil {
		return errors.WrapIO("write", path, err)
	}
	return nil
}
