package alerts

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"

	"github.com/agentstation/foiafix/internal/cmd/output"
)

// Writer handles alert output.
type Writer interface {
	WriteAlert(alert *Alert) error
}

// WriterFunc is an adapter to allow functions to be used as Writers.
type WriterFunc func(*Alert) error

// WriteAlert calls the function.
func (f WriterFunc) WriteAlert(alert *Alert) error {
	return f(alert)
}

// DiscardWriter is a Writer that discards all alerts.
var DiscardWriter Writer = WriterFunc(func(*Alert) error { return nil })

// FormatWriter writes alerts in the command's output format. Tabular
// formats get a plain line, structured formats get a record.
type FormatWriter struct {
	writer      io.Writer
	format      output.Format
	useColor    bool
	showDetails bool
}

// NewFormatWriter creates a new FormatWriter for the specified format.
func NewFormatWriter(w io.Writer, format output.Format) *FormatWriter {
	return &FormatWriter{
		writer:      w,
		format:      format,
		useColor:    isTerminal(w),
		showDetails: true,
	}
}

// WithColor overrides terminal color detection.
func (fw *FormatWriter) WithColor(enabled bool) *FormatWriter {
	fw.useColor = enabled
	return fw
}

// WriteAlert writes an alert in the configured format.
func (fw *FormatWriter) WriteAlert(alert *Alert) error {
	switch fw.format {
	case output.FormatJSON:
		encoder := json.NewEncoder(fw.writer)
		encoder.SetIndent("", "  ")
		return encoder.Encode(fw.toAlertData(alert))
	case output.FormatYAML:
		return yaml.NewEncoder(fw.writer).Encode(fw.toAlertData(alert))
	default:
		return fw.writePlain(alert)
	}
}

type alertData struct {
	Level     string   `json:"level" yaml:"level"`
	Message   string   `json:"message" yaml:"message"`
	Details   []string `json:"details,omitempty" yaml:"details,omitempty"`
	Error     string   `json:"error,omitempty" yaml:"error,omitempty"`
	Timestamp string   `json:"timestamp" yaml:"timestamp"`
}

func (fw *FormatWriter) toAlertData(alert *Alert) alertData {
	data := alertData{
		Level:     alert.Level.String(),
		Message:   alert.Message,
		Details:   alert.Details,
		Timestamp: alert.Timestamp.Format("2006-01-02T15:04:05Z07:00"),
	}
	if alert.Err != nil {
		data.Error = alert.Err.Error()
	}
	return data
}

func (fw *FormatWriter) writePlain(alert *Alert) error {
	message := alert.String()
	if fw.useColor {
		message = alert.Level.Color() + message + resetColor
	}
	if _, err := fmt.Fprintln(fw.writer, message); err != nil {
		return err
	}

	if fw.showDetails {
		for _, detail := range alert.Details {
			if _, err := fmt.Fprintf(fw.writer, "   %s\n", detail); err != nil {
				return err
			}
		}
	}
	return nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}
