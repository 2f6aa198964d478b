// Package report renders a finished comparison into output formats. The
// engine and analysis layers only build the report structure; everything
// about serialization lives here.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/gokugml/membench/analysis"
)

// Assembler serializes one comparison report. Implementations must not
// mutate the report.
type Assembler interface {
	Assemble(report *analysis.Report) ([]byte, error)
}

// JSONAssembler renders the full report structure as JSON, suitable for
// saving run results for later inspection.
type JSONAssembler struct {
	// Indent enables pretty-printed output.
	Indent bool
}

// Assemble implements Assembler.
func (a *JSONAssembler) Assemble(report *analysis.Report) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("report is nil")
	}
	if a.Indent {
		return json.MarshalIndent(report, "", "  ")
	}
	return json.Marshal(report)
}

// Write assembles the report and writes it to w.
func Write(w io.Writer, a Assembler, report *analysis.Report) error {
	data, err := a.Assemble(report)
	if err != nil {
		return fmt.Errorf("failed to assemble report: %w", err)
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// WriteFile assembles the report and saves it to path.
func WriteFile(path string, a Assembler, report *analysis.Report) error {
	data, err := a.Assemble(report)
	if err != nil {
		return fmt.Errorf("failed to assemble report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to save report to %s: %w", path, err)
	}
	return nil
}
