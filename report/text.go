package report

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/gokugml/membench/analysis"
	"github.com/gokugml/membench/core"
)

// TextAssembler renders the four analysis layers as a plain-text narrative
// report: core-method comparison, specialized-method ranking, the
// scenario-by-method matrix, and the overall framework comparison.
type TextAssembler struct{}

// Assemble implements Assembler.
func (a *TextAssembler) Assemble(report *analysis.Report) ([]byte, error) {
	if report == nil {
		return nil, fmt.Errorf("report is nil")
	}

	var b strings.Builder
	writeHeader(&b, report)
	writeCoreLayer(&b, report)
	writeSpecializedLayer(&b, report)
	writeMatrixLayer(&b, report)
	writeOverallLayer(&b, report)
	writeTotals(&b, report)
	return []byte(b.String()), nil
}

func banner(b *strings.Builder, title string) {
	b.WriteString(strings.Repeat("=", 72) + "\n")
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat("=", 72) + "\n")
}

func section(b *strings.Builder, title string) {
	b.WriteString("\n" + title + "\n")
	b.WriteString(strings.Repeat("-", 50) + "\n")
}

func methodLabel(key core.MethodKey) string {
	return key.Framework + "/" + key.Method
}

func verdictLine(v analysis.Verdict) string {
	switch v {
	case analysis.VerdictSignificant:
		return "significant difference (>1.0 points)"
	case analysis.VerdictModerate:
		return "moderate difference (0.5-1.0 points)"
	case analysis.VerdictComparable:
		return "comparable performance (<0.5 points)"
	default:
		return string(v)
	}
}

func writeHeader(b *strings.Builder, r *analysis.Report) {
	banner(b, "Memory Framework Comparative Evaluation Report")
	fmt.Fprintf(b, "Run:        %s\n", r.RunID)
	fmt.Fprintf(b, "Generated:  %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05 MST"))
	fmt.Fprintf(b, "Scenarios:  %d\n", len(r.Scenarios))
	fmt.Fprintf(b, "Methods:    %d\n", len(r.Methods))
	fmt.Fprintf(b, "Frameworks: %d\n", len(r.Frameworks))
	b.WriteString("\n")
}

func writeCoreLayer(b *strings.Builder, r *analysis.Report) {
	banner(b, "Layer 1: Core Method Comparison")
	b.WriteString("Head-to-head comparison of each framework's general-purpose retrieval.\n")

	section(b, "Core method scores")
	for _, e := range r.Core.Entries {
		if e.Sufficient {
			fmt.Fprintf(b, "%-16s %s: %.2f/10\n", e.Framework, methodLabel(e.Method), e.Mean)
		} else {
			fmt.Fprintf(b, "%-16s %s: insufficient data\n", e.Framework, methodLabel(e.Method))
		}
	}

	if r.Core.Winner != "" && r.Core.Verdict != "" {
		fmt.Fprintf(b, "\nWinner: %s\n", r.Core.Winner)
		fmt.Fprintf(b, "Gap: %.2f points (%.1f%% advantage)\n", r.Core.Margin, r.Core.AdvantagePct)
		fmt.Fprintf(b, "Assessment: %s\n", verdictLine(r.Core.Verdict))
	} else if r.Core.Winner != "" {
		fmt.Fprintf(b, "\nWinner by default: %s (no sufficient competitor)\n", r.Core.Winner)
	} else {
		b.WriteString("\nNo winner: insufficient core-method data.\n")
	}
	if len(r.Core.Insufficient) > 0 {
		fmt.Fprintf(b, "Insufficient data: %s\n", strings.Join(r.Core.Insufficient, ", "))
	}
	b.WriteString("\n")
}

func writeSpecializedLayer(b *strings.Builder, r *analysis.Report) {
	banner(b, "Layer 2: Specialized Method Ranking")

	section(b, "Ranking")
	if len(r.Specialized.Ranking) == 0 {
		b.WriteString("No specialized methods produced valid scores.\n")
	}
	for i, e := range r.Specialized.Ranking {
		fmt.Fprintf(b, "%d. %-32s %.2f/10 (failure rate %.0f%%)\n",
			i+1, methodLabel(e.Key), e.Mean, e.FailureRate*100)
	}
	if len(r.Specialized.Ranking) > 0 {
		best := r.Specialized.Ranking[0]
		fmt.Fprintf(b, "\nBest specialized method: %s (%.2f points)\n", methodLabel(best.Key), best.Mean)
	}
	if len(r.Specialized.Insufficient) > 0 {
		labels := make([]string, len(r.Specialized.Insufficient))
		for i, key := range r.Specialized.Insufficient {
			labels[i] = methodLabel(key)
		}
		fmt.Fprintf(b, "Insufficient data: %s\n", strings.Join(labels, ", "))
	}
	b.WriteString("\n")
}

func writeMatrixLayer(b *strings.Builder, r *analysis.Report) {
	banner(b, "Layer 3: Scenario-Method Fit")

	section(b, "Score matrix")
	tw := tabwriter.NewWriter(b, 2, 4, 2, ' ', 0)
	cols := make([]string, 0, len(r.Matrix.Columns)+1)
	cols = append(cols, "scenario")
	for _, key := range r.Matrix.Columns {
		cols = append(cols, methodLabel(key))
	}
	fmt.Fprintln(tw, strings.Join(cols, "\t"))
	for _, row := range r.Matrix.Rows {
		cells := make([]string, 0, len(row.Cells)+1)
		cells = append(cells, row.Scenario)
		for _, cell := range row.Cells {
			cells = append(cells, cellLabel(cell))
		}
		fmt.Fprintln(tw, strings.Join(cells, "\t"))
	}
	tw.Flush()

	section(b, "Best method per scenario")
	for _, row := range r.Matrix.Rows {
		if row.Best != nil {
			fmt.Fprintf(b, "%-24s %s (%d points)\n", row.Scenario, methodLabel(row.Best.Key), row.Best.Score)
		} else {
			fmt.Fprintf(b, "%-24s insufficient data\n", row.Scenario)
		}
	}
	b.WriteString("\n")
}

func cellLabel(cell analysis.MatrixCell) string {
	switch cell.Status {
	case analysis.CellScored:
		return fmt.Sprintf("%d", cell.Score)
	case analysis.CellFailed:
		return "fail"
	default:
		return "n/a"
	}
}

func writeOverallLayer(b *strings.Builder, r *analysis.Report) {
	banner(b, "Layer 4: Overall Framework Comparison")

	section(b, "Framework scores")
	for _, fw := range r.Overall.Frameworks {
		if fw.Sufficient() {
			fmt.Fprintf(b, "%-16s %.2f/10 (%d methods", fw.Framework, fw.Score, len(fw.Methods))
			if fw.Excluded > 0 {
				fmt.Fprintf(b, ", %d excluded", fw.Excluded)
			}
			b.WriteString(")\n")
		} else {
			fmt.Fprintf(b, "%-16s insufficient data\n", fw.Framework)
		}
	}

	if r.Overall.Winner != "" {
		fmt.Fprintf(b, "\nOverall winner: %s (confidence %.2f)\n", r.Overall.Winner, r.Overall.Confidence)
		if r.Overall.RunnerUp != "" {
			fmt.Fprintf(b, "Gap to %s: %.2f points (%.1f%% advantage)\n",
				r.Overall.RunnerUp, r.Overall.Margin, r.Overall.AdvantagePct)
			fmt.Fprintf(b, "Assessment: %s\n", verdictLine(r.Overall.Verdict))
		}
	} else {
		b.WriteString("\nNo overall winner: insufficient data across frameworks.\n")
	}
	if len(r.Overall.Insufficient) > 0 {
		fmt.Fprintf(b, "Insufficient data: %s\n", strings.Join(r.Overall.Insufficient, ", "))
	}
	b.WriteString("\n")
}

func writeTotals(b *strings.Builder, r *analysis.Report) {
	section(b, "Run totals")
	fmt.Fprintf(b, "Evaluated triples:     %d\n", r.Totals.Triples)
	fmt.Fprintf(b, "Scored:                %d\n", r.Totals.Scored)
	fmt.Fprintf(b, "Failed:                %d\n", r.Totals.Failed)
	fmt.Fprintf(b, "Insufficient methods:  %d\n", r.Totals.InsufficientMethods)
}
