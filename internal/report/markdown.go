package report

import (
	"fmt"
	"io"
	"strconv"

	"github.com/nao1215/markdown"

	"github.com/bioprep/airgen/internal/model"
)

// MarkdownWriter outputs a run summary in GitHub-flavored Markdown:
// generation parameters, frame and grid statistics, and one table per
// plan. Meant for lab notebooks and pull-request style review of
// restraint choices, not for machine consumption.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to w.
func NewMarkdownWriter(w io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(w)}
}

// Write outputs the run summary.
func (w *MarkdownWriter) Write(result *model.RunResult) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, result)
	w.writeSurface(md, result)
	w.writePlans(md, result)

	return len(md.String()), md.Build()
}

// writeHeader writes the run parameters table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, result *model.RunResult) {
	md.H1("Surface Restraint Summary")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Structure", "`" + result.PDBPath + "`"},
			{"Generated", result.GeneratedAt.UTC().Format("2006-01-02 15:04:05 UTC")},
			{"Plans", strconv.Itoa(len(result.Plans))},
			{"Total restraints", strconv.Itoa(result.TotalRestraints())},
			{"Policy", result.Params.Policy.String() + w.policyDetail(result.Params)},
			{"Tolerance", formatFloat(result.Params.Tolerance) + " A"},
			{"Anchor mode", result.Params.Anchor},
		},
	})
	md.PlainText("")
}

// policyDetail appends the policy's own parameter where one applies.
func (w *MarkdownWriter) policyDetail(p model.RunParams) string {
	switch p.Policy {
	case model.PolicyRadius:
		return " (" + formatFloat(p.Radius) + " A)"
	case model.PolicyTopK:
		return " (k=" + strconv.Itoa(p.TopK) + ")"
	}
	return ""
}

// writeSurface writes frame and grid statistics.
func (w *MarkdownWriter) writeSurface(md *markdown.Markdown, result *model.RunResult) {
	md.H2("Surface")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Plane", formatFloat(result.Grid.XSize) + " x " + formatFloat(result.Grid.YSize) + " A"},
			{"Spacing", formatFloat(result.Grid.Spacing) + " A"},
			{"Standoff", formatFloat(result.Grid.Standoff) + " A"},
			{"Beads", fmt.Sprintf("%d (%dx%d)", result.Grid.Len(), result.Grid.NX, result.Grid.NY)},
			{"Frame origin", formatVec(result.Frame.Origin)},
			{"Frame normal", formatVec(result.Frame.Normal)},
			{"Anchor points", strconv.Itoa(result.Frame.AnchorCount)},
		},
	})
	md.PlainText("")
}

// writePlans writes one restraint table per plan.
func (w *MarkdownWriter) writePlans(md *markdown.Markdown, result *model.RunResult) {
	for i := range result.Plans {
		p := &result.Plans[i]

		md.H2(fmt.Sprintf("Plan %d", p.Index))
		md.PlainTextf("Selection: %s", joinInts(p.Selection.Residues))
		md.PlainText("")

		rows := make([][]string, 0, p.Len())
		for _, entry := range p.Entries {
			rows = append(rows, []string{
				strconv.Itoa(entry.Residue),
				strconv.Itoa(len(entry.BeadIDs)),
				formatFloat(entry.NearestDist),
				formatFloat(entry.Upper),
			})
		}
		md.Table(markdown.TableSet{
			Header: []string{"Residue", "Candidate beads", "Nearest (A)", "Upper bound (A)"},
			Rows:   rows,
		})
		md.PlainText("")
	}
}

// formatFloat renders distances with fixed precision so summaries
// diff cleanly between runs.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 3, 64)
}

// formatVec renders a vector for the summary tables.
func formatVec(v model.Vec3) string {
	return fmt.Sprintf("(%.3f, %.3f, %.3f)", v.X, v.Y, v.Z)
}
