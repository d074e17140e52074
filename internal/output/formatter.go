// Package output renders human-facing run progress and benchmark verdicts.
package output

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/beshkenadze/FluidAudio/internal/compare"
)

// Formatter provides clean, human-friendly output
type Formatter interface {
	PrintPhase(phase string)
	PrintProgress(message string, duration time.Duration)
	PrintSuccess(message string)
	PrintError(message string, err error)
	PrintVerdicts(verdicts []compare.KindVerdict)
	PrintReportPath(path string)
}

type formatter struct {
	writer io.Writer
	colors *ColorHelper

	green *color.Color
	red   *color.Color
	blue  *color.Color
	gray  *color.Color
}

// NewFormatter creates a new output formatter
func NewFormatter(writer io.Writer) Formatter {
	return &formatter{
		writer: writer,
		colors: NewColorHelper(),
		green:  color.New(color.FgGreen),
		red:    color.New(color.FgRed),
		blue:   color.New(color.FgBlue),
		gray:   color.New(color.FgHiBlack),
	}
}

// PrintPhase prints phase separator
func (f *formatter) PrintPhase(phase string) {
	f.blue.Fprintf(f.writer, "\n▸ %s\n", phase)
}

// PrintProgress prints progress with timing
func (f *formatter) PrintProgress(message string, duration time.Duration) {
	if duration > 0 {
		f.gray.Fprintf(f.writer, "%s (%s)\n", message, formatDuration(duration))
	} else {
		fmt.Fprintf(f.writer, "%s\n", message)
	}
}

// PrintSuccess prints a green message
func (f *formatter) PrintSuccess(message string) {
	f.green.Fprintf(f.writer, "%s\n", message)
}

// PrintError prints a red message plus error details
func (f *formatter) PrintError(message string, err error) {
	f.red.Fprintf(f.writer, "ERROR: %s", message)
	if err != nil {
		f.red.Fprintf(f.writer, ": %v", err)
	}
	fmt.Fprintf(f.writer, "\n")
}

// PrintVerdicts renders the baseline comparison as a table, one row per
// judged metric. The comparison is advisory only.
func (f *formatter) PrintVerdicts(verdicts []compare.KindVerdict) {
	if len(verdicts) == 0 {
		fmt.Fprintln(f.writer, "No benchmark results to compare")
		return
	}

	table := tablewriter.NewWriter(f.writer)
	table.SetHeader([]string{"Benchmark", "Metric", "Observed", "Baseline", "Status"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(true)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("│")
	table.SetRowSeparator("─")
	table.SetHeaderLine(true)
	table.SetBorder(true)
	table.SetTablePadding(" ")

	for _, v := range verdicts {
		label := fmt.Sprintf("%s (%s)", v.Kind, v.Description)
		table.Append(metricRow(label, v.Quality, f.colors))
		table.Append(metricRow("", v.Throughput, f.colors))
	}

	table.Render()
}

// PrintReportPath reports where the combined artifact was written
func (f *formatter) PrintReportPath(path string) {
	fmt.Fprintf(f.writer, "\nResults saved to: %s\n", path)
}

func metricRow(label string, m compare.MetricVerdict, colors *ColorHelper) []string {
	return []string{
		label,
		m.Name,
		fmt.Sprintf("%.1f%s", m.Observed, m.Unit),
		fmt.Sprintf("%.1f%s", m.Baseline, m.Unit),
		colors.FormatStatus(m.Passed),
	}
}

// formatDuration formats duration in human-readable format
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%.1fm", d.Minutes())
}

// Compile-time interface compliance check
var _ Formatter = (*formatter)(nil)
