// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jonathan/travel-planner/internal/db"
	"github.com/jonathan/travel-planner/internal/stages"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxLogRowsToShow is the default number of audit rows to display
	maxLogRowsToShow = 10
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintItinerary outputs a human-readable summary of an itinerary and
// which stages hold generated content.
func (p *Printer) PrintItinerary(it *db.Itinerary) {
	if it == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Title:       %s\n", it.Title))
	if it.Destination != "" {
		sb.WriteString(fmt.Sprintf("Destination: %s\n", it.Destination))
	}
	if it.Summary != "" {
		sb.WriteString(fmt.Sprintf("Summary:     %s\n", it.Summary))
	}

	if len(it.AISources) > 0 {
		sb.WriteString("\nGenerated stages:\n")
		for _, stageID := range stages.CanonicalOrder() {
			if text, ok := it.AISources[stageID]; ok {
				sb.WriteString(fmt.Sprintf("  • %-10s %d chars\n", stageID, len(text)))
			}
		}
	}

	p.printBox(fmt.Sprintf("ITINERARY %s", it.ID), strings.TrimRight(sb.String(), "\n"))
}

// PrintJobStatus outputs the latest generation job and the stages with
// logged attempts.
func (p *Printer) PrintJobStatus(job *db.GenerationJob, loggedStages []string) {
	var sb strings.Builder

	if job == nil {
		sb.WriteString("No generation jobs yet\n")
	} else {
		sb.WriteString(fmt.Sprintf("Job:     %s\n", job.ID))
		sb.WriteString(fmt.Sprintf("Status:  %s\n", job.Status))
		sb.WriteString(fmt.Sprintf("Started: %s\n", job.StartedAt.Format(time.RFC3339)))
		if job.CompletedAt != nil {
			sb.WriteString(fmt.Sprintf("Ended:   %s\n", job.CompletedAt.Format(time.RFC3339)))
		}
		if job.ErrorMessage != nil {
			sb.WriteString(fmt.Sprintf("Error:   %s\n", *job.ErrorMessage))
		}
	}

	if len(loggedStages) > 0 {
		sb.WriteString(fmt.Sprintf("Stages:  %s\n", strings.Join(loggedStages, ", ")))
	}

	p.printBox("GENERATION STATUS", strings.TrimRight(sb.String(), "\n"))
}

// PrintStageLogs outputs the audit log, most recent first.
func (p *Printer) PrintStageLogs(logs []db.StageLog) {
	var sb strings.Builder

	if len(logs) == 0 {
		sb.WriteString("No log rows\n")
	}

	count := min(len(logs), maxLogRowsToShow)
	for i := 0; i < count; i++ {
		row := logs[i]
		sb.WriteString(fmt.Sprintf("%s  %-10s %s\n",
			row.CreatedAt.Format("2006-01-02 15:04:05"), row.Stage, row.Status))
		if row.ErrorText != nil {
			sb.WriteString(fmt.Sprintf("  error: %s\n", *row.ErrorText))
		}
	}
	if len(logs) > maxLogRowsToShow {
		sb.WriteString(fmt.Sprintf("... and %d more\n", len(logs)-maxLogRowsToShow))
	}

	p.printBox(fmt.Sprintf("AUDIT LOG (%d rows)", len(logs)), strings.TrimRight(sb.String(), "\n"))
}
