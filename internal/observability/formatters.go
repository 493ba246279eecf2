// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/campusconnect/campusconnect/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
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

	for _, line := range strings.Split(content, "\n") {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintCorpusSummary outputs the size of the assembled directory corpus and a
// sample of the profiles in it.
func (p *Printer) PrintCorpusSummary(users []types.UserRecord) {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Profiles in corpus: %d\n", len(users)))

	count := min(len(users), maxItemsToShow)
	if count > 0 {
		sb.WriteString("\n")
	}
	for i := 0; i < count; i++ {
		user := users[i]
		name := user.DisplayName
		if name == "" {
			name = user.ID
		}
		sb.WriteString(fmt.Sprintf("  • %s", name))
		if len(user.Interests) > 0 {
			interests := strings.Join(user.Interests, ", ")
			if len(interests) > 30 {
				interests = interests[:27] + "..."
			}
			sb.WriteString(fmt.Sprintf(" (%s)", interests))
		}
		sb.WriteString("\n")
	}
	if len(users) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(users)-maxItemsToShow))
	}

	p.printBox("DIRECTORY CORPUS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRankedMatches outputs the ranked suggestions with scores and shared
// interests, flagging already-connected partners.
func (p *Printer) PrintRankedMatches(results []types.RankedResult) {
	if len(results) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total suggestions: %d\n\n", len(results)))

	count := min(len(results), maxItemsToShow)
	for i := 0; i < count; i++ {
		result := results[i]
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, result.Name))
		sb.WriteString(fmt.Sprintf("    Score: %.2f", result.MatchScore))
		if result.IsPriority {
			sb.WriteString(" (connected)")
		}
		sb.WriteString("\n")
		if len(result.CommonInterests) > 0 {
			interests := strings.Join(result.CommonInterests, ", ")
			if len(interests) > 40 {
				interests = interests[:37] + "..."
			}
			sb.WriteString(fmt.Sprintf("    Shared: %s\n", interests))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}
	if len(results) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n  ... and %d more\n", len(results)-maxItemsToShow))
	}

	p.printBox("TOP PARTNER SUGGESTIONS", strings.TrimSuffix(sb.String(), "\n"))
}
