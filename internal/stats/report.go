package stats

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

// ReportOptions controls WriteReport.
type ReportOptions struct {
	Title    string
	Within   int
	Color    bool
	TopARGs  []Count
	TopMGEs  []Count
	Summary  Summary
	Produced []string // files written alongside the report
}

// WriteReport prints the terminal summary.
func WriteReport(w io.Writer, o ReportOptions) error {
	head := color.New(color.FgCyan, color.Bold)
	warn := color.New(color.FgRed, color.Bold)
	if !o.Color {
		head.DisableColor()
		warn.DisableColor()
	}
	rule := strings.Repeat("=", 60)

	var b strings.Builder
	fmt.Fprintf(&b, "\n%s\n", rule)
	head.Fprintf(&b, "   CdMEC SUMMARY REPORT: %s\n", o.Title)
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "Total Associations Found: %s\n", humanize.Comma(int64(o.Summary.Total)))
	fmt.Fprintf(&b, "Embedded (High Risk):     ")
	warn.Fprintf(&b, "%s\n", humanize.Comma(int64(o.Summary.Embedded)))
	fmt.Fprintf(&b, "Samples / Contigs:        %s / %s\n",
		humanize.Comma(int64(o.Summary.Samples)), humanize.Comma(int64(o.Summary.Contigs)))

	head.Fprintf(&b, "\n[TABLE 1: TOP MOBILE ARGs (<=%s bp)]\n", humanize.Comma(int64(o.Within)))
	writeCounts(&b, TopARGHeader, o.TopARGs)
	head.Fprintf(&b, "\n[TABLE 2: TOP MGE ASSOCIATIONS]\n")
	writeCounts(&b, TopMGEHeader, o.TopMGEs)

	if len(o.Produced) > 0 {
		fmt.Fprintf(&b, "\n%s\nCSV tables saved: %s\n%s\n", rule, strings.Join(o.Produced, ", "), rule)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeCounts(b *strings.Builder, header []string, counts []Count) {
	wk := len(header[0])
	for _, c := range counts {
		wk = max(wk, len(c.Key))
	}
	fmt.Fprintf(b, "%-*s  %s\n", wk, header[0], header[1])
	if len(counts) == 0 {
		fmt.Fprintf(b, "%-*s  %s\n", wk, "(none)", "-")
		return
	}
	for _, c := range counts {
		fmt.Fprintf(b, "%-*s  %s\n", wk, c.Key, humanize.Comma(int64(c.N)))
	}
}
