package batch

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titleCaser = cases.Title(language.Und)

// RenderSummary renders the per-file outcomes and totals as a table. fancy
// selects the rounded style for terminals; plain ASCII otherwise.
func RenderSummary(summary Summary, fancy bool) string {
	tw := table.NewWriter()
	if fancy {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleDefault)
	}

	tw.AppendHeader(table.Row{"File", "Status", "Intervals", "Elapsed"})
	for _, result := range summary.Results {
		tw.AppendRow(table.Row{
			filepath.Base(result.Source),
			titleCaser.String(result.Label()),
			result.Intervals,
			result.Elapsed.Round(10 * time.Millisecond),
		})
	}
	tw.AppendFooter(table.Row{
		fmt.Sprintf("%d files", summary.Total),
		fmt.Sprintf("%d ok / %d quiet / %d failed", summary.Succeeded, summary.NoMotion, summary.Failed),
		"",
		summary.Elapsed.Round(10 * time.Millisecond),
	})
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, Align: text.AlignRight},
		{Number: 4, Align: text.AlignRight},
	})
	return tw.Render()
}
