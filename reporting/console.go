package reporting

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/jomag/romtest/runner"
	"github.com/jomag/romtest/suite"
	"github.com/jomag/romtest/types"
)

// ConsolePrinter renders suites and run summaries for a terminal. It only
// reads the tree.
type ConsolePrinter struct {
	out io.Writer
}

// NewConsolePrinter creates a printer writing to out; nil means stdout.
func NewConsolePrinter(out io.Writer) *ConsolePrinter {
	if out == nil {
		out = os.Stdout
	}
	return &ConsolePrinter{out: out}
}

// PrintSuite prints every group of a suite in discovery order: the group
// name, then one line per test with its verdict.
func (p *ConsolePrinter) PrintSuite(s *suite.TestSuite) {
	fmt.Fprintln(p.out, text.Bold.Sprint(s.Name))
	fmt.Fprintln(p.out, strings.Repeat("-", len(s.Name)))

	for _, g := range s.Groups {
		fmt.Fprintf(p.out, "%s:\n", text.Bold.Sprint(g.Name))
		if len(g.Tests) == 0 {
			fmt.Fprintln(p.out, "No tests")
			fmt.Fprintln(p.out)
			continue
		}
		for _, test := range g.Tests {
			fmt.Fprintf(p.out, "%s: %s\n", test.Name, verdictText(test.Status()))
		}
		fmt.Fprintln(p.out)
	}
}

// verdictText returns the colored console rendering of a verdict. Unrun and
// skipped tests are indistinguishable here.
func verdictText(status types.TestStatus) string {
	switch status {
	case types.TestStatusPass:
		return text.Colors{text.Bold, text.FgGreen}.Sprint("Pass")
	case types.TestStatusFail:
		return text.Colors{text.Bold, text.FgRed}.Sprint("Fail")
	default:
		return text.Colors{text.Bold, text.FgYellow}.Sprint("skipped")
	}
}

// resultMark returns a short status marker for summary table rows.
func resultMark(status types.TestStatus) string {
	switch status {
	case types.TestStatusPass:
		return "✓ pass"
	case types.TestStatusSkip:
		return "- skip"
	default:
		return "✗ fail"
	}
}

// PrintSummary renders the aggregated run results as a table: one row per
// suite, one indented row per group, and a totals footer. The table style
// follows the overall verdict.
func (p *ConsolePrinter) PrintSummary(result *runner.RunnerResult) {
	t := table.NewWriter()
	t.SetOutputMirror(p.out)
	t.SetTitle(fmt.Sprintf("Conformance Results (%.1fs)", result.Duration.Seconds()))

	t.AppendHeader(table.Row{"Suite", "Tests", "Passed", "Failed", "Skipped", "Status"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Name: "Suite", WidthMax: 50, WidthMaxEnforcer: text.WrapSoft},
		{Name: "Tests", Align: text.AlignRight},
		{Name: "Passed", Align: text.AlignRight},
		{Name: "Failed", Align: text.AlignRight},
		{Name: "Skipped", Align: text.AlignRight},
	})

	for _, sr := range result.Suites {
		t.AppendRow(table.Row{
			sr.Suite.Name,
			sr.Stats.Total,
			sr.Stats.Passed,
			sr.Stats.Failed,
			sr.Stats.Skipped,
			resultMark(sr.Status),
		})

		for i, g := range sr.Suite.Groups {
			prefix := "├─"
			if i == len(sr.Suite.Groups)-1 {
				prefix = "└─"
			}
			passed, failed, skipped := groupCounts(g)
			t.AppendRow(table.Row{
				fmt.Sprintf("%s %s", prefix, g.Name),
				len(g.Tests),
				passed,
				failed,
				skipped,
				resultMark(groupStatus(passed, failed, skipped)),
			})
		}
		t.AppendSeparator()
	}

	switch result.Status {
	case types.TestStatusPass:
		t.SetStyle(table.StyleColoredBlackOnGreenWhite)
	case types.TestStatusSkip:
		t.SetStyle(table.StyleColoredBlackOnYellowWhite)
	default:
		t.SetStyle(table.StyleColoredBlackOnRedWhite)
	}

	t.AppendFooter(table.Row{
		"TOTAL",
		result.Stats.Total,
		result.Stats.Passed,
		result.Stats.Failed,
		result.Stats.Skipped,
		resultMark(result.Status),
	})

	t.Render()
	fmt.Fprintln(p.out, result.String())
}

func groupCounts(g *suite.TestGroup) (passed, failed, skipped int) {
	for _, test := range g.Tests {
		switch test.Status() {
		case types.TestStatusPass:
			passed++
		case types.TestStatusFail:
			failed++
		case types.TestStatusSkip:
			skipped++
		}
	}
	return passed, failed, skipped
}

func groupStatus(passed, failed, skipped int) types.TestStatus {
	if failed > 0 {
		return types.TestStatusFail
	}
	if passed == 0 && skipped > 0 {
		return types.TestStatusSkip
	}
	return types.TestStatusPass
}
