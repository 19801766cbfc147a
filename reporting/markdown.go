// Package reporting renders a populated suite tree: a paginated markdown
// status matrix for embedding in a report, and console output for humans.
// Neither renderer mutates the tree or performs file I/O.
package reporting

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jomag/romtest/suite"
)

// DefaultTestsPerRow is the default matrix chunk width.
const DefaultTestsPerRow = 12

// BuildDocument renders one markdown table per suite into a single
// document. Suite titles are emitted only when more than one suite is being
// reported, to disambiguate the tables.
func BuildDocument(suites []*suite.TestSuite, testsPerRow int) string {
	withTitle := len(suites) > 1
	var b strings.Builder
	for _, s := range suites {
		b.WriteString(BuildReport(s, withTitle, testsPerRow))
	}
	return b.String()
}

// BuildReport renders one suite as a markdown table. Groups appear in
// name-sorted order; each group's tests are chunked into rows of
// testsPerRow cells, with the group label carried only on the first row of
// its chunk sequence. Every cell is a link whose visible text is the
// verdict glyph and whose hover title carries "<test name><suffix>", so the
// machine-readable detail rides inside the cell without widening the grid.
func BuildReport(s *suite.TestSuite, withTitle bool, testsPerRow int) string {
	if testsPerRow <= 0 {
		testsPerRow = DefaultTestsPerRow
	}

	var b strings.Builder
	if withTitle {
		fmt.Fprintf(&b, "## %s\n\n", s.Name)
	}

	// Header row of empty label cells, one extra for the group-name column.
	b.WriteString("|" + strings.Repeat("       |", testsPerRow+1) + "\n")
	b.WriteString("|" + strings.Repeat(" :---: |", testsPerRow+1) + "\n")

	groups := make([]*suite.TestGroup, len(s.Groups))
	copy(groups, s.Groups)
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })

	for _, g := range groups {
		first := true
		for start := 0; start < len(g.Tests); start += testsPerRow {
			end := start + testsPerRow
			if end > len(g.Tests) {
				end = len(g.Tests)
			}

			if first {
				fmt.Fprintf(&b, "| %s ", g.Name)
				first = false
			} else {
				b.WriteString("| ")
			}
			for _, test := range g.Tests[start:end] {
				status := test.Status()
				fmt.Fprintf(&b, "| [%s](x %q) ", status.Glyph(), test.Name+status.Suffix())
			}
			b.WriteString("|\n")
		}
	}

	return b.String()
}
