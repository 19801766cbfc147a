// Package types contains shared types used across the romtest harness.
package types

// TestStatus represents the possible verdicts of a test execution
type TestStatus string

const (
	TestStatusPass TestStatus = "pass"
	TestStatusFail TestStatus = "fail"
	TestStatusSkip TestStatus = "skip"
)

// Markdown glyphs used in the report matrix. The pass/fail glyphs are
// GitHub-flavored emoji shortcodes so the rendered table stays compact.
const (
	GlyphPass = ":green_heart:"
	GlyphFail = ":red_circle:"
	GlyphSkip = "🙅"
)

// String implements the Stringer interface for TestStatus
func (s TestStatus) String() string {
	return string(s)
}

// Glyph returns the markdown glyph rendered in a report table cell.
// An unrun test renders the same as a skipped one.
func (s TestStatus) Glyph() string {
	switch s {
	case TestStatusPass:
		return GlyphPass
	case TestStatusFail:
		return GlyphFail
	default:
		return GlyphSkip
	}
}

// Suffix returns the machine-readable suffix carried in a report cell's
// hover title, e.g. ": PASS".
func (s TestStatus) Suffix() string {
	switch s {
	case TestStatusPass:
		return ": PASS"
	case TestStatusFail:
		return ": FAIL"
	default:
		return ": SKIPPED"
	}
}
