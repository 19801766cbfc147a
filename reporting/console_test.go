package reporting

import (
	"bytes"
	"testing"
	"time"

	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jomag/romtest/runner"
	"github.com/jomag/romtest/suite"
	"github.com/jomag/romtest/types"
)

func TestPrintSuite(t *testing.T) {
	text.DisableColors()
	defer text.EnableColors()

	g := buildGroup("acceptance", "add_sp_e_timing", "boot_regs-dmgABC")
	g.Tests[0].SetResult(&types.TestResult{Status: types.TestStatusPass})
	g.Tests[1].SetResult(&types.TestResult{Status: types.TestStatusFail})
	empty := &suite.TestGroup{Name: "emulator-only/mbc2"}
	s := &suite.TestSuite{Name: "Mooneye Test Suite", Groups: []*suite.TestGroup{g, empty}}

	var buf bytes.Buffer
	NewConsolePrinter(&buf).PrintSuite(s)
	out := buf.String()

	assert.Contains(t, out, "Mooneye Test Suite\n------------------\n")
	assert.Contains(t, out, "acceptance:\n")
	assert.Contains(t, out, "add_sp_e_timing: Pass\n")
	assert.Contains(t, out, "boot_regs-dmgABC: Fail\n")
	assert.Contains(t, out, "emulator-only/mbc2:\nNo tests\n")
}

func TestPrintSuiteUnrunShowsSkipped(t *testing.T) {
	text.DisableColors()
	defer text.EnableColors()

	s := &suite.TestSuite{Name: "S", Groups: []*suite.TestGroup{buildGroup("g", "pending")}}

	var buf bytes.Buffer
	NewConsolePrinter(&buf).PrintSuite(s)
	assert.Contains(t, buf.String(), "pending: skipped\n")
}

func TestPrintSummary(t *testing.T) {
	text.DisableColors()
	defer text.EnableColors()

	g := buildGroup("cpu_instrs", "01-special", "02-interrupts", "03-op sp,hl")
	g.Tests[0].SetResult(&types.TestResult{Status: types.TestStatusPass})
	g.Tests[1].Skip()
	g.Tests[2].SetResult(&types.TestResult{Status: types.TestStatusFail})
	s := &suite.TestSuite{Name: "Blargg Test Suite", Groups: []*suite.TestGroup{g}}

	result := &runner.RunnerResult{
		Suites: []*runner.SuiteResult{{
			Suite:  s,
			Status: types.TestStatusFail,
			Stats:  runner.ResultStats{Total: 3, Passed: 1, Failed: 1, Skipped: 1},
		}},
		Status:   types.TestStatusFail,
		Duration: 1500 * time.Millisecond,
		Stats:    runner.ResultStats{Total: 3, Passed: 1, Failed: 1, Skipped: 1},
	}

	var buf bytes.Buffer
	NewConsolePrinter(&buf).PrintSummary(result)
	out := buf.String()

	assert.Contains(t, out, "Blargg Test Suite")
	assert.Contains(t, out, "└─ cpu_instrs")
	assert.Contains(t, out, "TOTAL")
	assert.Contains(t, out, "✗ fail")
	assert.Contains(t, out, "1/3 tests passed (1 failed, 1 skipped) in 1.5s")
}

func TestGroupStatus(t *testing.T) {
	assert.Equal(t, types.TestStatusFail, groupStatus(2, 1, 0))
	assert.Equal(t, types.TestStatusSkip, groupStatus(0, 0, 3))
	assert.Equal(t, types.TestStatusPass, groupStatus(1, 0, 2))
	assert.Equal(t, types.TestStatusPass, groupStatus(0, 0, 0))
}

func TestGroupCounts(t *testing.T) {
	g := buildGroup("g", "a", "b", "c", "d")
	g.Tests[0].SetResult(&types.TestResult{Status: types.TestStatusPass})
	g.Tests[1].Skip()
	g.Tests[2].SetResult(&types.TestResult{Status: types.TestStatusFail})
	// g.Tests[3] never runs and counts as nothing here.

	passed, failed, skipped := groupCounts(g)
	require.Equal(t, 1, passed)
	require.Equal(t, 1, failed)
	require.Equal(t, 1, skipped)
}
