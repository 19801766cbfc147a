package suite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jomag/romtest/types"
)

const (
	// VendorBlargg identifies Blargg's timing and behavior test suite.
	VendorBlargg = "blargg"
	// ProtocolBlargg is the test protocol passed to the emulator for Blargg
	// ROMs that report their own verdict.
	ProtocolBlargg = "blargg"
)

// blarggVendor partitions Blargg's suite: one group per immediate
// subdirectory of the base directory.
type blarggVendor struct{}

func (v *blarggVendor) Name() string { return VendorBlargg }

func (v *blarggVendor) Partition(baseDir string) ([]*TestGroup, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, err
	}

	var groups []*TestGroup
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		// The ROMs for a group are kept in a subdirectory called either
		// "individual" or "rom_singles"; the way a ROM is validated depends
		// on which one it came from. Older groups keep the ROMs directly in
		// the group directory.
		groupDir := filepath.Join(baseDir, entry.Name())
		romDir := filepath.Join(groupDir, "individual")
		if _, err := os.Stat(romDir); err != nil {
			romDir = filepath.Join(groupDir, "rom_singles")
		}
		if _, err := os.Stat(romDir); err != nil {
			romDir = groupDir
		}

		g := &TestGroup{Name: entry.Name(), ROMDir: romDir}
		if err := g.setup(blarggTest(romDir)); err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	return groups, nil
}

// blarggTest selects the invocation mode for one Blargg ROM. instr_timing
// and the "individual" ROMs predate the suite's serial pass/fail protocol,
// so they are judged on their printed output instead; instr_timing emits a
// trailing newline the others do not.
func blarggTest(romDir string) testFactory {
	return func(testName, romPath string) *Test {
		var mode types.InvocationMode
		switch {
		case testName == "instr_timing":
			mode = types.ExactOutputMode(fmt.Sprintf("%s\n\n\nPassed\n", testName))
		case strings.HasSuffix(romDir, "individual"):
			mode = types.ExactOutputMode(fmt.Sprintf("%s\n\n\nPassed", testName))
		default:
			mode = types.ProtocolMode(ProtocolBlargg)
		}
		return NewTest(testName, romPath, types.ProfileForROM(romPath), mode)
	}
}
