package suite

import (
	"os"
	"path/filepath"

	"github.com/jomag/romtest/types"
)

const (
	// VendorMooneye identifies the Mooneye acceptance test suite.
	VendorMooneye = "mooneye"
	// ProtocolMooneye is the test protocol passed to the emulator for
	// Mooneye ROMs; the ROM reports its verdict via the Fibonacci register
	// convention and the emulator maps that to its exit status.
	ProtocolMooneye = "mooneye"
)

// mooneyeVendor partitions the Mooneye suite. Of the first-level directories
// only "acceptance" is meaningful for regression testing (the others are
// "manual-only", "madness" and similar); its ROMs form one flat group and
// each of its subdirectories forms a further group. The separate
// "emulator-only" tree contributes one group per subdirectory.
type mooneyeVendor struct{}

func (v *mooneyeVendor) Name() string { return VendorMooneye }

func (v *mooneyeVendor) Partition(baseDir string) ([]*TestGroup, error) {
	acceptanceDir := filepath.Join(baseDir, "acceptance")
	emulatorOnlyDir := filepath.Join(baseDir, "emulator-only")

	groups := []*TestGroup{{Name: "acceptance", ROMDir: acceptanceDir}}

	sub, err := subGroups("acceptance", acceptanceDir)
	if err != nil {
		return nil, err
	}
	groups = append(groups, sub...)

	sub, err = subGroups("emulator-only", emulatorOnlyDir)
	if err != nil {
		return nil, err
	}
	groups = append(groups, sub...)

	for _, g := range groups {
		if err := g.setup(mooneyeTest); err != nil {
			return nil, err
		}
	}
	return groups, nil
}

// subGroups creates one group per immediate subdirectory of dir, named
// "<prefix>/<subdir>".
func subGroups(prefix, dir string) ([]*TestGroup, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var groups []*TestGroup
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		groups = append(groups, &TestGroup{
			Name:   prefix + "/" + entry.Name(),
			ROMDir: filepath.Join(dir, entry.Name()),
		})
	}
	return groups, nil
}

func mooneyeTest(testName, romPath string) *Test {
	return NewTest(testName, romPath, types.MachineDMG, types.ProtocolMode(ProtocolMooneye))
}
