package suite

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ROMExtension is the accepted file extension for test ROMs.
const ROMExtension = ".gb"

// TestGroup is an ordered collection of tests sharing a ROM directory. The
// group's test sequence is populated once during discovery and is immutable
// in structure afterwards.
type TestGroup struct {
	// Name is the display label; it may carry a path-like segment such as
	// "acceptance/timer".
	Name string
	// ROMDir holds the test ROMs for this group.
	ROMDir string
	// Tests in discovery order (lexicographic by filename).
	Tests []*Test
}

// testFactory constructs the vendor-correct test for a discovered ROM.
type testFactory func(testName, romPath string) *Test

// setup populates the group's test sequence from the ROM files directly
// inside ROMDir, in sorted order.
func (g *TestGroup) setup(newTest testFactory) error {
	roms, err := listROMs(g.ROMDir)
	if err != nil {
		return fmt.Errorf("discovering ROMs for group %q: %w", g.Name, err)
	}
	for _, romPath := range roms {
		testName := strings.TrimSuffix(filepath.Base(romPath), ROMExtension)
		g.Tests = append(g.Tests, newTest(testName, romPath))
	}
	return nil
}

// listROMs returns the paths of all ROM files directly inside dir.
// os.ReadDir yields entries sorted by filename, which fixes discovery order.
func listROMs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var roms []string
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ROMExtension) {
			continue
		}
		roms = append(roms, filepath.Join(dir, entry.Name()))
	}
	return roms, nil
}
