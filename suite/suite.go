package suite

import (
	"fmt"
)

// Vendor partitions a suite's base directory into named test groups. This is
// a closed set: each supported test-suite vendor lays its ROMs out
// differently, and the harness knows exactly two shapes.
type Vendor interface {
	// Name is the vendor identifier used in configuration.
	Name() string
	// Partition discovers and populates the groups under baseDir. Required
	// subdirectories that are missing surface as errors and abort the run.
	Partition(baseDir string) ([]*TestGroup, error)
}

// VendorByName resolves a configured vendor identifier.
func VendorByName(name string) (Vendor, error) {
	switch name {
	case VendorBlargg:
		return &blarggVendor{}, nil
	case VendorMooneye:
		return &mooneyeVendor{}, nil
	default:
		return nil, fmt.Errorf("unknown test-suite vendor %q", name)
	}
}

// TestSuite is an ordered collection of test groups sharing a vendor
// identity and a base directory.
type TestSuite struct {
	Name    string
	BaseDir string
	Groups  []*TestGroup

	vendor Vendor
}

// New constructs a suite; Setup must be called before the suite is run.
func New(name, baseDir string, vendor Vendor) *TestSuite {
	return &TestSuite{
		Name:    name,
		BaseDir: baseDir,
		vendor:  vendor,
	}
}

// Setup partitions the base directory into groups and discovers their tests.
func (s *TestSuite) Setup() error {
	groups, err := s.vendor.Partition(s.BaseDir)
	if err != nil {
		return fmt.Errorf("setting up suite %q: %w", s.Name, err)
	}
	s.Groups = groups
	return nil
}

// TestCount returns the number of discovered tests across all groups.
func (s *TestSuite) TestCount() int {
	n := 0
	for _, g := range s.Groups {
		n += len(g.Tests)
	}
	return n
}
