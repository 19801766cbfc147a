// Package registry loads the suite manifest: which vendor suites exist,
// where their ROM trees live and which tests are skipped for the current
// emulator state.
package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/yaml.v3"

	"github.com/jomag/romtest/runner"
	"github.com/jomag/romtest/suite"
)

// SuiteConfig declares one vendor suite.
type SuiteConfig struct {
	// Name is the selector used on the command line, e.g. "blargg".
	Name string `yaml:"name"`
	// Title is the display name used in reports; derived from the vendor
	// when omitted.
	Title string `yaml:"title,omitempty"`
	// Vendor selects the discovery variant ("blargg" or "mooneye").
	Vendor string `yaml:"vendor"`
	// Dir is the suite's base directory, relative to the configured test
	// directory unless absolute.
	Dir string `yaml:"dir"`
	// Skip lists test names excluded from execution.
	Skip []string `yaml:"skip,omitempty"`
}

// Manifest is the complete suite configuration.
type Manifest struct {
	Suites []SuiteConfig `yaml:"suites"`
}

// Config contains registry configuration.
type Config struct {
	Log log.Logger
	// ManifestFile is the YAML manifest path; when empty the built-in
	// default manifest is used.
	ManifestFile string
	// TestDir anchors relative suite directories.
	TestDir string
}

// Registry resolves suite selectors into discovered, runnable suites.
type Registry struct {
	config Config
	suites []SuiteConfig
}

// NewRegistry creates a new registry instance.
func NewRegistry(cfg Config) (*Registry, error) {
	if cfg.Log == nil {
		cfg.Log = log.New()
	}

	manifest := DefaultManifest()
	if cfg.ManifestFile != "" {
		var err error
		manifest, err = LoadManifest(cfg.ManifestFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load manifest: %w", err)
		}
	}
	if err := validateManifest(manifest); err != nil {
		return nil, err
	}

	cfg.Log.Debug("Registry loaded", "suites", len(manifest.Suites))
	return &Registry{config: cfg, suites: manifest.Suites}, nil
}

// SuiteNames returns the configured selector names in declaration order.
func (r *Registry) SuiteNames() []string {
	names := make([]string, 0, len(r.suites))
	for _, cfg := range r.suites {
		names = append(names, cfg.Name)
	}
	return names
}

// Suites builds and discovers the suites matching the selectors. An empty
// selector list, or the special selector "all", selects every configured
// suite. The returned skip sets are keyed by suite display name, matching
// the suites the runner receives.
func (r *Registry) Suites(selectors []string) ([]*suite.TestSuite, map[string]runner.SkipSet, error) {
	selected := make(map[string]bool, len(selectors))
	all := len(selectors) == 0
	for _, sel := range selectors {
		if sel == "all" {
			all = true
			continue
		}
		selected[sel] = true
	}

	var suites []*suite.TestSuite
	skips := make(map[string]runner.SkipSet)
	for _, cfg := range r.suites {
		if !all && !selected[cfg.Name] {
			continue
		}
		delete(selected, cfg.Name)

		vendor, err := suite.VendorByName(cfg.Vendor)
		if err != nil {
			return nil, nil, err
		}

		dir := cfg.Dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(r.config.TestDir, dir)
		}

		s := suite.New(cfg.title(), dir, vendor)
		if err := s.Setup(); err != nil {
			return nil, nil, err
		}
		r.config.Log.Debug("Discovered suite", "suite", s.Name, "groups", len(s.Groups), "tests", s.TestCount())

		suites = append(suites, s)
		skips[s.Name] = runner.NewSkipSet(cfg.Skip...)
	}

	for sel := range selected {
		return nil, nil, fmt.Errorf("unknown suite selector %q", sel)
	}
	if len(suites) == 0 {
		return nil, nil, fmt.Errorf("no suites selected")
	}
	return suites, skips, nil
}

// title returns the display name, deriving one from the vendor when the
// manifest does not set it.
func (c SuiteConfig) title() string {
	if c.Title != "" {
		return c.Title
	}
	switch c.Vendor {
	case suite.VendorBlargg:
		return "Blargg Test Suite"
	case suite.VendorMooneye:
		return "Mooneye Test Suite"
	default:
		return c.Name
	}
}

// LoadManifest loads a suite manifest from a YAML file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest file: %w", err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("parsing manifest file: %w", err)
	}
	return &manifest, nil
}

func validateManifest(m *Manifest) error {
	if len(m.Suites) == 0 {
		return fmt.Errorf("manifest declares no suites")
	}
	seen := make(map[string]bool)
	for _, cfg := range m.Suites {
		if cfg.Name == "" {
			return fmt.Errorf("manifest suite without a name")
		}
		if seen[cfg.Name] {
			return fmt.Errorf("duplicate suite name %q", cfg.Name)
		}
		seen[cfg.Name] = true
		if cfg.Dir == "" {
			return fmt.Errorf("suite %q has no directory", cfg.Name)
		}
		if _, err := suite.VendorByName(cfg.Vendor); err != nil {
			return fmt.Errorf("suite %q: %w", cfg.Name, err)
		}
	}
	return nil
}

// DefaultManifest mirrors the emulator repository's conventional layout:
// Blargg's ROMs under blargg/ and the Mooneye suite under
// mooneye-test-suite/, with the tests known to fail on the current PPU
// rewrite skipped.
func DefaultManifest() *Manifest {
	return &Manifest{
		Suites: []SuiteConfig{
			{
				Name:   "mooneye",
				Vendor: suite.VendorMooneye,
				Dir:    "mooneye-test-suite",
				Skip: []string{
					"intr_1_2_timing-GS",
					// The following broke when rewriting the PPU, most
					// likely in the interrupt handling.
					"oam_dma_start",
					"hblank_ly_scx_timing-GS",
					"intr_2_0_timing",
					"intr_2_mode0_timing",
					"intr_2_mode0_timing_sprites",
					"intr_2_mode3_timing",
					"intr_2_oam_ok_timing",
					"vblank_stat_intr-GS",
				},
			},
			{
				Name:   "blargg",
				Vendor: suite.VendorBlargg,
				Dir:    "blargg",
				// CGB only
				Skip: []string{"interrupt_time"},
			},
		},
	}
}
