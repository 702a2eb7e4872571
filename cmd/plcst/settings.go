package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"plcst/internal/cst"
	"plcst/internal/driver"
	"plcst/internal/project"
)

// engine is built once per process and shared by every command.
var engine = sync.OnceValues(func() (*cst.Engine, error) {
	return cst.NewEngine(cst.DefaultGrammar())
})

// settings merges plcst.toml with the persistent flags; flags win when set.
type settings struct {
	manifest       *project.Manifest
	jobs           int
	maxDiagnostics int
	preprocessors  []driver.Preprocessor
	cache          bool
	cacheDir       string
	colorStderr    bool
	colorStdout    bool
	verbose        int
	debug          bool
	quiet          bool
	timings        bool
}

func loadSettings(cmd *cobra.Command) (*settings, error) {
	pf := cmd.Root().PersistentFlags()
	s := &settings{}
	var err error

	configPath, err := pf.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	if configPath != "" {
		if s.manifest, err = project.LoadManifest(configPath); err != nil {
			return nil, err
		}
	} else if s.manifest, _, err = project.LoadNearest("."); err != nil {
		return nil, err
	}

	if s.jobs, err = pf.GetInt("jobs"); err != nil {
		return nil, fmt.Errorf("failed to get jobs flag: %w", err)
	}
	if s.maxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if s.cache, err = pf.GetBool("cache"); err != nil {
		return nil, fmt.Errorf("failed to get cache flag: %w", err)
	}
	names, err := pf.GetStringSlice("preprocess")
	if err != nil {
		return nil, fmt.Errorf("failed to get preprocess flag: %w", err)
	}

	if m := s.manifest; m != nil {
		if !pf.Changed("jobs") && m.Config.Parse.Jobs > 0 {
			s.jobs = m.Config.Parse.Jobs
		}
		if !pf.Changed("max-diagnostics") && m.Config.Parse.MaxDiagnostics > 0 {
			s.maxDiagnostics = m.Config.Parse.MaxDiagnostics
		}
		if !pf.Changed("preprocess") {
			names = m.Config.Parse.Preprocessors
		}
		if !pf.Changed("cache") {
			s.cache = m.Config.Cache.Enabled
		}
		if dir := m.Config.Cache.Dir; dir != "" {
			// относительный путь считается от каталога манифеста
			if !filepath.IsAbs(dir) {
				dir = filepath.Join(m.Root, dir)
			}
			s.cacheDir = dir
		}
	}
	if s.preprocessors, err = driver.LookupPreprocessors(names); err != nil {
		return nil, fmt.Errorf("%w (known: %s)", err, strings.Join(driver.PreprocessorNames(), ", "))
	}

	colorFlag, err := pf.GetString("color")
	if err != nil {
		return nil, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch colorFlag {
	case "on":
		s.colorStderr, s.colorStdout = true, true
	case "off":
		// ничего
	case "auto":
		s.colorStderr, s.colorStdout = isTerminal(os.Stderr), isTerminal(os.Stdout)
	default:
		return nil, fmt.Errorf("invalid --color value %q (expected auto|on|off)", colorFlag)
	}
	color.NoColor = !s.colorStdout

	if s.verbose, err = pf.GetCount("verbose"); err != nil {
		return nil, fmt.Errorf("failed to get verbose flag: %w", err)
	}
	if s.debug, err = pf.GetBool("debug"); err != nil {
		return nil, fmt.Errorf("failed to get debug flag: %w", err)
	}
	if s.quiet, err = pf.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if s.timings, err = pf.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}
	return s, nil
}

// openCache returns nil when the cache is disabled.
func (s *settings) openCache() (*driver.DiskCache, error) {
	if !s.cache {
		return nil, nil
	}
	return driver.OpenDiskCache("plcst", s.cacheDir)
}
