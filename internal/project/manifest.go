package project

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"

	"plcst/internal/diag"
	"plcst/internal/source"
)

// Manifest is a loaded plcst.toml.
type Manifest struct {
	Path   string
	Root   string
	Config Config
}

type Config struct {
	Project ProjectConfig  `toml:"project"`
	Targets []TargetConfig `toml:"target"`
	Parse   ParseConfig    `toml:"parse"`
	Cache   CacheConfig    `toml:"cache"`
}

type ProjectConfig struct {
	Name string `toml:"name"`
}

// TargetConfig lists glob patterns relative to the manifest directory.
type TargetConfig struct {
	Name       string   `toml:"name"`
	DataTypes  []string `toml:"data_types"`
	Globals    []string `toml:"globals"`
	POUs       []string `toml:"pous"`
	Interfaces []string `toml:"interfaces"`
}

type ParseConfig struct {
	Jobs           int      `toml:"jobs"`
	MaxDiagnostics int      `toml:"max_diagnostics"`
	Preprocessors  []string `toml:"preprocessors"`
}

type CacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

// HasProject reports whether the manifest describes a project (at least one target).
func (m *Manifest) HasProject() bool {
	return m != nil && len(m.Config.Targets) > 0
}

// ManifestError reports a plcst.toml that cannot be read or is invalid.
type ManifestError struct {
	Path string
	Err  error
}

func (e *ManifestError) Error() string { return e.Err.Error() }

func (e *ManifestError) Unwrap() error { return e.Err }

func (e *ManifestError) Diagnostic() diag.Diagnostic {
	code := diag.PrjManifestInvalid
	if errors.Is(e.Err, fs.ErrNotExist) || errors.Is(e.Err, fs.ErrPermission) {
		code = diag.IOReadFailure
	}
	d := diag.NewError(code, source.Span{}, e.Err.Error())
	d.Path = e.Path
	return d
}

// LoadManifest reads and validates a plcst.toml. Errors are *ManifestError.
func LoadManifest(path string) (*Manifest, error) {
	m, err := loadManifest(path)
	if err != nil {
		return nil, &ManifestError{Path: path, Err: err}
	}
	return m, nil
}

func loadManifest(path string) (*Manifest, error) {
	var cfg Config
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	if meta.IsDefined("target") && (!meta.IsDefined("project", "name") || strings.TrimSpace(cfg.Project.Name) == "") {
		return nil, fmt.Errorf("%s: missing [project].name", path)
	}
	seen := make(map[string]bool, len(cfg.Targets))
	for i, t := range cfg.Targets {
		name := strings.TrimSpace(t.Name)
		if name == "" {
			return nil, fmt.Errorf("%s: [[target]] #%d: missing name", path, i+1)
		}
		if seen[strings.ToUpper(name)] {
			return nil, fmt.Errorf("%s: duplicate target %q", path, name)
		}
		seen[strings.ToUpper(name)] = true
	}
	if cfg.Parse.Jobs < 0 {
		return nil, fmt.Errorf("%s: [parse].jobs must not be negative", path)
	}
	if !meta.IsDefined("cache", "enabled") {
		cfg.Cache.Enabled = true
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	return &Manifest{Path: abs, Root: filepath.Dir(abs), Config: cfg}, nil
}

// ErrNoTargets is returned when a manifest without [[target]] is read as a project.
var ErrNoTargets = errors.New("manifest declares no [[target]]")

// ManifestReader reads projects described by plcst.toml.
type ManifestReader struct{}

// ReadProject accepts the manifest path or its directory.
func (ManifestReader) ReadProject(path string) (*Project, error) {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		path = filepath.Join(path, ManifestName)
	}
	m, err := LoadManifest(path)
	if err != nil {
		return nil, err
	}
	if !m.HasProject() {
		return nil, fmt.Errorf("%s: %w", m.Path, ErrNoTargets)
	}
	proj := &Project{Path: m.Path, Name: m.Config.Project.Name}
	for _, tc := range m.Config.Targets {
		target := Target{Name: tc.Name}
		groups := []struct {
			kind     UnitKind
			patterns []string
		}{
			{KindDataType, tc.DataTypes},
			{KindGlobalVars, tc.Globals},
			{KindPOU, tc.POUs},
			{KindInterface, tc.Interfaces},
		}
		for _, g := range groups {
			files, err := m.glob(g.patterns)
			if err != nil {
				return nil, fmt.Errorf("%s: target %s: %w", m.Path, tc.Name, err)
			}
			for _, file := range files {
				target.Units = append(target.Units, m.fileUnit(g.kind, file))
			}
		}
		proj.Targets = append(proj.Targets, target)
	}
	return proj, nil
}

// SolutionProjects: a manifest is its own single project.
func (ManifestReader) SolutionProjects(path string) ([]string, error) {
	return []string{path}, nil
}

func (m *Manifest) glob(patterns []string) ([]string, error) {
	var out []string
	for _, pat := range patterns {
		matches, err := filepath.Glob(filepath.Join(m.Root, filepath.FromSlash(pat)))
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pat, err)
		}
		slices.Sort(matches)
		for _, f := range matches {
			if !slices.Contains(out, f) {
				out = append(out, f)
			}
		}
	}
	return out, nil
}

func (m *Manifest) fileUnit(kind UnitKind, file string) Unit {
	rel, err := filepath.Rel(m.Root, file)
	if err != nil {
		rel = file
	}
	return Unit{
		Kind:     kind,
		Name:     strings.TrimSuffix(filepath.Base(file), filepath.Ext(file)),
		Filename: filepath.ToSlash(rel),
		Source:   FileSource(file),
	}
}

// FileSource reads path on demand and normalises it like source.FileSet.Load.
func FileSource(path string) func() (string, error) {
	return func() (string, error) {
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", err
		}
		content, _ := source.Normalize(raw)
		return string(content), nil
	}
}
