package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"plcst/internal/diag"
	"plcst/internal/project"
	"plcst/internal/source"
	"plcst/internal/twincat"
)

// UnknownContainerError is returned by ReaderFor for paths no reader accepts.
type UnknownContainerError struct {
	Path string
}

func (e *UnknownContainerError) Error() string {
	return fmt.Sprintf("%s: unknown container (want .sln, .tsproj, .plcproj, %s or a directory)", e.Path, project.ManifestName)
}

func (e *UnknownContainerError) Diagnostic() diag.Diagnostic {
	return diag.NewError(diag.PrjUnknownContainer, source.Span{}, e.Error())
}

// ReaderFor picks the container reader for path by extension. A directory
// with a plcst.toml that declares targets is read through the manifest,
// any other directory as a tree of unit files.
func ReaderFor(path string) (project.Reader, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		m, err := project.LoadManifest(filepath.Join(path, project.ManifestName))
		switch {
		case err == nil && m.HasProject():
			return project.ManifestReader{}, nil
		case err != nil && !errors.Is(err, fs.ErrNotExist):
			return nil, err
		}
		return DirReader{}, nil
	}
	switch ext := strings.ToLower(filepath.Ext(path)); {
	case ext == ".sln" || ext == ".tsproj" || ext == ".plcproj":
		return twincat.Reader{}, nil
	case strings.EqualFold(filepath.Base(path), project.ManifestName):
		return project.ManifestReader{}, nil
	}
	return nil, &UnknownContainerError{Path: path}
}

// DirReader treats a directory as one target made of every *.st and
// TwinCAT unit file below it.
type DirReader struct{}

var _ project.Reader = DirReader{}

func (DirReader) SolutionProjects(path string) ([]string, error) {
	return []string{path}, nil
}

func (DirReader) ReadProject(dir string) (*project.Project, error) {
	files, err := listUnitFiles(dir)
	if err != nil {
		return nil, err
	}
	name := filepath.Base(filepath.Clean(dir))
	target := project.Target{Name: name}
	for _, path := range files {
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			rel = path
		}
		u := project.Unit{
			Kind:     project.KindPlain,
			Name:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
			Filename: filepath.ToSlash(rel),
			Source:   project.FileSource(path),
		}
		if kind, ok := twincat.UnitKindOf(path); ok {
			u.Kind = kind
			u.Source = func() (string, error) {
				_, _, text, err := twincat.ReadUnitFile(path)
				return text, err
			}
		}
		target.Units = append(target.Units, u)
	}
	return &project.Project{Path: dir, Name: name, Targets: []project.Target{target}}, nil
}

// listUnitFiles возвращает отсортированный список файлов юнитов в директории
func listUnitFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			// служебные каталоги TwinCAT и VCS
			if path != dir && (strings.HasPrefix(d.Name(), ".") || strings.HasPrefix(d.Name(), "_")) {
				return filepath.SkipDir
			}
			return nil
		}
		if IsSingleFile(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	// Сортируем для детерминированного порядка
	sort.Strings(files)
	return files, nil
}
