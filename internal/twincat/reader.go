package twincat

import (
	"bufio"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"plcst/internal/project"
)

// Reader implements project.Reader for TwinCAT containers.
type Reader struct{}

var _ project.Reader = Reader{}

// Project("{GUID}") = "Name", "rel\path.tsproj", "{GUID}"
var slnProject = regexp.MustCompile(`^Project\("\{[^}]*\}"\)\s*=\s*"[^"]*",\s*"([^"]+)"`)

// SolutionProjects lists the .tsproj and .plcproj files of a .sln, in file order.
func (Reader) SolutionProjects(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		m := slnProject.FindStringSubmatch(strings.TrimSpace(sc.Text()))
		if m == nil {
			continue
		}
		switch strings.ToLower(filepath.Ext(m[1])) {
		case ".tsproj", ".plcproj":
			out = append(out, resolve(filepath.Dir(path), m[1]))
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return out, nil
}

// ReadProject reads a .tsproj (one target per PLC project) or a single .plcproj.
func (Reader) ReadProject(path string) (*project.Project, error) {
	proj := &project.Project{Path: path, Name: stem(path)}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".plcproj":
		t, err := readPlcProject(path)
		if err != nil {
			return nil, err
		}
		proj.Targets = append(proj.Targets, t)
	case ".tsproj":
		plcs, err := plcProjects(path)
		if err != nil {
			return nil, err
		}
		for _, plc := range plcs {
			t, err := readPlcProject(plc)
			if err != nil {
				return nil, err
			}
			proj.Targets = append(proj.Targets, t)
		}
	default:
		return nil, fmt.Errorf("%s: not a TwinCAT project (.tsproj or .plcproj)", path)
	}
	return proj, nil
}

// plcProjects finds the PLC projects of a .tsproj: inline <Project PrjFilePath=...>
// elements, or <Project File="X.xti"> references into _Config/PLC.
func plcProjects(tsproj string) ([]string, error) {
	dir := filepath.Dir(tsproj)
	var out []string
	var xtis []string
	err := scanElements(tsproj, func(se xml.StartElement) {
		if se.Name.Local != "Project" {
			return
		}
		if p := attr(se, "PrjFilePath"); p != "" {
			out = append(out, resolve(dir, p))
		} else if f := attr(se, "File"); strings.EqualFold(filepath.Ext(f), ".xti") {
			xtis = append(xtis, filepath.Join(dir, "_Config", "PLC", f))
		}
	})
	if err != nil {
		return nil, err
	}
	for _, xti := range xtis {
		err := scanElements(xti, func(se xml.StartElement) {
			if p := attr(se, "PrjFilePath"); se.Name.Local == "Project" && p != "" {
				out = append(out, resolve(filepath.Dir(xti), p))
			}
		})
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// readPlcProject lists the <Compile Include=...> items of a .plcproj.
func readPlcProject(path string) (project.Target, error) {
	target := project.Target{Name: stem(path)}
	dir := filepath.Dir(path)
	inName, named := false, false
	f, err := os.Open(path)
	if err != nil {
		return target, err
	}
	defer f.Close()

	dec := newDecoder(f)
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return target, fmt.Errorf("%s: %w", path, err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			inName = t.Name.Local == "Name"
			if t.Name.Local == "Compile" {
				if inc := attr(t, "Include"); inc != "" {
					target.Units = append(target.Units, fileUnit(dir, inc))
				}
			}
		case xml.CharData:
			// первый <PropertyGroup><Name>PLC1</Name>
			if name := strings.TrimSpace(string(t)); inName && !named && name != "" {
				target.Name, named = name, true
			}
		case xml.EndElement:
			inName = false
		}
	}
	return target, nil
}

var unitKinds = map[string]project.UnitKind{
	".tcpou": project.KindPOU,
	".tcdut": project.KindDataType,
	".tcgvl": project.KindGlobalVars,
	".tcio":  project.KindInterface,
}

// fileUnit describes one compile item. Items that are not ST unit files
// (task objects, visualisations) have no Source.
func fileUnit(dir, include string) project.Unit {
	path := resolve(dir, include)
	u := project.Unit{
		Kind:     project.KindPlain,
		Name:     stem(path),
		Filename: filepath.ToSlash(path),
	}
	kind, ok := UnitKindOf(path)
	if !ok {
		return u
	}
	u.Kind = kind
	u.Source = func() (string, error) {
		_, _, text, err := ReadUnitFile(path)
		return text, err
	}
	return u
}

// ReadUnitFile decodes one .TcPOU/.TcDUT/.TcGVL/.TcIO file into its kind,
// unit name and assembled source text.
func ReadUnitFile(path string) (project.UnitKind, string, string, error) {
	var obj tcPlcObject
	if err := decodeFile(path, &obj); err != nil {
		return 0, "", "", err
	}
	kind, name, text, err := assemble(&obj)
	if err != nil {
		return 0, "", "", fmt.Errorf("%s: %w", path, err)
	}
	return kind, name, text, nil
}

// IsUnitFile reports whether path has a TwinCAT unit file extension.
func IsUnitFile(path string) bool {
	_, ok := UnitKindOf(path)
	return ok
}

// UnitKindOf maps a unit file extension to its kind.
func UnitKindOf(path string) (project.UnitKind, bool) {
	k, ok := unitKinds[strings.ToLower(filepath.Ext(path))]
	return k, ok
}

// resolve joins a Windows-style relative path from a project file onto dir.
func resolve(dir, rel string) string {
	return filepath.Join(dir, filepath.FromSlash(strings.ReplaceAll(rel, `\`, "/")))
}

func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
