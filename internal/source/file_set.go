package source

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fortio.org/safecast"
)

// FileSet owns the texts of one run. It is safe for concurrent use; the
// project walker adds units from several goroutines.
type FileSet struct {
	mu      sync.RWMutex
	files   []*File
	byPath  map[string]FileID // последняя версия для пути
	baseDir string
}

func NewFileSet() *FileSet {
	return &FileSet{byPath: make(map[string]FileID)}
}

// SetBaseDir sets the directory relative paths are shown against.
func (fileSet *FileSet) SetBaseDir(dir string) {
	fileSet.mu.Lock()
	fileSet.baseDir = dir
	fileSet.mu.Unlock()
}

// BaseDir defaults to the working directory.
func (fileSet *FileSet) BaseDir() string {
	fileSet.mu.RLock()
	dir := fileSet.baseDir
	fileSet.mu.RUnlock()
	if dir == "" {
		return workingDir()
	}
	return dir
}

// Add stores already normalized content and returns a new FileID, also when
// the path was added before; Latest then points to the new version.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	if _, err := safecast.Conv[uint32](len(content)); err != nil {
		panic(fmt.Errorf("file %s too large: %w", path, err))
	}
	f := &File{
		Path:    filepath.ToSlash(filepath.Clean(path)),
		Content: content,
		LineIdx: buildLineIndex(content),
		Flags:   flags,
	}

	fileSet.mu.Lock()
	defer fileSet.mu.Unlock()
	id, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("too many files: %w", err))
	}
	f.ID = FileID(id)
	fileSet.files = append(fileSet.files, f)
	fileSet.byPath[f.Path] = f.ID
	return f.ID
}

// Load reads path and adds its normalized content.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	raw, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	content, flags := Normalize(raw)
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds in-memory text (a container unit or a test input).
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns nil for an unknown id.
func (fileSet *FileSet) Get(id FileID) *File {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	if int(id) >= len(fileSet.files) {
		return nil
	}
	return fileSet.files[id]
}

func (fileSet *FileSet) Len() int {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	return len(fileSet.files)
}

// Latest returns the newest FileID added for path.
func (fileSet *FileSet) Latest(path string) (FileID, bool) {
	fileSet.mu.RLock()
	defer fileSet.mu.RUnlock()
	id, ok := fileSet.byPath[filepath.ToSlash(filepath.Clean(path))]
	return id, ok
}

// Resolve converts a span into line and column positions.
func (fileSet *FileSet) Resolve(span Span) (start, end LineCol) {
	f := fileSet.Get(span.File)
	return toLineCol(f.LineIdx, span.Start), toLineCol(f.LineIdx, span.End)
}

func relativeTo(path, baseDir string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	absBase, err := filepath.Abs(baseDir)
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

func workingDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return ""
}
