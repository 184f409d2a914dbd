package codegen

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/logger"
)

// FileManifest receives finished artifact text. Implementations must be
// safe for concurrent WriteFile calls.
type FileManifest interface {
	WriteFile(name, text string) error
}

// DirManifest writes artifacts under a root directory.
type DirManifest struct {
	Root string
}

func (m DirManifest) WriteFile(name, text string) error {
	path := filepath.Join(m.Root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return errors.Wrapf(err, "creating output directory for %s", name)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return errors.Wrapf(err, "writing artifact %s", name)
	}
	logger.Logger.Debugw("wrote artifact", "path", path, "bytes", len(text))
	return nil
}

// MemManifest collects artifacts in memory, for tests and dry runs.
type MemManifest struct {
	mu    sync.Mutex
	files map[string]string
}

func (m *MemManifest) WriteFile(name, text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.files == nil {
		m.files = map[string]string{}
	}
	m.files[name] = text
	return nil
}

// File returns the text of a collected artifact.
func (m *MemManifest) File(name string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	text, ok := m.files[name]
	return text, ok
}

// Names returns the collected artifact names, sorted.
func (m *MemManifest) Names() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	names := make([]string, 0, len(m.files))
	for name := range m.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
