package codegen

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shapegen.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
models = ["model.json", "extra.yaml"]
output_dir = "out"
output_file = "smithy-generated.rs"
namespaces = ["com.example"]
`), 0o644))

	s, err := LoadSettingsFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"model.json", "extra.yaml"}, s.Models)
	assert.Equal(t, "out", s.OutputDir)
	assert.Equal(t, "smithy-generated.rs", s.OutputFile)
	assert.Equal(t, []string{"com.example"}, s.Namespaces)
}

func TestLoadSettingsFromFileDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shapegen.toml")
	require.NoError(t, os.WriteFile(path, []byte("models = [\"model.json\"]\n"), 0o644))

	s, err := LoadSettingsFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "generated", s.OutputDir)
	assert.Empty(t, s.OutputFile)
	assert.Empty(t, s.Namespaces)
}

func TestLoadSettingsFromFileMissing(t *testing.T) {
	_, err := LoadSettingsFromFile(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestSettingsSelects(t *testing.T) {
	all := &Settings{}
	assert.True(t, all.Selects("anything"))

	filtered := &Settings{Namespaces: []string{"com.first", "com.second"}}
	assert.True(t, filtered.Selects("com.first"))
	assert.False(t, filtered.Selects("com.third"))
}

func TestDirManifestWritesFiles(t *testing.T) {
	root := t.TempDir()
	m := DirManifest{Root: root}
	require.NoError(t, m.WriteFile("nested/out.rs", "pub struct S;\n"))

	data, err := os.ReadFile(filepath.Join(root, "nested", "out.rs"))
	require.NoError(t, err)
	assert.Equal(t, "pub struct S;\n", string(data))
}
