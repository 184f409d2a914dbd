package codegen

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/teranos/shapegen/errors"
)

// Settings drive a generation run. Loaded from shapegen.toml with
// SHAPEGEN_* environment overrides; zero values fall back to defaults.
type Settings struct {
	// Models lists the model files to load and merge, in order.
	Models []string `mapstructure:"models"`

	// OutputDir receives the rendered artifacts.
	OutputDir string `mapstructure:"output_dir"`

	// OutputFile, when set, collapses every namespace into a single
	// artifact with this name. Empty means one file per namespace.
	OutputFile string `mapstructure:"output_file"`

	// Namespaces filters generation to the listed namespaces. Empty
	// means every non-prelude namespace in the model.
	Namespaces []string `mapstructure:"namespaces"`
}

// Selects reports whether the namespace survives the settings filter.
func (s *Settings) Selects(namespace string) bool {
	if len(s.Namespaces) == 0 {
		return true
	}
	for _, ns := range s.Namespaces {
		if ns == namespace {
			return true
		}
	}
	return false
}

// SetDefaults registers the default value for every settings key.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("models", []string{})
	v.SetDefault("output_dir", "generated")
	v.SetDefault("output_file", "")
	v.SetDefault("namespaces", []string{})
}

// LoadSettings reads settings from the nearest shapegen.toml, walking up
// from the working directory, with SHAPEGEN_* environment overrides. A
// missing config file is not an error; defaults apply.
func LoadSettings() (*Settings, error) {
	v := viper.New()
	v.SetConfigType("toml")
	v.SetEnvPrefix("SHAPEGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if path := findProjectConfig(); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "reading config %s", path)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.Wrap(err, "unmarshaling settings")
	}
	return &s, nil
}

// LoadSettingsFromFile reads settings from a specific config file.
func LoadSettingsFromFile(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("toml")
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "reading config %s", path)
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, errors.Wrapf(err, "unmarshaling settings from %s", path)
	}
	return &s, nil
}

// findProjectConfig walks up the directory tree looking for shapegen.toml.
func findProjectConfig() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	for {
		path := filepath.Join(dir, "shapegen.toml")
		if _, err := os.Stat(path); err == nil {
			return path
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
