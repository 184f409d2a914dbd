package commands

import (
	"time"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/shapegen/codegen"
	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/integrations"
	"github.com/teranos/shapegen/logger"
	"github.com/teranos/shapegen/model"
)

// GenerateCmd runs one generation pass and exits.
var GenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate Rust source from shape models",
	Long: `Load the configured shape models, compute the top-level closure, and
render Rust declarations and schema blocks into the output directory.

Settings come from the nearest shapegen.toml (or --config); flags override
individual settings for the run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := resolveSettings(cmd)
		if err != nil {
			return err
		}
		start := time.Now()
		if err := runPass(cmd, settings); err != nil {
			pterm.Error.Printf("Generation failed: %v\n", err)
			return err
		}
		pterm.Success.Printf("Generated into %s (%s)\n", settings.OutputDir, time.Since(start).Round(time.Millisecond))
		return nil
	},
}

func init() {
	addGenerationFlags(GenerateCmd)
}

func addGenerationFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "", "Path to shapegen.toml (default: nearest upward from cwd)")
	cmd.Flags().StringSliceP("model", "m", nil, "Model file to load (repeatable, merged in order)")
	cmd.Flags().StringP("out", "o", "", "Output directory for artifacts")
	cmd.Flags().String("out-file", "", "Collapse all namespaces into a single artifact file")
	cmd.Flags().StringSliceP("namespace", "n", nil, "Only generate the given namespaces")
}

// resolveSettings loads file settings and applies flag overrides.
func resolveSettings(cmd *cobra.Command) (*codegen.Settings, error) {
	configPath, _ := cmd.Flags().GetString("config")

	var settings *codegen.Settings
	var err error
	if configPath != "" {
		settings, err = codegen.LoadSettingsFromFile(configPath)
	} else {
		settings, err = codegen.LoadSettings()
	}
	if err != nil {
		return nil, err
	}

	if models, _ := cmd.Flags().GetStringSlice("model"); len(models) > 0 {
		settings.Models = models
	}
	if out, _ := cmd.Flags().GetString("out"); out != "" {
		settings.OutputDir = out
	}
	if outFile, _ := cmd.Flags().GetString("out-file"); outFile != "" {
		settings.OutputFile = outFile
	}
	if namespaces, _ := cmd.Flags().GetStringSlice("namespace"); len(namespaces) > 0 {
		settings.Namespaces = namespaces
	}
	if len(settings.Models) == 0 {
		return nil, errors.New("no model files configured; pass --model or set models in shapegen.toml")
	}
	return settings, nil
}

// runPass loads and merges the configured models and drives one full
// generation pass into the output directory.
func runPass(cmd *cobra.Command, settings *codegen.Settings) error {
	m, err := loadModels(settings.Models)
	if err != nil {
		return err
	}
	ctx := codegen.NewContext(m, settings, integrations.Default())
	director := codegen.NewDirector(ctx, codegen.DirManifest{Root: settings.OutputDir})
	return director.Run(cmd.Context())
}

func loadModels(paths []string) (*model.Model, error) {
	var merged *model.Model
	for _, path := range paths {
		m, err := model.Load(path)
		if err != nil {
			return nil, err
		}
		logger.Logger.Infow("loaded model", "path", path, "shapes", m.Len())
		if merged == nil {
			merged = m
		} else {
			merged = merged.With(m.Shapes()...)
		}
	}
	return merged, nil
}
