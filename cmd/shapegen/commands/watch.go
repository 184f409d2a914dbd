package commands

import (
	"os/signal"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/teranos/shapegen/errors"
	"github.com/teranos/shapegen/logger"
)

// debouncePeriod coalesces rapid editor write bursts into one pass.
const debouncePeriod = 500 * time.Millisecond

// WatchCmd regenerates whenever a model file changes.
var WatchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Regenerate on model file change",
	Long: `Run one generation pass, then watch the configured model files and
regenerate whenever one changes. Rapid write bursts are debounced.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := resolveSettings(cmd)
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		cmd.SetContext(ctx)

		if err := runPass(cmd, settings); err != nil {
			// Keep watching: a broken model is the normal state mid-edit
			pterm.Error.Printf("Generation failed: %v\n", err)
		} else {
			pterm.Success.Printf("Generated into %s\n", settings.OutputDir)
		}

		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return errors.Wrap(err, "creating model watcher")
		}
		defer watcher.Close()
		for _, path := range settings.Models {
			if err := watcher.Add(path); err != nil {
				return errors.Wrapf(err, "watching model file %s", path)
			}
		}
		pterm.Info.Printf("Watching %d model file(s), Ctrl+C to stop\n", len(settings.Models))

		var debounce *time.Timer
		pass := make(chan struct{}, 1)
		for {
			select {
			case <-ctx.Done():
				pterm.Info.Println("\nStopping watch")
				return nil

			case event, ok := <-watcher.Events:
				if !ok {
					return nil
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
					continue
				}
				logger.Logger.Debugw("model change detected", "file", event.Name, "op", event.Op.String())
				if debounce != nil {
					debounce.Stop()
				}
				debounce = time.AfterFunc(debouncePeriod, func() {
					select {
					case pass <- struct{}{}:
					default:
					}
				})

			case <-pass:
				if err := runPass(cmd, settings); err != nil {
					pterm.Error.Printf("Generation failed: %v\n", err)
					continue
				}
				pterm.Success.Printf("Regenerated into %s\n", settings.OutputDir)

			case err, ok := <-watcher.Errors:
				if !ok {
					return nil
				}
				logger.Logger.Warnw("watcher error", "error", err)
			}
		}
	},
}

func init() {
	addGenerationFlags(WatchCmd)
}
