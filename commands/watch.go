package commands

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"quotebuilder/config"
)

// NewWatchCommand builds `watch <snapshot.json>`, which exports once and then
// again every time the file is written or replaced, until interrupted.
func NewWatchCommand(cfg *config.Config) *cobra.Command {
	var (
		xlsxPath string
		pdfPath  string
	)

	cmd := &cobra.Command{
		Use:          "watch <snapshot.json>",
		Short:        "Re-export a saved quote whenever it changes",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			targets := func() exportTargets {
				t := defaultTargets(args[0], time.Now())
				if xlsxPath != "" {
					t.XLSX = xlsxPath
				}
				if pdfPath != "" {
					t.PDF = pdfPath
				}
				return t
			}
			return watchSnapshot(ctx, cfg, args[0], targets, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "path of the Excel output")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "path of the PDF output")

	return cmd
}

// watchSnapshot exports input, then re-exports on every write or create
// event for it until ctx is done. The parent directory is watched so editors
// that replace the file by rename are still seen. Failed exports are
// reported and watching continues.
func watchSnapshot(ctx context.Context, cfg *config.Config, input string, targets func() exportTargets, out io.Writer) error {
	input = filepath.Clean(input)

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer w.Close()

	if err := w.Add(filepath.Dir(input)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(input), err)
	}

	run := func() {
		if err := exportSnapshot(cfg, input, targets(), out); err != nil {
			fmt.Fprintf(out, "export failed: %v\n", err)
		}
	}

	run()
	fmt.Fprintf(out, "watching %s\n", input)

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != input {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			run()
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Printf("watch: %v", err)
		}
	}
}
