// Package commands adds offline quote tooling to the application's root
// command: exporting snapshot files, printing totals and re-exporting on
// change.
package commands

import (
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"quotebuilder/config"
	"quotebuilder/services"
)

// All returns every quote subcommand bound to cfg.
func All(cfg *config.Config) []*cobra.Command {
	return []*cobra.Command{
		NewExportCommand(cfg),
		NewTotalCommand(cfg),
		NewWatchCommand(cfg),
	}
}

// exportTargets are the files one export run writes. An empty path skips
// that format.
type exportTargets struct {
	XLSX string
	PDF  string
}

// defaultTargets places both outputs next to input under today's default
// file name.
func defaultTargets(input string, now time.Time) exportTargets {
	dir := filepath.Dir(input)
	return exportTargets{
		XLSX: filepath.Join(dir, services.DefaultFileName(now, ".xlsx")),
		PDF:  filepath.Join(dir, services.DefaultFileName(now, ".pdf")),
	}
}

// exportSnapshot loads input with the configured pricing and writes the
// requested formats. Warnings about the logo go to out.
func exportSnapshot(cfg *config.Config, input string, targets exportTargets, out io.Writer) error {
	q, err := services.LoadSnapshotFile(input, cfg.PricingEngine())
	if err != nil {
		return err
	}
	if q.Len() == 0 {
		return fmt.Errorf("%s: %w", input, services.ErrEmptyQuote)
	}

	data := services.PrepareExport(q, services.ExportOptions{Money: cfg.MoneyFormat()})
	for _, w := range data.Warnings {
		fmt.Fprintf(out, "warning: %v\n", w)
	}

	if targets.XLSX != "" {
		xlsx, err := services.GenerateExcel(data)
		if err != nil {
			return fmt.Errorf("generate excel: %w", err)
		}
		if err := services.WriteFileAtomic(targets.XLSX, xlsx); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n", targets.XLSX)
	}

	if targets.PDF != "" {
		pdf, err := services.GeneratePDF(data)
		if err != nil {
			return fmt.Errorf("generate pdf: %w", err)
		}
		if err := services.WriteFileAtomic(targets.PDF, pdf); err != nil {
			return err
		}
		fmt.Fprintf(out, "wrote %s\n", targets.PDF)
	}

	return nil
}
