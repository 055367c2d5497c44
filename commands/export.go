package commands

import (
	"time"

	"github.com/spf13/cobra"

	"quotebuilder/config"
)

// NewExportCommand builds `export <snapshot.json>`.
func NewExportCommand(cfg *config.Config) *cobra.Command {
	var (
		xlsxPath string
		pdfPath  string
		skipXLSX bool
		skipPDF  bool
	)

	cmd := &cobra.Command{
		Use:   "export <snapshot.json>",
		Short: "Export a saved quote to Excel and PDF",
		Long: "Export a saved quote file to .xlsx and .pdf. Both files are written next to the\n" +
			"input under today's default name unless --xlsx or --pdf is given.",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			targets := defaultTargets(args[0], time.Now())
			if xlsxPath != "" {
				targets.XLSX = xlsxPath
			}
			if pdfPath != "" {
				targets.PDF = pdfPath
			}
			if skipXLSX {
				targets.XLSX = ""
			}
			if skipPDF {
				targets.PDF = ""
			}
			return exportSnapshot(cfg, args[0], targets, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&xlsxPath, "xlsx", "", "path of the Excel output")
	cmd.Flags().StringVar(&pdfPath, "pdf", "", "path of the PDF output")
	cmd.Flags().BoolVar(&skipXLSX, "no-xlsx", false, "skip the Excel output")
	cmd.Flags().BoolVar(&skipPDF, "no-pdf", false, "skip the PDF output")
	cmd.MarkFlagsMutuallyExclusive("xlsx", "no-xlsx")
	cmd.MarkFlagsMutuallyExclusive("pdf", "no-pdf")

	return cmd
}
