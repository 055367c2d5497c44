package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"quotebuilder/config"
	"quotebuilder/services"
)

// NewTotalCommand builds `total <snapshot.json>`, which prints every product
// with its derived prices followed by the quote total.
func NewTotalCommand(cfg *config.Config) *cobra.Command {
	return &cobra.Command{
		Use:          "total <snapshot.json>",
		Short:        "Print the products and total of a saved quote",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := services.LoadSnapshotFile(args[0], cfg.PricingEngine())
			if err != nil {
				return err
			}

			money := cfg.MoneyFormat()
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', tabwriter.AlignRight)
			fmt.Fprintln(w, "#\tProduct\tNet price\tExtra %\tWith tax\tFinal\t")
			for i, item := range q.Items() {
				fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\t%s\t\n",
					i+1,
					item.Name,
					money.Format(item.NetPrice),
					services.FormatPercent(item.ExtraPercent),
					money.Format(item.TaxedPrice),
					money.Format(item.FinalPrice),
				)
			}
			if err := w.Flush(); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "TOTAL: %s\n", money.Format(q.Total()))
			return nil
		},
	}
}
