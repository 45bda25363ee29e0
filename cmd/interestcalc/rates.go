package main

import (
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/lexcase/interest-engine/internal/rates"
	"github.com/lexcase/interest-engine/internal/ratesource"
	"github.com/spf13/cobra"
)

func newRatesCmd(a *app) *cobra.Command {
	var asOf string
	cmd := &cobra.Command{
		Use:   "rates <lpr|benchmark>",
		Short: "List a rate series, or the record in force on --as-of",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			series, err := ratesource.ParseSeries(args[0])
			if err != nil {
				return fmt.Errorf("%w: %q", err, args[0])
			}
			history, err := a.loadHistory(cmd.Context())
			if err != nil {
				return err
			}
			table := history.Table(series)
			out := cmd.OutOrStdout()

			if asOf != "" {
				date, err := civil.ParseDate(asOf)
				if err != nil {
					return fmt.Errorf("invalid --as-of: %w", err)
				}
				writeRecord(out, table.Lookup(date))
				return nil
			}
			fmt.Fprintf(out, "# %s: %d records (bundled data %s)\n", series, table.Len(), rates.FallbackVersion)
			for _, rec := range table.Records() {
				writeRecord(out, rec)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&asOf, "as-of", "", "show only the record effective on this date (YYYY-MM-DD)")
	return cmd
}

func writeRecord(w io.Writer, rec rates.Record) {
	tiers := rec.Tiers()
	parts := make([]string, 0, len(tiers))
	for _, id := range rec.TierIDs() {
		parts = append(parts, fmt.Sprintf("%s=%s", id, tiers[id].StringFixed(2)))
	}
	fmt.Fprintf(w, "%s  %s\n", rec.EffectiveDate, strings.Join(parts, " "))
}
