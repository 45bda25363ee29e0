package main

import (
	"fmt"

	"cloud.google.com/go/civil"
	"github.com/lexcase/interest-engine/internal/config"
	"github.com/lexcase/interest-engine/internal/domain"
	"github.com/lexcase/interest-engine/internal/output"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

// exampleRequest spans the 2019 rate reform so every part of a segmented
// calculation shows up in the report.
func exampleRequest() domain.CalculationRequest {
	return domain.CalculationRequest{
		Principal:      decimal.NewFromInt(100000),
		StartDate:      civil.Date{Year: 2019, Month: 1, Day: 1},
		EndDate:        civil.Date{Year: 2020, Month: 12, Day: 31},
		YearBasis:      domain.YearBasis360,
		Regime:         domain.SegmentedRegime{Tier: domain.Tier1Y},
		BoundaryMode:   domain.BoundaryBoth,
		IncludePenalty: true,
	}
}

func newExampleCmd(a *app) *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "example",
		Short: "Print (or save) a sample request file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req := exampleRequest()
			if file != "" {
				if err := output.SaveRequest(req, file); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", file)
				return nil
			}
			return config.NewInputParser().WriteYAML(cmd.OutOrStdout(), req)
		},
	}
	cmd.Flags().StringVarP(&file, "output", "o", "", "write the request to this file")
	return cmd
}
