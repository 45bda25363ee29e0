package main

import (
	"fmt"

	"github.com/lexcase/interest-engine/internal/config"
	"github.com/lexcase/interest-engine/internal/output"
	"github.com/spf13/cobra"
)

func newCalculateCmd(a *app) *cobra.Command {
	var (
		format    string
		outputDir string
	)
	cmd := &cobra.Command{
		Use:   "calculate <request.yaml|request.json>",
		Short: "Calculate interest for a request file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			engine, err := a.newEngine(cmd.Context())
			if err != nil {
				return err
			}
			result, err := engine.Calculate(*req)
			if err != nil {
				return err
			}

			if outputDir != "" {
				files, err := output.GenerateReport(result, format, outputDir)
				if err != nil {
					return err
				}
				for _, f := range files {
					fmt.Fprintln(cmd.OutOrStdout(), f)
				}
				return nil
			}
			f, err := output.LookupFormatter(format)
			if err != nil {
				return err
			}
			data, err := f.Format(result)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "console", "report format, or \"all\" with --output")
	cmd.Flags().StringVarP(&outputDir, "output", "o", "", "write timestamped report files to this directory")
	return cmd
}
