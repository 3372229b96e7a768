package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/finance-tracker/ledger/internal/domain/valuation"
)

func projectCmd() *cobra.Command {
	var (
		params valuation.Params
		months int
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "project",
		Short: "Print the month-by-month value of an investment",
		Long: `Print the value of a fixed-income position for every month from 0 to --months,
using the same formula as the API: entrance compounded at --rate plus an
annuity of --add contributed every month.`,
		Example: "  ledgerctl project --entrance 1000 --rate 0.01 --add 100 --months 12",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			points, err := valuation.Projection(params, months)
			if err != nil {
				return err
			}
			if asJSON {
				return json.NewEncoder(cmd.OutOrStdout()).Encode(points)
			}
			return writeProjection(cmd.OutOrStdout(), points)
		},
	}

	cmd.Flags().Float64Var(&params.Entrance, "entrance", 0, "initial principal")
	cmd.Flags().Float64Var(&params.Rate, "rate", 0, "monthly rate as a fraction (0.01 = 1%)")
	cmd.Flags().Float64Var(&params.Addition, "add", 0, "amount contributed every month")
	cmd.Flags().IntVar(&months, "months", 12, "last month of the series")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the series as JSON")
	_ = cmd.MarkFlagRequired("rate")

	return cmd
}

func writeProjection(w io.Writer, points []valuation.Point) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "MONTH\tVALUE\t")
	for _, p := range points {
		fmt.Fprintf(tw, "%d\t%.2f\t\n", p.Month, p.Value)
	}
	return tw.Flush()
}
