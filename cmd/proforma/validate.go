package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carescan/proforma/internal/config"
)

func newValidateCmd(a *app) *cobra.Command {
	var strict bool
	cmd := &cobra.Command{
		Use:   "validate WORKBOOK",
		Short: "Check a workbook and list data quality warnings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			t := scenario.Tables
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Workbook %s\n", args[0])
			fmt.Fprintf(out, "  window:          %s to %s\n",
				scenario.Params.StartDate.Format("2006-01-02"), scenario.Params.EndDate.Format("2006-01-02"))
			fmt.Fprintf(out, "  personnel:       %s\n", count(t.Personnel))
			fmt.Fprintf(out, "  equipment:       %s\n", count(t.Equipment))
			fmt.Fprintf(out, "  exams:           %s\n", count(t.Exams))
			fmt.Fprintf(out, "  revenue sources: %s\n", count(t.RevenueSources))
			fmt.Fprintf(out, "  other items:     %s\n", count(t.OtherItems))

			// a dry run surfaces the engine's cross-table warnings as well
			result, err := a.engine(scenario.Options).CalculateComprehensiveProforma(cmd.Context(), t, scenario.Params)
			if err != nil {
				return err
			}
			warnings := append(scenario.Warnings, result.Warnings...)
			if len(warnings) == 0 {
				fmt.Fprintln(out, "OK")
				return nil
			}
			fmt.Fprintf(out, "%d warning(s):\n", len(warnings))
			for _, w := range warnings {
				fmt.Fprintf(out, "  - %s\n", w)
			}
			if strict {
				return fmt.Errorf("%d warning(s) in %s", len(warnings), args[0])
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&strict, "strict", false, "exit non-zero when there are warnings")
	return cmd
}

func count[T any](rows []T) string {
	if rows == nil {
		return "absent"
	}
	return fmt.Sprintf("%d rows", len(rows))
}
