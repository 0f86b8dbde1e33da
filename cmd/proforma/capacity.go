package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carescan/proforma/internal/calculation"
	"github.com/carescan/proforma/internal/config"
	"github.com/carescan/proforma/internal/domain"
	"github.com/carescan/proforma/internal/output"
	"github.com/carescan/proforma/pkg/dateutil"
)

func newCapacityCmd(a *app) *cobra.Command {
	var (
		source string
		on     string
		asCSV  bool
	)
	cmd := &cobra.Command{
		Use:   "capacity WORKBOOK",
		Short: "Show exams per day for one revenue source on one date",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			scenario, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			date := scenario.Params.StartDate
			if on != "" {
				if date, err = dateutil.ParseDate(on); err != nil {
					return fmt.Errorf("--date: %w", err)
				}
			}

			var contract *domain.RevenueSourceRecord
			for i, r := range scenario.Tables.RevenueSources {
				if r.Title == source || (source == "" && i == 0) {
					contract = &scenario.Tables.RevenueSources[i]
					break
				}
			}
			if contract == nil {
				return fmt.Errorf("revenue source %q not found", source)
			}

			rows, warnings := a.engine(scenario.Options).ExamsPerDay(calculation.CapacityInput{
				Date:            date,
				ProjectionStart: scenario.Params.StartDate,
				Contract:        *contract,
				Exams:           scenario.Tables.Exams,
				Personnel:       scenario.Tables.Personnel,
				Equipment:       scenario.Tables.Equipment,
			})
			data, err := output.FormatCapacity(rows, asCSV)
			if err != nil {
				return err
			}
			cmd.OutOrStdout().Write(data)

			if !asCSV {
				hours := calculation.StaffHoursAvailable(scenario.Tables.Personnel, date)
				fmt.Fprintln(cmd.OutOrStdout())
				fmt.Fprintln(cmd.OutOrStdout(), "Staff hours available:")
				for _, t := range calculation.StaffTypes(hours) {
					fmt.Fprintf(cmd.OutOrStdout(), "  %-20s %s\n", t, hours[t].StringFixed(2))
				}
				for _, w := range warnings {
					fmt.Fprintf(cmd.OutOrStdout(), "warning: %s\n", w)
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&source, "source", "", "revenue source title (default: first in workbook)")
	cmd.Flags().StringVar(&on, "date", "", "day to size (default: projection start)")
	cmd.Flags().BoolVar(&asCSV, "csv", false, "print CSV instead of a table")
	return cmd
}
