package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/carescan/proforma/internal/output"
	"github.com/carescan/proforma/internal/store"
)

func newHistoryCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Browse archived runs",
	}

	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List archived runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(a.dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			runs, err := s.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No archived runs.")
				return nil
			}
			fmt.Fprintf(out, "%-36s  %-20s  %-23s  %16s  %9s  %s\n", "RUN", "CREATED", "WINDOW", "NET INCOME", "BREAKEVEN", "SOURCE")
			for _, r := range runs {
				breakeven := "-"
				if r.BreakevenYear != nil {
					breakeven = fmt.Sprint(*r.BreakevenYear)
				}
				fmt.Fprintf(out, "%-36s  %-20s  %s..%s  %16s  %9s  %s\n",
					r.ID,
					r.CreatedAt.Format("2006-01-02 15:04:05"),
					r.StartDate.Format("2006-01-02"), r.EndDate.Format("2006-01-02"),
					output.FormatCurrency(r.TotalNetIncome),
					breakeven,
					r.Source)
			}
			return nil
		},
	}
	list.Flags().IntVarP(&limit, "limit", "n", 20, "maximum runs to show (0 for all)")

	show := &cobra.Command{
		Use:   "show RUN_ID",
		Short: "Print an archived run in the selected format",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(a.dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			result, err := s.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			f, err := output.Lookup(a.format)
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

	del := &cobra.Command{
		Use:   "delete RUN_ID",
		Short: "Remove an archived run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(a.dbPath)
			if err != nil {
				return err
			}
			defer s.Close()
			if err := s.DeleteRun(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, show, del)
	return cmd
}
