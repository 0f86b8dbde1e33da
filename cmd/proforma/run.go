package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/carescan/proforma/internal/config"
	"github.com/carescan/proforma/internal/domain"
	"github.com/carescan/proforma/internal/logging"
	"github.com/carescan/proforma/internal/output"
	"github.com/carescan/proforma/internal/store"
	"github.com/carescan/proforma/pkg/dateutil"
)

func newRunCmd(a *app) *cobra.Command {
	var (
		outDir  string
		save    bool
		start   string
		end     string
		sources []string
	)
	cmd := &cobra.Command{
		Use:   "run WORKBOOK",
		Short: "Compute the comprehensive proforma for a workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			began := time.Now()
			scenario, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			for _, w := range scenario.Warnings {
				a.log.WithComponent(logging.ComponentConfig).Warn(w.String(), logging.FieldFile, args[0])
			}
			if start != "" {
				if scenario.Params.StartDate, err = dateutil.ParseDate(start); err != nil {
					return fmt.Errorf("--start: %w", err)
				}
			}
			if end != "" {
				if scenario.Params.EndDate, err = dateutil.ParseDate(end); err != nil {
					return fmt.Errorf("--end: %w", err)
				}
			}
			if len(sources) > 0 {
				scenario.Params.SelectedSources = sources
			}

			result, err := a.engine(scenario.Options).CalculateComprehensiveProforma(cmd.Context(), scenario.Tables, scenario.Params)
			if err != nil {
				return err
			}
			result.Warnings = append(scenario.Warnings, result.Warnings...)

			if save {
				s, err := store.Open(a.dbPath)
				if err != nil {
					return err
				}
				defer s.Close()
				if err := s.SaveRun(cmd.Context(), args[0], result); err != nil {
					return err
				}
				a.log.WithComponent(logging.ComponentStore).Info("run archived",
					logging.FieldRunID, result.Metadata.RunID, logging.FieldFile, a.dbPath)
			}

			if outDir != "" {
				files, err := output.GenerateReport(result, a.format, outDir)
				if err != nil {
					return err
				}
				for _, f := range files {
					fmt.Fprintln(cmd.OutOrStdout(), f)
				}
			} else {
				f, err := output.Lookup(a.format)
				if err != nil {
					return err
				}
				if err := writeReport(cmd.OutOrStdout(), f, result); err != nil {
					return err
				}
			}

			a.log.Info("proforma complete",
				logging.FieldRunID, result.Metadata.RunID,
				logging.FieldYears, len(result.AnnualSummary),
				logging.FieldWarnings, len(result.Warnings),
				logging.FieldDuration, time.Since(began).Milliseconds())
			return nil
		},
	}
	cmd.Flags().StringVarP(&outDir, "out", "o", "", "write report files to this directory instead of stdout")
	cmd.Flags().BoolVar(&save, "save", false, "archive the run in the database")
	cmd.Flags().StringVar(&start, "start", "", "override the projection start date")
	cmd.Flags().StringVar(&end, "end", "", "override the projection end date")
	cmd.Flags().StringSliceVar(&sources, "source", nil, "limit the run to these revenue sources (repeatable)")
	return cmd
}

// writeReport formats result with f and writes it to w.
func writeReport(w io.Writer, f output.Formatter, result *domain.ProformaResult) error {
	data, err := f.Format(result)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write %s report: %w", f.Name(), err)
	}
	return nil
}
