package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/carescan/proforma/internal/config"
)

func newExampleCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "example [FILE]",
		Short: "Write an example workbook",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			data, err := parser.MarshalWorkbook(parser.CreateExampleWorkbook())
			if err != nil {
				return err
			}
			if len(args) == 0 {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(args[0], data, 0644); err != nil {
				return fmt.Errorf("write example workbook: %w", err)
			}
			a.log.Info("example workbook written", "file", args[0])
			return nil
		},
	}
}
