package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/carescan/proforma/internal/calculation"
	"github.com/carescan/proforma/internal/logging"
)

const (
	envDBPath   = "PROFORMA_DB_PATH"
	envLogLevel = "PROFORMA_LOG_LEVEL"
	envFormat   = "PROFORMA_FORMAT"
)

// app carries settings shared by every subcommand.
type app struct {
	dbPath    string
	logLevel  string
	logFormat string
	format    string
	log       *logging.Logger
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func newRootCmd() *cobra.Command {
	_ = godotenv.Load()
	a := &app{}

	root := &cobra.Command{
		Use:          "proforma",
		Short:        "Financial projections for a mobile medical imaging service",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level, err := logging.ParseLevel(a.logLevel)
			if err != nil {
				return err
			}
			cfg := logging.DefaultConfig()
			cfg.Level = level
			cfg.Format = a.logFormat
			cfg.Output = cmd.ErrOrStderr()
			a.log = logging.New(cfg)
			logging.SetDefault(a.log)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.dbPath, "db", getEnv(envDBPath, "./data/proforma.db"), "run archive database path ($"+envDBPath+")")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", getEnv(envLogLevel, "info"), "debug, info, warn or error ($"+envLogLevel+")")
	root.PersistentFlags().StringVar(&a.logFormat, "log-format", "text", "log output: text or json")
	root.PersistentFlags().StringVarP(&a.format, "format", "f", getEnv(envFormat, "console"), "report format ($"+envFormat+")")

	root.AddCommand(
		newRunCmd(a),
		newCapacityCmd(a),
		newValidateCmd(a),
		newExampleCmd(a),
		newHistoryCmd(a),
	)
	return root
}

// engine builds a calculation engine that logs through the app logger.
func (a *app) engine(opts calculation.Options) *calculation.Engine {
	e := calculation.NewEngineWithOptions(opts)
	e.SetLogger(logging.ForEngine(a.log))
	return e
}
