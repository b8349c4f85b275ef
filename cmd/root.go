package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio-gallery/internal/catalog"
	"github.com/Zachkp/portfolio-gallery/internal/config"
	"github.com/Zachkp/portfolio-gallery/internal/logging"
)

type options struct {
	cfg      *config.Config
	dbPath   string
	logLevel string
}

func NewRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "Portfolio site with a browsable project gallery",
		Long: `Serves the portfolio projects page and the gallery API that drives its
lightbox viewer.

Settings come from the environment (a .env file is read when present) and can
be overridden with flags.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("db") {
				cfg.DBPath = opts.dbPath
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = opts.logLevel
			}
			logging.Setup(cfg.LogLevel, nil)
			opts.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "SQLite catalog path (env PORTFOLIO_DB)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (env LOG_LEVEL)")

	cmd.AddCommand(newServeCmd(opts))
	cmd.AddCommand(newSeedCmd(opts))

	return cmd
}

// catalogSource returns the catalog file's categories, or the built-in ones
// when no file is configured.
func catalogSource(path string) ([]catalog.Category, error) {
	if path == "" {
		return catalog.Defaults(), nil
	}
	return catalog.LoadFile(path)
}
