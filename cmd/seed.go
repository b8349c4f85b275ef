package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio-gallery/internal/catalog"
	"github.com/Zachkp/portfolio-gallery/internal/logging"
)

func newSeedCmd(opts *options) *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Replace the gallery catalog",
		Long: `Replaces every category and image in the catalog database with the
contents of a YAML catalog file, or with the built-in projects when no file
is given.`,
		Example: `  # Load the built-in projects
  portfolio seed

  # Load a catalog file
  portfolio seed --file gallery.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logging.NewLogger("seed")
			if cmd.Flags().Changed("file") {
				opts.cfg.CatalogFile = file
			}

			cats, err := catalogSource(opts.cfg.CatalogFile)
			if err != nil {
				return err
			}

			store, err := catalog.Open(cmd.Context(), opts.cfg.DBPath, log)
			if err != nil {
				return err
			}
			defer store.Close()

			return store.Seed(cmd.Context(), cats)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "YAML catalog file (env CATALOG_FILE)")

	return cmd
}
