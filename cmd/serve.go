package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/Zachkp/portfolio-gallery/internal/catalog"
	"github.com/Zachkp/portfolio-gallery/internal/gallery"
	"github.com/Zachkp/portfolio-gallery/internal/logging"
	"github.com/Zachkp/portfolio-gallery/internal/server"
)

func newServeCmd(opts *options) *cobra.Command {
	var port, images string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the portfolio web server",
		Long: `Starts the portfolio site. An empty catalog database is seeded from
CATALOG_FILE, or from the built-in projects, before the server starts.`,
		Example: `  # Start on the default port 8080
  portfolio serve

  # Custom port and asset directory
  portfolio serve --port 3000 --images ./static/images`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := opts.cfg
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			if cmd.Flags().Changed("images") {
				cfg.ImagesDir = images
			}
			if cfg.GinMode != "" {
				gin.SetMode(cfg.GinMode)
			}

			log := logging.NewLogger("server")
			ctx := cmd.Context()

			store, err := catalog.Open(ctx, cfg.DBPath, logging.NewLogger("catalog"))
			if err != nil {
				return err
			}
			defer store.Close()

			existing, err := store.Categories(ctx)
			if err != nil {
				return err
			}
			if len(existing) == 0 {
				cats, err := catalogSource(cfg.CatalogFile)
				if err != nil {
					return err
				}
				if err := store.Seed(ctx, cats); err != nil {
					return err
				}
			}

			pre := gallery.NewPreloader(
				server.NewFileLoader(cfg.ImagesDir),
				cfg.PreloadConcurrency,
				logging.NewLogger("gallery"),
			)
			pre.SetFailureTTL(cfg.PreloadFailureTTL)
			defer pre.Close()

			addr := ":" + cfg.Port
			srv := &http.Server{
				Addr:    addr,
				Handler: server.New(store, pre, cfg.ImagesDir, log).Router(),
			}

			serverErr := make(chan error, 1)
			go func() {
				log.WithField("addr", addr).Info("portfolio available at http://localhost" + addr)
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			select {
			case <-ctx.Done():
				log.Info("shutting down server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := srv.Shutdown(shutdownCtx); err != nil {
					log.WithError(err).Error("server shutdown failed")
					return err
				}
				log.Info("server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "8080", "Port to listen on (env PORT)")
	cmd.Flags().StringVar(&images, "images", "./images", "Image asset directory (env IMAGES_DIR)")

	return cmd
}
