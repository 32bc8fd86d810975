package cli

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/youruser/bigcollage/internal/api"
	"github.com/youruser/bigcollage/internal/config"
	"github.com/youruser/bigcollage/internal/selection"
	"github.com/youruser/bigcollage/internal/store"
)

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the collage API server",
		Example: `  # Serve photos from ./photos on the configured port
  bigcollage serve

  # Custom port
  bigcollage serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if port != "" {
				cfg.Server.Port = port
			}

			cat, err := loadCatalog(cfg, logger)
			if err != nil {
				return err
			}
			comp, err := newCompositor(cfg, logger)
			if err != nil {
				return err
			}
			mode, err := selection.ParseMode(cfg.Mode.Default)
			if err != nil {
				return err
			}
			photosDir := cfg.Catalog.Dir
			if cfg.Catalog.RemoteBase != "" {
				photosDir = ""
			}

			sessions := store.New()
			go sessions.RunJanitor(cmd.Context(), time.Minute, cfg.Server.SessionTTL, func(n int) {
				logger.Debug("dropped idle sessions", "count", n, "ttl", cfg.Server.SessionTTL)
			})

			gin.SetMode(gin.ReleaseMode)
			engine := api.NewEngine(&api.Server{
				Catalog:     cat,
				Store:       sessions,
				Compositor:  comp,
				Strings:     selection.Strings{TitleFormat: cfg.Brand.Title, SubtitleFormat: cfg.Brand.Subtitle},
				DefaultMode: mode,
				Quality:     cfg.Export.Quality,
				PhotosDir:   photosDir,
				ShareURL:    cfg.Brand.ShareURL,
				Logger:      logger,
			})

			addr := ":" + cfg.Server.Port
			server := &http.Server{Addr: addr, Handler: engine}

			serverErr := make(chan error, 1)
			go func() {
				logger.Info("starting server", "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			select {
			case <-cmd.Context().Done():
				logger.Info("shutting down server")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				return server.Shutdown(shutdownCtx)
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "port to listen on (overrides server.port)")
	return cmd
}
