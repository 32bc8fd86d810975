package cli

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/youruser/bigcollage/internal/catalog"
	"github.com/youruser/bigcollage/internal/config"
	imagepkg "github.com/youruser/bigcollage/internal/image"
)

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:          "bigcollage",
		Short:        "Pick your favourite photos and export them as a labeled collage",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env is optional
			_ = godotenv.Load()

			level := log.InfoLevel
			if verbose {
				level = log.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newRenderCmd())
	return cmd
}

// newLoader picks the photo source: the remote base when configured,
// otherwise the local catalog directory.
func newLoader(cfg config.Config) (imagepkg.Loader, error) {
	if cfg.Catalog.RemoteBase != "" {
		l, err := imagepkg.NewHTTPLoader(cfg.Catalog.RemoteBase)
		if err != nil {
			return nil, err
		}
		return l, nil
	}
	return imagepkg.FileLoader{Dir: cfg.Catalog.Dir}, nil
}

func newCompositor(cfg config.Config, logger *log.Logger) (*imagepkg.Compositor, error) {
	loader, err := newLoader(cfg)
	if err != nil {
		return nil, err
	}
	return &imagepkg.Compositor{
		Loader: loader,
		Footer: imagepkg.Footer{
			Site:      cfg.Brand.Site,
			Watermark: cfg.Brand.Watermark,
		},
		AllowedOrigins: cfg.Export.AllowedOrigins,
		Logger:         logger,
	}, nil
}

func loadCatalog(cfg config.Config, logger *log.Logger) (*catalog.Catalog, error) {
	c, err := catalog.Load(cfg.Catalog.Dir, cfg.Catalog.List)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	logger.Info("catalog loaded", "items", c.Len(), "dir", cfg.Catalog.Dir)
	return c, nil
}
