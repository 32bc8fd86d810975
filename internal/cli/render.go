package cli

import (
	"fmt"
	"math/rand/v2"

	"github.com/spf13/cobra"

	"github.com/youruser/bigcollage/internal/catalog"
	"github.com/youruser/bigcollage/internal/config"
	imagepkg "github.com/youruser/bigcollage/internal/image"
	"github.com/youruser/bigcollage/internal/selection"
)

type renderOpts struct {
	mode int
	name string
	seed uint64
	out  string
}

func newRenderCmd() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [items...]",
		Short: "Render one collage to disk",
		Long: `Render selects the given catalog items (in order) and writes the collage
as <name>_big<mode>.jpg. Without items, the first <mode> items of a shuffled
catalog are used.`,
		Example: `  bigcollage render --mode 5 --name Ada ece_nur.jpeg özdenur.jpg lal.jpeg naz.jpeg sude.jpeg
  bigcollage render --mode 15 --name Ada --seed 42 --out exports`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return runRender(cmd, cfg, opts, args)
		},
	}

	cmd.Flags().IntVarP(&opts.mode, "mode", "m", 5, "selection size (5 or 15)")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "name shown in the footer and used in the file name")
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "shuffle seed when picking items automatically (0 = random)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", ".", "output directory")
	return cmd
}

func runRender(cmd *cobra.Command, cfg config.Config, opts renderOpts, args []string) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	mode, err := selection.ParseMode(opts.mode)
	if err != nil {
		return err
	}
	cat, err := loadCatalog(cfg, logger)
	if err != nil {
		return err
	}

	picks := make([]catalog.Item, 0, len(args))
	for _, a := range args {
		picks = append(picks, catalog.Item(a))
	}
	if len(picks) == 0 {
		var rng *rand.Rand
		if opts.seed != 0 {
			rng = rand.New(rand.NewPCG(opts.seed, opts.seed^0x5eed))
		}
		order := catalog.Shuffled(cat.Items(), rng)
		picks = order[:min(len(order), mode.Capacity())]
	}

	sess := selection.NewSession(mode, selection.WithCatalog(cat))
	for _, it := range picks {
		if _, err := sess.Toggle(it); err != nil {
			return err
		}
	}
	if !sess.Selection().IsComplete() {
		return fmt.Errorf("need %d items, got %d", mode.Capacity(), sess.Selection().Len())
	}

	comp, err := newCompositor(cfg, logger)
	if err != nil {
		return err
	}
	out, err := comp.Compose(ctx, imagepkg.Request{
		Capacity: mode.Capacity(),
		Name:     opts.name,
		Items:    sess.Selection().Items(),
	})
	if err != nil {
		return err
	}
	path, err := imagepkg.SaveFile(opts.out, out, cfg.Export.Quality)
	if err != nil {
		return err
	}
	logger.Info("collage written", "path", path)
	fmt.Fprintln(cmd.OutOrStdout(), path)
	return nil
}
