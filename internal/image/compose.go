package imagepkg

import (
	"context"
	"image"
	"image/color"
	"image/draw"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/disintegration/imaging"
	"github.com/fogleman/gg"
	"golang.org/x/sync/errgroup"

	"github.com/youruser/bigcollage/internal/apperr"
	"github.com/youruser/bigcollage/internal/catalog"
	"github.com/youruser/bigcollage/internal/layout"
	"github.com/youruser/bigcollage/internal/selection"
)

var (
	borderColor     = color.NRGBA{R: 0xcf, G: 0xff, B: 0x02, A: 0xff}
	backgroundColor = color.NRGBA{R: 0x1a, G: 0x1a, B: 0x1d, A: 0xff}
)

// Request describes one collage.
type Request struct {
	Capacity int
	Name     string
	Items    []catalog.Item
}

// Composite is a finished collage, owned by the export that produced it.
type Composite struct {
	Image    *image.RGBA
	Plan     layout.Plan
	Name     string
	Capacity int
	// Origins holds the origin of each cell's photo, in placement order.
	Origins []string
	// Tainted is set when any photo came from an origin outside the
	// compositor's allow list. Tainted composites cannot be encoded.
	Tainted bool
}

// Compositor renders selections into collages.
type Compositor struct {
	Loader         Loader
	Footer         Footer
	AllowedOrigins []string
	Logger         *log.Logger
}

func (c *Compositor) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return log.Default()
}

// Compose validates req, loads every photo concurrently and draws the
// collage. The first load failure aborts the whole composite: the remaining
// loads are cancelled and no partial image is returned.
func (c *Compositor) Compose(ctx context.Context, req Request) (*Composite, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperr.New(apperr.CodeValidation, "a name is required before exporting")
	}
	if _, err := selection.ParseMode(req.Capacity); err != nil {
		return nil, err
	}
	if len(req.Items) != req.Capacity {
		return nil, apperr.New(apperr.CodeSelectionIncomplete, "select exactly %d items (have %d)", req.Capacity, len(req.Items))
	}

	start := time.Now()
	plan := layout.ForCapacity(req.Capacity)
	canvas := image.NewRGBA(plan.Bounds())
	dc := gg.NewContextForRGBA(canvas)
	fillBackground(dc, plan)

	origins, err := c.drawCells(ctx, canvas, plan, req.Items)
	if err != nil {
		c.logger().Warn("collage aborted", "capacity", req.Capacity, "err", err)
		return nil, err
	}

	if err := drawFooter(dc, plan, c.Footer.withDefaults(), req.Capacity, name); err != nil {
		return nil, apperr.Wrap(apperr.CodeInternal, err, "draw footer")
	}

	c.logger().Info("collage composed",
		"capacity", req.Capacity,
		"size", plan.Bounds().Size(),
		"elapsed", time.Since(start).Round(time.Millisecond))

	return &Composite{
		Image:    canvas,
		Plan:     plan,
		Name:     name,
		Capacity: req.Capacity,
		Origins:  origins,
		Tainted:  c.tainted(origins),
	}, nil
}

// fillBackground paints the whole canvas in the border color, then the grid
// and footer areas in the background color, leaving a border margin around
// both.
func fillBackground(dc *gg.Context, p layout.Plan) {
	dc.SetColor(borderColor)
	dc.Clear()

	dc.SetColor(backgroundColor)
	for _, r := range []image.Rectangle{p.GridRect(), p.FooterRect()} {
		dc.DrawRectangle(float64(r.Min.X), float64(r.Min.Y), float64(r.Dx()), float64(r.Dy()))
		dc.Fill()
	}
}

// drawCells loads all items at once and draws each one into its cell as it
// arrives. It returns the origin of each photo in placement order.
//
// The first load failure is returned immediately, without waiting for loads
// still in flight. Those loads keep running until their loader returns, but
// they never touch the canvas once the composite has been abandoned.
func (c *Compositor) drawCells(ctx context.Context, canvas *image.RGBA, p layout.Plan, items []catalog.Item) ([]string, error) {
	origins := make([]string, len(items))
	var (
		mu      sync.Mutex
		aborted bool
	)

	firstErr := make(chan error, 1)
	fail := func(err error) error {
		select {
		case firstErr <- err:
		default:
		}
		return err
	}

	g, gctx := errgroup.WithContext(ctx)
	for k, item := range items {
		g.Go(func() error {
			loaded, err := c.Loader.Load(gctx, item)
			if err != nil {
				return fail(apperr.Wrap(apperr.CodeResourceLoad, err, "could not load %s", item))
			}
			if gctx.Err() != nil {
				return nil
			}
			cell := p.Cell(k)
			resized := imaging.Resize(loaded.Image, cell.Dx(), cell.Dy(), imaging.Lanczos)

			mu.Lock()
			defer mu.Unlock()
			if aborted || gctx.Err() != nil {
				return nil
			}
			draw.Draw(canvas, cell, resized, image.Point{}, draw.Over)
			origins[k] = loaded.Origin
			c.logger().Debug("cell drawn", "item", item, "index", k, "origin", loaded.Origin)
			return nil
		})
	}

	done := make(chan error, 1)
	go func() { done <- g.Wait() }()

	var err error
	select {
	case err = <-firstErr:
	case err = <-done:
	case <-ctx.Done():
	}
	// A parent cancellation without a load error still aborts the composite.
	if err == nil && ctx.Err() != nil {
		err = apperr.Wrap(apperr.CodeResourceLoad, ctx.Err(), "collage cancelled")
	}
	if err != nil {
		mu.Lock()
		aborted = true
		mu.Unlock()
		return nil, err
	}
	return origins, nil
}

func (c *Compositor) tainted(origins []string) bool {
	for _, o := range origins {
		if o == OriginLocal {
			continue
		}
		if !slices.Contains(c.AllowedOrigins, o) {
			return true
		}
	}
	return false
}
