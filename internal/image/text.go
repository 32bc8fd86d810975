package imagepkg

import (
	"fmt"
	"image/color"
	"sync"

	"github.com/fogleman/gg"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"

	"github.com/youruser/bigcollage/internal/layout"
)

const (
	titleFontSize   = 60
	captionFontSize = 50
	footerInset     = 40
)

var (
	titleColor   = color.White
	captionColor = color.NRGBA{R: 0xa0, G: 0xa0, B: 0xa0, A: 0xff}
)

// Footer holds the strings drawn into the footer band.
type Footer struct {
	// TitleFormat receives the capacity and the user's name.
	TitleFormat string
	Site        string
	Watermark   string
}

// DefaultFooter is used for any empty Footer field.
var DefaultFooter = Footer{
	TitleFormat: "My Big %d | %s",
	Site:        "big5_big15.vercel",
	Watermark:   "Made by CaganT",
}

func (f Footer) withDefaults() Footer {
	if f.TitleFormat == "" {
		f.TitleFormat = DefaultFooter.TitleFormat
	}
	if f.Site == "" {
		f.Site = DefaultFooter.Site
	}
	if f.Watermark == "" {
		f.Watermark = DefaultFooter.Watermark
	}
	return f
}

type fontSet struct {
	bold    *opentype.Font
	regular *opentype.Font
}

var (
	fontsOnce sync.Once
	fonts     fontSet
	fontsErr  error
)

func loadFonts() (fontSet, error) {
	fontsOnce.Do(func() {
		fonts.bold, fontsErr = opentype.Parse(gobold.TTF)
		if fontsErr != nil {
			return
		}
		fonts.regular, fontsErr = opentype.Parse(goregular.TTF)
	})
	return fonts, fontsErr
}

func newFace(f *opentype.Font, size float64) (font.Face, error) {
	return opentype.NewFace(f, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// drawFooter writes the centered title, the left-aligned site caption and
// the right-aligned watermark, all vertically centered in the footer band.
func drawFooter(dc *gg.Context, p layout.Plan, f Footer, capacity int, name string) error {
	fs, err := loadFonts()
	if err != nil {
		return fmt.Errorf("parse fonts: %w", err)
	}
	titleFace, err := newFace(fs.bold, titleFontSize)
	if err != nil {
		return fmt.Errorf("title face: %w", err)
	}
	defer titleFace.Close()
	captionFace, err := newFace(fs.regular, captionFontSize)
	if err != nil {
		return fmt.Errorf("caption face: %w", err)
	}
	defer captionFace.Close()

	y := p.FooterCenterY()

	dc.SetFontFace(titleFace)
	dc.SetColor(titleColor)
	dc.DrawStringAnchored(fmt.Sprintf(f.TitleFormat, capacity, name), float64(p.CanvasWidth)/2, y, 0.5, 0.5)

	dc.SetFontFace(captionFace)
	dc.SetColor(captionColor)
	dc.DrawStringAnchored(f.Site, float64(p.BorderSize+footerInset), y, 0, 0.5)
	dc.DrawStringAnchored(f.Watermark, float64(p.CanvasWidth-p.BorderSize-footerInset), y, 1, 0.5)
	return nil
}
