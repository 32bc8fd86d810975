package imagepkg

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp"

	"github.com/youruser/bigcollage/internal/catalog"
	"github.com/youruser/bigcollage/internal/util"
)

// OriginLocal marks images read from the local photos directory. It is
// always an approved origin.
const OriginLocal = "local"

// Loaded is a decoded photo together with the origin it was read from.
type Loaded struct {
	Image  image.Image
	Origin string
}

// Loader resolves a catalog item to its decoded photo.
type Loader interface {
	Load(ctx context.Context, item catalog.Item) (Loaded, error)
}

// FileLoader reads photos from Dir.
type FileLoader struct {
	Dir string
}

// Load opens Dir/item and decodes it.
func (l FileLoader) Load(ctx context.Context, item catalog.Item) (Loaded, error) {
	name := string(item)
	if name == "" || filepath.Base(name) != name || strings.ContainsAny(name, `/\`) {
		return Loaded{}, fmt.Errorf("invalid item name %q", name)
	}
	if err := ctx.Err(); err != nil {
		return Loaded{}, err
	}
	f, err := os.Open(filepath.Join(l.Dir, name))
	if err != nil {
		return Loaded{}, err
	}
	defer f.Close()

	img, err := imaging.Decode(f, imaging.AutoOrientation(true))
	if err != nil {
		return Loaded{}, fmt.Errorf("decode %s: %w", name, err)
	}
	return Loaded{Image: img, Origin: OriginLocal}, nil
}

// HTTPLoader downloads photos from Base/<item>. The origin of every image
// is the host of Base.
type HTTPLoader struct {
	Base   *url.URL
	Client *http.Client
}

// NewHTTPLoader parses base and returns a loader with a bounded client.
func NewHTTPLoader(base string) (*HTTPLoader, error) {
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parse remote base: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("remote base must be http(s), got %q", base)
	}
	return &HTTPLoader{
		Base:   u,
		Client: &http.Client{Timeout: 10 * time.Second},
	}, nil
}

// Load downloads and decodes item.
func (l *HTTPLoader) Load(ctx context.Context, item catalog.Item) (Loaded, error) {
	u := l.Base.JoinPath(string(item))
	body, err := util.GetBytes(ctx, l.Client, u.String())
	if err != nil {
		return Loaded{}, err
	}
	img, err := imaging.Decode(bytes.NewReader(body), imaging.AutoOrientation(true))
	if err != nil {
		return Loaded{}, fmt.Errorf("decode %s: %w", item, err)
	}
	return Loaded{Image: img, Origin: l.Base.Host}, nil
}
