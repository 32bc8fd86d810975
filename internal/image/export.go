package imagepkg

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/youruser/bigcollage/internal/apperr"
	"github.com/youruser/bigcollage/internal/util"
)

// DefaultQuality is the JPEG quality used when none is configured.
const DefaultQuality = 90

var fileNameReplacer = strings.NewReplacer("/", "_", `\`, "_", "\x00", "")

// FileName returns "<name>_big<capacity>.jpg". Path separators in name are
// replaced so the result is always a single path element.
func FileName(name string, capacity int) string {
	return fmt.Sprintf("%s_big%d.jpg", fileNameReplacer.Replace(strings.TrimSpace(name)), capacity)
}

// Encode writes c as JPEG. Composites holding photos from unapproved origins
// are refused with ENCODING_RESTRICTED.
func Encode(w io.Writer, c *Composite, quality int) error {
	if c.Tainted {
		return apperr.New(apperr.CodeEncodingRestricted,
			"the collage uses photos from an unapproved origin and cannot be exported; "+
				"serve the photos locally or add their host to export.allowed_origins")
	}
	if quality <= 0 || quality > 100 {
		quality = DefaultQuality
	}
	if err := imaging.Encode(w, c.Image, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		return apperr.Wrap(apperr.CodeInternal, err, "encode jpeg")
	}
	return nil
}

// Export encodes c into memory and returns the bytes with the download file
// name.
func Export(c *Composite, quality int) ([]byte, string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, c, quality); err != nil {
		return nil, "", err
	}
	return buf.Bytes(), FileName(c.Name, c.Capacity), nil
}

// SaveFile exports c into dir and returns the written path.
func SaveFile(dir string, c *Composite, quality int) (string, error) {
	data, name, err := Export(c, quality)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, name)
	if err := util.WriteFileAtomic(path, data); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}
	return path, nil
}
