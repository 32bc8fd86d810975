package imagepkg

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	minQRSize = 64
	maxQRSize = 1024
)

// GenerateQRPNG returns PNG bytes of a QR code for text. size is clamped to
// [64, 1024] pixels.
func GenerateQRPNG(text string, size int) ([]byte, error) {
	if text == "" {
		return nil, fmt.Errorf("qr text is empty")
	}
	size = max(minQRSize, min(size, maxQRSize))
	return qrcode.Encode(text, qrcode.Medium, size)
}
