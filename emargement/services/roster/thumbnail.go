package roster

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"strings"

	"golang.org/x/image/draw"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

const (
	DefaultThumbnailWidth  = 120
	DefaultThumbnailHeight = 80

	pngDataURIPrefix = "data:image/png;base64,"
)

// Thumbnailer turns captured images into small PNG data URIs
type Thumbnailer struct {
	maxWidth, maxHeight int
}

func NewThumbnailer(maxWidth, maxHeight int) *Thumbnailer {
	return &Thumbnailer{maxWidth: maxWidth, maxHeight: maxHeight}
}

// DecodePayload accepts raw base64 or a data URL
func DecodePayload(payload string) (image.Image, error) {
	if i := strings.IndexByte(payload, ','); i >= 0 {
		payload = payload[i+1:]
	}
	payload = strings.TrimSpace(payload)
	if payload == "" {
		return nil, errors.New("empty image payload")
	}

	raw, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64: %w", err)
	}
	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

// Scale fits img into the thumbnail box keeping its ratio. Smaller images are kept as is.
func (t *Thumbnailer) Scale(img image.Image) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= t.maxWidth && h <= t.maxHeight {
		return img
	}

	ratio := float64(t.maxWidth) / float64(w)
	if r := float64(t.maxHeight) / float64(h); r < ratio {
		ratio = r
	}
	dw, dh := int(float64(w)*ratio), int(float64(h)*ratio)
	if dw < 1 {
		dw = 1
	}
	if dh < 1 {
		dh = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}

func (t *Thumbnailer) DataURI(payload string) (string, error) {
	img, err := DecodePayload(payload)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err = png.Encode(&buf, t.Scale(img)); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return pngDataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
