package qr

import (
	"bytes"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testLink = "https://mca.example.org/emargement/signature/eyJhbGciOiJIUzI1NiJ9.e30.sig"

func TestEncodeQR(t *testing.T) {
	req := require.New(t)

	p := NewPNGProcessor(256)
	data, err := p.EncodeQR(testLink)
	req.NoError(err)

	img, err := png.Decode(bytes.NewReader(data))
	req.NoError(err)
	req.Equal(256, img.Bounds().Dx())
	req.Equal(256, img.Bounds().Dy())
}

func TestEncodeQRDefaultSize(t *testing.T) {
	req := require.New(t)

	data, err := NewPNGProcessor(0).EncodeQR(testLink)
	req.NoError(err)

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	req.NoError(err)
	req.Equal(DefaultSize, cfg.Width)
}

func TestEncodeQREmpty(t *testing.T) {
	_, err := NewPNGProcessor(0).EncodeQR("")
	require.Error(t, err)
}

func TestWriteQR(t *testing.T) {
	req := require.New(t)

	path := filepath.Join(t.TempDir(), "link.png")
	req.NoError(NewPNGProcessor(128).WriteQR(path, testLink))

	data, err := os.ReadFile(path)
	req.NoError(err)
	_, err = png.Decode(bytes.NewReader(data))
	req.NoError(err)
}
