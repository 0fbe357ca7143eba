package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
)

// EncodedImage carries an image encoded as base64 PNG.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodeBase64 encodes img as PNG and wraps it for JSON transport.
func EncodeBase64(img image.Image) (*EncodedImage, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}

	return &EncodedImage{
		Width:       img.Bounds().Dx(),
		Height:      img.Bounds().Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(buf.Bytes()),
		MimeType:    "image/png",
	}, nil
}

// Save writes img to path. The encoder is chosen from the extension: ".jpg"
// and ".jpeg" produce JPEG at the given quality (1-100), ".bmp" produces BMP,
// and ".png" produces PNG. Other extensions are rejected.
func Save(path string, img image.Image, quality int) error {
	var enc imgio.Encoder
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		enc = imgio.PNGEncoder()
	case ".jpg", ".jpeg":
		if quality < 1 || quality > 100 {
			return fmt.Errorf("jpeg quality must be in 1-100, got %d", quality)
		}
		enc = imgio.JPEGEncoder(quality)
	case ".bmp":
		enc = imgio.BMPEncoder()
	default:
		return fmt.Errorf("unsupported output format %q", filepath.Ext(path))
	}

	if err := imgio.Save(path, img, enc); err != nil {
		return fmt.Errorf("failed to save image: %w", err)
	}
	return nil
}
