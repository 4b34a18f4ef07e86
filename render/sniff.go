package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"strings"
)

// Logo is a sniffed and size-probed raster asset ready for embedding.
type Logo struct {
	Format string // "PNG" or "JPG"
	Data   []byte
	Width  int // native pixel width
	Height int // native pixel height
}

var (
	pngMagic  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}
	jpegMagic = []byte{0xff, 0xd8, 0xff}
)

// SniffFormat identifies the image container from its magic bytes. Explicit
// sniffing replaces try-decode-and-fall-back, so the PNG-before-JPEG
// preference is deterministic.
func SniffFormat(data []byte) (string, error) {
	switch {
	case bytes.HasPrefix(data, pngMagic):
		return "PNG", nil
	case bytes.HasPrefix(data, jpegMagic):
		return "JPG", nil
	default:
		return "", fmt.Errorf("%w: unrecognized magic bytes", ErrAssetDecode)
	}
}

// DecodeLogo accepts a raw base64 payload or a data URL, sniffs the format
// and probes the native dimensions. Any failure is an ErrAssetDecode the
// caller recovers from; a broken logo must never abort a render.
func DecodeLogo(field string) (*Logo, error) {
	payload := field
	if strings.HasPrefix(field, "data:") {
		i := strings.IndexByte(field, ',')
		if i < 0 {
			return nil, fmt.Errorf("%w: malformed data URL", ErrAssetDecode)
		}
		payload = field[i+1:]
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: base64: %v", ErrAssetDecode, err)
	}

	format, err := SniffFormat(data)
	if err != nil {
		return nil, err
	}

	var cfg image.Config
	switch format {
	case "PNG":
		cfg, err = png.DecodeConfig(bytes.NewReader(data))
	case "JPG":
		cfg, err = jpeg.DecodeConfig(bytes.NewReader(data))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s header: %v", ErrAssetDecode, format, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, fmt.Errorf("%w: degenerate dimensions %dx%d", ErrAssetDecode, cfg.Width, cfg.Height)
	}

	return &Logo{Format: format, Data: data, Width: cfg.Width, Height: cfg.Height}, nil
}
