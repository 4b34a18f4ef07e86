package render

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h))))
	return buf.Bytes()
}

func encodeJPEG(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewRGBA(image.Rect(0, 0, w, h)), nil))
	return buf.Bytes()
}

func TestSniffFormat(t *testing.T) {
	t.Run("png", func(t *testing.T) {
		format, err := SniffFormat(encodePNG(t, 1, 1))
		require.NoError(t, err)
		assert.Equal(t, "PNG", format)
	})
	t.Run("jpeg", func(t *testing.T) {
		format, err := SniffFormat(encodeJPEG(t, 1, 1))
		require.NoError(t, err)
		assert.Equal(t, "JPG", format)
	})
	t.Run("unknown container", func(t *testing.T) {
		_, err := SniffFormat([]byte("GIF89a..."))
		assert.ErrorIs(t, err, ErrAssetDecode)
	})
}

func TestDecodeLogo(t *testing.T) {
	t.Run("raw base64 png", func(t *testing.T) {
		raw := encodePNG(t, 20, 10)
		logo, err := DecodeLogo(base64.StdEncoding.EncodeToString(raw))
		require.NoError(t, err)
		assert.Equal(t, "PNG", logo.Format)
		assert.Equal(t, 20, logo.Width)
		assert.Equal(t, 10, logo.Height)
		assert.Equal(t, raw, logo.Data)
	})

	t.Run("data url jpeg", func(t *testing.T) {
		raw := encodeJPEG(t, 8, 8)
		field := "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(raw)
		logo, err := DecodeLogo(field)
		require.NoError(t, err)
		assert.Equal(t, "JPG", logo.Format)
		assert.Equal(t, 8, logo.Width)
		assert.Equal(t, 8, logo.Height)
	})

	t.Run("data url without payload separator", func(t *testing.T) {
		_, err := DecodeLogo("data:image/png;base64")
		assert.ErrorIs(t, err, ErrAssetDecode)
	})

	t.Run("invalid base64", func(t *testing.T) {
		_, err := DecodeLogo("!!! not base64 !!!")
		assert.ErrorIs(t, err, ErrAssetDecode)
	})

	t.Run("valid base64 of a non-image", func(t *testing.T) {
		_, err := DecodeLogo(base64.StdEncoding.EncodeToString([]byte("plain text")))
		assert.ErrorIs(t, err, ErrAssetDecode)
	})

	t.Run("truncated png header", func(t *testing.T) {
		raw := encodePNG(t, 4, 4)
		_, err := DecodeLogo(base64.StdEncoding.EncodeToString(raw[:12]))
		assert.ErrorIs(t, err, ErrAssetDecode)
	})
}
