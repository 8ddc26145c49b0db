// Package qr renders QR codes as PNG data URIs.
package qr

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/skip2/go-qrcode"
)

// DefaultScale is the edge length in pixels of a single QR module.
const DefaultScale = 10

const dataURIPrefix = "data:image/png;base64,"

var (
	// ErrInvalidContent is returned for empty content or content too long to encode.
	ErrInvalidContent = errors.New("invalid qr code content")
	// ErrRender is returned when the encoded symbol cannot be turned into an image.
	ErrRender = errors.New("failed to render qr code")
)

// Renderer turns text into QR code images at medium error correction.
type Renderer struct {
	scale int
	level qrcode.RecoveryLevel
}

// NewRenderer creates a renderer that draws every module as a scale×scale block.
// A non-positive scale falls back to DefaultScale.
func NewRenderer(scale int) *Renderer {
	if scale <= 0 {
		scale = DefaultScale
	}

	return &Renderer{
		scale: scale,
		level: qrcode.Medium,
	}
}

// Render encodes content and returns the PNG as a base64 data URI.
func (r *Renderer) Render(content string) (string, error) {
	const op = "qr.Renderer.Render"

	img, err := r.Image(content)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("%s: %w: %w", op, ErrRender, err)
	}

	return dataURIPrefix + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Image encodes content into a greyscale image without a quiet zone.
// Dark modules are black, light modules white.
func (r *Renderer) Image(content string) (*image.Gray, error) {
	if content == "" {
		return nil, fmt.Errorf("%w: empty content", ErrInvalidContent)
	}

	code, err := qrcode.New(content, r.level)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidContent, err)
	}
	code.DisableBorder = true

	bitmap := code.Bitmap()
	size := len(bitmap) * r.scale
	img := image.NewGray(image.Rect(0, 0, size, size))

	for y, row := range bitmap {
		for x, dark := range row {
			c := color.Gray{Y: 255}
			if dark {
				c = color.Gray{Y: 0}
			}

			for dy := 0; dy < r.scale; dy++ {
				for dx := 0; dx < r.scale; dx++ {
					img.SetGray(x*r.scale+dx, y*r.scale+dy, c)
				}
			}
		}
	}

	return img, nil
}
