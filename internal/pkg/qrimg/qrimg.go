// Package qrimg renders stored QR code definitions as PNG images.
package qrimg

import (
	"fmt"
	"image/color"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

const (
	MinSize = 64
	MaxSize = 2048
)

// ParseHexColor decodes "#RRGGBB" (or "RRGGBB") into an opaque color.
func ParseHexColor(s string) (color.Color, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return nil, fmt.Errorf("invalid color %q", s)
	}
	var r, g, b uint8
	if _, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b); err != nil {
		return nil, fmt.Errorf("invalid color %q", s)
	}
	return color.RGBA{R: r, G: g, B: b, A: 0xff}, nil
}

// Render encodes url as a PNG of size×size pixels with the given colors.
func Render(url string, size int, fgColor, bgColor string) ([]byte, error) {
	if size < MinSize || size > MaxSize {
		return nil, fmt.Errorf("size %d out of range [%d,%d]", size, MinSize, MaxSize)
	}

	fg, err := ParseHexColor(fgColor)
	if err != nil {
		return nil, err
	}
	bg, err := ParseHexColor(bgColor)
	if err != nil {
		return nil, err
	}

	q, err := qrcode.New(url, qrcode.Medium)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	q.ForegroundColor = fg
	q.BackgroundColor = bg

	return q.PNG(size)
}
