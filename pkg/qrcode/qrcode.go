// Package qrcode renders branded QR codes as PNG.
package qrcode

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"strconv"
	"strings"

	goqrcode "github.com/skip2/go-qrcode"
)

const (
	MinSize = 64
	MaxSize = 1024
)

type Options struct {
	DefaultSize int
	Foreground  string
	Background  string
	LogoPath    string
}

type Generator struct {
	defaultSize int
	fg, bg      color.Color
	logo        image.Image
}

func NewGenerator(opts Options) (*Generator, error) {
	fg, err := ParseHexColor(opts.Foreground)
	if err != nil {
		return nil, fmt.Errorf("foreground color: %w", err)
	}
	bg, err := ParseHexColor(opts.Background)
	if err != nil {
		return nil, fmt.Errorf("background color: %w", err)
	}

	g := &Generator{defaultSize: clampSize(opts.DefaultSize, 256), fg: fg, bg: bg}
	if opts.LogoPath != "" {
		f, err := os.Open(opts.LogoPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open QR logo: %w", err)
		}
		defer f.Close()
		logo, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("failed to decode QR logo: %w", err)
		}
		g.logo = logo
	}
	return g, nil
}

// PNG encodes content at size pixels. A zero size uses the default.
func (g *Generator) PNG(content string, size int) ([]byte, error) {
	size = clampSize(size, g.defaultSize)

	level := goqrcode.Medium
	if g.logo != nil {
		level = goqrcode.Highest
	}
	q, err := goqrcode.New(content, level)
	if err != nil {
		return nil, fmt.Errorf("failed to build QR code: %w", err)
	}
	q.ForegroundColor = g.fg
	q.BackgroundColor = g.bg

	if g.logo == nil {
		return q.PNG(size)
	}

	img := q.Image(size)
	canvas := image.NewRGBA(img.Bounds())
	draw.Draw(canvas, canvas.Bounds(), img, image.Point{}, draw.Src)
	overlayLogo(canvas, g.logo)

	var buf bytes.Buffer
	if err := png.Encode(&buf, canvas); err != nil {
		return nil, fmt.Errorf("failed to encode QR code: %w", err)
	}
	return buf.Bytes(), nil
}

// overlayLogo scales logo to a fifth of the code width and centers it.
// Highest error correction keeps the code readable underneath.
func overlayLogo(dst *image.RGBA, logo image.Image) {
	b := dst.Bounds()
	side := b.Dx() / 5
	if side < 1 {
		return
	}
	scaled := image.NewRGBA(image.Rect(0, 0, side, side))
	lb := logo.Bounds()
	for y := 0; y < side; y++ {
		for x := 0; x < side; x++ {
			sx := lb.Min.X + x*lb.Dx()/side
			sy := lb.Min.Y + y*lb.Dy()/side
			scaled.Set(x, y, logo.At(sx, sy))
		}
	}
	offset := image.Pt(b.Min.X+(b.Dx()-side)/2, b.Min.Y+(b.Dy()-side)/2)
	draw.Draw(dst, scaled.Bounds().Add(offset), scaled, image.Point{}, draw.Over)
}

func clampSize(size, fallback int) int {
	if size <= 0 {
		size = fallback
	}
	if size < MinSize {
		return MinSize
	}
	if size > MaxSize {
		return MaxSize
	}
	return size
}

// ParseHexColor accepts #RRGGBB or RRGGBB.
func ParseHexColor(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}
