package chr

import (
	"fmt"
	"image"
	"image/color"
	"strconv"
	"strings"
)

// Color is a packed 0xRRGGBBAA color.
type Color uint32

func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(c >> 24),
		G: uint8(c >> 16),
		B: uint8(c >> 8),
		A: uint8(c),
	}
}

// MarshalText encodes c as #RRGGBB, or #RRGGBBAA if c is not opaque.
func (c Color) MarshalText() ([]byte, error) {
	if uint8(c) == 0xFF {
		return fmt.Appendf(nil, "#%06X", uint32(c)>>8), nil
	}
	return fmt.Appendf(nil, "#%08X", uint32(c)), nil
}

// UnmarshalText decodes #RRGGBB (opaque) or #RRGGBBAA.
func (c *Color) UnmarshalText(text []byte) error {
	s := strings.TrimPrefix(string(text), "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color %q: want #RRGGBB or #RRGGBBAA", text)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return fmt.Errorf("invalid color %q: %w", text, err)
	}
	if len(s) == 6 {
		v = v<<8 | 0xFF
	}
	*c = Color(v)
	return nil
}

func (c Color) String() string {
	b, _ := c.MarshalText()
	return string(b)
}

// Palette maps the 4 color indices of a tile to actual colors.
type Palette [4]Color

var DefaultPalette = Palette{0xFF3030FF, 0x30FF30FF, 0x3030FFFF, 0xEFEFEFFF}

// ParsePalette parses a comma-separated list of 4 colors.
func ParsePalette(s string) (Palette, error) {
	var pal Palette
	parts := strings.Split(s, ",")
	if len(parts) != len(pal) {
		return pal, fmt.Errorf("palette needs %d colors, got %d", len(pal), len(parts))
	}
	for i, p := range parts {
		if err := pal[i].UnmarshalText([]byte(strings.TrimSpace(p))); err != nil {
			return pal, err
		}
	}
	return pal, nil
}

// RenderImage draws the pattern table, tile i being at grid position
// (i%16, i/16).
func RenderImage(pt *PatternTable, pal Palette) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, TableWidth, TableHeight))

	for i := range pt {
		tile := &pt[i]
		x0 := (i % TilesPerRow) * TileWidth
		y0 := (i / TilesPerRow) * TileHeight

		for y := range TileHeight {
			for x := range TileWidth {
				c := pal[tile.Pixel(x, y)]
				off := img.PixOffset(x0+x, y0+y)
				img.Pix[off+0] = uint8(c >> 24)
				img.Pix[off+1] = uint8(c >> 16)
				img.Pix[off+2] = uint8(c >> 8)
				img.Pix[off+3] = uint8(c)
			}
		}
	}
	return img
}

// Render returns the 128x128 RGBA pixels of the pattern table, row-major, 4
// bytes per pixel.
func Render(pt *PatternTable, pal Palette) []byte {
	return RenderImage(pt, pal).Pix
}
