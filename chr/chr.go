// Package chr decodes CHR ROM data into pattern tables, and renders them.
package chr

import (
	"errors"
	"fmt"

	"nesinspect/log"
)

const (
	BankSize             = 0x2000
	PatternTablesPerBank = 2
	PatternTableSize     = 0x1000
	TilesPerTable        = 256
	TileSize             = 16 // bytes
	TileRows             = 8
	BitsPerPixel         = 2

	TilesPerRow = 16
	TileWidth   = 8
	TileHeight  = 8

	// Pattern table size, in pixels.
	TableWidth  = TilesPerRow * TileWidth
	TableHeight = TilesPerTable / TilesPerRow * TileHeight
)

var ErrBankSize = errors.New("invalid CHR ROM data")

// A Tile is a 8x8 block of 2-bit color indices. Each row holds the pixels of
// both bit-planes, interleaved: pixel x is at bits 15-2x (high plane) and
// 14-2x (low plane).
type Tile [TileRows]uint16

// Pixel returns the color index (0-3) of pixel (x, y).
func (t *Tile) Pixel(x, y int) uint8 {
	shift := (TileWidth - 1 - x) * BitsPerPixel
	return uint8(t[y]>>shift) & 0x03
}

// PatternTable is a 16x16 grid of tiles (128x128 pixels).
type PatternTable [TilesPerTable]Tile

// Data holds the pattern tables, in the order they appear in CHR ROM.
type Data struct {
	PatternTables []PatternTable
}

// Decode decodes CHR ROM data. The length of buf must be a multiple of the
// 8KiB bank size.
func Decode(buf []byte) (*Data, error) {
	if len(buf)%BankSize != 0 {
		return nil, fmt.Errorf("%w: size %d is not a multiple of %d", ErrBankSize, len(buf), BankSize)
	}

	ntables := len(buf) / BankSize * PatternTablesPerBank
	data := &Data{PatternTables: make([]PatternTable, ntables)}
	for i := range data.PatternTables {
		decodePatternTable(&data.PatternTables[i], buf[i*PatternTableSize:(i+1)*PatternTableSize])
	}

	log.ModCHR.DebugZ("decoded CHR").
		Int("banks", len(buf)/BankSize).
		Int("tables", ntables).
		End()

	return data, nil
}

func decodePatternTable(pt *PatternTable, buf []byte) {
	for i := range pt {
		pt[i] = DecodeTile(buf[i*TileSize : (i+1)*TileSize])
	}
}

// DecodeTile decodes the 16 bytes of a tile: 8 rows of the low bit-plane
// followed by 8 rows of the high bit-plane.
func DecodeTile(p []byte) Tile {
	_ = p[TileSize-1]

	var t Tile
	for row := range TileRows {
		t[row] = interleave(p[row], p[row+TileRows])
	}
	return t
}

// interleave places bit i of lo at bit 2i and bit i of hi at bit 2i+1.
func interleave(lo, hi uint8) uint16 {
	v := uint16(lo) | uint16(hi)<<8
	v = (v & 0xF00F) | (v&0x0F00)>>4 | (v&0x00F0)<<4
	v = (v & 0xC3C3) | (v&0x3030)>>2 | (v&0x0C0C)<<2
	v = (v & 0x9999) | (v&0x4444)>>1 | (v&0x2222)<<1
	return v
}
