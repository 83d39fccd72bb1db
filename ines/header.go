package ines

//go:generate go tool stringer -type=Mirroring,TVSystem,Format -linecomment -output=header_string.go

import (
	"errors"
	"fmt"
	"math"
	"math/bits"

	"nesinspect/hw/hwio"
)

const Magic = "NES\x1a"

const (
	HeaderSize     = 16
	TrainerSize    = 512
	PRGBankSize    = 16384
	CHRBankSize    = 8192
	PRGRAMBankSize = 8192
)

var (
	ErrInvalidMagic = errors.New("invalid header constant")
	ErrTruncated    = errors.New("truncated rom")
)

// Mirroring is the nametable layout, numbered after the 2-bit selector
// encoded in flags 6.
type Mirroring uint8

const (
	Vertical     Mirroring = iota // Vertical
	Horizontal                    // Horizontal
	SingleScreen                  // Single Screen
	FourScreen                    // Four Screen
)

// TVSystem is the CPU/PPU timing mode.
type TVSystem uint8

const (
	NTSC           TVSystem = iota // NTSC
	PAL                            // PAL
	DualCompatible                 // Dual Compatible
	Dendy                          // Dendy
)

// Format is the header dialect.
type Format uint8

const (
	FormatINES  Format = iota // iNES
	FormatNES20               // NES 2.0
)

// Header holds the decoded content of the 16 bytes header. Sizes are in
// bytes.
type Header struct {
	PRGROMSize    uint64
	CHRROMSize    uint64
	Mapper        uint16
	Submapper     uint8
	HasTrainer    bool
	Mirroring     Mirroring
	Format        Format
	PRGRAMSize    uint64
	CHRRAMSize    uint64
	PRGNVRAMSize  uint64
	CHRNVRAMSize  uint64
	TVSystem      TVSystem
	PRGRAMPresent bool
	BusConflicts  bool
}

// IsNES20 reports whether the header uses the NES 2.0 dialect.
func (hdr *Header) IsNES20() bool {
	return hdr.Format == FormatNES20
}

// DecodeHeader decodes the header found in the first 16 bytes of p.
func DecodeHeader(p []byte) (Header, error) {
	var hdr Header
	if err := hdr.decode(p); err != nil {
		return Header{}, err
	}
	return hdr, nil
}

func (hdr *Header) decode(p []byte) error {
	if len(p) < HeaderSize {
		return fmt.Errorf("%w: header needs %d bytes, got %d", ErrTruncated, HeaderSize, len(p))
	}
	if string(p[:4]) != Magic {
		return ErrInvalidMagic
	}

	var raw [HeaderSize]byte
	copy(raw[:], p)

	// Bits 2-3 of flags 7 select the dialect.
	switch formatOf(raw[7]) {
	case FormatINES:
		*hdr = decodeINES(&raw)
	case FormatNES20:
		*hdr = decodeNES20(&raw)
	default:
		panic("unreachable: unknown header format")
	}
	return nil
}

func formatOf(flags7 uint8) Format {
	if (flags7>>2)&0x03 == 2 {
		return FormatNES20
	}
	return FormatINES
}

// Mirroring selector is made of bit 0 and bit 3 of flags 6.
func mirroringOf(flags6 uint8) Mirroring {
	sel := hwio.GetBiti8(flags6, 3)<<1 | hwio.GetBiti8(flags6, 0)
	switch sel {
	case 0:
		return Vertical
	case 1:
		return Horizontal
	case 2:
		return SingleScreen
	case 3:
		return FourScreen
	}
	panic(fmt.Sprintf("unreachable: nametable selector %d", sel))
}

func decodeINES(raw *[HeaderSize]byte) Header {
	flags6, flags7, flags8, flags9, flags10 := raw[6], raw[7], raw[8], raw[9], raw[10]

	var tv TVSystem
	switch {
	case flags10&0x03 == 1 || flags10&0x03 == 3:
		tv = DualCompatible
	case hwio.GetBit8(flags9, 0):
		tv = PAL
	default:
		tv = NTSC
	}

	// 0 PRG-RAM banks is read as 1 bank for compatibility.
	prgram := max(uint64(flags8), 1)

	return Header{
		PRGROMSize:    uint64(raw[4]) * PRGBankSize,
		CHRROMSize:    uint64(raw[5]) * CHRBankSize,
		Mapper:        uint16(flags6>>4 | flags7&0xF0),
		HasTrainer:    hwio.GetBit8(flags6, 3),
		Mirroring:     mirroringOf(flags6),
		Format:        FormatINES,
		PRGRAMSize:    prgram * PRGRAMBankSize,
		TVSystem:      tv,
		PRGRAMPresent: hwio.GetBit8(flags10, 4),
		BusConflicts:  hwio.GetBit8(flags10, 5),
	}
}

func decodeNES20(raw *[HeaderSize]byte) Header {
	flags6, flags7, flags8, flags9 := raw[6], raw[7], raw[8], raw[9]
	flags10, flags11, flags12 := raw[10], raw[11], raw[12]

	prgMSB, chrMSB := hwio.Nibbles(flags9)
	mapperHi, submapper := hwio.Nibbles(flags8)
	prgram, prgnvram := hwio.Nibbles(flags10)
	chrram, chrnvram := hwio.Nibbles(flags11)

	var tv TVSystem
	switch flags12 & 0x03 {
	case 0:
		tv = NTSC
	case 1:
		tv = PAL
	case 2:
		tv = DualCompatible
	case 3:
		tv = Dendy
	default:
		panic("unreachable: CPU/PPU timing selector > 3")
	}

	return Header{
		PRGROMSize:    nes20ROMSize(raw[4], prgMSB, PRGBankSize),
		CHRROMSize:    nes20ROMSize(raw[5], chrMSB, CHRBankSize),
		Mapper:        uint16(mapperHi)<<8 | uint16(flags7&0xF0) | uint16(flags6>>4),
		Submapper:     submapper,
		HasTrainer:    hwio.GetBit8(flags6, 3),
		Mirroring:     mirroringOf(flags6),
		Format:        FormatNES20,
		PRGRAMSize:    nes20RAMSize(prgram),
		CHRRAMSize:    nes20RAMSize(chrram),
		PRGNVRAMSize:  nes20RAMSize(prgnvram),
		CHRNVRAMSize:  nes20RAMSize(chrnvram),
		TVSystem:      tv,
		PRGRAMPresent: prgram != 0,
		BusConflicts:  false, // not representable in NES 2.0
	}
}

// nes20ROMSize decodes a NES 2.0 ROM size from its LSB and the 4-bit MSB
// stored in flags 9. An MSB of 0xF selects the exponent-multiplier notation,
// in which the LSB is EEEEEEMM and the size is 2^E * (MM*2+1) bytes.
func nes20ROMSize(lsb, msb uint8, bankSize uint64) uint64 {
	if msb == 0x0F {
		exp := uint(lsb >> 2)
		mul := uint64(lsb&0x03)*2 + 1
		hi, lo := bits.Mul64(1<<exp, mul)
		if hi != 0 {
			return math.MaxUint64
		}
		return lo
	}
	return (uint64(msb)<<8 | uint64(lsb)) * bankSize
}

// nes20RAMSize decodes a RAM size from its shift count.
func nes20RAMSize(shift uint8) uint64 {
	if shift == 0 {
		return 0
	}
	return 64 << uint64(shift)
}
