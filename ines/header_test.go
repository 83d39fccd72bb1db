package ines

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func hdr(b ...byte) []byte {
	raw := make([]byte, HeaderSize)
	copy(raw, b)
	return raw
}

func TestDecodeHeader(t *testing.T) {
	tests := []struct {
		name string
		raw  []byte
		want Header
	}{
		{
			name: "ines/mapper1",
			raw:  hdr(0x4E, 0x45, 0x53, 0x1A, 0x10, 0x00, 0x11, 0x00),
			want: Header{
				PRGROMSize: 16 * PRGBankSize,
				CHRROMSize: 0,
				Mapper:     1,
				Mirroring:  Horizontal,
				Format:     FormatINES,
				PRGRAMSize: 1 * PRGRAMBankSize,
				TVSystem:   NTSC,
			},
		},
		{
			name: "nes20/nrom",
			raw:  hdr(0x4E, 0x45, 0x53, 0x1A, 0x01, 0x01, 0x00, 0x08),
			want: Header{
				PRGROMSize: PRGBankSize,
				CHRROMSize: CHRBankSize,
				Mirroring:  Vertical,
				Format:     FormatNES20,
				TVSystem:   NTSC,
			},
		},
		{
			name: "ines/all flags",
			raw:  hdr('N', 'E', 'S', 0x1A, 0x02, 0x04, 0xF9, 0x40, 0x03, 0x01, 0x30),
			want: Header{
				PRGROMSize:    2 * PRGBankSize,
				CHRROMSize:    4 * CHRBankSize,
				Mapper:        0x4F,
				HasTrainer:    true,
				Mirroring:     FourScreen,
				Format:        FormatINES,
				PRGRAMSize:    3 * PRGRAMBankSize,
				TVSystem:      PAL,
				PRGRAMPresent: true,
				BusConflicts:  true,
			},
		},
		{
			name: "nes20/all fields",
			raw:  hdr('N', 'E', 'S', 0x1A, 0x20, 0x10, 0x58, 0xA8, 0x35, 0x21, 0x97, 0x07, 0x03),
			want: Header{
				PRGROMSize:    0x120 * PRGBankSize,
				CHRROMSize:    0x210 * CHRBankSize,
				Mapper:        0x5A5,
				Submapper:     3,
				HasTrainer:    true,
				Mirroring:     SingleScreen,
				Format:        FormatNES20,
				PRGRAMSize:    64 << 7,
				PRGNVRAMSize:  64 << 9,
				CHRRAMSize:    64 << 7,
				CHRNVRAMSize:  0,
				TVSystem:      Dendy,
				PRGRAMPresent: true,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeHeader(tt.raw)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("header mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestDecodeHeaderInvalidMagic(t *testing.T) {
	for _, raw := range [][]byte{
		hdr(0x4E, 0x45, 0x53, 0x23, 0x10, 0x00, 0x11, 0x00),
		hdr(0x4E, 0x45, 0x53, 0x23, 0x10, 0x00, 0x08, 0x08),
		hdr(),
	} {
		if _, err := DecodeHeader(raw); !errors.Is(err, ErrInvalidMagic) {
			t.Errorf("DecodeHeader(% X) error = %v, want %v", raw[:8], err, ErrInvalidMagic)
		}
	}
}

func TestDecodeHeaderTooShort(t *testing.T) {
	_, err := DecodeHeader([]byte(Magic))
	if !errors.Is(err, ErrTruncated) {
		t.Errorf("error = %v, want %v", err, ErrTruncated)
	}
}

func TestDecodeHeaderTotal(t *testing.T) {
	// Every flags 6/7 combination must decode to exactly one dialect, without
	// panicking.
	for f6 := range 256 {
		for f7 := range 256 {
			for _, f10 := range []byte{0, 1, 2, 3, 0x30} {
				raw := hdr('N', 'E', 'S', 0x1A, 1, 1, byte(f6), byte(f7), 0, 0xFF, f10, 0xFF, byte(f6))
				h, err := DecodeHeader(raw)
				if err != nil {
					t.Fatalf("flags6=%02X flags7=%02X: %v", f6, f7, err)
				}
				want := FormatINES
				if (f7>>2)&3 == 2 {
					want = FormatNES20
				}
				if h.Format != want {
					t.Fatalf("flags7=%02X: format = %v, want %v", f7, h.Format, want)
				}
			}
		}
	}
}

func TestINESTVSystem(t *testing.T) {
	tests := []struct {
		flags9, flags10 byte
		want            TVSystem
	}{
		{0, 0, NTSC},
		{1, 0, PAL},
		{0, 1, DualCompatible},
		{1, 3, DualCompatible},
		{1, 2, PAL},
		{0, 2, NTSC},
	}
	for _, tt := range tests {
		h, err := DecodeHeader(hdr('N', 'E', 'S', 0x1A, 1, 0, 0, 0, 0, tt.flags9, tt.flags10))
		if err != nil {
			t.Fatal(err)
		}
		if h.TVSystem != tt.want {
			t.Errorf("flags9=%d flags10=%d: tv = %v, want %v", tt.flags9, tt.flags10, h.TVSystem, tt.want)
		}
	}
}

func TestNES20TVSystem(t *testing.T) {
	for sel, want := range []TVSystem{NTSC, PAL, DualCompatible, Dendy} {
		h, err := DecodeHeader(hdr('N', 'E', 'S', 0x1A, 1, 0, 0, 0x08, 0, 0, 0, 0, byte(sel)|0xFC))
		if err != nil {
			t.Fatal(err)
		}
		if h.TVSystem != want {
			t.Errorf("flags12=%d: tv = %v, want %v", sel, h.TVSystem, want)
		}
		if h.BusConflicts {
			t.Errorf("bus conflicts must always be false with NES 2.0")
		}
	}
}

func TestNES20ExponentMultiplier(t *testing.T) {
	tests := []struct {
		lsb, msb byte
		bank     uint64
		want     uint64
	}{
		// 2^1 * (3*2+1). Bank multiplication would give 0xF07 * 16KiB.
		{lsb: 0x07, msb: 0xF, bank: PRGBankSize, want: 14},
		// 2^14 * 1 = 16KiB, the exponent-multiplier way to say "1 bank".
		{lsb: 14 << 2, msb: 0xF, bank: PRGBankSize, want: 16384},
		// 2^10 * (1*2+1)
		{lsb: 10<<2 | 1, msb: 0xF, bank: CHRBankSize, want: 3072},
		// 2^63 * 7 overflows.
		{lsb: 63<<2 | 3, msb: 0xF, bank: PRGBankSize, want: ^uint64(0)},
		// MSB 0xE is still a bank count.
		{lsb: 0x07, msb: 0xE, bank: PRGBankSize, want: 0xE07 * PRGBankSize},
	}
	for _, tt := range tests {
		if got := nes20ROMSize(tt.lsb, tt.msb, tt.bank); got != tt.want {
			t.Errorf("nes20ROMSize(%02X, %X) = %d, want %d", tt.lsb, tt.msb, got, tt.want)
		}
	}

	// Through the header: PRG MSB nibble is flags9 low nibble.
	h, err := DecodeHeader(hdr('N', 'E', 'S', 0x1A, 0x07, 0x00, 0, 0x08, 0, 0x0F))
	if err != nil {
		t.Fatal(err)
	}
	if h.PRGROMSize != 14 {
		t.Errorf("PRGROMSize = %d, want 14", h.PRGROMSize)
	}
}

func TestNES20RAMSize(t *testing.T) {
	if got := nes20RAMSize(0); got != 0 {
		t.Errorf("nes20RAMSize(0) = %d, want 0", got)
	}
	for shift := uint8(1); shift < 16; shift++ {
		if got, want := nes20RAMSize(shift), uint64(64)<<shift; got != want {
			t.Errorf("nes20RAMSize(%d) = %d, want %d", shift, got, want)
		}
	}
}

func TestMirroring(t *testing.T) {
	tests := []struct {
		flags6 byte
		want   Mirroring
	}{
		{0x00, Vertical},
		{0x01, Horizontal},
		{0x08, SingleScreen},
		{0x09, FourScreen},
		{0xF6, Vertical},
	}
	for _, tt := range tests {
		if got := mirroringOf(tt.flags6); got != tt.want {
			t.Errorf("mirroringOf(%02X) = %v, want %v", tt.flags6, got, tt.want)
		}
	}
}

func TestEnumStrings(t *testing.T) {
	for _, tt := range []struct {
		got, want string
	}{
		{FourScreen.String(), "Four Screen"},
		{SingleScreen.String(), "Single Screen"},
		{DualCompatible.String(), "Dual Compatible"},
		{Dendy.String(), "Dendy"},
		{FormatNES20.String(), "NES 2.0"},
		{Mirroring(9).String(), "Mirroring(9)"},
	} {
		if tt.got != tt.want {
			t.Errorf("got %q, want %q", tt.got, tt.want)
		}
	}
}
