package inspect

import (
	"encoding/hex"

	"github.com/go-faster/jx"

	"nesinspect/chr"
	"nesinspect/cpu"
	"nesinspect/ines"
)

// MarshalJSON implements json.Marshaler.
func (r *Result) MarshalJSON() ([]byte, error) {
	var e jx.Encoder
	r.Encode(&e)
	return e.Bytes(), nil
}

// Encode writes r as a JSON object.
func (r *Result) Encode(e *jx.Encoder) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("header", func(e *jx.Encoder) { encodeHeader(e, &r.Header) })
		e.Field("chr", func(e *jx.Encoder) { encodeGraphics(e, r.Graphics) })
		e.Field("disasm", func(e *jx.Encoder) {
			if r.Disasm == nil {
				e.Null()
				return
			}
			encodeListing(e, r.Disasm)
		})
	})
}

func encodeHeader(e *jx.Encoder, hdr *ines.Header) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("format", func(e *jx.Encoder) { e.Str(hdr.Format.String()) })
		e.Field("prg_rom_size", func(e *jx.Encoder) { e.UInt64(hdr.PRGROMSize) })
		e.Field("chr_rom_size", func(e *jx.Encoder) { e.UInt64(hdr.CHRROMSize) })
		e.Field("mapper", func(e *jx.Encoder) { e.UInt16(hdr.Mapper) })
		e.Field("submapper", func(e *jx.Encoder) { e.UInt8(hdr.Submapper) })
		e.Field("trainer", func(e *jx.Encoder) { e.Bool(hdr.HasTrainer) })
		e.Field("mirroring", func(e *jx.Encoder) { e.Str(hdr.Mirroring.String()) })
		e.Field("prg_ram_size", func(e *jx.Encoder) { e.UInt64(hdr.PRGRAMSize) })
		e.Field("chr_ram_size", func(e *jx.Encoder) { e.UInt64(hdr.CHRRAMSize) })
		e.Field("prg_nvram_size", func(e *jx.Encoder) { e.UInt64(hdr.PRGNVRAMSize) })
		e.Field("chr_nvram_size", func(e *jx.Encoder) { e.UInt64(hdr.CHRNVRAMSize) })
		e.Field("tv_system", func(e *jx.Encoder) { e.Str(hdr.TVSystem.String()) })
		e.Field("prg_ram_present", func(e *jx.Encoder) { e.Bool(hdr.PRGRAMPresent) })
		e.Field("bus_conflicts", func(e *jx.Encoder) { e.Bool(hdr.BusConflicts) })
	})
}

// Tiles are encoded as hex strings, 4 digits per row.
func encodeGraphics(e *jx.Encoder, data *chr.Data) {
	if data == nil {
		e.Null()
		return
	}
	e.Obj(func(e *jx.Encoder) {
		e.Field("pattern_tables", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for i := range data.PatternTables {
					encodePatternTable(e, &data.PatternTables[i])
				}
			})
		})
	})
}

func encodePatternTable(e *jx.Encoder, pt *chr.PatternTable) {
	var buf [chr.TileRows * 2]byte
	var str [chr.TileRows * 4]byte
	e.Arr(func(e *jx.Encoder) {
		for _, tile := range pt {
			for i, row := range tile {
				buf[2*i] = byte(row >> 8)
				buf[2*i+1] = byte(row)
			}
			hex.Encode(str[:], buf[:])
			e.Str(string(str[:]))
		}
	})
}

func encodeListing(e *jx.Encoder, l *cpu.Listing) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("routines", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, r := range l.Routines {
					e.Obj(func(e *jx.Encoder) {
						e.Field("label", func(e *jx.Encoder) { e.Str(r.Label) })
						e.Field("vector", func(e *jx.Encoder) { e.UInt16(r.Vector) })
						e.Field("entry", func(e *jx.Encoder) { e.UInt16(r.Entry) })
						e.Field("steps", func(e *jx.Encoder) { e.Int(r.Steps) })
						e.Field("complete", func(e *jx.Encoder) { e.Bool(r.Complete) })
					})
				}
			})
		})
		e.Field("instructions", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, off := range l.Offsets() {
					encodeInstruction(e, off, l.Labels[off], l.Instructions[off])
				}
			})
		})
	})
}

func encodeInstruction(e *jx.Encoder, off uint16, label string, in cpu.Instruction) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("offset", func(e *jx.Encoder) { e.UInt16(off) })
		if label != "" {
			e.Field("label", func(e *jx.Encoder) { e.Str(label) })
		}
		e.Field("bytes", func(e *jx.Encoder) { e.Str(hex.EncodeToString(in.Bytes)) })
		e.Field("mnemonic", func(e *jx.Encoder) { e.Str(in.Mnemonic.String()) })
		if in.Operand != nil {
			e.Field("operand", func(e *jx.Encoder) { e.Str(in.Operand.String()) })
		}
		if in.Illegal {
			e.Field("illegal", func(e *jx.Encoder) { e.Bool(true) })
		}
	})
}
