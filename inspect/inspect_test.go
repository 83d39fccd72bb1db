package inspect

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-faster/jx"
	"github.com/google/go-cmp/cmp"

	"nesinspect/chr"
	"nesinspect/cpu"
	"nesinspect/ines"
)

const (
	opNOP = 0xEA
	opRTI = 0x40
)

// prgROM returns size bytes of PRG-ROM filled with fill, and the NMI vector
// pointing at 0x8000.
func prgROM(size int, fill byte) []byte {
	prg := bytes.Repeat([]byte{fill}, size)
	if size >= 6 {
		prg[size-6] = 0x00
		prg[size-5] = 0x80
		prg[size-4] = 0x00
		prg[size-3] = 0x00
		prg[size-2] = 0x00
		prg[size-1] = 0x00
	}
	return prg
}

type romBuilder struct {
	header  [ines.HeaderSize]byte
	trainer []byte
	prg     []byte
	chr     []byte
}

// newROM returns an iNES rom with the given number of banks.
func newROM(prgBanks, chrBanks int) *romBuilder {
	b := &romBuilder{
		prg: prgROM(prgBanks*ines.PRGBankSize, opRTI),
		chr: make([]byte, chrBanks*ines.CHRBankSize),
	}
	copy(b.header[:], ines.Magic)
	b.header[4] = byte(prgBanks)
	b.header[5] = byte(chrBanks)
	for i := range b.chr {
		b.chr[i] = byte(i)
	}
	return b
}

func (b *romBuilder) withTrainer() *romBuilder {
	b.header[6] |= 0x08
	b.trainer = bytes.Repeat([]byte{0xAA}, ines.TrainerSize)
	return b
}

func (b *romBuilder) bytes() []byte {
	var buf []byte
	buf = append(buf, b.header[:]...)
	buf = append(buf, b.trainer...)
	buf = append(buf, b.prg...)
	return append(buf, b.chr...)
}

func TestParse(t *testing.T) {
	rom := newROM(1, 1)
	rom.header[6] = 0x01
	res, err := Parse(rom.bytes())
	if err != nil {
		t.Fatal(err)
	}

	wantHdr := ines.Header{
		PRGROMSize: ines.PRGBankSize,
		CHRROMSize: ines.CHRBankSize,
		Mirroring:  ines.Horizontal,
		Format:     ines.FormatINES,
		PRGRAMSize: ines.PRGRAMBankSize,
		TVSystem:   ines.NTSC,
	}
	if diff := cmp.Diff(wantHdr, res.Header); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}

	if len(res.Graphics.PatternTables) != chr.PatternTablesPerBank {
		t.Errorf("got %d pattern tables, want %d", len(res.Graphics.PatternTables), chr.PatternTablesPerBank)
	}
	if want := chr.DecodeTile(rom.chr[:chr.TileSize]); res.Graphics.PatternTables[0][0] != want {
		t.Errorf("tile 0 = %v, want %v", res.Graphics.PatternTables[0][0], want)
	}

	if res.Disasm == nil {
		t.Fatalf("missing disassembly")
	}
	if diff := cmp.Diff(map[uint16]string{0x2000: "nmi"}, res.Disasm.Labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
	if in := res.Disasm.Instructions[0x2000]; in.Mnemonic != cpu.RTI {
		t.Errorf("instruction at entry = %v, want RTI", in)
	}
}

func TestParseTrainer(t *testing.T) {
	rom := newROM(1, 1).withTrainer()
	rom.prg[0] = opNOP

	res, err := Parse(rom.bytes())
	if err != nil {
		t.Fatal(err)
	}
	if !res.Header.HasTrainer {
		t.Errorf("trainer flag not set")
	}

	// PRG starts after the trainer: NOP then RTI.
	want := []uint16{0x2000, 0x2001}
	if diff := cmp.Diff(want, res.Disasm.Offsets()); diff != "" {
		t.Errorf("offsets mismatch (-want +got):\n%s", diff)
	}
}

func TestParseCHRRAM(t *testing.T) {
	res, err := Parse(newROM(2, 0).bytes())
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Graphics.PatternTables) != 0 {
		t.Errorf("got %d pattern tables, want 0", len(res.Graphics.PatternTables))
	}
}

func TestParseErrors(t *testing.T) {
	// NES 2.0 header, sizes use the exponent-multiplier notation when the
	// MSB nibble is 0xF: 0x34 is 2^13 (8KB), 0x30 is 2^12 (4KB).
	nes20 := func(prglsb, chrlsb, sizemsb byte) []byte {
		return []byte{'N', 'E', 'S', 0x1A, prglsb, chrlsb, 0, 0x08, 0, sizemsb, 0, 0, 0, 0, 0, 0}
	}
	cat := func(bufs ...[]byte) []byte { return bytes.Join(bufs, nil) }

	tests := []struct {
		name  string
		buf   []byte
		opts  []Option
		stage Stage
		err   error
	}{
		{
			name:  "bad magic",
			buf:   append([]byte("NES\x00"), make([]byte, 12)...),
			stage: StageHeader,
			err:   ines.ErrInvalidMagic,
		},
		{
			name:  "short header",
			buf:   []byte("NES\x1A\x01"),
			stage: StageHeader,
			err:   ines.ErrTruncated,
		},
		{
			name:  "truncated PRG",
			buf:   newROM(2, 1).bytes()[:ines.HeaderSize+ines.PRGBankSize],
			stage: StageContainer,
			err:   ines.ErrTruncated,
		},
		{
			name:  "truncated trainer",
			buf:   newROM(1, 1).withTrainer().bytes()[:ines.HeaderSize+100],
			stage: StageContainer,
			err:   ines.ErrTruncated,
		},
		{
			name:  "truncated CHR",
			buf:   newROM(1, 1).bytes()[:ines.HeaderSize+ines.PRGBankSize+10],
			stage: StageContainer,
			err:   ines.ErrTruncated,
		},
		{
			name:  "misaligned PRG",
			buf:   cat(nes20(0x34, 0, 0x0F), prgROM(0x2000, opRTI)),
			stage: StageDisassembly,
			err:   cpu.ErrBankSize,
		},
		{
			name:  "misaligned PRG and truncated CHR",
			buf:   cat(nes20(0x34, 1, 0x0F), prgROM(0x2000, opRTI)),
			stage: StageDisassembly,
			err:   cpu.ErrBankSize,
		},
		{
			name:  "misaligned PRG skipped, truncated CHR",
			buf:   cat(nes20(0x34, 1, 0x0F), prgROM(0x2000, opRTI)),
			opts:  []Option{SkipDisassembly()},
			stage: StageContainer,
			err:   ines.ErrTruncated,
		},
		{
			name:  "misaligned CHR",
			buf:   cat(nes20(1, 0x30, 0xF0), prgROM(ines.PRGBankSize, opRTI), make([]byte, 0x1000)),
			stage: StageGraphics,
			err:   chr.ErrBankSize,
		},
		{
			name:  "strict incomplete trace",
			buf:   cat(newROM(1, 0).bytes()[:ines.HeaderSize], prgROM(ines.PRGBankSize, opNOP)),
			opts:  []Option{WithMaxSteps(10), Strict()},
			stage: StageDisassembly,
			err:   cpu.ErrTraceIncomplete,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Parse(tt.buf, tt.opts...)
			if err == nil {
				t.Fatalf("Parse succeeded: %+v", res)
			}
			if res != nil {
				t.Errorf("Parse returned a result along with error %v", err)
			}

			var perr *Error
			if !errors.As(err, &perr) {
				t.Fatalf("error %v (%T) is not an *Error", err, err)
			}
			if perr.Stage != tt.stage {
				t.Errorf("stage = %s, want %s (%v)", perr.Stage, tt.stage, err)
			}
			if !errors.Is(err, tt.err) {
				t.Errorf("error = %v, want %v", err, tt.err)
			}
		})
	}
}

func TestParseIncompleteTrace(t *testing.T) {
	rom := newROM(1, 1)
	rom.prg = prgROM(ines.PRGBankSize, opNOP)

	res, err := Parse(rom.bytes(), WithMaxSteps(10))
	if err != nil {
		t.Fatal(err)
	}
	if !errors.Is(res.Disasm.Err(), cpu.ErrTraceIncomplete) {
		t.Errorf("Disasm.Err() = %v, want %v", res.Disasm.Err(), cpu.ErrTraceIncomplete)
	}
	if len(res.Disasm.Instructions) != 10 {
		t.Errorf("got %d instructions, want 10", len(res.Disasm.Instructions))
	}
}

func TestParseOptions(t *testing.T) {
	rom := newROM(1, 1)
	// RESET vector at 0xC000.
	rom.prg[ines.PRGBankSize-3] = 0xC0

	res, err := Parse(rom.bytes(), SkipDisassembly())
	if err != nil {
		t.Fatal(err)
	}
	if res.Disasm != nil {
		t.Errorf("disassembly was not skipped")
	}

	res, err = Parse(rom.bytes(), WithResetTrace(true))
	if err != nil {
		t.Fatal(err)
	}
	want := map[uint16]string{0x2000: "nmi", 0x6000: "reset"}
	if diff := cmp.Diff(want, res.Disasm.Labels); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestParseIdempotent(t *testing.T) {
	buf := newROM(2, 1).bytes()

	r1, err := Parse(buf)
	if err != nil {
		t.Fatal(err)
	}
	r2, err := Parse(buf)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(r1, r2); diff != "" {
		t.Errorf("parsing twice gave different results:\n%s", diff)
	}

	// Results don't alias the input.
	chrbuf := buf[len(buf)-ines.CHRBankSize:]
	for i := range chrbuf {
		chrbuf[i] = 0xFF
	}
	if diff := cmp.Diff(r1, r2); diff != "" {
		t.Errorf("result changed with input:\n%s", diff)
	}
	r3, err := Parse(buf)
	if err != nil {
		t.Fatal(err)
	}
	if cmp.Equal(r1.Graphics, r3.Graphics) {
		t.Errorf("different inputs gave the same graphics")
	}
}

func TestErrorString(t *testing.T) {
	err := &Error{Stage: StageGraphics, Err: chr.ErrBankSize}
	if got, want := err.Error(), "graphics: "+chr.ErrBankSize.Error(); got != want {
		t.Errorf("Error() = %q, want %q", got, want)
	}
	if Stage(42).String() != "Stage(42)" {
		t.Errorf("unexpected string for unknown stage: %s", Stage(42))
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "game.nes")
	if err := os.WriteFile(path, newROM(1, 1).bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ParseFile(path); err != nil {
		t.Errorf("ParseFile: %v", err)
	}

	_, err := ParseFile(filepath.Join(t.TempDir(), "missing.nes"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ParseFile(missing) error = %v, want %v", err, fs.ErrNotExist)
	}

	bad := filepath.Join(t.TempDir(), "bad.nes")
	if err := os.WriteFile(bad, []byte("not a rom, not a rom"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = ParseFile(bad)
	var perr *Error
	if !errors.As(err, &perr) || perr.Stage != StageHeader {
		t.Errorf("ParseFile(bad) error = %v, want header stage error", err)
	}
}

func TestMarshalJSON(t *testing.T) {
	rom := newROM(1, 1)
	copy(rom.chr, []byte{
		0x41, 0xC2, 0x44, 0x48, 0x10, 0x20, 0x40, 0x80,
		0x01, 0x02, 0x04, 0x08, 0x16, 0x21, 0x42, 0x87,
	})
	res, err := Parse(rom.bytes())
	if err != nil {
		t.Fatal(err)
	}

	buf, err := res.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if !jx.Valid(buf) {
		t.Fatalf("invalid JSON: %s", buf)
	}

	var got struct {
		Header struct {
			Format     string `json:"format"`
			PRGROMSize uint64 `json:"prg_rom_size"`
			Mirroring  string `json:"mirroring"`
			TVSystem   string `json:"tv_system"`
		} `json:"header"`
		CHR struct {
			PatternTables [][]string `json:"pattern_tables"`
		} `json:"chr"`
		Disasm struct {
			Routines []struct {
				Label    string `json:"label"`
				Entry    uint16 `json:"entry"`
				Complete bool   `json:"complete"`
			} `json:"routines"`
			Instructions []struct {
				Offset   uint16 `json:"offset"`
				Label    string `json:"label"`
				Bytes    string `json:"bytes"`
				Mnemonic string `json:"mnemonic"`
			} `json:"instructions"`
		} `json:"disasm"`
	}
	if err := json.Unmarshal(buf, &got); err != nil {
		t.Fatal(err)
	}

	if got.Header.Format != "iNES" || got.Header.PRGROMSize != ines.PRGBankSize ||
		got.Header.Mirroring != "Vertical" || got.Header.TVSystem != "NTSC" {
		t.Errorf("header = %+v", got.Header)
	}
	if len(got.CHR.PatternTables) != 2 || len(got.CHR.PatternTables[0]) != chr.TilesPerTable {
		t.Fatalf("unexpected pattern tables shape")
	}
	if tile := got.CHR.PatternTables[0][0]; tile != "1003500c103010c003280c023008c02a" {
		t.Errorf("tile 0 = %s", tile)
	}
	if len(got.Disasm.Routines) != 1 || got.Disasm.Routines[0].Label != "nmi" ||
		got.Disasm.Routines[0].Entry != 0x8000 || !got.Disasm.Routines[0].Complete {
		t.Errorf("routines = %+v", got.Disasm.Routines)
	}
	if len(got.Disasm.Instructions) != 1 {
		t.Fatalf("got %d instructions, want 1", len(got.Disasm.Instructions))
	}
	in := got.Disasm.Instructions[0]
	if in.Offset != 0x2000 || in.Label != "nmi" || in.Bytes != "40" || in.Mnemonic != "RTI" {
		t.Errorf("instruction = %+v", in)
	}

	// Skipped disassembly is null.
	res, err = Parse(rom.bytes(), SkipDisassembly())
	if err != nil {
		t.Fatal(err)
	}
	buf, _ = res.MarshalJSON()
	if !bytes.Contains(buf, []byte(`"disasm":null`)) {
		t.Errorf("disasm should be null: %s", buf)
	}
}
