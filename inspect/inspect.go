// Package inspect decodes a complete ROM image: header, code and graphics.
package inspect

import (
	"fmt"
	"os"

	"nesinspect/chr"
	"nesinspect/cpu"
	"nesinspect/ines"
	"nesinspect/log"
)

// Result aggregates what has been decoded from a ROM image. It never
// references the input buffer.
type Result struct {
	Header   ines.Header
	Graphics *chr.Data
	Disasm   *cpu.Listing // nil if disassembly was skipped
}

type config struct {
	skipDisasm bool
	disasm     cpu.Options
}

// An Option configures Parse.
type Option func(*config)

// SkipDisassembly disables the disassembly stage.
func SkipDisassembly() Option {
	return func(c *config) { c.skipDisasm = true }
}

// WithMaxSteps bounds the number of instructions decoded per traced routine.
func WithMaxSteps(n int) Option {
	return func(c *config) { c.disasm.MaxSteps = n }
}

// WithResetTrace also disassembles the code reachable from the RESET vector.
func WithResetTrace(enabled bool) Option {
	return func(c *config) { c.disasm.TraceReset = enabled }
}

// Strict makes a routine that doesn't terminate fail the whole parse.
func Strict() Option {
	return func(c *config) { c.disasm.Strict = true }
}

// Parse decodes the ROM image in buf. Stages run in order (header, PRG
// slicing, disassembly, CHR slicing, graphics) and the first failure stops
// the parse. The returned error is always an *Error.
func Parse(buf []byte, opts ...Option) (*Result, error) {
	var cfg config
	for _, opt := range opts {
		opt(&cfg)
	}

	hdr, err := ines.DecodeHeader(buf)
	if err != nil {
		return nil, &Error{Stage: StageHeader, Err: err}
	}

	res := &Result{Header: hdr}

	prg, err := ines.Section(buf, "PRG", hdr.PRGOffset(), hdr.PRGROMSize)
	if err != nil {
		return nil, &Error{Stage: StageContainer, Err: err}
	}

	if !cfg.skipDisasm {
		res.Disasm, err = cpu.Disassemble(prg, cfg.disasm)
		if err != nil {
			return nil, &Error{Stage: StageDisassembly, Err: err}
		}
	}

	chrbuf, err := ines.Section(buf, "CHR", hdr.CHROffset(), hdr.CHRROMSize)
	if err != nil {
		return nil, &Error{Stage: StageContainer, Err: err}
	}

	res.Graphics, err = chr.Decode(chrbuf)
	if err != nil {
		return nil, &Error{Stage: StageGraphics, Err: err}
	}

	log.ModInspect.DebugZ("parsed rom").
		Stringer("format", hdr.Format).
		Uint64("prg", hdr.PRGROMSize).
		Uint64("chr", hdr.CHRROMSize).
		Int("tables", len(res.Graphics.PatternTables)).
		Bool("disasm", res.Disasm != nil).
		End()
	return res, nil
}

// ParseFile reads the ROM image at path then parses it.
func ParseFile(path string, opts ...Option) (*Result, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	res, err := Parse(buf, opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return res, nil
}
