package cpu

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"maps"
	"slices"

	"nesinspect/hw/hwio"
	"nesinspect/log"
)

const (
	PRGBankSize = 0x4000

	// LowestPRGAddr is the lowest address cartridge code can live at (PRG-RAM
	// included). Listing offsets are relative to it.
	LowestPRGAddr = 0x6000

	DefaultMaxSteps = 0x10000
)

var (
	ErrBankSize        = errors.New("invalid PRG ROM data")
	ErrUnknownOpcode   = errors.New("unknown opcode")
	ErrTraceIncomplete = errors.New("trace did not reach RTI")
)

// Options controls the disassembler. The zero value is usable.
type Options struct {
	// MaxSteps bounds the number of instructions decoded per routine
	// (DefaultMaxSteps if <= 0).
	MaxSteps int

	// TraceReset also traces the code pointed to by the RESET vector.
	TraceReset bool

	// Strict turns incomplete traces into errors.
	Strict bool
}

// Routine describes the trace started at an interrupt vector.
type Routine struct {
	Label    string
	Vector   uint16 // vector location, e.g NMIVector
	Entry    uint16 // address the vector points to
	Steps    int    // number of decoded instructions
	Complete bool   // the trace reached RTI
}

// Offset returns the listing offset of the routine entry point.
func (r Routine) Offset() uint16 { return r.Entry - LowestPRGAddr }

// Listing is the result of the disassembly. Instructions and labels are
// keyed by their offset from LowestPRGAddr.
type Listing struct {
	Instructions map[uint16]Instruction
	Labels       map[uint16]string

	// Routines lists traced vectors, in vector order. Vectors pointing below
	// LowestPRGAddr are unused and don't appear here.
	Routines []Routine
}

var vectors = [...]struct {
	label string
	addr  uint16
}{
	{"nmi", NMIVector},
	{"reset", ResetVector},
	{"irq", IRQVector},
}

// Disassemble traces the code reachable from the NMI and IRQ vectors (and
// RESET if requested) found at the end of prg. Each trace is a straight line
// ending at the first RTI.
func Disassemble(prg []byte, opts Options) (*Listing, error) {
	if len(prg)%PRGBankSize != 0 {
		return nil, fmt.Errorf("%w: size %d is not a multiple of %d", ErrBankSize, len(prg), PRGBankSize)
	}

	l := &Listing{
		Instructions: make(map[uint16]Instruction),
		Labels:       make(map[uint16]string),
	}
	if len(prg) == 0 {
		return l, nil
	}

	maxSteps := opts.MaxSteps
	if maxSteps <= 0 {
		maxSteps = DefaultMaxSteps
	}

	cpu := NewCPU(prg)
	for _, v := range vectors {
		if v.addr == ResetVector && !opts.TraceReset {
			continue
		}

		off := len(prg) - (0x10000 - int(v.addr))
		entry := hwio.LE16(prg[off], prg[off+1])
		if entry < LowestPRGAddr {
			log.ModCPU.DebugZ("unused vector").
				String("label", v.label).
				Hex16("entry", entry).
				End()
			continue
		}

		r, err := l.trace(cpu, v.label, v.addr, entry, maxSteps)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", v.label, err)
		}
		if !r.Complete && opts.Strict {
			return nil, fmt.Errorf("%s: %w after %d instructions", v.label, ErrTraceIncomplete, r.Steps)
		}
		l.Routines = append(l.Routines, r)
	}

	return l, nil
}

func (l *Listing) trace(cpu *CPU, label string, vector, entry uint16, maxSteps int) (Routine, error) {
	r := Routine{
		Label:  label,
		Vector: vector,
		Entry:  entry,
	}
	l.addLabel(r.Offset(), label)

	cpu.Reset(entry)
	for r.Steps < maxSteps {
		pc := cpu.PC
		in, err := cpu.Step()
		if err != nil {
			return r, err
		}
		r.Steps++

		if pc >= LowestPRGAddr {
			l.Instructions[pc-LowestPRGAddr] = in
		}
		if in.Mnemonic == RTI {
			r.Complete = true
			break
		}
	}

	log.ModCPU.DebugZ("traced routine").
		String("label", label).
		Hex16("entry", entry).
		Int("steps", r.Steps).
		Bool("complete", r.Complete).
		End()
	return r, nil
}

// addLabel attaches label to off. Vectors sharing an entry point share a
// label.
func (l *Listing) addLabel(off uint16, label string) {
	if prev, ok := l.Labels[off]; ok {
		label = prev + "/" + label
	}
	l.Labels[off] = label
}

// Offsets returns the offsets of all instructions, in ascending order.
func (l *Listing) Offsets() []uint16 {
	return slices.Sorted(maps.Keys(l.Instructions))
}

// Err reports the routines which trace didn't terminate.
func (l *Listing) Err() error {
	var errs []error
	for _, r := range l.Routines {
		if !r.Complete {
			errs = append(errs, fmt.Errorf("%s: %w after %d instructions", r.Label, ErrTraceIncomplete, r.Steps))
		}
	}
	return errors.Join(errs...)
}

// WriteTo writes the listing in address order, one instruction per line.
// Undocumented instructions are marked with a '*'.
//
//	nmi:
//	$2000: A9 10     LDA #$10
//	$2002: 04 15    *NOP $15
func (l *Listing) WriteTo(w io.Writer) (int64, error) {
	var bb bytes.Buffer
	for _, off := range l.Offsets() {
		if label, ok := l.Labels[off]; ok {
			bb.WriteString(label)
			bb.WriteString(":\n")
		}
		bb.Write(appendLine(nil, off, l.Instructions[off]))
	}
	n, err := w.Write(bb.Bytes())
	return int64(n), err
}

func hexEncode(dst []byte, v byte) {
	const hextable = "0123456789ABCDEF"
	dst[0] = hextable[v>>4]
	dst[1] = hextable[v&0x0f]
}

// appendLine appends the listing line of the instruction at off.
func appendLine(dst []byte, off uint16, in Instruction) []byte {
	const opcodeCol = 17

	var line [opcodeCol]byte
	for i := range line {
		line[i] = ' '
	}
	line[0] = '$'
	hexEncode(line[1:], byte(off>>8))
	hexEncode(line[3:], byte(off))
	line[5] = ':'
	for i, b := range in.Bytes {
		hexEncode(line[7+3*i:], b)
	}
	if in.Illegal {
		line[opcodeCol-1] = '*'
	}

	dst = append(dst, line[:]...)
	dst = append(dst, in.String()...)
	return append(dst, '\n')
}
