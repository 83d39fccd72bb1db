// Package cpu disassembles 6502 code found in PRG-ROM, starting from the
// interrupt vectors.
package cpu

import (
	"nesinspect/hw/hwio"
	"nesinspect/log"
)

// Locations reserved for vector pointers.
const (
	NMIVector   = 0xFFFA // Non-Maskable Interrupt
	ResetVector = 0xFFFC // Reset
	IRQVector   = 0xFFFE // Interrupt Request
)

// CPU is the context used to walk through code. Instructions are decoded,
// not executed: registers only hold the power-up state.
type CPU struct {
	Bus *hwio.Table
	RAM [0x800]byte // Internal RAM

	// cpu registers
	A, X, Y, SP uint8
	PC          uint16
	P           P
}

// NewCPU creates a CPU with prg mapped in the cartridge space.
func NewCPU(prg []byte) *CPU {
	cpu := &CPU{Bus: hwio.NewTable("cpu")}
	cpu.InitBus(prg)
	cpu.Reset(0)
	return cpu
}

func (c *CPU) InitBus(prg []byte) {
	c.Bus.Reset()

	// 0x0000-0x1FFF -> RAM, mirrored.
	c.Bus.MapMem(0x0000, &hwio.Mem{
		Name:  "RAM",
		Data:  c.RAM[:],
		VSize: 0x2000,
	})

	// 0x2000-0x3FFF -> PPU registers.
	c.Bus.MapDevice(0x2000, &hwio.Device{Name: "PPU", Size: 0x2000})

	// 0x4000-0x4017 -> APU and IO registers.
	c.Bus.MapDevice(0x4000, &hwio.Device{Name: "IO", Size: 0x18})

	// 0x4018-0x7FFF -> test mode registers, expansion ROM and PRG-RAM.
	c.Bus.MapDevice(0x4018, &hwio.Device{Name: "cart", Size: 0x8000 - 0x4018})

	// 0x8000-0xFFFF -> PRG-ROM, mirrored.
	if len(prg) > 0 {
		c.Bus.MapMem(0x8000, &hwio.Mem{
			Name:  "PRG",
			Data:  prg,
			VSize: 0x8000,
		})
	}
}

// Reset puts the CPU in its power-up state, ready to decode at pc.
func (c *CPU) Reset(pc uint16) {
	c.RAM = [0x800]byte{}
	c.A, c.X, c.Y = 0, 0, 0
	c.SP = 0xFD
	c.P = 0x34
	c.PC = pc
}

// Step decodes the instruction at PC and moves PC past it.
func (c *CPU) Step() (Instruction, error) {
	in, err := Decode(c.Bus, c.PC)
	if err != nil {
		return in, err
	}

	log.ModCPU.DebugZ("step").
		Hex16("pc", c.PC).
		Stringer("op", in).
		Stringer("p", c.P).
		End()

	c.PC += uint16(len(in.Bytes))
	return in, nil
}

// P is the 6502 Processor Status Register.
type P uint8

const (
	pbitN = 7 - iota // Negative flag
	pbitV            // oVerflow flag
	pbitU            // Unused
	pbitB            // Break flag
	pbitD            // Decimal mode flag
	pbitI            // Interrupt disable flag
	pbitZ            // Zero flag
	pbitC            // Carry flag
)

func (p P) N() bool { return p&(1<<pbitN) != 0 }
func (p P) V() bool { return p&(1<<pbitV) != 0 }
func (p P) B() bool { return p&(1<<pbitB) != 0 }
func (p P) D() bool { return p&(1<<pbitD) != 0 }
func (p P) I() bool { return p&(1<<pbitI) != 0 }
func (p P) Z() bool { return p&(1<<pbitZ) != 0 }
func (p P) C() bool { return p&(1<<pbitC) != 0 }

func (p P) ibit(i int) uint8 {
	return (uint8(p) & (1 << i)) >> i
}

func (p P) String() string {
	const bits = "nvubdizcNVUBDIZC"

	s := make([]byte, 8)
	for i := range 8 {
		s[i] = bits[i+int(8*p.ibit(7-i))]
	}
	return string(s)
}
