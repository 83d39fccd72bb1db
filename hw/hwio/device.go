package hwio

// Device is a register range with no backing memory (PPU and APU registers,
// expansion area). It reads as 0.
type Device struct {
	Name string // name of the memory area (for debugging)
	Size int    // size of the memory area
}

func (d *Device) Peek8(uint16) uint8 { return 0 }
