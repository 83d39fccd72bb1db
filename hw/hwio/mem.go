package hwio

// mem is the main structure used for linear memory access.
//
// Addresses are made relative to the base address the area is mapped at, then
// wrapped around the physical size. Power of 2 sizes (the common case) only
// need a mask.
type mem struct {
	buf  []byte
	base uint16
	mask uint16 // non-zero when len(buf) is a power of 2
}

func newMem(buf []byte, base uint16) *mem {
	m := &mem{buf: buf, base: base}
	if len(buf)&(len(buf)-1) == 0 && len(buf) <= 0x10000 {
		m.mask = uint16(len(buf) - 1)
	}
	return m
}

func (m *mem) off(addr uint16) int {
	rel := addr - m.base
	if m.mask != 0 || len(m.buf) == 1 {
		return int(rel & m.mask)
	}
	return int(rel) % len(m.buf)
}

func (m *mem) Peek8(addr uint16) uint8 {
	return m.buf[m.off(addr)]
}

// Linear memory area that can be mapped into a Table.
type Mem struct {
	Name  string // name of the memory area (for debugging)
	Data  []byte // actual memory buffer
	VSize int    // virtual size of the memory (can be bigger than physical size)
}

func (m *Mem) bankIO8(base uint16) BankIO8 {
	return newMem(m.Data, base)
}
