package hwio

import (
	"fmt"
	"sort"

	"nesinspect/log"
)

// BankIO8 is an 8-bit device seen by the bus. Peek8 must not have side
// effects: code is walked through, not executed.
type BankIO8 interface {
	Peek8(addr uint16) uint8
}

// A mapping associates an inclusive address range to a device.
type mapping struct {
	begin, end uint16
	io         BankIO8
}

// Table is a 16-bit address bus. Devices are mapped on non-overlapping
// address ranges, kept sorted so that lookups are a binary search.
type Table struct {
	Name string

	table8 []mapping
}

func NewTable(name string) *Table {
	t := new(Table)
	t.Name = name
	t.Reset()
	return t
}

func (t *Table) Reset() {
	t.table8 = t.table8[:0]
}

func (t *Table) insertRange(begin, end uint16, io BankIO8) error {
	if end < begin {
		return fmt.Errorf("invalid range [%04x-%04x]", begin, end)
	}

	i := sort.Search(len(t.table8), func(i int) bool { return t.table8[i].end >= begin })
	if i < len(t.table8) && t.table8[i].begin <= end {
		return fmt.Errorf("bus %s: range [%04x-%04x] overlaps [%04x-%04x]",
			t.Name, begin, end, t.table8[i].begin, t.table8[i].end)
	}

	t.table8 = append(t.table8, mapping{})
	copy(t.table8[i+1:], t.table8[i:])
	t.table8[i] = mapping{begin: begin, end: end, io: io}
	return nil
}

func (t *Table) search(addr uint16) BankIO8 {
	i := sort.Search(len(t.table8), func(i int) bool { return t.table8[i].end >= addr })
	if i < len(t.table8) && t.table8[i].begin <= addr {
		return t.table8[i].io
	}
	return nil
}

func (t *Table) mapBus8(addr, size uint16, io BankIO8) {
	if err := t.insertRange(addr, addr+size-1, io); err != nil {
		panic(err)
	}
}

// MapMem maps a memory area at addr. The area spans mem.VSize bytes, and
// accesses beyond the physical size are mirrored.
func (t *Table) MapMem(addr uint16, mem *Mem) {
	log.ModHwIo.DebugZ("mapping mem").
		Hex16("addr", addr).
		Hex16("vsize", uint16(mem.VSize-1)).
		String("area", mem.Name).
		String("bus", t.Name).
		End()

	if len(mem.Data) == 0 {
		panic(fmt.Sprintf("bus %s: empty memory area %q", t.Name, mem.Name))
	}

	t.mapBus8(addr, uint16(mem.VSize-1)+1, mem.bankIO8(addr))
}

// MapDevice maps dev at addr, for dev.Size bytes.
func (t *Table) MapDevice(addr uint16, dev *Device) {
	log.ModHwIo.DebugZ("mapping device").
		Hex16("addr", addr).
		Int("size", dev.Size).
		String("name", dev.Name).
		String("bus", t.Name).
		End()

	t.mapBus8(addr, uint16(dev.Size-1)+1, dev)
}

// Peek8 searches in the table for the device mapped at the given address and
// forwards the read to it. Unmapped addresses read as 0.
func (t *Table) Peek8(addr uint16) uint8 {
	io := t.search(addr)
	if io == nil {
		return 0
	}
	return io.Peek8(addr)
}
