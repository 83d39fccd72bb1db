package hwio_test

import (
	"testing"

	"nesinspect/hw/hwio"
)

type testTable struct {
	t testing.TB
	*hwio.Table
	RAM [0x800]byte
	ROM []byte
}

func newTestTable(tb testing.TB) *testTable {
	tbl := &testTable{t: tb, Table: hwio.NewTable("bus")}
	tbl.ROM = make([]byte, 0x3000) // not a power of 2
	for i := range tbl.ROM {
		tbl.ROM[i] = uint8(i / 0x1000)
	}

	tbl.MapMem(0x0000, &hwio.Mem{Name: "ram", Data: tbl.RAM[:], VSize: 0x2000})
	tbl.MapDevice(0x2000, &hwio.Device{Name: "regs", Size: 0x2018})
	tbl.MapMem(0x8000, &hwio.Mem{Name: "rom", Data: tbl.ROM, VSize: 0x8000})
	return tbl
}

func (tbl *testTable) wantPeek8(addr uint16, want uint8) {
	tbl.t.Helper()
	if got := tbl.Peek8(addr); got != want {
		tbl.t.Errorf("Peek8(%04X) = %02X, want %02X", addr, got, want)
	}
}

func TestTableMapMem(t *testing.T) {
	tbl := newTestTable(t)

	// RAM, mirrored every 0x800 bytes.
	tbl.wantPeek8(0x00, 0)
	tbl.RAM[0x00] = 0x12
	tbl.wantPeek8(0x00, 0x12)
	tbl.wantPeek8(0x800, 0x12)
	tbl.wantPeek8(0x1800, 0x12)
	tbl.RAM[0x7FF] = 0x34
	tbl.wantPeek8(0x1FFF, 0x34)

	// ROM, mirrored modulo its length.
	tbl.wantPeek8(0x8000, 0)
	tbl.wantPeek8(0x9000, 1)
	tbl.wantPeek8(0xA000, 2)
	tbl.wantPeek8(0xB000, 0)
	tbl.wantPeek8(0xFFFF, 1)
}

func TestTableDevices(t *testing.T) {
	tbl := newTestTable(t)

	for _, addr := range []uint16{0x2000, 0x3FFF, 0x4017} {
		tbl.wantPeek8(addr, 0)
	}

	// Unmapped.
	tbl.wantPeek8(0x4018, 0)
	tbl.wantPeek8(0x7FFF, 0)
}

func TestTableWholeSpace(t *testing.T) {
	var tbl hwio.Table
	tbl.MapMem(0x0000, &hwio.Mem{Name: "byte", Data: []byte{0xEA}, VSize: 0x10000})
	for _, addr := range []uint16{0x0000, 0x1234, 0xFFFF} {
		if got := tbl.Peek8(addr); got != 0xEA {
			t.Errorf("Peek8(%04X) = %02X, want EA", addr, got)
		}
	}

	tbl.Reset()
	if got := tbl.Peek8(0x1234); got != 0 {
		t.Errorf("Peek8 after Reset = %02X, want 00", got)
	}
}

func TestTableOverlap(t *testing.T) {
	tbl := newTestTable(t)

	defer func() {
		if recover() == nil {
			t.Errorf("mapping an overlapping range should panic")
		}
	}()
	tbl.MapDevice(0x3000, &hwio.Device{Name: "overlap", Size: 0x2000})
}

func TestTableEmptyMem(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("mapping an empty area should panic")
		}
	}()
	hwio.NewTable("bus").MapMem(0x8000, &hwio.Mem{Name: "empty", VSize: 0x8000})
}

func TestBitops(t *testing.T) {
	if !hwio.GetBit8(0x80, 7) || hwio.GetBit8(0x80, 6) {
		t.Errorf("GetBit8 is wrong")
	}
	if hwio.GetBiti8(0x08, 3) != 1 || hwio.GetBiti8(0x08, 2) != 0 {
		t.Errorf("GetBiti8 is wrong")
	}
	lo, hi := hwio.Nibbles(0xA5)
	if lo != 0x5 || hi != 0xA {
		t.Errorf("Nibbles(A5) = %X, %X", lo, hi)
	}
	if got := hwio.LE16(0x34, 0x12); got != 0x1234 {
		t.Errorf("LE16 = %04X", got)
	}
}
