package cpu

import (
	"fmt"

	"nesinspect/hw/hwio"
)

// Instruction is a decoded 6502 instruction.
type Instruction struct {
	Mnemonic Mnemonic
	Operand  Operand // nil for implied and accumulator modes
	Bytes    []byte  // raw encoding, opcode first

	// Illegal is set for undocumented encodings.
	Illegal bool
}

func (in Instruction) String() string {
	if in.Operand == nil {
		return in.Mnemonic.String()
	}
	return in.Mnemonic.String() + " " + in.Operand.String()
}

// Decode decodes the instruction at pc.
func Decode(bus hwio.BankIO8, pc uint16) (Instruction, error) {
	opc := bus.Peek8(pc)
	op := opcodes[opc]
	n := op.mode.size()
	if n == 0 {
		return Instruction{}, fmt.Errorf("%w: %02X at $%04X", ErrUnknownOpcode, opc, pc)
	}

	buf := make([]byte, n)
	buf[0] = opc
	for i := 1; i < n; i++ {
		buf[i] = bus.Peek8(pc + uint16(i))
	}

	in := Instruction{
		Mnemonic: op.mnem,
		Bytes:    buf,
		Illegal:  op.illegal,
	}

	switch op.mode {
	case immediate:
		in.Operand = Immediate{Value: buf[1]}
	case zeroPage:
		in.Operand = ZeroPage{Address: buf[1]}
	case zeroPageX:
		in.Operand = ZeroPageIndexed{Address: buf[1], Index: X}
	case zeroPageY:
		in.Operand = ZeroPageIndexed{Address: buf[1], Index: Y}
	case absolute:
		in.Operand = Absolute{Address: hwio.LE16(buf[1], buf[2])}
	case absoluteX:
		in.Operand = AbsoluteIndexed{Address: hwio.LE16(buf[1], buf[2]), Index: X}
	case absoluteY:
		in.Operand = AbsoluteIndexed{Address: hwio.LE16(buf[1], buf[2]), Index: Y}
	case indirect:
		in.Operand = Indirect{Address: hwio.LE16(buf[1], buf[2])}
	case indirectX:
		in.Operand = PreIndexedIndirect{Address: buf[1]}
	case indirectY:
		in.Operand = PostIndexedIndirect{Address: buf[1]}
	case relative:
		off := int8(buf[1])
		in.Operand = Relative{Offset: off, Target: pc + 2 + uint16(off)}
	}
	return in, nil
}
