package cpu

import "fmt"

// Operand is the decoded operand of an instruction. Instructions using the
// implied or accumulator addressing modes have no operand.
type Operand interface {
	fmt.Stringer

	// Size is the number of bytes the operand occupies.
	Size() int

	operand()
}

type Immediate struct{ Value uint8 }

type ZeroPage struct{ Address uint8 }

type ZeroPageIndexed struct {
	Address uint8
	Index   Index
}

type Absolute struct{ Address uint16 }

type AbsoluteIndexed struct {
	Address uint16
	Index   Index
}

// Indirect is only used by JMP.
type Indirect struct{ Address uint16 }

// PreIndexedIndirect is the (zp,X) addressing mode.
type PreIndexedIndirect struct{ Address uint8 }

// PostIndexedIndirect is the (zp),Y addressing mode.
type PostIndexedIndirect struct{ Address uint8 }

// Relative is the operand of branches. It prints as the target address.
type Relative struct {
	Offset int8
	Target uint16
}

func (o Immediate) String() string           { return fmt.Sprintf("#$%02X", o.Value) }
func (o ZeroPage) String() string            { return fmt.Sprintf("$%02X", o.Address) }
func (o ZeroPageIndexed) String() string     { return fmt.Sprintf("$%02X, %s", o.Address, o.Index) }
func (o Absolute) String() string            { return fmt.Sprintf("$%04X", o.Address) }
func (o AbsoluteIndexed) String() string     { return fmt.Sprintf("$%04X, %s", o.Address, o.Index) }
func (o Indirect) String() string            { return fmt.Sprintf("($%04X)", o.Address) }
func (o PreIndexedIndirect) String() string  { return fmt.Sprintf("($%02X, X)", o.Address) }
func (o PostIndexedIndirect) String() string { return fmt.Sprintf("($%02X), Y", o.Address) }
func (o Relative) String() string            { return fmt.Sprintf("$%04X", o.Target) }

func (Immediate) Size() int           { return 1 }
func (ZeroPage) Size() int            { return 1 }
func (ZeroPageIndexed) Size() int     { return 1 }
func (Absolute) Size() int            { return 2 }
func (AbsoluteIndexed) Size() int     { return 2 }
func (Indirect) Size() int            { return 2 }
func (PreIndexedIndirect) Size() int  { return 1 }
func (PostIndexedIndirect) Size() int { return 1 }
func (Relative) Size() int            { return 1 }

func (Immediate) operand()           {}
func (ZeroPage) operand()            {}
func (ZeroPageIndexed) operand()     {}
func (Absolute) operand()            {}
func (AbsoluteIndexed) operand()     {}
func (Indirect) operand()            {}
func (PreIndexedIndirect) operand()  {}
func (PostIndexedIndirect) operand() {}
func (Relative) operand()            {}
