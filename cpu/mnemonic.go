package cpu

//go:generate go tool stringer -type=Mnemonic,Index -output=mnemonic_string.go

// Mnemonic identifies an instruction, regardless of its addressing mode.
type Mnemonic uint8

// Documented instructions.
const (
	ADC Mnemonic = iota
	AND
	ASL
	BCC
	BCS
	BEQ
	BIT
	BMI
	BNE
	BPL
	BRK
	BVC
	BVS
	CLC
	CLD
	CLI
	CLV
	CMP
	CPX
	CPY
	DEC
	DEX
	DEY
	EOR
	INC
	INX
	INY
	JMP
	JSR
	LDA
	LDX
	LDY
	LSR
	NOP
	ORA
	PHA
	PHP
	PLA
	PLP
	ROL
	ROR
	RTI
	RTS
	SBC
	SEC
	SED
	SEI
	STA
	STX
	STY
	TAX
	TAY
	TSX
	TXA
	TXS
	TYA
)

// Undocumented instructions.
const (
	AHX Mnemonic = iota + TYA + 1
	ALR
	ANC
	ARR
	AXS
	DCP
	ISC
	LAS
	LAX
	LXA
	RLA
	RRA
	SAX
	SHX
	SHY
	SLO
	SRE
	STP
	TAS
	XAA
)

// Undocumented reports whether m only exists as an undocumented instruction.
// Some documented mnemonics (NOP, SBC) also have undocumented encodings, see
// Instruction.Illegal.
func (m Mnemonic) Undocumented() bool { return m >= AHX }

// IsBranch reports whether m is a relative branch.
func (m Mnemonic) IsBranch() bool {
	switch m {
	case BCC, BCS, BEQ, BMI, BNE, BPL, BVC, BVS:
		return true
	}
	return false
}

// Index is the index register used by indexed addressing modes.
type Index uint8

const (
	X Index = iota
	Y
)
