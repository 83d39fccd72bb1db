package cpu

import "fmt"

// Opcode table. Undocumented encodings are flagged; they decode like any other
// instruction.
var opcodes = [256]opcode{
	0x00: {BRK, implied, doc},
	0x01: {ORA, indirectX, doc},
	0x02: {STP, implied, undoc},
	0x03: {SLO, indirectX, undoc},
	0x04: {NOP, zeroPage, undoc},
	0x05: {ORA, zeroPage, doc},
	0x06: {ASL, zeroPage, doc},
	0x07: {SLO, zeroPage, undoc},
	0x08: {PHP, implied, doc},
	0x09: {ORA, immediate, doc},
	0x0A: {ASL, accumulator, doc},
	0x0B: {ANC, immediate, undoc},
	0x0C: {NOP, absolute, undoc},
	0x0D: {ORA, absolute, doc},
	0x0E: {ASL, absolute, doc},
	0x0F: {SLO, absolute, undoc},
	0x10: {BPL, relative, doc},
	0x11: {ORA, indirectY, doc},
	0x12: {STP, implied, undoc},
	0x13: {SLO, indirectY, undoc},
	0x14: {NOP, zeroPageX, undoc},
	0x15: {ORA, zeroPageX, doc},
	0x16: {ASL, zeroPageX, doc},
	0x17: {SLO, zeroPageX, undoc},
	0x18: {CLC, implied, doc},
	0x19: {ORA, absoluteY, doc},
	0x1A: {NOP, implied, undoc},
	0x1B: {SLO, absoluteY, undoc},
	0x1C: {NOP, absoluteX, undoc},
	0x1D: {ORA, absoluteX, doc},
	0x1E: {ASL, absoluteX, doc},
	0x1F: {SLO, absoluteX, undoc},
	0x20: {JSR, absolute, doc},
	0x21: {AND, indirectX, doc},
	0x22: {STP, implied, undoc},
	0x23: {RLA, indirectX, undoc},
	0x24: {BIT, zeroPage, doc},
	0x25: {AND, zeroPage, doc},
	0x26: {ROL, zeroPage, doc},
	0x27: {RLA, zeroPage, undoc},
	0x28: {PLP, implied, doc},
	0x29: {AND, immediate, doc},
	0x2A: {ROL, accumulator, doc},
	0x2B: {ANC, immediate, undoc},
	0x2C: {BIT, absolute, doc},
	0x2D: {AND, absolute, doc},
	0x2E: {ROL, absolute, doc},
	0x2F: {RLA, absolute, undoc},
	0x30: {BMI, relative, doc},
	0x31: {AND, indirectY, doc},
	0x32: {STP, implied, undoc},
	0x33: {RLA, indirectY, undoc},
	0x34: {NOP, zeroPageX, undoc},
	0x35: {AND, zeroPageX, doc},
	0x36: {ROL, zeroPageX, doc},
	0x37: {RLA, zeroPageX, undoc},
	0x38: {SEC, implied, doc},
	0x39: {AND, absoluteY, doc},
	0x3A: {NOP, implied, undoc},
	0x3B: {RLA, absoluteY, undoc},
	0x3C: {NOP, absoluteX, undoc},
	0x3D: {AND, absoluteX, doc},
	0x3E: {ROL, absoluteX, doc},
	0x3F: {RLA, absoluteX, undoc},
	0x40: {RTI, implied, doc},
	0x41: {EOR, indirectX, doc},
	0x42: {STP, implied, undoc},
	0x43: {SRE, indirectX, undoc},
	0x44: {NOP, zeroPage, undoc},
	0x45: {EOR, zeroPage, doc},
	0x46: {LSR, zeroPage, doc},
	0x47: {SRE, zeroPage, undoc},
	0x48: {PHA, implied, doc},
	0x49: {EOR, immediate, doc},
	0x4A: {LSR, accumulator, doc},
	0x4B: {ALR, immediate, undoc},
	0x4C: {JMP, absolute, doc},
	0x4D: {EOR, absolute, doc},
	0x4E: {LSR, absolute, doc},
	0x4F: {SRE, absolute, undoc},
	0x50: {BVC, relative, doc},
	0x51: {EOR, indirectY, doc},
	0x52: {STP, implied, undoc},
	0x53: {SRE, indirectY, undoc},
	0x54: {NOP, zeroPageX, undoc},
	0x55: {EOR, zeroPageX, doc},
	0x56: {LSR, zeroPageX, doc},
	0x57: {SRE, zeroPageX, undoc},
	0x58: {CLI, implied, doc},
	0x59: {EOR, absoluteY, doc},
	0x5A: {NOP, implied, undoc},
	0x5B: {SRE, absoluteY, undoc},
	0x5C: {NOP, absoluteX, undoc},
	0x5D: {EOR, absoluteX, doc},
	0x5E: {LSR, absoluteX, doc},
	0x5F: {SRE, absoluteX, undoc},
	0x60: {RTS, implied, doc},
	0x61: {ADC, indirectX, doc},
	0x62: {STP, implied, undoc},
	0x63: {RRA, indirectX, undoc},
	0x64: {NOP, zeroPage, undoc},
	0x65: {ADC, zeroPage, doc},
	0x66: {ROR, zeroPage, doc},
	0x67: {RRA, zeroPage, undoc},
	0x68: {PLA, implied, doc},
	0x69: {ADC, immediate, doc},
	0x6A: {ROR, accumulator, doc},
	0x6B: {ARR, immediate, undoc},
	0x6C: {JMP, indirect, doc},
	0x6D: {ADC, absolute, doc},
	0x6E: {ROR, absolute, doc},
	0x6F: {RRA, absolute, undoc},
	0x70: {BVS, relative, doc},
	0x71: {ADC, indirectY, doc},
	0x72: {STP, implied, undoc},
	0x73: {RRA, indirectY, undoc},
	0x74: {NOP, zeroPageX, undoc},
	0x75: {ADC, zeroPageX, doc},
	0x76: {ROR, zeroPageX, doc},
	0x77: {RRA, zeroPageX, undoc},
	0x78: {SEI, implied, doc},
	0x79: {ADC, absoluteY, doc},
	0x7A: {NOP, implied, undoc},
	0x7B: {RRA, absoluteY, undoc},
	0x7C: {NOP, absoluteX, undoc},
	0x7D: {ADC, absoluteX, doc},
	0x7E: {ROR, absoluteX, doc},
	0x7F: {RRA, absoluteX, undoc},
	0x80: {NOP, immediate, undoc},
	0x81: {STA, indirectX, doc},
	0x82: {NOP, immediate, undoc},
	0x83: {SAX, indirectX, undoc},
	0x84: {STY, zeroPage, doc},
	0x85: {STA, zeroPage, doc},
	0x86: {STX, zeroPage, doc},
	0x87: {SAX, zeroPage, undoc},
	0x88: {DEY, implied, doc},
	0x89: {NOP, immediate, undoc},
	0x8A: {TXA, implied, doc},
	0x8B: {XAA, immediate, undoc},
	0x8C: {STY, absolute, doc},
	0x8D: {STA, absolute, doc},
	0x8E: {STX, absolute, doc},
	0x8F: {SAX, absolute, undoc},
	0x90: {BCC, relative, doc},
	0x91: {STA, indirectY, doc},
	0x92: {STP, implied, undoc},
	0x93: {AHX, indirectY, undoc},
	0x94: {STY, zeroPageX, doc},
	0x95: {STA, zeroPageX, doc},
	0x96: {STX, zeroPageY, doc},
	0x97: {SAX, zeroPageY, undoc},
	0x98: {TYA, implied, doc},
	0x99: {STA, absoluteY, doc},
	0x9A: {TXS, implied, doc},
	0x9B: {TAS, absoluteY, undoc},
	0x9C: {SHY, absoluteX, undoc},
	0x9D: {STA, absoluteX, doc},
	0x9E: {SHX, absoluteY, undoc},
	0x9F: {AHX, absoluteY, undoc},
	0xA0: {LDY, immediate, doc},
	0xA1: {LDA, indirectX, doc},
	0xA2: {LDX, immediate, doc},
	0xA3: {LAX, indirectX, undoc},
	0xA4: {LDY, zeroPage, doc},
	0xA5: {LDA, zeroPage, doc},
	0xA6: {LDX, zeroPage, doc},
	0xA7: {LAX, zeroPage, undoc},
	0xA8: {TAY, implied, doc},
	0xA9: {LDA, immediate, doc},
	0xAA: {TAX, implied, doc},
	0xAB: {LXA, immediate, undoc},
	0xAC: {LDY, absolute, doc},
	0xAD: {LDA, absolute, doc},
	0xAE: {LDX, absolute, doc},
	0xAF: {LAX, absolute, undoc},
	0xB0: {BCS, relative, doc},
	0xB1: {LDA, indirectY, doc},
	0xB2: {STP, implied, undoc},
	0xB3: {LAX, indirectY, undoc},
	0xB4: {LDY, zeroPageX, doc},
	0xB5: {LDA, zeroPageX, doc},
	0xB6: {LDX, zeroPageY, doc},
	0xB7: {LAX, zeroPageY, undoc},
	0xB8: {CLV, implied, doc},
	0xB9: {LDA, absoluteY, doc},
	0xBA: {TSX, implied, doc},
	0xBB: {LAS, absoluteY, undoc},
	0xBC: {LDY, absoluteX, doc},
	0xBD: {LDA, absoluteX, doc},
	0xBE: {LDX, absoluteY, doc},
	0xBF: {LAX, absoluteY, undoc},
	0xC0: {CPY, immediate, doc},
	0xC1: {CMP, indirectX, doc},
	0xC2: {NOP, immediate, undoc},
	0xC3: {DCP, indirectX, undoc},
	0xC4: {CPY, zeroPage, doc},
	0xC5: {CMP, zeroPage, doc},
	0xC6: {DEC, zeroPage, doc},
	0xC7: {DCP, zeroPage, undoc},
	0xC8: {INY, implied, doc},
	0xC9: {CMP, immediate, doc},
	0xCA: {DEX, implied, doc},
	0xCB: {AXS, immediate, undoc},
	0xCC: {CPY, absolute, doc},
	0xCD: {CMP, absolute, doc},
	0xCE: {DEC, absolute, doc},
	0xCF: {DCP, absolute, undoc},
	0xD0: {BNE, relative, doc},
	0xD1: {CMP, indirectY, doc},
	0xD2: {STP, implied, undoc},
	0xD3: {DCP, indirectY, undoc},
	0xD4: {NOP, zeroPageX, undoc},
	0xD5: {CMP, zeroPageX, doc},
	0xD6: {DEC, zeroPageX, doc},
	0xD7: {DCP, zeroPageX, undoc},
	0xD8: {CLD, implied, doc},
	0xD9: {CMP, absoluteY, doc},
	0xDA: {NOP, implied, undoc},
	0xDB: {DCP, absoluteY, undoc},
	0xDC: {NOP, absoluteX, undoc},
	0xDD: {CMP, absoluteX, doc},
	0xDE: {DEC, absoluteX, doc},
	0xDF: {DCP, absoluteX, undoc},
	0xE0: {CPX, immediate, doc},
	0xE1: {SBC, indirectX, doc},
	0xE2: {NOP, immediate, undoc},
	0xE3: {ISC, indirectX, undoc},
	0xE4: {CPX, zeroPage, doc},
	0xE5: {SBC, zeroPage, doc},
	0xE6: {INC, zeroPage, doc},
	0xE7: {ISC, zeroPage, undoc},
	0xE8: {INX, implied, doc},
	0xE9: {SBC, immediate, doc},
	0xEA: {NOP, implied, doc},
	0xEB: {SBC, immediate, undoc},
	0xEC: {CPX, absolute, doc},
	0xED: {SBC, absolute, doc},
	0xEE: {INC, absolute, doc},
	0xEF: {ISC, absolute, undoc},
	0xF0: {BEQ, relative, doc},
	0xF1: {SBC, indirectY, doc},
	0xF2: {STP, implied, undoc},
	0xF3: {ISC, indirectY, undoc},
	0xF4: {NOP, zeroPageX, undoc},
	0xF5: {SBC, zeroPageX, doc},
	0xF6: {INC, zeroPageX, doc},
	0xF7: {ISC, zeroPageX, undoc},
	0xF8: {SED, implied, doc},
	0xF9: {SBC, absoluteY, doc},
	0xFA: {NOP, implied, undoc},
	0xFB: {ISC, absoluteY, undoc},
	0xFC: {NOP, absoluteX, undoc},
	0xFD: {SBC, absoluteX, doc},
	0xFE: {INC, absoluteX, doc},
	0xFF: {ISC, absoluteX, undoc},
}

const (
	doc   = false
	undoc = true
)

type opcode struct {
	mnem    Mnemonic
	mode    mode
	illegal bool
}

// addressing modes
type mode uint8

const (
	modeInvalid mode = iota
	implied
	accumulator
	immediate
	zeroPage
	zeroPageX
	zeroPageY
	absolute
	absoluteX
	absoluteY
	indirect
	indirectX
	indirectY
	relative
)

// size returns the number of bytes of an instruction, opcode included.
func (m mode) size() int {
	switch m {
	case implied, accumulator:
		return 1
	case immediate, zeroPage, zeroPageX, zeroPageY, indirectX, indirectY, relative:
		return 2
	case absolute, absoluteX, absoluteY, indirect:
		return 3
	}
	return 0
}

func init() {
	for i, op := range opcodes {
		if op.mode == modeInvalid {
			panic(fmt.Sprintf("cpu: opcode %02X has no table entry", i))
		}
	}
}
