package hwio

// 8-bit operations
func GetBit8(v uint8, n uint) bool {
	return GetBiti8(v, n) != 0
}

func GetBiti8(v uint8, n uint) uint8 {
	return v >> (n) & 0x01
}

// Nibbles returns the low and high nibbles of v.
func Nibbles(v uint8) (lo, hi uint8) {
	return v & 0x0F, v >> 4
}

// LE16 assembles a little-endian word.
func LE16(lo, hi uint8) uint16 {
	return uint16(hi)<<8 | uint16(lo)
}
