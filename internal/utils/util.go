// Package utils holds rune/byte conversions shared by the packages that index
// lines by rune column but store them as UTF-8 bytes.
package utils

import "unicode/utf8"

// RuneIndexToByteOffset converts a rune index to a byte offset in line.
// runeIndex equal to the rune count maps to len(line). Returns -1 if
// runeIndex is out of bounds.
func RuneIndexToByteOffset(line []byte, runeIndex int) int {
	if runeIndex < 0 {
		return -1
	}
	offset := 0
	for i := 0; i < runeIndex; i++ {
		if offset >= len(line) {
			return -1
		}
		_, size := utf8.DecodeRune(line[offset:])
		offset += size
	}
	return offset
}

// ByteOffsetToRuneIndex converts a byte offset to a rune index in line.
// Offsets are clamped to the line; an offset inside a multi-byte rune counts
// that rune as not yet reached.
func ByteOffsetToRuneIndex(line []byte, byteOffset int) int {
	if byteOffset <= 0 {
		return 0
	}
	if byteOffset >= len(line) {
		return utf8.RuneCount(line)
	}
	runeIndex := 0
	for offset := 0; offset < byteOffset; runeIndex++ {
		_, size := utf8.DecodeRune(line[offset:])
		if offset+size > byteOffset {
			break
		}
		offset += size
	}
	return runeIndex
}
