package isa

import (
	"encoding/binary"
)

// Alignment is the boundary every statement is padded to.
const Alignment = 4

// Align4 rounds n up to the next multiple of four.
func Align4(n uint64) uint64 {
	return (n + Alignment - 1) &^ (Alignment - 1)
}

// PutLE appends the low width bytes of v to buf, least significant first.
func PutLE(buf []byte, v int64, width int) []byte {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], uint64(v))
	return append(buf, tmp[:width]...)
}

// LE reads up to eight little-endian bytes as a signed value.
func LE(b []byte) int64 {
	var tmp [8]byte
	copy(tmp[:], b)
	return int64(binary.LittleEndian.Uint64(tmp[:]))
}

// Pad appends zero bytes until len(buf) is a multiple of four.
func Pad(buf []byte) []byte {
	for len(buf)%Alignment != 0 {
		buf = append(buf, 0)
	}
	return buf
}
