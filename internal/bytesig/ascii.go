// Package bytesig provides byte-classification primitives used to pick an
// automaton's effective alphabet (§4.11): byte-mode (0x00-0xFF) when a
// fragment's literal bytes are all ASCII, Unicode-mode (0x00-0x10FFFF)
// otherwise.
//
// Adapted from coregex's simd/ascii_*.go, trimmed to the single entry point
// the lexer and nfa builder need. The AVX2 feature gate widens the SWAR
// chunk size; there is no hand-written assembly here (see DESIGN.md for why
// the teacher's asm-backed Teddy/memchr paths were not carried over).
package bytesig

import (
	"encoding/binary"

	"golang.org/x/sys/cpu"
)

// hasAVX2 gates the wider unrolled loop in IsASCII. Both loops are pure Go;
// the flag only changes how many bytes are checked per iteration.
var hasAVX2 = cpu.X86.HasAVX2

// IsASCII reports whether every byte in data is < 0x80.
//
// Uses SWAR (SIMD-within-a-register): eight bytes are tested at once via a
// single AND against 0x8080808080808080, doubled to 16 bytes per iteration
// when the host advertises AVX2 (a proxy for "wide, fast unaligned loads",
// not an actual vector instruction).
func IsASCII(data []byte) bool {
	n := len(data)
	if n == 0 {
		return true
	}
	if n < 8 {
		for i := 0; i < n; i++ {
			if data[i] >= 0x80 {
				return false
			}
		}
		return true
	}

	const hi8 = uint64(0x8080808080808080)
	stride := 8
	if hasAVX2 {
		stride = 16
	}

	idx := 0
	for idx+stride <= n {
		chunk := binary.LittleEndian.Uint64(data[idx:])
		if chunk&hi8 != 0 {
			return false
		}
		if stride == 16 {
			chunk2 := binary.LittleEndian.Uint64(data[idx+8:])
			if chunk2&hi8 != 0 {
				return false
			}
		}
		idx += stride
	}
	for idx+8 <= n {
		chunk := binary.LittleEndian.Uint64(data[idx:])
		if chunk&hi8 != 0 {
			return false
		}
		idx += 8
	}
	for ; idx < n; idx++ {
		if data[idx] >= 0x80 {
			return false
		}
	}
	return true
}

// IsASCIIRune reports whether r is an ASCII code point. Used by the
// automata subsystem when deciding a character class's alphabet mode from
// decoded rune ranges rather than raw bytes.
func IsASCIIRune(r rune) bool {
	return r >= 0 && r < 0x80
}
