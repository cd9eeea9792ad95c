package alphabet

import (
	"fmt"
	"math"

	"github.com/holiman/uint256"
)

// Alphabet maps 6-bit digits to identifier-safe characters.
const Alphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_$"

const (
	Base      = 64
	DigitBits = 6
	DigitMask = Base - 1
)

// MaxDigitWidth is the last suffix width searched: the widest suffix whose
// space fits a 32-bit ordinal, plus one. Ordinals are uint64, so the extra
// pass is still addressable.
var MaxDigitWidth = maxWidthFor(math.MaxUint32) + 1

// maxOrdinalWidth is the widest suffix whose space fits a uint64 ordinal.
var maxOrdinalWidth = maxWidthFor(math.MaxUint64)

var decodeTable = func() (out [256]int8) {
	for i := range out {
		out[i] = -1
	}
	for i := 0; i < len(Alphabet); i++ {
		out[Alphabet[i]] = int8(i)
	}
	return
}()

func maxWidthFor(limit uint64) int {
	bound := uint256.NewInt(limit)
	w := 0
	for {
		next := new(uint256.Int).Lsh(uint256.NewInt(1), uint(DigitBits*(w+1)))
		if next.Gt(bound) {
			return w
		}
		w++
	}
}

// SpaceSize returns the number of distinct suffixes of the given width.
func SpaceSize(width int) uint64 {
	if width < 1 || width > maxOrdinalWidth {
		panic(fmt.Errorf("invalid digit width %d", width))
	}
	return uint64(1) << (DigitBits * width)
}

// Encode renders ordinal as a width-digit base-64 number, most significant digit first.
// The ordinal must be below SpaceSize(width).
func Encode(width int, ordinal uint64) string {
	var buf [16]byte
	return string(AppendEncode(buf[:0], width, ordinal))
}

// AppendEncode is the allocation-free form of Encode.
func AppendEncode(dst []byte, width int, ordinal uint64) []byte {
	if ordinal >= SpaceSize(width) {
		panic(fmt.Errorf("ordinal %d out of range for digit width %d", ordinal, width))
	}
	start := len(dst)
	for i := 0; i < width; i++ {
		dst = append(dst, 0)
	}
	for i := start + width - 1; i >= start; i-- {
		dst[i] = Alphabet[ordinal&DigitMask]
		ordinal >>= DigitBits
	}
	return dst
}

// Decode parses a suffix produced by Encode back into its ordinal.
func Decode(s string) (uint64, error) {
	if len(s) == 0 || len(s) > maxOrdinalWidth {
		return 0, fmt.Errorf("invalid suffix length %d", len(s))
	}
	var out uint64
	for i := 0; i < len(s); i++ {
		d := decodeTable[s[i]]
		if d < 0 {
			return 0, fmt.Errorf("invalid suffix character %q at %d", s[i], i)
		}
		out = out<<DigitBits | uint64(d)
	}
	return out, nil
}
