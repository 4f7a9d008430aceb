package spn

import "fmt"

// SBox is a 16-entry nibble substitution table: the entry at index i
// replaces the nibble i. Every entry must itself be a nibble, and the table
// must be a permutation of 0..15 so that an inverse table exists.
type SBox [16]uint8

// ReferenceSBox is the substitution table the engine ships with.
var ReferenceSBox = SBox{
	0xE, 0x4, 0xD, 0x1,
	0x2, 0xF, 0xB, 0x8,
	0x3, 0xA, 0x6, 0xC,
	0x5, 0x9, 0x0, 0x7,
}

// NewSBox builds a substitution table from a 16-entry slice, rejecting
// out-of-range entries and tables that are not permutations of 0..15.
func NewSBox(entries []uint8) (SBox, error) {
	if len(entries) != len(SBox{}) {
		return SBox{}, fmt.Errorf("sbox must have %d entries, got %d", len(SBox{}), len(entries))
	}
	var s SBox
	copy(s[:], entries)
	if err := s.validate(); err != nil {
		return SBox{}, err
	}
	return s, nil
}

func (s SBox) validate() error {
	var seen [16]bool
	for i, e := range s {
		if e > 0xF {
			return fmt.Errorf("sbox[%d] = %#x is outside nibble range", i, e)
		}
		if seen[e] {
			return fmt.Errorf("sbox is not a permutation: value %#x appears more than once", e)
		}
		seen[e] = true
	}
	return nil
}

// Substitute maps a nibble through the table. An input outside [0, 15] is a
// caller bug, not a recoverable condition, and panics.
func (s SBox) Substitute(v byte) byte {
	if v > 0xF {
		panic(fmt.Sprintf("substitute: value %#x is outside nibble range", v))
	}
	return s[v]
}

// Inverse returns the table that maps each output nibble back to its input.
// The receiver must be a permutation, which validate guarantees for every
// table built through NewSBox.
func (s SBox) Inverse() SBox {
	var inv SBox
	for i, e := range s {
		inv[e] = uint8(i)
	}
	return inv
}
