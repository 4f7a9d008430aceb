package spn

import "fmt"

// PBox describes a bit reordering of an 8-bit block: the entry at index i is
// the source bit position for destination position i. Positions count from
// the most significant bit, so position 0 is bit 7. The table must be a
// permutation of 0..7, otherwise the reordering is not a bijection over the
// 256-value block domain and no inverse exists.
type PBox [8]uint8

// ReferencePBox is the permutation table the engine ships with.
var ReferencePBox = PBox{3, 0, 2, 4, 6, 1, 7, 5}

// NewPBox builds a permutation table from an 8-entry slice, rejecting
// out-of-range entries and tables that are not permutations of 0..7.
func NewPBox(entries []uint8) (PBox, error) {
	if len(entries) != len(PBox{}) {
		return PBox{}, fmt.Errorf("pbox must have %d entries, got %d", len(PBox{}), len(entries))
	}
	var p PBox
	copy(p[:], entries)
	if err := p.validate(); err != nil {
		return PBox{}, err
	}
	return p, nil
}

func (p PBox) validate() error {
	var seen [8]bool
	for i, e := range p {
		if e > 7 {
			return fmt.Errorf("pbox[%d] = %d is outside bit range", i, e)
		}
		if seen[e] {
			return fmt.Errorf("pbox is not a permutation: source bit %d appears more than once", e)
		}
		seen[e] = true
	}
	return nil
}

// Permute moves each source bit of the block to its destination position.
func (p PBox) Permute(b byte) byte {
	var out byte
	for i, src := range p {
		bit := (b >> (7 - src)) & 1
		out |= bit << (7 - i)
	}
	return out
}

// Inverse returns the table that moves every bit back to where it came
// from. The receiver must be a permutation, which validate guarantees for
// every table built through NewPBox.
func (p PBox) Inverse() PBox {
	var inv PBox
	for i, src := range p {
		inv[src] = uint8(i)
	}
	return inv
}
