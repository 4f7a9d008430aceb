package spn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPermuteMovesSingleBits(t *testing.T) {
	// Destination position i takes the source bit at ReferencePBox[i],
	// counting from the most significant bit. Source bit 0 (the MSB) is
	// listed at destination 1, so 0b10000000 becomes 0b01000000.
	assert.Equal(t, byte(0b01000000), ReferencePBox.Permute(0b10000000))

	// Source bit 3 is listed at destination 0.
	assert.Equal(t, byte(0b10000000), ReferencePBox.Permute(0b00010000))
}

func TestPermuteIsBijectiveOverBlockDomain(t *testing.T) {
	seen := make(map[byte]bool, 256)
	for b := 0; b < 256; b++ {
		out := ReferencePBox.Permute(byte(b))
		require.False(t, seen[out], "value %#x produced twice", out)
		seen[out] = true
	}
	assert.Len(t, seen, 256)
}

func TestPBoxInverseRoundTrips(t *testing.T) {
	inv := ReferencePBox.Inverse()
	for b := 0; b < 256; b++ {
		require.Equal(t, byte(b), inv.Permute(ReferencePBox.Permute(byte(b))))
	}
}

func TestNewPBoxValidation(t *testing.T) {
	type scenario struct {
		name    string
		entries []uint8
		ok      bool
	}

	scenarios := []scenario{
		{
			"reference table",
			ReferencePBox[:],
			true,
		},
		{
			"wrong length",
			[]uint8{3, 0, 2},
			false,
		},
		{
			"entry outside bit range",
			[]uint8{8, 0, 2, 4, 6, 1, 7, 5},
			false,
		},
		{
			"duplicate entry",
			[]uint8{3, 3, 2, 4, 6, 1, 7, 5},
			false,
		},
	}

	for _, s := range scenarios {
		t.Run(s.name, func(t *testing.T) {
			_, err := NewPBox(s.entries)
			if s.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
