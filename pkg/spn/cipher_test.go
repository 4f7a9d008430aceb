package spn

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Worked example over the reference tables: left = 0xC, right = 0xD,
// substituted right = 0x9, mixed = 0xC ^ 0x9 = 0x5, combined = 0x59,
// permuted = 0x96.
func TestEncryptPinnedVector(t *testing.T) {
	c := NewReference(0b10101010)
	assert.Equal(t, byte(0b10010110), c.Encrypt(0b11001101))
	assert.Equal(t, byte(0b10111000), c.Encrypt(0b10011001))
}

func TestEncryptIsTotalAndDeterministic(t *testing.T) {
	c := NewReference(0x42)
	for b := 0; b < 256; b++ {
		first := c.Encrypt(byte(b))
		require.Equal(t, first, c.Encrypt(byte(b)))
	}
}

// The mix step combines the left half with the substituted right half, not
// with the key, so the transform output is the same for every key. This is
// the documented resolution of the engine's key-mixing behaviour.
func TestEncryptIsKeyIndependent(t *testing.T) {
	for b := 0; b < 256; b += 17 {
		want := NewReference(0x00).Encrypt(byte(b))
		for k := 0; k < 256; k += 31 {
			assert.Equal(t, want, NewReference(byte(k)).Encrypt(byte(b)))
		}
	}
}

func TestDecryptInvertsEncrypt(t *testing.T) {
	c := NewReference(0b10101010)
	for b := 0; b < 256; b++ {
		enc := c.Encrypt(byte(b))
		require.Equal(t, byte(b), c.Decrypt(enc))
	}
}

func TestEncryptIsBijective(t *testing.T) {
	c := NewReference(0)
	seen := make(map[byte]bool, 256)
	for b := 0; b < 256; b++ {
		out := c.Encrypt(byte(b))
		require.False(t, seen[out])
		seen[out] = true
	}
}

// Applying the forward round a second time does not "decrypt": that only
// recovers the plaintext when the round is its own inverse, which it is
// not. Decrypt exists for exactly this reason.
func TestForwardRoundIsNotSelfInverse(t *testing.T) {
	c := NewReference(0)
	fixed := 0
	for b := 0; b < 256; b++ {
		if c.Encrypt(c.Encrypt(byte(b))) == byte(b) {
			fixed++
		}
	}
	assert.Less(t, fixed, 256)
}

func TestNewRejectsInvalidTables(t *testing.T) {
	badSBox := ReferenceSBox
	badSBox[1] = badSBox[0]
	_, err := New(Config{SBox: badSBox, PBox: ReferencePBox})
	assert.Error(t, err)

	badPBox := ReferencePBox
	badPBox[1] = badPBox[0]
	_, err = New(Config{SBox: ReferenceSBox, PBox: badPBox})
	assert.Error(t, err)
}

func TestAlternativeTables(t *testing.T) {
	// The identity tables turn the round into a plain half swap of the XOR
	// mix, which must still round-trip.
	identitySBox, err := NewSBox([]uint8{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15})
	require.NoError(t, err)
	identityPBox, err := NewPBox([]uint8{0, 1, 2, 3, 4, 5, 6, 7})
	require.NoError(t, err)

	c, err := New(Config{SBox: identitySBox, PBox: identityPBox})
	require.NoError(t, err)

	// With identity tables: rightSub = right, mixed = left ^ right.
	assert.Equal(t, byte(0b01111101), c.Encrypt(0b10101101))

	for b := 0; b < 256; b++ {
		require.Equal(t, byte(b), c.Decrypt(c.Encrypt(byte(b))))
	}
}

func TestCipherAccessors(t *testing.T) {
	c := NewReference(0xAA)
	assert.Equal(t, byte(0xAA), c.Key())
	assert.Equal(t, ReferenceSBox.Substitute(0x5), c.Substitute(0x5))
	assert.Equal(t, ReferencePBox.Permute(0x5A), c.Permute(0x5A))
}
