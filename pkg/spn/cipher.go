// Package spn implements a single-round 8-bit substitution-permutation
// cipher: a nibble substitution for confusion, a half-block mix, and a bit
// permutation for diffusion. It is a teaching analogue of a product cipher
// and makes no claim to cryptographic strength.
package spn

import "fmt"

// Config carries the tables and key a Cipher is built from. Tables are
// copied into the cipher at construction time; a Cipher never shares
// mutable state.
type Config struct {
	SBox SBox
	PBox PBox
	Key  byte
}

// Cipher encrypts and decrypts single 8-bit blocks.
type Cipher struct {
	sbox    SBox
	pbox    PBox
	invSBox SBox
	invPBox PBox
	key     byte
}

// New validates the configured tables and precomputes their inverses.
func New(cfg Config) (*Cipher, error) {
	if err := cfg.SBox.validate(); err != nil {
		return nil, fmt.Errorf("invalid substitution table: %w", err)
	}
	if err := cfg.PBox.validate(); err != nil {
		return nil, fmt.Errorf("invalid permutation table: %w", err)
	}
	return &Cipher{
		sbox:    cfg.SBox,
		pbox:    cfg.PBox,
		invSBox: cfg.SBox.Inverse(),
		invPBox: cfg.PBox.Inverse(),
		key:     cfg.Key,
	}, nil
}

// NewReference returns a cipher over the reference tables.
func NewReference(key byte) *Cipher {
	c, err := New(Config{SBox: ReferenceSBox, PBox: ReferencePBox, Key: key})
	if err != nil {
		// the reference tables are valid permutations
		panic(err)
	}
	return c
}

// mix combines a half-block with a round value by XOR. Encrypt passes the
// substituted right half as the round value, so the key never reaches this
// step; see the Encrypt doc comment.
func mix(half, round byte) byte {
	return half ^ round
}

// Encrypt runs the single round over one block: split into nibbles,
// substitute the right half, mix the left half with the substituted right
// half, reassemble with the mixed half on top, and permute the result.
//
// The configured key does not influence the output: the mix step receives
// the substituted right half rather than the key. The mixing function
// accepts a round value precisely so a key could be threaded through, but
// the round as defined here never does. The behaviour is deliberate,
// recorded in DESIGN.md, and pinned by the package tests.
func (c *Cipher) Encrypt(b byte) byte {
	left := (b >> 4) & 0xF
	right := b & 0xF

	rightSub := c.sbox.Substitute(right)
	mixed := mix(left, rightSub)

	combined := (mixed << 4) | rightSub
	return c.pbox.Permute(combined)
}

// Decrypt inverts Encrypt: undo the permutation, read back the mixed and
// substituted halves, recover the left half by repeating the XOR and the
// right half through the inverse substitution table.
//
// Reusing the forward round for decryption, as some renditions of this
// design do, only round-trips when the round is self-inverse, which this
// one is not. A genuine inverse was chosen instead; the forward round's
// non-self-inverseness is kept visible in the tests.
func (c *Cipher) Decrypt(b byte) byte {
	combined := c.invPBox.Permute(b)

	mixed := (combined >> 4) & 0xF
	rightSub := combined & 0xF

	left := mix(mixed, rightSub)
	right := c.invSBox.Substitute(rightSub)

	return (left << 4) | right
}

// Substitute maps a nibble through the cipher's substitution table.
func (c *Cipher) Substitute(v byte) byte {
	return c.sbox.Substitute(v)
}

// Permute reorders the bits of a block with the cipher's permutation table.
func (c *Cipher) Permute(b byte) byte {
	return c.pbox.Permute(b)
}

// Key returns the configured key.
func (c *Cipher) Key() byte {
	return c.key
}
