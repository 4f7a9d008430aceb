// Package modes turns a single-block cipher into a sequence cipher by
// driving it in a chaining mode. ECB processes blocks independently and in
// parallel; CBC chains each block to the previous ciphertext block, so
// encryption is strictly sequential while decryption, which only needs the
// ciphertext stream, is processed by the same worker pool as ECB.
package modes

import (
	"context"
	"crypto/rand"
	"fmt"
	"io"
	"sync"

	"github.com/go-errors/errors"
)

// Mode selects a chaining mode.
type Mode int

const (
	ECB Mode = iota
	CBC
)

func (m Mode) String() string {
	switch m {
	case ECB:
		return "ECB"
	case CBC:
		return "CBC"
	default:
		return "Unknown"
	}
}

// BlockCipher is the single-block primitive a Context drives.
type BlockCipher interface {
	Encrypt(b byte) byte
	Decrypt(b byte) byte
}

// Config configures a mode Context.
type Config struct {
	Mode Mode

	// IV stands in for the previous ciphertext block before the first
	// block. Only CBC reads it.
	IV byte

	// Workers caps how many blocks the parallel paths process at once.
	// Zero means the default of 8.
	Workers int
}

const defaultWorkers = 8

// Context drives a block cipher in a fixed mode over block sequences.
type Context struct {
	cipher  BlockCipher
	mode    Mode
	iv      byte
	workers int
}

// NewContext validates the configuration and returns a mode driver.
func NewContext(cipher BlockCipher, cfg Config) (*Context, error) {
	if cipher == nil {
		return nil, errors.New("cipher cannot be nil")
	}
	if cfg.Mode != ECB && cfg.Mode != CBC {
		return nil, errors.Errorf("unsupported cipher mode: %v", cfg.Mode)
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	return &Context{
		cipher:  cipher,
		mode:    cfg.Mode,
		iv:      cfg.IV,
		workers: workers,
	}, nil
}

// RandomIV draws a fresh initialization vector from crypto/rand.
func RandomIV() (byte, error) {
	var buf [1]byte
	if _, err := io.ReadFull(rand.Reader, buf[:]); err != nil {
		return 0, fmt.Errorf("failed to generate IV: %w", err)
	}
	return buf[0], nil
}

// Encrypt produces the ciphertext sequence for the given plaintext blocks.
// Output length and order always match the input.
func (c *Context) Encrypt(ctx context.Context, blocks []byte) ([]byte, error) {
	switch c.mode {
	case ECB:
		return c.mapBlocks(ctx, blocks, c.cipher.Encrypt)
	case CBC:
		return c.encryptCBC(ctx, blocks)
	default:
		return nil, errors.Errorf("unsupported cipher mode: %v", c.mode)
	}
}

// Decrypt produces the plaintext sequence for the given ciphertext blocks.
func (c *Context) Decrypt(ctx context.Context, blocks []byte) ([]byte, error) {
	switch c.mode {
	case ECB:
		return c.mapBlocks(ctx, blocks, c.cipher.Decrypt)
	case CBC:
		return c.decryptCBC(ctx, blocks)
	default:
		return nil, errors.Errorf("unsupported cipher mode: %v", c.mode)
	}
}

// mapBlocks applies a per-block function across the sequence with a bounded
// worker pool, keeping output indices aligned with input indices. Both ECB
// directions go through here.
func (c *Context) mapBlocks(ctx context.Context, blocks []byte, apply func(byte) byte) ([]byte, error) {
	out := make([]byte, len(blocks))
	if len(blocks) == 0 {
		return out, nil
	}

	numWorkers := min(len(blocks), c.workers)
	jobs := make(chan int, len(blocks))
	for i := range blocks {
		jobs <- i
	}
	close(jobs)

	errCh := make(chan error, numWorkers)
	var wg sync.WaitGroup

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				default:
				}

				out[i] = apply(blocks[i])
			}
		}()
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}

// encryptCBC XORs each plaintext block with the previous ciphertext block
// before encrypting it. Each step consumes the previous step's output, so
// the loop cannot be parallelized.
func (c *Context) encryptCBC(ctx context.Context, blocks []byte) ([]byte, error) {
	out := make([]byte, len(blocks))
	prev := c.iv

	for i, b := range blocks {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		enc := c.cipher.Encrypt(b ^ prev)
		out[i] = enc
		prev = enc
	}

	return out, nil
}

// decryptCBC decrypts each ciphertext block and XORs the result with the
// previous ciphertext block, or the IV for the first block. The chaining
// variable is the input ciphertext rather than the recovered plaintext,
// so every block only needs data that is available up front and the
// sequence is processed by a worker pool.
func (c *Context) decryptCBC(ctx context.Context, blocks []byte) ([]byte, error) {
	out := make([]byte, len(blocks))
	if len(blocks) == 0 {
		return out, nil
	}

	numWorkers := min(len(blocks), c.workers)
	jobs := make(chan int, len(blocks))
	for i := range blocks {
		jobs <- i
	}
	close(jobs)

	errCh := make(chan error, numWorkers)
	var wg sync.WaitGroup

	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				select {
				case <-ctx.Done():
					errCh <- ctx.Err()
					return
				default:
				}

				prev := c.iv
				if i > 0 {
					prev = blocks[i-1]
				}
				out[i] = c.cipher.Decrypt(blocks[i]) ^ prev
			}
		}()
	}

	wg.Wait()
	close(errCh)

	for err := range errCh {
		if err != nil {
			return nil, err
		}
	}

	return out, nil
}
