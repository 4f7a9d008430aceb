package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/go-errors/errors"
	"github.com/samber/lo"
	"github.com/sirupsen/logrus"

	"github.com/SheharaNethkalana/Cryptography-code/pkg/config"
	"github.com/SheharaNethkalana/Cryptography-code/pkg/log"
	"github.com/SheharaNethkalana/Cryptography-code/pkg/modes"
	"github.com/SheharaNethkalana/Cryptography-code/pkg/spn"
)

// App bundles the demonstration's dependencies: configuration, logger and
// the cipher built from the configured tables and key.
type App struct {
	Config *config.AppConfig
	Log    *logrus.Entry
	Cipher *spn.Cipher
}

// NewApp builds the cipher from the app config and wires up the logger.
func NewApp(cfg *config.AppConfig) (*App, error) {
	app := &App{
		Config: cfg,
		Log:    log.NewLogger(cfg),
	}

	cipher, err := buildCipher(cfg.UserConfig)
	if err != nil {
		return app, err
	}
	app.Cipher = cipher

	return app, nil
}

// buildCipher assembles the cipher configuration, applying any table
// overrides from the user config on top of the reference tables.
func buildCipher(uc *config.UserConfig) (*spn.Cipher, error) {
	cfg := spn.Config{
		SBox: spn.ReferenceSBox,
		PBox: spn.ReferencePBox,
		Key:  uc.Key,
	}

	if len(uc.SBox) > 0 {
		sbox, err := spn.NewSBox(uc.SBox)
		if err != nil {
			return nil, errors.Errorf("invalid sbox override: %s", err)
		}
		cfg.SBox = sbox
	}

	if len(uc.PBox) > 0 {
		pbox, err := spn.NewPBox(uc.PBox)
		if err != nil {
			return nil, errors.Errorf("invalid pbox override: %s", err)
		}
		cfg.PBox = pbox
	}

	return spn.New(cfg)
}

// Run encrypts and decrypts the configured block sequence in both modes and
// prints the results.
func (a *App) Run(ctx context.Context) error {
	blocks := a.Config.UserConfig.Blocks
	iv := a.Config.UserConfig.IV

	fmt.Printf("plaintext:    %s\n\n", formatBlocks(blocks))

	if err := a.runMode(ctx, modes.ECB, blocks, iv); err != nil {
		return err
	}
	return a.runMode(ctx, modes.CBC, blocks, iv)
}

func (a *App) runMode(ctx context.Context, mode modes.Mode, blocks []byte, iv byte) error {
	mc, err := modes.NewContext(a.Cipher, modes.Config{Mode: mode, IV: iv})
	if err != nil {
		return err
	}

	a.Log.WithFields(logrus.Fields{
		"mode":   mode.String(),
		"blocks": len(blocks),
	}).Info("running mode demonstration")

	encrypted, err := mc.Encrypt(ctx, blocks)
	if err != nil {
		return err
	}

	decrypted, err := mc.Decrypt(ctx, encrypted)
	if err != nil {
		return err
	}

	fmt.Println(color.New(color.FgCyan, color.Bold).Sprintf("%s mode", mode))
	fmt.Printf("  ciphertext: %s\n", formatBlocks(encrypted))
	fmt.Printf("  decrypted:  %s\n\n", formatBlocks(decrypted))

	return nil
}

// formatBlocks renders a block sequence in binary, the way the engine's
// walkthrough presents blocks.
func formatBlocks(blocks []byte) string {
	return strings.Join(lo.Map(blocks, func(b byte, _ int) string {
		return fmt.Sprintf("0b%08b", b)
	}), " ")
}
