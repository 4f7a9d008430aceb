package config

import (
	"os"
	"path/filepath"

	"github.com/OpenPeeDeeP/xdg"
	"github.com/go-errors/errors"
	yaml "github.com/jesseduffield/yaml"
)

// AppConfig contains the base configuration fields required by the
// demonstration binary.
type AppConfig struct {
	Debug       bool
	Version     string
	Name        string
	BuildSource string
	UserConfig  *UserConfig
	ConfigDir   string
}

// UserConfig holds the user-configurable options. Field names are camelCase
// in the actual config.yml; view the defaults with the --config flag.
type UserConfig struct {
	// Key is the 8-bit cipher key.
	Key uint8 `yaml:"key,omitempty"`

	// IV seeds the CBC chain as the ciphertext block preceding the first
	// real block. ECB ignores it.
	IV uint8 `yaml:"iv,omitempty"`

	// Blocks is the plaintext block sequence the demonstration encrypts.
	Blocks []uint8 `yaml:"blocks,omitempty"`

	// SBox overrides the engine's substitution table. When set it must
	// hold 16 entries forming a permutation of 0..15.
	SBox []uint8 `yaml:"sbox,omitempty"`

	// PBox overrides the engine's bit permutation table. When set it must
	// hold 8 entries forming a permutation of 0..7.
	PBox []uint8 `yaml:"pbox,omitempty"`
}

// NewAppConfig resolves the config directory, loads the user config on top
// of the defaults and returns the assembled application configuration.
func NewAppConfig(name, version, buildSource string, debug bool) (*AppConfig, error) {
	configDir, err := findOrCreateConfigDir(name)
	if err != nil {
		return nil, err
	}

	userConfig, err := loadUserConfigWithDefaults(configDir)
	if err != nil {
		return nil, err
	}

	return &AppConfig{
		Debug:       debug || os.Getenv("DEBUG") == "TRUE",
		Version:     version,
		Name:        name,
		BuildSource: buildSource,
		UserConfig:  userConfig,
		ConfigDir:   configDir,
	}, nil
}

func configDirForName(name string) string {
	if envConfigDir := os.Getenv("CONFIG_DIR"); envConfigDir != "" {
		return envConfigDir
	}
	return xdg.New("sheharanethkalana", name).ConfigHome()
}

func findOrCreateConfigDir(name string) (string, error) {
	folder := configDirForName(name)
	return folder, os.MkdirAll(folder, 0o755)
}

// GetDefaultConfig returns the demonstration defaults: the block pair,
// key and IV the engine's walkthrough uses. An omitted sbox or pbox means
// the reference tables.
func GetDefaultConfig() UserConfig {
	return UserConfig{
		Key:    0b10101010,
		IV:     0b10101010,
		Blocks: []uint8{0b11001101, 0b10011001},
	}
}

func loadUserConfigWithDefaults(configDir string) (*UserConfig, error) {
	defaults := GetDefaultConfig()
	return loadUserConfig(configDir, &defaults)
}

func loadUserConfig(configDir string, base *UserConfig) (*UserConfig, error) {
	fileName := filepath.Join(configDir, "config.yml")

	if _, err := os.Stat(fileName); err != nil {
		if !os.IsNotExist(err) {
			return nil, errors.Errorf("unable to read %s: %s", fileName, err)
		}
		return base, nil
	}

	content, err := os.ReadFile(fileName)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(content, base); err != nil {
		return nil, errors.Errorf("unable to parse %s: %s", fileName, err)
	}

	return base, nil
}

// WriteToUserConfig applies an update to the user config and persists it to
// the config file.
func (c *AppConfig) WriteToUserConfig(updateConfig func(*UserConfig) error) error {
	if err := updateConfig(c.UserConfig); err != nil {
		return err
	}

	content, err := yaml.Marshal(c.UserConfig)
	if err != nil {
		return err
	}

	return os.WriteFile(c.ConfigFilename(), content, 0o644)
}

// ConfigFilename returns the path of the user config file.
func (c *AppConfig) ConfigFilename() string {
	return filepath.Join(c.ConfigDir, "config.yml")
}
