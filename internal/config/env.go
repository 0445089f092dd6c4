package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"golang.org/x/term"
)

// demoPassphrase seals the vault when no passphrase is configured. This is
// the demo security model: the blob is protected against casual reads of
// the data file, not against an attacker who has the binary. Set
// VAULT_PASSPHRASE or VAULT_PROMPT_PASSPHRASE=true to use a real one.
const demoPassphrase = "lumen-wallet-demo-vault"

// Config contains all configuration parameters for the application.
type Config struct {
	Port             string `envconfig:"PORT" default:"8080"`
	DataPath         string `envconfig:"WALLET_DATA_PATH" default:"wallet.db"`
	DefaultNetwork   string `envconfig:"WALLET_DEFAULT_NETWORK" default:"testnet"`
	VaultPassphrase  string `envconfig:"VAULT_PASSPHRASE"`
	PromptPassphrase bool   `envconfig:"VAULT_PROMPT_PASSPHRASE" default:"false"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"info"`
}

// cfg is the global configuration instance
var cfg *Config

// Init loads configuration from environment variables.
func Init() error {
	cfg = &Config{}
	if err := envconfig.Process("", cfg); err != nil {
		return fmt.Errorf("failed to process config: %w", err)
	}
	return nil
}

// Get returns the global configuration instance.
// Panics if Init() was not called.
func Get() *Config {
	if cfg == nil {
		panic("config not initialized, call Init() first")
	}
	return cfg
}

// GetPort returns the HTTP listen port from configuration
func GetPort() string {
	return Get().Port
}

// GetDataPath returns the path of the local wallet database
func GetDataPath() string {
	return Get().DataPath
}

// GetDefaultNetwork returns the network used when no preference is persisted
func GetDefaultNetwork() string {
	return Get().DefaultNetwork
}

// GetLogLevel returns the configured log level name
func GetLogLevel() string {
	return Get().LogLevel
}

var promptedPassphrase []byte

// PromptForPassphrase prompts the user for the vault passphrase in the
// terminal. The passphrase is read without echoing and kept in memory.
// Call this at startup, before the vault is opened.
func PromptForPassphrase() error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return errors.New("stdin is not a terminal: run the app interactively to enter the passphrase")
	}
	fmt.Fprint(os.Stderr, "Enter vault passphrase: ")
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return fmt.Errorf("failed to read passphrase: %w", err)
	}
	if len(raw) == 0 {
		return errors.New("passphrase cannot be empty")
	}

	promptedPassphrase = make([]byte, len(raw))
	copy(promptedPassphrase, raw)
	clear(raw)
	return nil
}

// VaultPassphraseBytes returns the passphrase the vault should be sealed
// with: the prompted one when VAULT_PROMPT_PASSPHRASE is set, else
// VAULT_PASSPHRASE, else the fixed demo passphrase.
// Caller must zero the returned slice after use.
func VaultPassphraseBytes() ([]byte, error) {
	c := Get()
	if c.PromptPassphrase {
		if len(promptedPassphrase) == 0 {
			return nil, errors.New("passphrase not set: call PromptForPassphrase at startup")
		}
		out := make([]byte, len(promptedPassphrase))
		copy(out, promptedPassphrase)
		return out, nil
	}
	if c.VaultPassphrase != "" {
		return []byte(c.VaultPassphrase), nil
	}
	return []byte(demoPassphrase), nil
}
