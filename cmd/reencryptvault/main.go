// reencryptvault rotates the passphrase of a wallet database's vault blob:
// it opens the blob with the old passphrase and re-seals it with the new
// one in place. Run it while walletd is stopped; the database file is
// locked exclusively.
package main

import (
	"flag"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/lumenvault/lumen-wallet/internal/storage"
	"github.com/lumenvault/lumen-wallet/internal/vault"
)

func main() {
	dataPath := flag.String("data", "wallet.db", "path to the wallet database file")
	flag.Parse()

	oldPass, err := readPassphrase("Old vault passphrase: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer clear(oldPass)

	newPass, err := readPassphrase("New vault passphrase: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer clear(newPass)

	confirm, err := readPassphrase("Repeat new passphrase: ")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer clear(confirm)

	if string(newPass) != string(confirm) {
		fmt.Fprintln(os.Stderr, "new passphrases do not match")
		os.Exit(1)
	}

	store, err := storage.OpenBolt(*dataPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer store.Close()

	if err := vault.Reencrypt(store, oldPass, newPass); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	fmt.Println("vault re-encrypted")
}

func readPassphrase(prompt string) ([]byte, error) {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return nil, fmt.Errorf("stdin is not a terminal: run interactively")
	}
	fmt.Fprint(os.Stderr, prompt)
	defer fmt.Fprintln(os.Stderr)

	raw, err := term.ReadPassword(int(os.Stdin.Fd()))
	if err != nil {
		return nil, fmt.Errorf("failed to read passphrase: %w", err)
	}
	if len(raw) == 0 {
		return nil, fmt.Errorf("passphrase cannot be empty")
	}
	out := make([]byte, len(raw))
	copy(out, raw)
	clear(raw)
	return out, nil
}
