package domain

import (
	"errors"
	"log/slog"
	"strings"
)

// DefaultDerivationPath is the first account on the standard Ethereum BIP-44 path
const DefaultDerivationPath = "m/44'/60'/0'/0/0"

const redacted = "[REDACTED]"

var (
	ErrEmptyMnemonic = errors.New("mnemonic is empty")
	ErrEmptyNetwork  = errors.New("network identifier is empty")
)

// Secret holds sensitive text in a byte slice so it can be wiped with Destroy.
// It never renders through fmt, slog or text encoders.
type Secret struct {
	value []byte
}

// Mnemonic is a Secret holding a BIP-39 phrase
type Mnemonic = Secret

// NewSecret copies s into a new secret as is
func NewSecret(s string) *Secret {
	return &Secret{value: []byte(s)}
}

// NewMnemonic copies phrase into a new secret, normalizing whitespace
func NewMnemonic(phrase string) *Mnemonic {
	return &Mnemonic{value: []byte(strings.Join(strings.Fields(phrase), " "))}
}

// NewMnemonicFromBytes takes ownership of b. The caller must not reuse it.
func NewMnemonicFromBytes(b []byte) *Mnemonic {
	normalized := []byte(strings.Join(strings.Fields(string(b)), " "))
	wipe(b)
	return &Mnemonic{value: normalized}
}

// Empty reports whether the secret holds nothing
func (s *Secret) Empty() bool {
	return s == nil || len(s.value) == 0
}

// Reveal returns the value as a string. Only key derivation should call it;
// the returned copy cannot be wiped.
func (s *Secret) Reveal() string {
	if s == nil {
		return ""
	}
	return string(s.value)
}

// Destroy zeroes the value. Safe to call more than once.
func (s *Secret) Destroy() {
	if s == nil {
		return
	}
	wipe(s.value)
	s.value = nil
}

func (s *Secret) String() string {
	return redacted
}

func (s *Secret) GoString() string {
	return redacted
}

// LogValue keeps the value out of structured logs
func (s *Secret) LogValue() slog.Value {
	return slog.StringValue(redacted)
}

// MarshalText keeps the value out of JSON and other text encodings
func (s *Secret) MarshalText() ([]byte, error) {
	return []byte(redacted), nil
}

// Credentials bind a secret to a target network
type Credentials struct {
	Mnemonic       *Mnemonic
	Passphrase     *Secret
	DerivationPath string

	// Network is either an RPC URL or a symbolic name resolved through configuration
	Network string
}

// Validate checks that both the secret and the network identifier are present
func (c *Credentials) Validate() error {
	if c == nil || c.Mnemonic.Empty() {
		return ErrEmptyMnemonic
	}
	if strings.TrimSpace(c.Network) == "" {
		return ErrEmptyNetwork
	}
	return nil
}

// Path returns the derivation path, falling back to the default
func (c *Credentials) Path() string {
	if c.DerivationPath == "" {
		return DefaultDerivationPath
	}
	return c.DerivationPath
}

// Destroy wipes the secret material held by the credentials
func (c *Credentials) Destroy() {
	if c == nil {
		return
	}
	c.Mnemonic.Destroy()
	c.Passphrase.Destroy()
}

// LogValue lets credentials be logged without the secret
func (c Credentials) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("network", RedactURL(c.Network)),
		slog.String("path", c.Path()),
		slog.String("mnemonic", redacted),
	)
}

func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
