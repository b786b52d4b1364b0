package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const phrase = "test test test test test test test test test test test junk"

func TestMnemonic_NeverRenders(t *testing.T) {
	m := NewMnemonic(phrase)

	assert.Equal(t, redacted, m.String())
	assert.Equal(t, redacted, fmt.Sprintf("%v", m))
	assert.Equal(t, redacted, fmt.Sprintf("%#v", m))

	data, err := json.Marshal(struct{ M *Mnemonic }{m})
	require.NoError(t, err)
	assert.NotContains(t, string(data), "junk")

	var buf bytes.Buffer
	slog.New(slog.NewJSONHandler(&buf, nil)).Info("creds", "mnemonic", m, "credentials", Credentials{Mnemonic: m, Network: "sepolia"})
	assert.NotContains(t, buf.String(), "junk")
	assert.Contains(t, buf.String(), "sepolia")

	assert.Equal(t, phrase, m.Reveal())
}

func TestMnemonic_Normalizes(t *testing.T) {
	m := NewMnemonic("  test test\ttest test test test\n test test test test test junk \n")
	assert.Equal(t, phrase, m.Reveal())

	raw := []byte(phrase + "\n")
	fromFile := NewMnemonicFromBytes(raw)
	assert.Equal(t, phrase, fromFile.Reveal())
	assert.Equal(t, make([]byte, len(raw)), raw, "source buffer is wiped")
}

func TestMnemonic_Destroy(t *testing.T) {
	m := NewMnemonic(phrase)
	backing := m.value

	m.Destroy()
	assert.True(t, m.Empty())
	assert.Equal(t, "", m.Reveal())
	assert.Equal(t, make([]byte, len(backing)), backing)

	m.Destroy()
	var nilMnemonic *Mnemonic
	nilMnemonic.Destroy()
	assert.True(t, nilMnemonic.Empty())
}

func TestSecret_KeepsWhitespace(t *testing.T) {
	s := NewSecret(" two  spaces ")
	assert.Equal(t, " two  spaces ", s.Reveal())
	assert.Equal(t, redacted, fmt.Sprintf("%v", s))
	assert.Equal(t, redacted, fmt.Sprintf("%#v", s))

	var nilSecret *Secret
	assert.Equal(t, "", nilSecret.Reveal())
}

func TestCredentials_Validate(t *testing.T) {
	tests := []struct {
		name  string
		creds *Credentials
		want  error
	}{
		{"nil", nil, ErrEmptyMnemonic},
		{"no mnemonic", &Credentials{Network: "sepolia"}, ErrEmptyMnemonic},
		{"blank mnemonic", &Credentials{Mnemonic: NewMnemonic("   "), Network: "sepolia"}, ErrEmptyMnemonic},
		{"blank network", &Credentials{Mnemonic: NewMnemonic(phrase), Network: " "}, ErrEmptyNetwork},
		{"ok", &Credentials{Mnemonic: NewMnemonic(phrase), Network: "https://rpc.example.com"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.creds.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestCredentials_PathAndDestroy(t *testing.T) {
	passphrase := NewSecret("extra")
	backing := passphrase.value
	creds := &Credentials{Mnemonic: NewMnemonic(phrase), Passphrase: passphrase}
	assert.Equal(t, DefaultDerivationPath, creds.Path())

	creds.DerivationPath = "m/44'/60'/0'/0/3"
	assert.Equal(t, "m/44'/60'/0'/0/3", creds.Path())

	creds.Destroy()
	assert.True(t, creds.Mnemonic.Empty())
	assert.True(t, creds.Passphrase.Empty())
	assert.Equal(t, make([]byte, len(backing)), backing)

	creds = &Credentials{Mnemonic: NewMnemonic(phrase)}
	creds.Destroy()
	assert.True(t, creds.Passphrase.Empty())

	var nilCreds *Credentials
	nilCreds.Destroy()
}

func TestArtifact_Validate(t *testing.T) {
	var nilArtifact *Artifact
	assert.ErrorIs(t, nilArtifact.Validate(), ErrMissingABI)
	assert.ErrorIs(t, (&Artifact{}).Validate(), ErrMissingABI)

	named := &Artifact{Path: "out/Inbox.sol/Inbox.json"}
	assert.Equal(t, "out/Inbox.sol/Inbox.json", named.DisplayName())
	named.Name = "Inbox"
	assert.Equal(t, "Inbox", named.DisplayName())
}
