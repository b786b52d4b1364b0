package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/trebuchet-org/hdeploy/internal/domain"
)

func TestNew_RedactsSecrets(t *testing.T) {
	t.Setenv(LevelEnvVar, "")
	var buf bytes.Buffer
	log := New(&buf, true)

	phrase := "test test test test test test test test test test test junk"
	creds := domain.Credentials{
		Mnemonic:   domain.NewMnemonic(phrase),
		Passphrase: domain.NewSecret("hunter2"),
		Network:    "sepolia",
	}
	keyed := domain.Credentials{Network: "https://eth-mainnet.example.com/v2/SECRETAPIKEY"}

	log.Debug("deploying",
		"credentials", creds,
		"mnemonic", phrase,
		"passphrase", creds.Passphrase,
		"secret", creds.Mnemonic,
		"target", keyed,
	)

	out := buf.String()
	assert.Contains(t, out, "credentials.network=sepolia")
	assert.NotContains(t, out, "junk")
	assert.NotContains(t, out, "hunter2")
	assert.NotContains(t, out, "SECRETAPIKEY")
	assert.Contains(t, out, "target.network=https://eth-mainnet.example.com/…")
	assert.Contains(t, out, "[REDACTED]")
}

func TestNew_Level(t *testing.T) {
	t.Run("info by default", func(t *testing.T) {
		t.Setenv(LevelEnvVar, "")
		var buf bytes.Buffer
		log := New(&buf, false)
		log.Debug("quiet")
		log.Info("loud")
		assert.NotContains(t, buf.String(), "quiet")
		assert.Contains(t, buf.String(), "loud")
		assert.NotContains(t, buf.String(), "time=")
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Setenv(LevelEnvVar, "error")
		var buf bytes.Buffer
		New(&buf, true).Warn("hidden")
		assert.Empty(t, buf.String())
	})
}
