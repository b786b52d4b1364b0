package domain

import (
	"errors"

	"github.com/ethereum/go-ethereum/accounts/abi"
)

var (
	ErrMissingABI    = errors.New("artifact has no ABI")
	ErrEmptyBytecode = errors.New("artifact bytecode is empty")
)

// ArtifactFormat names the compiler output layout an artifact was read from
type ArtifactFormat string

const (
	ArtifactFormatFoundry       ArtifactFormat = "foundry"
	ArtifactFormatCompileOutput ArtifactFormat = "compile-output"
	ArtifactFormatTruffle       ArtifactFormat = "truffle"
	ArtifactFormatSolc          ArtifactFormat = "solc"
)

// Artifact is a compiled contract: its callable surface and creation bytecode.
// It is treated as read-only once loaded.
type Artifact struct {
	Name     string
	Path     string
	Format   ArtifactFormat
	ABI      *abi.ABI
	Bytecode []byte

	// ConstructorArgs are raw values for the ABI constructor inputs, in order
	ConstructorArgs []string
}

// Validate checks the artifact can be submitted
func (a *Artifact) Validate() error {
	if a == nil || a.ABI == nil {
		return ErrMissingABI
	}
	if len(a.Bytecode) == 0 {
		return ErrEmptyBytecode
	}
	return nil
}

// DisplayName returns the contract name, or the file it came from
func (a *Artifact) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Path
}
