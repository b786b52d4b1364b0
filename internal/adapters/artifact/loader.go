package artifact

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/trebuchet-org/hdeploy/internal/domain"
	"github.com/trebuchet-org/hdeploy/internal/usecase"
)

var (
	ErrUnknownFormat    = errors.New("unrecognized artifact format")
	ErrUnlinkedLibrary  = errors.New("bytecode has unlinked library references")
	ErrInvalidBytecode  = errors.New("bytecode is not valid hex")
	ErrMissingSidecar   = errors.New("missing companion file")
	unlinkedPlaceholder = "__"
)

// rawArtifact covers the JSON layouts we accept. Which fields are set tells the format apart.
type rawArtifact struct {
	ContractName string          `json:"contractName"`
	ABI          json.RawMessage `json:"abi"`
	Bytecode     json.RawMessage `json:"bytecode"`

	// compile-output layout: the ABI as a JSON-encoded string
	Interface *string `json:"interface"`
}

// foundryBytecode is the bytecode object of a Foundry artifact
type foundryBytecode struct {
	Object         string         `json:"object"`
	LinkReferences map[string]any `json:"linkReferences"`
}

// Loader reads compiled artifacts from disk
type Loader struct {
	log *slog.Logger
}

// NewLoader creates a new artifact loader
func NewLoader(log *slog.Logger) *Loader {
	return &Loader{
		log: log.With("component", "ArtifactLoader"),
	}
}

// Load reads the artifact at path. JSON files may be Foundry, Truffle/Hardhat or
// compile-output artifacts; .abi/.bin files are read together as solc output.
func (l *Loader) Load(ctx context.Context, path string) (*domain.Artifact, error) {
	var (
		artifact *domain.Artifact
		err      error
	)

	switch ext := filepath.Ext(path); {
	case ext == ".bin" || ext == ".abi" || strings.HasSuffix(path, ".abi.json"):
		artifact, err = loadSolcPair(path)
	default:
		artifact, err = loadJSON(path)
	}
	if err != nil {
		return nil, err
	}

	artifact.Path = path
	if artifact.Name == "" {
		artifact.Name = contractNameFromPath(path)
	}

	l.log.Debug("loaded artifact",
		"path", path,
		"format", artifact.Format,
		"name", artifact.Name,
		"bytecodeSize", len(artifact.Bytecode),
	)
	return artifact, nil
}

// Parse decodes artifact JSON already in memory
func Parse(data []byte) (*domain.Artifact, error) {
	var raw rawArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse artifact JSON: %w", err)
	}

	switch {
	case raw.Interface != nil:
		return parseCompileOutput(raw)
	case len(raw.ABI) > 0 && isJSONObject(raw.Bytecode):
		return parseFoundry(raw)
	case len(raw.ABI) > 0:
		return parseTruffle(raw)
	default:
		return nil, ErrUnknownFormat
	}
}

func loadJSON(path string) (*domain.Artifact, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user supplied artifact path
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}
	artifact, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return artifact, nil
}

func parseCompileOutput(raw rawArtifact) (*domain.Artifact, error) {
	parsed, err := parseABI([]byte(*raw.Interface))
	if err != nil {
		return nil, err
	}

	var bytecode string
	if err := json.Unmarshal(raw.Bytecode, &bytecode); err != nil {
		return nil, fmt.Errorf("bytecode must be a hex string: %w", err)
	}
	code, err := decodeBytecode(bytecode)
	if err != nil {
		return nil, err
	}

	return &domain.Artifact{
		Name:     raw.ContractName,
		Format:   domain.ArtifactFormatCompileOutput,
		ABI:      parsed,
		Bytecode: code,
	}, nil
}

func parseFoundry(raw rawArtifact) (*domain.Artifact, error) {
	parsed, err := parseABI(raw.ABI)
	if err != nil {
		return nil, err
	}

	var bc foundryBytecode
	if err := json.Unmarshal(raw.Bytecode, &bc); err != nil {
		return nil, fmt.Errorf("failed to parse bytecode object: %w", err)
	}
	if len(bc.LinkReferences) > 0 {
		return nil, fmt.Errorf("%w: %d source file(s)", ErrUnlinkedLibrary, len(bc.LinkReferences))
	}
	code, err := decodeBytecode(bc.Object)
	if err != nil {
		return nil, err
	}

	return &domain.Artifact{
		Name:     raw.ContractName,
		Format:   domain.ArtifactFormatFoundry,
		ABI:      parsed,
		Bytecode: code,
	}, nil
}

func parseTruffle(raw rawArtifact) (*domain.Artifact, error) {
	parsed, err := parseABI(raw.ABI)
	if err != nil {
		return nil, err
	}

	var bytecode string
	if len(raw.Bytecode) > 0 {
		if err := json.Unmarshal(raw.Bytecode, &bytecode); err != nil {
			return nil, fmt.Errorf("bytecode must be a hex string: %w", err)
		}
	}
	code, err := decodeBytecode(bytecode)
	if err != nil {
		return nil, err
	}

	return &domain.Artifact{
		Name:     raw.ContractName,
		Format:   domain.ArtifactFormatTruffle,
		ABI:      parsed,
		Bytecode: code,
	}, nil
}

// loadSolcPair reads Name.abi (or Name.abi.json) and Name.bin from the same directory
func loadSolcPair(path string) (*domain.Artifact, error) {
	base := strings.TrimSuffix(strings.TrimSuffix(strings.TrimSuffix(path, ".abi.json"), ".abi"), ".bin")

	abiPath := base + ".abi"
	if _, err := os.Stat(abiPath); err != nil {
		abiPath = base + ".abi.json"
	}

	abiData, err := os.ReadFile(abiPath) //nolint:gosec // derived from user supplied path
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMissingSidecar, abiPath, err)
	}
	binData, err := os.ReadFile(base + ".bin") //nolint:gosec // derived from user supplied path
	if err != nil {
		return nil, fmt.Errorf("%w: %s.bin: %v", ErrMissingSidecar, base, err)
	}

	parsed, err := parseABI(abiData)
	if err != nil {
		return nil, err
	}
	code, err := decodeBytecode(string(binData))
	if err != nil {
		return nil, err
	}

	return &domain.Artifact{
		Name:     filepath.Base(base),
		Format:   domain.ArtifactFormatSolc,
		ABI:      parsed,
		Bytecode: code,
	}, nil
}

func parseABI(data []byte) (*abi.ABI, error) {
	parsed, err := abi.JSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse ABI: %w", err)
	}
	return &parsed, nil
}

// decodeBytecode accepts hex with or without 0x. Empty input yields an empty slice,
// which artifact validation rejects later.
func decodeBytecode(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, unlinkedPlaceholder) {
		return nil, ErrUnlinkedLibrary
	}
	if s == "" || s == "0x" {
		return []byte{}, nil
	}
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	code, err := hexutil.Decode(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBytecode, err)
	}
	return code, nil
}

func isJSONObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

// contractNameFromPath turns out/Counter.sol/Counter.json into Counter
func contractNameFromPath(path string) string {
	name := filepath.Base(path)
	for _, ext := range []string{".json", ".abi", ".bin"} {
		name = strings.TrimSuffix(name, ext)
	}
	return name
}

var _ usecase.ArtifactLoader = (*Loader)(nil)
