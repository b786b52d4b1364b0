package domain

import (
	"errors"
	"fmt"
)

// Stage identifies which step of a deployment failed
type Stage string

const (
	StageConfiguration Stage = "configuration"
	StageArtifact      Stage = "artifact"
	StageConnection    Stage = "connection"
	StageTransaction   Stage = "transaction"
)

// Sentinel errors for each failure stage. Use errors.Is against a
// *DeployError to find out where a deployment stopped.
var (
	// ErrConfiguration is returned for invalid or missing credentials or network id.
	// No I/O has happened when this is returned.
	ErrConfiguration = errors.New("configuration error")

	// ErrArtifact is returned when the compiled artifact is unusable
	ErrArtifact = errors.New("artifact error")

	// ErrConnection is returned when the network is unreachable or rejects the handshake.
	// No funds have been spent.
	ErrConnection = errors.New("connection error")

	// ErrTransaction is returned when the creation transaction was attempted and failed.
	// Gas may have been billed.
	ErrTransaction = errors.New("transaction error")
)

// ErrZeroAddress is returned when a confirmed deployment yields the zero address
var ErrZeroAddress = errors.New("deployment returned the zero address")

// DeployError carries the failing stage and the underlying cause
type DeployError struct {
	Stage Stage
	Err   error
}

func (e *DeployError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s error", e.Stage)
	}
	return fmt.Sprintf("%s error: %v", e.Stage, e.Err)
}

func (e *DeployError) Unwrap() error {
	return e.Err
}

// Is matches the stage sentinel so callers can write errors.Is(err, ErrConnection)
func (e *DeployError) Is(target error) bool {
	return target == e.Stage.Sentinel()
}

// Sentinel returns the sentinel error for the stage
func (s Stage) Sentinel() error {
	switch s {
	case StageConfiguration:
		return ErrConfiguration
	case StageArtifact:
		return ErrArtifact
	case StageConnection:
		return ErrConnection
	case StageTransaction:
		return ErrTransaction
	default:
		return nil
	}
}

// NewConfigurationError wraps err as a configuration stage failure
func NewConfigurationError(err error) error {
	return &DeployError{Stage: StageConfiguration, Err: err}
}

// NewArtifactError wraps err as an artifact stage failure
func NewArtifactError(err error) error {
	return &DeployError{Stage: StageArtifact, Err: err}
}

// NewConnectionError wraps err as a connection stage failure
func NewConnectionError(err error) error {
	return &DeployError{Stage: StageConnection, Err: err}
}

// NewTransactionError wraps err as a transaction stage failure
func NewTransactionError(err error) error {
	return &DeployError{Stage: StageTransaction, Err: err}
}

// StageOf returns the stage of a deployment failure, or "" if err carries none
func StageOf(err error) Stage {
	var de *DeployError
	if errors.As(err, &de) {
		return de.Stage
	}
	return ""
}
