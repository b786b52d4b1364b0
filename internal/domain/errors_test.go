package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeployError(t *testing.T) {
	cause := errors.New("dial tcp 127.0.0.1:8545: connection refused")
	err := fmt.Errorf("deploy: %w", NewConnectionError(cause))

	assert.ErrorIs(t, err, ErrConnection)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrTransaction)
	assert.Equal(t, StageConnection, StageOf(err))
	assert.Equal(t, "deploy: connection error: dial tcp 127.0.0.1:8545: connection refused", err.Error())
}

func TestStageOf(t *testing.T) {
	tests := []struct {
		err  error
		want Stage
	}{
		{NewConfigurationError(ErrEmptyMnemonic), StageConfiguration},
		{NewArtifactError(ErrEmptyBytecode), StageArtifact},
		{NewConnectionError(errors.New("x")), StageConnection},
		{NewTransactionError(ErrZeroAddress), StageTransaction},
		{errors.New("plain"), ""},
		{nil, ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StageOf(tt.err))
	}
}

func TestDeployError_NoCause(t *testing.T) {
	err := &DeployError{Stage: StageArtifact}
	assert.Equal(t, "artifact error", err.Error())
	assert.ErrorIs(t, err, ErrArtifact)
	assert.Nil(t, Stage("other").Sentinel())
}
