package logger_test

import (
	"testing"

	"github.com/sbilibin2017/gw-user-accounts/internal/logger"
	"github.com/stretchr/testify/assert"
)

func TestInitialize(t *testing.T) {
	err := logger.Initialize("debug")
	assert.NoError(t, err)
	assert.NotNil(t, logger.Log)
	logger.Sync()
}

func TestInitializeInvalidLevel(t *testing.T) {
	err := logger.Initialize("not-a-level")
	assert.Error(t, err)
}
