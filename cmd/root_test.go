package cmd

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestNewLogFormatter(t *testing.T) {
	defer func() { logJSON, logColorDisabled = false, false }()

	formatter, ok := newLogFormatter().(*logrus.TextFormatter)
	assert.True(t, ok)
	assert.True(t, formatter.ForceColors)

	logColorDisabled = true
	formatter, ok = newLogFormatter().(*logrus.TextFormatter)
	assert.True(t, ok)
	assert.True(t, formatter.DisableColors)
	assert.False(t, formatter.ForceColors)

	logJSON = true
	assert.IsType(t, &logrus.JSONFormatter{}, newLogFormatter())
}
