package logging_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/db47h/shaderpipe/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "logs", "demo.log")
	require.NoError(t, logging.Init("debug", file, false))
	l := logging.Get()
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())

	l.WithField("unit", 3).Debug("texture bound")
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `msg="texture bound"`)
	assert.Contains(t, string(data), "unit=3")
}

func TestInitBadLevel(t *testing.T) {
	require.NoError(t, logging.Init("loud", "", false))
	assert.Equal(t, logrus.InfoLevel, logging.Get().GetLevel())
}
