package conf

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/mirasrc/wfdsource/internal/logger"
)

func TestLogLevelUnmarshal(t *testing.T) {
	var l LogLevel
	err := yaml.Unmarshal([]byte(`warn`), &l)
	require.NoError(t, err)
	require.Equal(t, LogLevel(logger.Warn), l)
}

func TestLogLevelUnmarshalInvalid(t *testing.T) {
	var l LogLevel
	err := yaml.Unmarshal([]byte(`verbose`), &l)
	require.Error(t, err)
}
