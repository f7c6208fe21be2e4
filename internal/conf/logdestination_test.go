package conf

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/mirasrc/wfdsource/internal/logger"
)

func TestLogDestinationsUnmarshal(t *testing.T) {
	var d LogDestinations
	err := yaml.Unmarshal([]byte(`[stdout, file]`), &d)
	require.NoError(t, err)
	require.Contains(t, d, logger.DestinationStdout)
	require.Contains(t, d, logger.DestinationFile)
	require.NotContains(t, d, logger.DestinationSyslog)
}

func TestLogDestinationsUnmarshalInvalid(t *testing.T) {
	var d LogDestinations
	err := yaml.Unmarshal([]byte(`[carrier-pigeon]`), &d)
	require.Error(t, err)
}

func TestLogDestinationsMarshal(t *testing.T) {
	d := LogDestinations{logger.DestinationFile: struct{}{}}
	out, err := yaml.Marshal(d)
	require.NoError(t, err)
	require.Equal(t, "- file\n", string(out))
}
