package conf

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestDurationUnmarshal(t *testing.T) {
	var d Duration
	err := yaml.Unmarshal([]byte(`30s`), &d)
	require.NoError(t, err)
	require.Equal(t, Duration(30*time.Second), d)
}

func TestDurationMarshalRoundTrip(t *testing.T) {
	d := Duration(90 * time.Second)

	out, err := yaml.Marshal(d)
	require.NoError(t, err)

	var back Duration
	require.NoError(t, yaml.Unmarshal(out, &back))
	require.Equal(t, d, back)
}
