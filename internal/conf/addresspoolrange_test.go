package conf

import (
	"net"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"
)

func TestAddressPoolRangeUnmarshal(t *testing.T) {
	var r AddressPoolRange
	err := yaml.Unmarshal([]byte(`224.0.0.1-224.0.0.25:9000-9999/16`), &r)
	require.NoError(t, err)
	require.Equal(t, net.ParseIP("224.0.0.1"), r.MinAddress)
	require.Equal(t, net.ParseIP("224.0.0.25"), r.MaxAddress)
	require.Equal(t, uint16(9000), r.MinPort)
	require.Equal(t, uint16(9999), r.MaxPort)
	require.Equal(t, uint8(16), r.TTL)
}

func TestAddressPoolRangeUnmarshalInvalidPortOrder(t *testing.T) {
	var r AddressPoolRange
	err := yaml.Unmarshal([]byte(`224.0.0.1-224.0.0.25:9999-9000/16`), &r)
	require.Error(t, err)
}

func TestAddressPoolRangeMarshalRoundTrip(t *testing.T) {
	r := AddressPoolRange{
		MinAddress: net.ParseIP("224.0.0.1"),
		MaxAddress: net.ParseIP("224.0.0.25"),
		MinPort:    9000,
		MaxPort:    9999,
		TTL:        16,
	}

	out, err := yaml.Marshal(r)
	require.NoError(t, err)

	var back AddressPoolRange
	require.NoError(t, yaml.Unmarshal(out, &back))
	require.Equal(t, r.MinPort, back.MinPort)
	require.Equal(t, r.MaxPort, back.MaxPort)
	require.Equal(t, r.TTL, back.TTL)
	require.True(t, r.MinAddress.Equal(back.MinAddress))
	require.True(t, r.MaxAddress.Equal(back.MaxAddress))
}
