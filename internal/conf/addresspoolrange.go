package conf

import (
	"fmt"
	"net"
	"strconv"
	"strings"
)

// AddressPoolRange is an addressPoolRange parameter, written as
// "<min-addr>-<max-addr>:<min-port>-<max-port>/<ttl>".
type AddressPoolRange struct {
	MinAddress net.IP
	MaxAddress net.IP
	MinPort    uint16
	MaxPort    uint16
	TTL        uint8
}

// MarshalYAML implements yaml.Marshaler.
func (r AddressPoolRange) MarshalYAML() (interface{}, error) {
	return fmt.Sprintf("%s-%s:%d-%d/%d",
		r.MinAddress, r.MaxAddress, r.MinPort, r.MaxPort, r.TTL), nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *AddressPoolRange) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var in string
	if err := unmarshal(&in); err != nil {
		return err
	}

	// the port separator is the last colon, so IPv6 literals in the
	// address part survive the split.
	sep := strings.LastIndex(in, ":")
	if sep < 0 {
		return fmt.Errorf("invalid address pool range: %s", in)
	}
	addrPart, rest := in[:sep], in[sep+1:]

	portPart, ttlPart, ok := strings.Cut(rest, "/")
	if !ok {
		return fmt.Errorf("invalid address pool range: %s", in)
	}

	minAddrStr, maxAddrStr, ok := strings.Cut(addrPart, "-")
	if !ok {
		return fmt.Errorf("invalid address pool range: %s", in)
	}

	minAddr := net.ParseIP(minAddrStr)
	if minAddr == nil {
		return fmt.Errorf("invalid minimum address: %s", minAddrStr)
	}

	maxAddr := net.ParseIP(maxAddrStr)
	if maxAddr == nil {
		return fmt.Errorf("invalid maximum address: %s", maxAddrStr)
	}

	minPortStr, maxPortStr, ok := strings.Cut(portPart, "-")
	if !ok {
		return fmt.Errorf("invalid address pool range: %s", in)
	}

	minPort, err := strconv.ParseUint(minPortStr, 10, 16)
	if err != nil {
		return fmt.Errorf("invalid minimum port: %s", minPortStr)
	}

	maxPort, err := strconv.ParseUint(maxPortStr, 10, 16)
	if err != nil {
		return fmt.Errorf("invalid maximum port: %s", maxPortStr)
	}

	if minPort > maxPort {
		return fmt.Errorf("minimum port must not be greater than maximum port: %s", in)
	}

	ttl, err := strconv.ParseUint(ttlPart, 10, 8)
	if err != nil {
		return fmt.Errorf("invalid ttl: %s", ttlPart)
	}

	r.MinAddress = minAddr
	r.MaxAddress = maxAddr
	r.MinPort = uint16(minPort)
	r.MaxPort = uint16(maxPort)
	r.TTL = uint8(ttl)

	return nil
}
