//go:build windows || darwin

package logger

import "fmt"

func newDestinationSyslog() (destination, error) {
	return nil, fmt.Errorf("syslog is not available on this platform")
}
