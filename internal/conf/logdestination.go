package conf

import (
	"fmt"
	"sort"

	"github.com/mirasrc/wfdsource/internal/logger"
)

// LogDestinations is the logDestinations parameter.
type LogDestinations map[logger.Destination]struct{}

// MarshalYAML implements yaml.Marshaler.
func (d LogDestinations) MarshalYAML() (interface{}, error) {
	out := make([]string, 0, len(d))

	for p := range d {
		switch p {
		case logger.DestinationStdout:
			out = append(out, "stdout")

		case logger.DestinationFile:
			out = append(out, "file")

		default:
			out = append(out, "syslog")
		}
	}

	sort.Strings(out)

	return out, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *LogDestinations) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var in []string
	if err := unmarshal(&in); err != nil {
		return err
	}

	*d = make(LogDestinations)

	for _, dest := range in {
		switch dest {
		case "stdout":
			(*d)[logger.DestinationStdout] = struct{}{}

		case "file":
			(*d)[logger.DestinationFile] = struct{}{}

		case "syslog":
			(*d)[logger.DestinationSyslog] = struct{}{}

		default:
			return fmt.Errorf("invalid log destination: %s", dest)
		}
	}

	return nil
}
