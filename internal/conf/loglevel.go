package conf

import (
	"fmt"

	"github.com/mirasrc/wfdsource/internal/logger"
)

// LogLevel is the logLevel parameter.
type LogLevel logger.Level

// MarshalYAML implements yaml.Marshaler.
func (l LogLevel) MarshalYAML() (interface{}, error) {
	var out string

	switch l {
	case LogLevel(logger.Error):
		out = "error"

	case LogLevel(logger.Warn):
		out = "warn"

	case LogLevel(logger.Info):
		out = "info"

	default:
		out = "debug"
	}

	return out, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (l *LogLevel) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var in string
	if err := unmarshal(&in); err != nil {
		return err
	}

	switch in {
	case "error":
		*l = LogLevel(logger.Error)

	case "warn":
		*l = LogLevel(logger.Warn)

	case "info":
		*l = LogLevel(logger.Info)

	case "debug":
		*l = LogLevel(logger.Debug)

	default:
		return fmt.Errorf("invalid log level: %s", in)
	}

	return nil
}
