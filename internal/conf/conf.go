// Package conf contains the struct that holds the configuration of the software.
package conf

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/mirasrc/wfdsource/internal/logger"
)

// Conf is the configuration of the WFD source server.
type Conf struct {
	// General
	LogLevel        LogLevel        `yaml:"logLevel"`
	LogDestinations LogDestinations `yaml:"logDestinations"`
	LogFile         string          `yaml:"logFile"`
	ReadTimeout     Duration        `yaml:"readTimeout"`
	WriteTimeout    Duration        `yaml:"writeTimeout"`

	// WFD RTSP server
	RTSPAddress    string   `yaml:"rtspAddress"`
	SessionTimeout Duration `yaml:"sessionTimeout"`

	// Address pool, used to pick an even RTP/RTCP port pair for M4 when
	// the sink advertises no client RTP ports.
	AddressPoolRanges []AddressPoolRange `yaml:"addressPoolRanges"`
}

// Default returns a Conf filled with sane defaults.
func Default() Conf {
	return Conf{
		LogLevel:        LogLevel(logger.Info),
		LogDestinations: LogDestinations{logger.DestinationStdout: struct{}{}},
		ReadTimeout:     Duration(10e9),
		WriteTimeout:    Duration(10e9),
		RTSPAddress:     ":7236",
		SessionTimeout:  Duration(60e9),
	}
}

// Load loads a Conf from a YAML file at path, starting from Default()
// and overriding whatever the file specifies.
func Load(path string) (*Conf, error) {
	conf := Default()

	byts, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("unable to read configuration file: %w", err)
	}

	if err := yaml.Unmarshal(byts, &conf); err != nil {
		return nil, fmt.Errorf("unable to parse configuration file: %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, err
	}

	return &conf, nil
}

// Validate checks that the configuration is consistent.
func (conf *Conf) Validate() error {
	if conf.RTSPAddress == "" {
		return fmt.Errorf("rtspAddress can not be empty")
	}

	if conf.SessionTimeout <= Duration(5e9) {
		return fmt.Errorf("sessionTimeout must be greater than 5s, the keep-alive grace period")
	}

	for _, r := range conf.AddressPoolRanges {
		if r.MinPort > r.MaxPort {
			return fmt.Errorf("invalid address pool range: minPort greater than maxPort")
		}
	}

	return nil
}
