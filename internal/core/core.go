// Package core wires configuration, logging, the address pool, and the
// WFD server together into a runnable process.
package core

import (
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/mirasrc/wfdsource/internal/addrpool"
	"github.com/mirasrc/wfdsource/internal/conf"
	"github.com/mirasrc/wfdsource/internal/events"
	"github.com/mirasrc/wfdsource/internal/logger"
	"github.com/mirasrc/wfdsource/internal/mediafactory"
	"github.com/mirasrc/wfdsource/internal/servers/wfd"
)

var defaultConfPaths = []string{
	"wfdsource.yml",
	"/usr/local/etc/wfdsource.yml",
	"/etc/wfdsource/wfdsource.yml",
}

// Core is the top-level object: it owns the configuration, the logger, the
// address pool, and the WFD server.
type Core struct {
	conf    *conf.Conf
	logger  *logger.Logger
	pool    *addrpool.Pool
	server  *wfd.Server
	factory mediafactory.Factory

	events chan events.Event
	done   chan struct{}
}

// New builds and starts a Core from command-line arguments. args holds at
// most one element: a path to a YAML configuration file. It returns
// ok=false if initialization failed (the error has already been printed
// or logged).
func New(args []string) (*Core, bool) {
	confPath := ""
	if len(args) > 0 {
		confPath = args[0]
	}

	c := &Core{}

	cfg, err := loadConf(confPath)
	if err != nil {
		fmt.Println("ERROR:", err)
		return nil, false
	}
	c.conf = cfg

	dests := make([]logger.Destination, 0, len(cfg.LogDestinations))
	for d := range cfg.LogDestinations {
		dests = append(dests, d)
	}

	log, err := logger.New(logger.Level(cfg.LogLevel), dests, cfg.LogFile)
	if err != nil {
		fmt.Println("ERROR:", err)
		return nil, false
	}
	c.logger = log

	c.pool = addrpool.New(c)
	for _, r := range cfg.AddressPoolRanges {
		if err := c.pool.AddRange(r.MinAddress.String(), r.MaxAddress.String(), r.MinPort, r.MaxPort, r.TTL); err != nil {
			c.Log(logger.Error, "invalid address pool range: %v", err)
			return nil, false
		}
	}

	c.factory = mediafactory.Noop{}
	c.events = make(chan events.Event, 16)

	c.server = &wfd.Server{
		Address:        cfg.RTSPAddress,
		SessionTimeout: time.Duration(cfg.SessionTimeout),
		Capabilities:   wfd.DefaultCapabilities(),
		Pool:           c.pool,
		Factory:        c.factory,
		EventsChan:     c.events,
		Parent:         c,
	}
	if err := c.server.Initialize(); err != nil {
		c.Log(logger.Error, "%v", err)
		return nil, false
	}

	c.done = make(chan struct{})
	go c.run()

	return c, true
}

func (c *Core) run() {
	defer close(c.done)

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt)

	for {
		select {
		case ev := <-c.events:
			switch e := ev.(type) {
			case events.EventOptionsRequest:
				c.Log(logger.Debug, "session %s completed the options exchange", e.SessionID)
			case events.EventPlayingDone:
				c.Log(logger.Info, "session %s is playing", e.SessionID)
			case events.EventKeepAliveFail:
				c.Log(logger.Warn, "session %s missed a keep-alive and is closing", e.SessionID)
			}

		case <-interrupt:
			c.Log(logger.Info, "shutting down gracefully")
			return
		}
	}
}

func loadConf(path string) (*conf.Conf, error) {
	if path != "" {
		return conf.Load(path)
	}

	for _, p := range defaultConfPaths {
		cfg, err := conf.Load(p)
		if err == nil {
			return cfg, nil
		}
	}

	cfg := conf.Default()
	return &cfg, nil
}

// Log implements logger.Writer.
func (c *Core) Log(level logger.Level, format string, args ...interface{}) {
	c.logger.Log(level, format, args...)
}

// Close shuts the server and logger down.
func (c *Core) Close() {
	c.server.Close()
	c.logger.Close()
}

// Wait blocks until the process receives an interrupt, then tears the
// server and logger down.
func (c *Core) Wait() {
	<-c.done
	c.Close()
}
