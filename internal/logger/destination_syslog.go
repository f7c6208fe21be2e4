//go:build !windows && !darwin

package logger

import (
	"bytes"
	"log/syslog"
	"time"
)

type destinationSyslog struct {
	writer *syslog.Writer
	buf    bytes.Buffer
}

func newDestinationSyslog() (destination, error) {
	w, err := syslog.New(syslog.LOG_DAEMON, "wfdsource")
	if err != nil {
		return nil, err
	}

	return &destinationSyslog{writer: w}, nil
}

func (d *destinationSyslog) log(_ time.Time, level Level, format string, args ...interface{}) {
	d.buf.Reset()
	writeContent(&d.buf, format, args)
	msg := d.buf.String()

	switch level {
	case Debug:
		d.writer.Debug(msg) //nolint:errcheck
	case Info:
		d.writer.Info(msg) //nolint:errcheck
	case Warn:
		d.writer.Warning(msg) //nolint:errcheck
	case Error:
		d.writer.Err(msg) //nolint:errcheck
	}
}

func (d *destinationSyslog) close() {
	d.writer.Close() //nolint:errcheck
}
