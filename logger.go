package folio

import (
	"io"
	"strings"

	"github.com/labstack/gommon/log"
)

// Logger is the subset of the Echo/gommon logger the pipeline writes to.
type Logger interface {
	Debugf(format string, args ...interface{})
	Infof(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// NewLogger returns a gommon logger with the given prefix and level
// ("debug", "info", "warn", "error", "off").
func NewLogger(prefix, level string) *log.Logger {
	l := log.New(prefix)
	l.SetHeader("${time_rfc3339} ${level} ${prefix}")
	switch strings.ToLower(level) {
	case "debug":
		l.SetLevel(log.DEBUG)
	case "warn":
		l.SetLevel(log.WARN)
	case "error":
		l.SetLevel(log.ERROR)
	case "off":
		l.SetLevel(log.OFF)
	default:
		l.SetLevel(log.INFO)
	}
	return l
}

func discardLogger() *log.Logger {
	l := log.New("folio")
	l.SetOutput(io.Discard)
	l.SetLevel(log.OFF)
	return l
}
