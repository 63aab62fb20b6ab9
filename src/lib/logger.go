package lib

import (
	"strings"

	"github.com/labstack/gommon/log"
)

// SetupLogger configures the process-wide logger used by every package.
func SetupLogger(level string) {
	log.SetPrefix("devconnect")
	log.SetLevel(ParseLogLevel(level))
}

func ParseLogLevel(level string) log.Lvl {
	switch strings.ToLower(level) {
	case "debug":
		return log.DEBUG
	case "warn", "warning":
		return log.WARN
	case "error":
		return log.ERROR
	case "off":
		return log.OFF
	default:
		return log.INFO
	}
}
