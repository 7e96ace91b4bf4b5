package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/hashicorp/logutils"
)

const (
	LevelDebug logutils.LogLevel = "DEBUG"
	LevelInfo  logutils.LogLevel = "INFO"
	LevelWarn  logutils.LogLevel = "WARN"
	LevelError logutils.LogLevel = "ERROR"
)

// Levels is ordered from most to least verbose.
var Levels = []logutils.LogLevel{LevelDebug, LevelInfo, LevelWarn, LevelError}

// ParseLevel accepts a level name in any case; empty means INFO.
func ParseLevel(value string) (logutils.LogLevel, error) {
	value = strings.ToUpper(strings.TrimSpace(value))
	if value == "" {
		return LevelInfo, nil
	}
	if value == "WARNING" {
		return LevelWarn, nil
	}
	for _, level := range Levels {
		if string(level) == value {
			return level, nil
		}
	}
	return "", fmt.Errorf("unknown log level %q", value)
}

// NewFilter drops lines tagged below minLevel, e.g. "[DEBUG] ..." when minLevel is INFO.
// Lines without a level tag are always written.
func NewFilter(minLevel logutils.LogLevel, w io.Writer) *logutils.LevelFilter {
	return &logutils.LevelFilter{
		Levels:   Levels,
		MinLevel: minLevel,
		Writer:   w,
	}
}

// Setup installs the level filter as the output of the standard logger.
func Setup(level logutils.LogLevel) {
	log.SetFlags(log.LstdFlags)
	log.SetOutput(NewFilter(level, os.Stderr))
}
