// Package log is a thin wrapper over charmbracelet/log giving the engine
// package-level leveled logging without threading a logger through every
// call site.
package log

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

var logger = log.New(os.Stderr)

func init() {
	logger.SetReportTimestamp(true)
	logger.SetTimeFormat(time.DateTime)
	logger.SetLevel(log.InfoLevel)
}

// SetLevel controls verbosity; valid names are debug, info, warn, error.
func SetLevel(level string) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return
	}
	logger.SetLevel(lvl)
}

// SetPrefix tags every subsequent line, e.g. with the round or table id.
func SetPrefix(prefix string) {
	logger.SetPrefix(prefix)
}

func Debug(format string, args ...any) {
	if len(args) == 0 {
		logger.Debug(format)
		return
	}
	logger.Debugf(format, args...)
}

func Info(format string, args ...any) {
	if len(args) == 0 {
		logger.Info(format)
		return
	}
	logger.Infof(format, args...)
}

func Warn(format string, args ...any) {
	if len(args) == 0 {
		logger.Warn(format)
		return
	}
	logger.Warnf(format, args...)
}

func Error(format string, args ...any) {
	if len(args) == 0 {
		logger.Error(format)
		return
	}
	logger.Errorf(format, args...)
}

func Fatal(format string, args ...any) {
	if len(args) == 0 {
		logger.Fatal(format)
		return
	}
	logger.Fatalf(format, args...)
}
