// Package stdlogger adapts printf style logger interfaces to the global zerolog logger.
package stdlogger

import (
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Logger forwards printf style calls to zerolog.
type Logger struct {
	// PrintLevel is the level used for Printf, the writer interface gorm's logger expects.
	PrintLevel zerolog.Level
}

// New returns a Logger printing on debug level.
func New() *Logger {
	return &Logger{PrintLevel: zerolog.DebugLevel}
}

// Printf implements gorm's logger.Writer.
func (l *Logger) Printf(format string, args ...interface{}) {
	log.WithLevel(l.PrintLevel).Msg(clean(format, args...))
}

// Debugf logs on debug level.
func (l *Logger) Debugf(format string, args ...interface{}) {
	log.Debug().Msg(clean(format, args...))
}

// Infof logs on info level.
func (l *Logger) Infof(format string, args ...interface{}) {
	log.Info().Msg(clean(format, args...))
}

// Warningf logs on warn level.
func (l *Logger) Warningf(format string, args ...interface{}) {
	log.Warn().Msg(clean(format, args...))
}

// Errorf logs on error level.
func (l *Logger) Errorf(format string, args ...interface{}) {
	log.Error().Msg(clean(format, args...))
}

// clean formats and strips the newlines gorm puts between caller and statement.
func clean(format string, args ...interface{}) string {
	return strings.TrimSpace(strings.ReplaceAll(fmt.Sprintf(format, args...), "\n", " "))
}
