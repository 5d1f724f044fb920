package internal

import (
	"log"
	"os"
)

// LogLevel represents logging verbosity levels
type LogLevel int

const (
	LogLevelError LogLevel = iota
	LogLevelWarn
	LogLevelInfo
	LogLevelDebug
)

// Logger provides leveled logging for the CLI and server. The reporting
// pipeline itself never logs; it stays pure.
type Logger struct {
	level     LogLevel
	component string
}

// NewLogger creates a logger for a named component with the specified level
func NewLogger(component string, level LogLevel) *Logger {
	return &Logger{level: level, component: component}
}

// NewDefaultLogger creates a logger based on the LOG_LEVEL environment variable
func NewDefaultLogger(component string) *Logger {
	level := LogLevelInfo // default
	switch os.Getenv("LOG_LEVEL") {
	case "ERROR":
		level = LogLevelError
	case "WARN":
		level = LogLevelWarn
	case "DEBUG":
		level = LogLevelDebug
	}
	return &Logger{level: level, component: component}
}

// Error logs error messages
func (l *Logger) Error(format string, args ...interface{}) {
	l.emit(LogLevelError, "[ERROR] ", format, args...)
}

// Warn logs warning messages
func (l *Logger) Warn(format string, args ...interface{}) {
	l.emit(LogLevelWarn, "[WARN] ", format, args...)
}

// Info logs info messages
func (l *Logger) Info(format string, args ...interface{}) {
	l.emit(LogLevelInfo, "[INFO] ", format, args...)
}

// Debug logs debug messages
func (l *Logger) Debug(format string, args ...interface{}) {
	l.emit(LogLevelDebug, "[DEBUG] ", format, args...)
}

func (l *Logger) emit(level LogLevel, prefix, format string, args ...interface{}) {
	if l.level >= level {
		log.Printf(prefix+"["+l.component+"] "+format, args...)
	}
}
