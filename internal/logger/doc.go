// Package logger wraps charmbracelet/log with the five levels the CLI speaks:
// verbose, notice, success, warn, and error. Verbose maps to the debug level
// and is only shown when --debug is set.
package logger
