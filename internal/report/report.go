// Package report decouples the request pipeline from the error-reporting
// backend. Production wires a structured logger; tests wire a recorder.
package report

import "github.com/rs/zerolog"

// Reporter receives failed API calls with enough context to triage them.
type Reporter interface {
	RequestFailed(path string, status int, code, message string)
}

// LogReporter reports failures to a zerolog logger.
type LogReporter struct {
	log zerolog.Logger
}

// NewLogReporter creates a Reporter backed by log.
func NewLogReporter(log zerolog.Logger) *LogReporter {
	return &LogReporter{log: log}
}

// RequestFailed logs the failure at warn level with path/status/code context.
func (r *LogReporter) RequestFailed(path string, status int, code, message string) {
	r.log.Warn().
		Str("path", path).
		Int("status", status).
		Str("code", code).
		Msg(message)
}

// Nop discards all reports.
type Nop struct{}

// RequestFailed does nothing.
func (Nop) RequestFailed(string, int, string, string) {}
