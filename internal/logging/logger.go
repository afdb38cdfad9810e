// Package logging wraps logrus with the run/stage fields every pipeline
// agent attaches to its output, mirroring the context-scoped logger
// pattern used for request-scoped fields elsewhere in the ecosystem.
package logging

import (
	"github.com/sirupsen/logrus"
)

// Logger wraps a logrus entry so call sites never import logrus directly.
type Logger struct {
	*logrus.Entry
}

func New() *Logger {
	return &Logger{Entry: logrus.NewEntry(logrus.StandardLogger())}
}

func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{Entry: l.Entry.WithField(key, value)}
}

func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{Entry: l.Entry.WithFields(fields)}
}

// WithRun attaches the run identifier every workflow-log entry and agent
// log line carries for the duration of one pipeline run.
func (l *Logger) WithRun(runID string) *Logger {
	return l.WithField("run_id", runID)
}

// WithStage attaches the current pipeline stage tag (spec.md §2).
func (l *Logger) WithStage(stage string) *Logger {
	return l.WithField("stage", stage)
}
