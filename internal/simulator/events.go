package simulator

import "github.com/sirupsen/logrus"

// EventSink receives structured events emitted while a match resolves.
// The engines hold no global logger; callers inject a sink and get
// NopSink behavior by default, so the core stays free of implicit state.
type EventSink interface {
	Event(event string, fields map[string]interface{})
}

// NopSink discards all events.
type NopSink struct{}

// Event implements EventSink.
func (NopSink) Event(string, map[string]interface{}) {}

// LogSink forwards events to a logrus entry at debug level.
type LogSink struct {
	entry *logrus.Entry
}

// NewLogSink creates a sink backed by the given logrus entry.
func NewLogSink(entry *logrus.Entry) *LogSink {
	return &LogSink{entry: entry}
}

// Event implements EventSink.
func (s *LogSink) Event(event string, fields map[string]interface{}) {
	s.entry.WithFields(logrus.Fields(fields)).Debug(event)
}
