// Package alert implements alert dispatching to multiple sinks.
package alert

import (
	"log/slog"
	"time"

	"github.com/feedworks/sentiserver/internal/metrics"
)

// Level classifies alert severity.
type Level string

// Level values.
const (
	LevelInfo  Level = "INFO"
	LevelError Level = "ERROR"
)

// Alert describes a processing failure worth surfacing outside the logs.
type Alert struct {
	Level     Level     `json:"level"`
	PostID    string    `json:"postId,omitempty"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Sink is an alert destination.
type Sink interface {
	Send(alert Alert) error
	Name() string
}

// Dispatcher routes alerts to configured sinks.
type Dispatcher struct {
	sinks  []Sink
	logger *slog.Logger
}

// NewDispatcher creates a dispatcher with no sinks.
func NewDispatcher(logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{logger: logger}
}

// AddSink registers an additional destination.
func (d *Dispatcher) AddSink(s Sink) {
	d.sinks = append(d.sinks, s)
}

// Dispatch sends an alert to all configured sinks. Sink errors are logged,
// never propagated: alerting is best-effort.
func (d *Dispatcher) Dispatch(alert Alert) {
	for _, sink := range d.sinks {
		if err := sink.Send(alert); err != nil {
			metrics.AlertsFailed.Add(1)
			d.logger.Error("alert sink failed", "sink", sink.Name(), "error", err)
			continue
		}
		metrics.AlertsDispatched.Add(1)
	}
}

// AlertFunc returns a function suitable for use as a worker callback.
func (d *Dispatcher) AlertFunc() func(Alert) {
	return d.Dispatch
}
