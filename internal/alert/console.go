package alert

import "log/slog"

// ConsoleSink writes alerts to the process log.
type ConsoleSink struct {
	logger *slog.Logger
}

// NewConsoleSink creates a console sink.
func NewConsoleSink(logger *slog.Logger) *ConsoleSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &ConsoleSink{logger: logger}
}

// Name returns the sink identifier.
func (s *ConsoleSink) Name() string { return "console" }

// Send logs the alert.
func (s *ConsoleSink) Send(alert Alert) error {
	s.logger.Warn("alert", "level", alert.Level, "post", alert.PostID, "message", alert.Message)
	return nil
}
