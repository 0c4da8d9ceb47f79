package audit

import (
	"context"

	"github.com/rs/zerolog"
)

// LogSink emits audit records as structured log entries. This is the default
// sink; deployments with a durable audit service swap in a different Sink.
type LogSink struct {
	logger zerolog.Logger
}

func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

func (s *LogSink) Write(_ context.Context, rec Record) error {
	evt := s.logger.Info().
		Str("type", "audit").
		Str("action", rec.Action).
		Str("actor_id", rec.ActorID).
		Str("resource_type", rec.ResourceType).
		Str("resource_id", rec.ResourceID).
		Bool("phi_involved", rec.PHIInvolved).
		Time("recorded_at", rec.RecordedAt)
	for k, v := range rec.Metadata {
		evt = evt.Str("meta_"+k, v)
	}
	evt.Msg("audit_record")
	return nil
}
