// Package audit provides the append-only audit trail for security-relevant
// and PHI-exposing actions. Records are written through a pluggable Sink;
// delivery failures are logged locally and never surfaced to the caller, so
// the primary operation's outcome is unaffected.
package audit

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// MetadataPreviewLimit bounds free-text values placed into record metadata,
// keeping PHI leakage into the audit stream bounded.
const MetadataPreviewLimit = 80

// Record is one audit trail entry. Records are append-only and are consumed
// by the external compliance system, never read back here.
type Record struct {
	Action       string            `json:"action"`
	ActorID      string            `json:"actor_id"`
	ResourceType string            `json:"resource_type"`
	ResourceID   string            `json:"resource_id"`
	PHIInvolved  bool              `json:"phi_involved"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	RecordedAt   time.Time         `json:"recorded_at"`
}

// Sink delivers audit records to their destination.
type Sink interface {
	Write(ctx context.Context, rec Record) error
}

// Recorder fans records out to a sink, absorbing delivery failures.
type Recorder struct {
	sink   Sink
	logger zerolog.Logger
}

func NewRecorder(sink Sink, logger zerolog.Logger) *Recorder {
	return &Recorder{sink: sink, logger: logger}
}

// Record writes one audit entry. Fire-and-forget from the caller's
// perspective: a sink failure is logged with full context but not returned.
func (r *Recorder) Record(ctx context.Context, action, actorID, resourceType, resourceID string, phi bool, metadata map[string]string) {
	rec := Record{
		Action:       action,
		ActorID:      actorID,
		ResourceType: resourceType,
		ResourceID:   resourceID,
		PHIInvolved:  phi,
		Metadata:     metadata,
		RecordedAt:   time.Now().UTC(),
	}

	if err := r.sink.Write(ctx, rec); err != nil {
		r.logger.Error().Err(err).
			Str("action", rec.Action).
			Str("resource_type", rec.ResourceType).
			Str("resource_id", rec.ResourceID).
			Msg("audit sink delivery failed")
	}
}

// Preview truncates a free-text message to MetadataPreviewLimit runes for
// inclusion in record metadata.
func Preview(message string) string {
	runes := []rune(message)
	if len(runes) <= MetadataPreviewLimit {
		return message
	}
	return string(runes[:MetadataPreviewLimit])
}
