package authguard

import (
	"context"

	"go.uber.org/zap"
)

// ZapSink emits audit events as structured log entries. Denials and failures
// log at warn, successes at info.
type ZapSink struct {
	logger *zap.Logger
}

// NewZapSink wraps a zap logger as an [AuditSink]. A nil logger yields a sink
// that discards events.
func NewZapSink(logger *zap.Logger) *ZapSink {
	return &ZapSink{logger: logger}
}

func (s *ZapSink) Emit(_ context.Context, event AuditEvent) {
	if s == nil || s.logger == nil {
		return
	}

	fields := []zap.Field{
		zap.String("audit_id", event.ID),
		zap.Time("timestamp", event.Timestamp),
		zap.String("event_type", event.EventType),
		zap.String("key", event.Key),
		zap.Bool("success", event.Success),
	}
	if event.Error != "" {
		fields = append(fields, zap.String("error", event.Error))
	}
	for k, v := range event.Metadata {
		fields = append(fields, zap.String("meta_"+k, v))
	}

	if event.Success {
		s.logger.Info("authguard audit", fields...)
		return
	}
	s.logger.Warn("authguard audit", fields...)
}
