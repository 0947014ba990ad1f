package authguard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type countingSink struct {
	count atomic.Int64
}

func (s *countingSink) Emit(context.Context, AuditEvent) {
	s.count.Add(1)
}

func (s *countingSink) Count() int64 {
	return s.count.Load()
}

type gateSink struct {
	gate chan struct{}
}

func newGateSink() *gateSink {
	return &gateSink{gate: make(chan struct{})}
}

func (s *gateSink) Emit(context.Context, AuditEvent) {
	<-s.gate
}

func buildAuditTestGuard(t *testing.T, sink AuditSink) *Guard {
	t.Helper()

	cfg := defaultConfig()
	cfg.RateLimit.MaxAttempts = 1
	cfg.Audit.Enabled = true
	cfg.Audit.BufferSize = 64

	g, err := New().WithConfig(cfg).WithAuditSink(sink).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	t.Cleanup(g.Close)
	return g
}

func TestAuditEmitsOnDenial(t *testing.T) {
	sink := NewChannelSink(8)
	g := buildAuditTestGuard(t, sink)

	ctx := context.Background()
	g.CanAttempt(ctx, "login_user@example.com")
	g.CanAttempt(ctx, "login_user@example.com")

	select {
	case event := <-sink.Events():
		if event.EventType != AuditAttemptDenied {
			t.Fatalf("event type = %q, want %q", event.EventType, AuditAttemptDenied)
		}
		if event.Key != "login_user@example.com" {
			t.Fatalf("event key = %q", event.Key)
		}
		if event.ID == "" {
			t.Fatal("event ID not assigned")
		}
		if event.Timestamp.IsZero() {
			t.Fatal("event timestamp not assigned")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("no audit event delivered")
	}
}

func TestAuditEmitsOnProtectOutcomes(t *testing.T) {
	sink := NewChannelSink(8)

	cfg := defaultConfig()
	cfg.Audit.Enabled = true
	g, err := New().WithConfig(cfg).WithAuditSink(sink).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	defer g.Close()

	g.Protect(context.Background(), "k", Credentials{}, func(context.Context) error {
		return errors.New("invalid login credentials")
	})
	g.Protect(context.Background(), "k", Credentials{}, func(context.Context) error {
		return nil
	})

	want := map[string]bool{AuditOperationFailed: false, AuditOperationSucceeded: false}
	for i := 0; i < 2; i++ {
		select {
		case event := <-sink.Events():
			if _, ok := want[event.EventType]; !ok {
				t.Fatalf("unexpected event type %q", event.EventType)
			}
			want[event.EventType] = true
		case <-time.After(2 * time.Second):
			t.Fatalf("missing audit events, got %v", want)
		}
	}
	for typ, seen := range want {
		if !seen {
			t.Fatalf("event %q never delivered", typ)
		}
	}
}

func TestAuditDropsUnderBackpressure(t *testing.T) {
	sink := newGateSink()

	cfg := defaultConfig()
	cfg.RateLimit.MaxAttempts = 1
	cfg.Audit.Enabled = true
	cfg.Audit.BufferSize = 1
	cfg.Audit.DropIfFull = true

	g, err := New().WithConfig(cfg).WithAuditSink(sink).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	ctx := context.Background()
	g.CanAttempt(ctx, "k")
	// Saturate: the worker blocks on the gate, the buffer holds one event,
	// everything past that is shed.
	for i := 0; i < 20; i++ {
		g.CanAttempt(ctx, "k")
	}

	deadline := time.After(2 * time.Second)
	for g.AuditDropped() == 0 {
		select {
		case <-deadline:
			t.Fatal("expected dropped events under backpressure")
		default:
			time.Sleep(time.Millisecond)
		}
	}

	close(sink.gate)
	g.Close()
}

func TestAuditCloseDrainsBuffer(t *testing.T) {
	sink := &countingSink{}

	cfg := defaultConfig()
	cfg.RateLimit.MaxAttempts = 1
	cfg.Audit.Enabled = true
	cfg.Audit.BufferSize = 128
	cfg.Audit.DropIfFull = false

	g, err := New().WithConfig(cfg).WithAuditSink(sink).Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	ctx := context.Background()
	g.CanAttempt(ctx, "k")
	const denials = 50
	for i := 0; i < denials; i++ {
		g.CanAttempt(ctx, "k")
	}

	g.Close()
	if got := sink.Count(); got != denials {
		t.Fatalf("sink received %d events after Close, want %d", got, denials)
	}
}

func TestJSONWriterSink(t *testing.T) {
	var buf bytes.Buffer
	sink := NewJSONWriterSink(&buf)

	sink.Emit(context.Background(), AuditEvent{
		ID:        "test-id",
		EventType: AuditAttemptDenied,
		Key:       "k",
	})

	var decoded AuditEvent
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not one JSON line: %v", err)
	}
	if decoded.EventType != AuditAttemptDenied || decoded.Key != "k" {
		t.Fatalf("decoded event = %+v", decoded)
	}
	if !strings.HasSuffix(buf.String(), "\n") {
		t.Fatal("JSON lines must be newline-terminated")
	}
}

func TestZapSink(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	sink := NewZapSink(zap.New(core))

	sink.Emit(context.Background(), AuditEvent{
		ID:        "id-1",
		EventType: AuditAttemptDenied,
		Key:       "k",
		Success:   false,
		Error:     "rate limited",
	})
	sink.Emit(context.Background(), AuditEvent{
		ID:        "id-2",
		EventType: AuditOperationSucceeded,
		Key:       "k",
		Success:   true,
	})

	entries := logs.All()
	if len(entries) != 2 {
		t.Fatalf("logged %d entries, want 2", len(entries))
	}
	if entries[0].Level != zap.WarnLevel {
		t.Fatalf("denial logged at %v, want warn", entries[0].Level)
	}
	if entries[1].Level != zap.InfoLevel {
		t.Fatalf("success logged at %v, want info", entries[1].Level)
	}

	fields := entries[0].ContextMap()
	if fields["event_type"] != AuditAttemptDenied {
		t.Fatalf("event_type field = %v", fields["event_type"])
	}
}

func TestZapSinkNilLogger(t *testing.T) {
	sink := NewZapSink(nil)
	sink.Emit(context.Background(), AuditEvent{EventType: AuditAttemptDenied})
}
