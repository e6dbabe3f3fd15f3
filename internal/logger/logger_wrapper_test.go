package logger

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/leandrodaf/pianorec/sdk/contracts"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (contracts.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewZapLoggerFrom(zap.New(core)), logs
}

func TestFieldsAreStructured(t *testing.T) {
	log, logs := newObserved()

	log.Info("message received",
		log.Field().Int("key", 64),
		log.Field().String("status", "ControlBegin"),
		log.Field().Duration("delay", 20*time.Millisecond),
		log.Field().Binary("raw", []byte{0xb0, 0x40, 0x7f}),
		log.Field().Error("error", errors.New("boom")),
	)

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("got %d entries, want 1", len(entries))
	}
	ctx := entries[0].ContextMap()
	if ctx["key"] != int64(64) {
		t.Errorf("key = %v, want 64", ctx["key"])
	}
	if ctx["status"] != "ControlBegin" {
		t.Errorf("status = %v, want ControlBegin", ctx["status"])
	}
	if ctx["delay"] != 20*time.Millisecond {
		t.Errorf("delay = %v, want 20ms", ctx["delay"])
	}
	if ctx["raw"] != "b0 40 7f" {
		t.Errorf("raw = %v, want %q", ctx["raw"], "b0 40 7f")
	}
	if ctx["error"] != "boom" {
		t.Errorf("error = %v, want boom", ctx["error"])
	}
}

func TestSetLevelFilters(t *testing.T) {
	log, logs := newObserved()
	log.SetLevel(contracts.WarnLevel)

	log.Debug("debug")
	log.Info("info")
	log.Warn("warn")
	log.Error("error")

	if got := logs.Len(); got != 2 {
		t.Fatalf("got %d entries, want 2", got)
	}
	if msg := logs.All()[0].Message; msg != "warn" {
		t.Errorf("first message = %q, want %q", msg, "warn")
	}
}

func TestNopLoggerDiscards(t *testing.T) {
	log := NewNopLogger()
	log.Error("dropped", log.Field().Bool("ok", true))
}

func TestSetDestinationRequiresPath(t *testing.T) {
	log := NewZapLogger()
	if err := log.SetDestination(contracts.FileLog); err == nil {
		t.Fatal("expected error for file destination without a path")
	}

	path := filepath.Join(t.TempDir(), "pianorec.log")
	if err := log.SetDestination(contracts.FileLog, path); err != nil {
		t.Fatalf("SetDestination: %v", err)
	}
	log.Info("written to file")
}
