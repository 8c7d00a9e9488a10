package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name  string
		level log.Level
		emit  func(*log.Logger)
		want  string
	}{
		{
			name:  "info passes at info level",
			level: log.InfoLevel,
			emit:  func(l *log.Logger) { l.Info("Loaded 20 rows") },
			want:  "Loaded 20 rows",
		},
		{
			name:  "debug suppressed at info level",
			level: log.InfoLevel,
			emit:  func(l *log.Logger) { l.Debug("Cutoff proportion 0.0100") },
			want:  "",
		},
		{
			name:  "debug passes at debug level",
			level: log.DebugLevel,
			emit:  func(l *log.Logger) { l.Debug("Cutoff proportion 0.0100") },
			want:  "Cutoff proportion 0.0100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.emit(newLogger(&buf, tt.level))

			got := buf.String()
			if tt.want == "" {
				if got != "" {
					t.Errorf("got output %q, want none", got)
				}
				return
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("got output %q, want it to contain %q", got, tt.want)
			}
		})
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	p := newProgress(newLogger(&buf, log.InfoLevel))

	time.Sleep(5 * time.Millisecond)
	p.done("Rendered 13 categories")

	got := buf.String()
	if !strings.Contains(got, "Rendered 13 categories (") {
		t.Errorf("got output %q, want message with elapsed duration", got)
	}
}

func TestLoggerContextRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.DebugLevel)

	ctx := withLogger(context.Background(), logger)
	if got := loggerFromContext(ctx); got != logger {
		t.Error("loggerFromContext() did not return the attached logger")
	}
}

func TestLoggerFromContextFallsBack(t *testing.T) {
	if got := loggerFromContext(context.Background()); got == nil {
		t.Error("loggerFromContext() = nil, want default logger for bare context")
	}
}
