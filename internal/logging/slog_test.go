// Conventus - Event Discovery and Engagement Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/conventus

package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func newBufferedSlog(buf *bytes.Buffer) *slog.Logger {
	zl := zerolog.New(buf).Level(zerolog.DebugLevel)
	return slog.New(&slogHandler{logger: zl})
}

func TestSlogHandlerWritesThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferedSlog(&buf)

	logger.Info("service started", "name", "http-server", "port", int64(8094))

	out := buf.String()
	for _, want := range []string{`"level":"info"`, `"message":"service started"`, `"name":"http-server"`, `"port":8094`} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %s: %s", want, out)
		}
	}
}

func TestSlogHandlerLevels(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelDebug, `"level":"debug"`},
		{slog.LevelInfo, `"level":"info"`},
		{slog.LevelWarn, `"level":"warn"`},
		{slog.LevelError, `"level":"error"`},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		logger := newBufferedSlog(&buf)
		logger.Log(context.Background(), tt.level, "msg")
		if !strings.Contains(buf.String(), tt.want) {
			t.Errorf("level %v: output missing %s: %s", tt.level, tt.want, buf.String())
		}
	}
}

func TestSlogHandlerWithAttrsAndGroup(t *testing.T) {
	var buf bytes.Buffer
	logger := newBufferedSlog(&buf).With("supervisor", "conventus").WithGroup("svc")

	logger.Info("restarting", "name", "watch-hub", "backoff", 15*time.Second)

	out := buf.String()
	if !strings.Contains(out, `"supervisor":"conventus"`) {
		t.Errorf("output missing pre-set attr: %s", out)
	}
	if !strings.Contains(out, `"svc.name":"watch-hub"`) {
		t.Errorf("output missing grouped attr: %s", out)
	}
}

func TestSlogHandlerEnabledRespectsZerologLevel(t *testing.T) {
	zl := zerolog.New(nil).Level(zerolog.WarnLevel)
	h := &slogHandler{logger: zl}

	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug enabled at warn level")
	}
	if !h.Enabled(context.Background(), slog.LevelError) {
		t.Error("error disabled at warn level")
	}
}
