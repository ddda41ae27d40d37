// Copyright 2026 The Kitchen Authors
// SPDX-License-Identifier: Apache-2.0

package kitchentui

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// logRecordMsg delivers a slog record to the bubbletea model for
// display in the status line. Only records at or above the handler's
// configured level are delivered.
type logRecordMsg struct {
	Summary string
	Level   slog.Level
}

// logRecordFadeMsg is sent after a delay to clear the log message from
// the status line and restore the shelf summary.
type logRecordFadeMsg struct{}

// logRecordFadeDelay is how long log messages stay visible in the
// status line before fading back to the shelf summary.
const logRecordFadeDelay = 4 * time.Second

// LogHandler is a slog.Handler that routes log records into a
// bubbletea program as messages, so a --watch viewer can surface
// placement, relocation, and forced-discard events live alongside the
// shelf occupancy view without interleaving raw log lines into the
// terminal UI.
//
// The handler must be created before the program starts. Call
// SetProgram once the tea.Program exists; records arriving before that
// call are silently dropped.
type LogHandler struct {
	level   slog.Level
	program *atomic.Pointer[tea.Program]
	attrs   []slog.Attr
}

// NewLogHandler creates a handler that delivers records at or above
// level to the bubbletea program set via SetProgram.
func NewLogHandler(level slog.Level) *LogHandler {
	return &LogHandler{level: level, program: &atomic.Pointer[tea.Program]{}}
}

// SetProgram sets the bubbletea program that receives log messages.
// Safe to call from any goroutine; propagates to handlers derived via
// WithAttrs since they share the same atomic pointer.
func (h *LogHandler) SetProgram(program *tea.Program) {
	h.program.Store(program)
}

// Enabled reports whether the handler is interested in records at level.
func (h *LogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle formats record as a single summary line and sends it to the
// bubbletea program, if one has been set.
func (h *LogHandler) Handle(_ context.Context, record slog.Record) error {
	program := h.program.Load()
	if program == nil {
		return nil
	}

	summary := record.Message
	var parts []string
	for _, attr := range h.attrs {
		parts = append(parts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
	}
	record.Attrs(func(attr slog.Attr) bool {
		parts = append(parts, fmt.Sprintf("%s=%s", attr.Key, attr.Value))
		return true
	})
	if len(parts) > 0 {
		summary += " ("
		for i, part := range parts {
			if i > 0 {
				summary += ", "
			}
			summary += part
		}
		summary += ")"
	}

	program.Send(logRecordMsg{Summary: summary, Level: record.Level})
	return nil
}

// WithAttrs returns a derived handler with attrs appended. The derived
// handler shares this handler's atomic program pointer.
func (h *LogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &LogHandler{level: h.level, program: h.program, attrs: append(cloneAttrs(h.attrs), attrs...)}
}

// WithGroup is unsupported: the kitchen module's log records are flat,
// so group nesting is flattened away rather than tracked.
func (h *LogHandler) WithGroup(string) slog.Handler {
	return h
}

func cloneAttrs(attrs []slog.Attr) []slog.Attr {
	if attrs == nil {
		return nil
	}
	out := make([]slog.Attr, len(attrs))
	copy(out, attrs)
	return out
}
