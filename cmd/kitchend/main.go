// Copyright 2026 The Kitchen Authors
// SPDX-License-Identifier: Apache-2.0

// Kitchend runs a single kitchen order-fulfillment simulation: it loads
// configuration, preloads order records, drives them through a running
// [kitchen.Machine] at the configured pace, and reports the outcome.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/foodhall/kitchen/kitchen"
	"github.com/foodhall/kitchen/lib/clock"
	"github.com/foodhall/kitchen/lib/codec"
	"github.com/foodhall/kitchen/lib/config"
	"github.com/foodhall/kitchen/lib/customer"
	"github.com/foodhall/kitchen/lib/kitchentui"
	"github.com/foodhall/kitchen/lib/orders"
	"github.com/foodhall/kitchen/lib/version"
)

// Exit codes, per the external interface contract: 0 normal
// completion, 1 any other startup failure, 2 ConfigInvalid, 3
// unreadable orders-source.
const (
	exitOK               = 0
	exitFailure          = 1
	exitConfigInvalid    = 2
	exitOrdersUnreadable = 3
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		configPath  string
		watch       bool
		dumpReport  string
		logFormat   string
		showVersion bool
	)

	flag.StringVar(&configPath, "config", "", "path to kitchen.yaml (overrides KITCHEN_CONFIG)")
	flag.BoolVar(&watch, "watch", false, "start a live terminal viewer of the running kitchen")
	flag.StringVar(&dumpReport, "dump-report", "", "write a final CBOR snapshot to this path on exit")
	flag.StringVar(&logFormat, "log-format", "text", "log output format: text or json")
	flag.BoolVar(&showVersion, "version", false, "print version information and exit")
	flag.Parse()

	if showVersion {
		fmt.Printf("kitchend %s\n", version.Info())
		return exitOK
	}

	logHandler := kitchentui.NewLogHandler(slog.LevelDebug)
	logger := newLogger(logFormat, watch, logHandler)
	slog.SetDefault(logger)

	cfg, err := loadConfig(configPath)
	if err != nil {
		logger.Error("loading configuration", "error", err)
		if _, ok := err.(*kitchen.ConfigError); ok {
			return exitConfigInvalid
		}
		return exitFailure
	}

	batch, malformed, err := orders.ReadFile(cfg.OrdersSource)
	if err != nil {
		logger.Error("reading orders source", "path", cfg.OrdersSource, "error", err)
		return exitOrdersUnreadable
	}
	for _, bad := range malformed {
		logger.Warn("skipping malformed order record", "index", bad.Index, "reason", bad.Reason)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	installForceExit(ctx)

	clk := clock.Real()
	machine, handles := kitchen.New(cfg.ShelfCapacity, cfg.CourierMinimumWaitTime, cfg.CourierMaximumWaitTime, clk, logger)
	go machine.Run()

	var program *tea.Program
	if watch {
		model := kitchentui.New(handles.Report, cfg.ShelfCapacity, kitchentui.DefaultTheme)
		program = tea.NewProgram(model, tea.WithAltScreen())
		logHandler.SetProgram(program)
		go func() {
			if _, err := program.Run(); err != nil {
				logger.Error("viewer exited with an error", "error", err)
			}
		}()
	}

	// handles.Stop on cancellation is already signaled by driver.Run
	// below; this goroutine only needs to tear down the viewer, which
	// the driver knows nothing about.
	if program != nil {
		go func() {
			<-ctx.Done()
			program.Quit()
		}()
	}

	var tracker *snapshotTracker
	if dumpReport != "" {
		tracker = newSnapshotTracker(handles.Report)
		defer tracker.stop()
	}

	driver := customer.New(clk, logger)
	outcome, runErr := driver.Run(ctx, handles, batch, cfg.CustomerWaitBetweenOrders)
	if program != nil {
		program.Quit()
	}

	if runErr != nil {
		logger.Error("simulation ended early", "error", runErr,
			"submitted", outcome.Submitted, "delivered", outcome.Delivered,
			"discarded", outcome.Discarded, "missed", outcome.Missed)
		return exitFailure
	}
	logger.Info("simulation complete",
		"submitted", outcome.Submitted, "delivered", outcome.Delivered,
		"discarded", outcome.Discarded, "missed", outcome.Missed)

	if tracker != nil {
		if err := tracker.writeReport(dumpReport); err != nil {
			logger.Error("writing report snapshot", "path", dumpReport, "error", err)
			return exitFailure
		}
	}

	return exitOK
}

// snapshotPollInterval is how often the tracker polls the report
// stream while dump-report is active.
const snapshotPollInterval = 100 * time.Millisecond

// snapshotTracker keeps the most recently observed [kitchen.Snapshot]
// available for --dump-report. A snapshot can only be requested while
// the machine's event loop is still running; by the time the driver
// observes a closed delivery stream the machine has already returned
// from Run and nothing answers Report requests anymore. Polling
// continuously and keeping the last successful answer sidesteps that
// race instead of trying to catch the exact terminal state.
type snapshotTracker struct {
	last   atomic.Pointer[kitchen.Snapshot]
	stopCh chan struct{}
}

func newSnapshotTracker(report chan<- chan kitchen.Snapshot) *snapshotTracker {
	t := &snapshotTracker{stopCh: make(chan struct{})}
	go t.poll(report)
	return t
}

func (t *snapshotTracker) poll(report chan<- chan kitchen.Snapshot) {
	ticker := time.NewTicker(snapshotPollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-t.stopCh:
			return
		case <-ticker.C:
			respond := make(chan kitchen.Snapshot, 1)
			// If the machine has already exited this send blocks
			// forever; the goroutine leaks rather than the tracker
			// crashing, matching the courier shutdown behavior this
			// machine already tolerates (see DESIGN.md).
			report <- respond
			snapshot := <-respond
			t.last.Store(&snapshot)
		}
	}
}

func (t *snapshotTracker) stop() {
	close(t.stopCh)
}

// writeReport encodes the most recently observed snapshot with Core
// Deterministic Encoding for external inspection. This is a one-shot
// diagnostic export — it is never read back into a Machine.
func (t *snapshotTracker) writeReport(path string) error {
	snapshot := t.last.Load()
	if snapshot == nil {
		return fmt.Errorf("no report snapshot was observed before the simulation ended")
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	encoder := codec.NewEncoder(file)
	return encoder.Encode(*snapshot)
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	return config.Load()
}

// installForceExit exits immediately on a second interrupt/terminate
// signal, in case the machine's forced-shutdown path is itself stuck
// (e.g. a courier task permanently blocked sending on pickup — an
// accepted goroutine leak, see DESIGN.md).
func installForceExit(ctx context.Context) {
	go func() {
		<-ctx.Done()
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		os.Exit(exitFailure)
	}()
}

func newLogger(format string, watch bool, handler slog.Handler) *slog.Logger {
	if watch {
		// The viewer owns the terminal; route logs through it instead
		// of writing raw lines over the rendered screen.
		return slog.New(handler)
	}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

