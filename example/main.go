package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jpalmerr/sefazwatch"
	"github.com/jpalmerr/sefazwatch/internal/store"
)

// stdoutNotifier prints notifications instead of sending them.
type stdoutNotifier struct{}

func (stdoutNotifier) Send(_ context.Context, title, body, group string) error {
	fmt.Printf("  ▶ %s\n    %s\n", title, body)
	return nil
}

func main() {
	// start mock server (see mock_server.go)
	go StartMockStatusServer(":9999")
	time.Sleep(100 * time.Millisecond)

	checker, err := sefazwatch.New("http://localhost:9999/disponibilidade.aspx",
		sefazwatch.WithStore(store.NewMemoryStore(nil)),
		sefazwatch.WithNotifier(stdoutNotifier{}),
		sefazwatch.WithTimeout(5*time.Second),
		sefazwatch.WithChangeCallback(func(ev sefazwatch.ChangeEvent) {
			slog.Info("change observed", "region", ev.Region, "active", ev.Active, "first", ev.First)
		}),
	)
	if err != nil {
		slog.Error("failed to create checker", "error", err)
		os.Exit(1)
	}
	defer checker.Close()

	fmt.Println()
	fmt.Println("  sefazwatch demo")
	fmt.Println("  Checking the mock status page every 10s.")
	fmt.Println("  Regions flip in and out of contingency every 20-60s.")
	fmt.Println("  Press Ctrl+C to stop")
	fmt.Println()

	// set up context with signal handling for graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ticker := time.NewTicker(10 * time.Second)
	defer ticker.Stop()

	for {
		if _, err := checker.Check(ctx); err != nil && !sefazwatch.IsHandled(err) {
			slog.Error("check failed", "error", err)
			os.Exit(1)
		}

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
