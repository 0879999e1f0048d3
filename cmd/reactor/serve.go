package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/vango-dev/reactor/internal/introspect"
	"github.com/vango-dev/reactor/reactor"
)

func serveCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a small demo graph behind the introspection server",
		Long: `serve builds a demo graph, registers its nodes with the
introspection registry, and serves /metrics, /debug/graph, and
/debug/stream until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry := introspect.NewRegistry()
			buildServeGraph(registry)

			srv := introspect.NewServer(registry, introspect.ServerConfig{Addr: addr})

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			printBanner()
			success("introspection server listening on %s", addr)
			info("routes: /metrics  /debug/graph  /debug/stream")

			return srv.Run(ctx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":6060", "address for the introspection server to listen on")
	return cmd
}

// buildServeGraph wires a small but live graph so serve has something to
// show: a ticking source, two derived views, and an effect that keeps them
// subscribed.
func buildServeGraph(registry *introspect.Registry) {
	logger := slog.Default().With("component", "serve")

	tick := reactor.NewSource(0)
	doubled := reactor.NewDerived(func() int { return tick.Get() * 2 })
	parity := reactor.NewDerived(func() int { return tick.Get() % 2 })

	registry.Register(tick)
	registry.Register(doubled)
	registry.Register(parity)

	reactor.CreateEffect(func() {
		logger.Debug("tick observed", "tick", tick.Get(), "doubled", doubled.Get(), "parity", parity.Get())
	})

	go func() {
		t := time.NewTicker(time.Second)
		defer t.Stop()
		for range t.C {
			tick.Update(func(v int) int { return v + 1 })
		}
	}()
}
