// Package main runs the reference file server over an in-memory store.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/zyc-labs/filesrv_sdk_go/internal/devseed"
	"github.com/zyc-labs/filesrv_sdk_go/pkg/filesrv"
	"github.com/zyc-labs/filesrv_sdk_go/pkg/filesrv/mock"
	"github.com/zyc-labs/filesrv_sdk_go/pkg/filesrv/sandbox"
	"github.com/zyc-labs/filesrv_sdk_go/pkg/logging"
)

func main() {
	app := &cli.App{
		Name:  "filesrv-sandbox",
		Usage: l10n.T("Serve the file server protocol from memory"),
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "addr", Value: "127.0.0.1:5000", Usage: l10n.T("listen address")},
			&cli.StringFlag{Name: "password", Value: filesrv.DefaultSharedSecret, Usage: l10n.T("shared secret clients must send")},
			&cli.StringFlag{Name: "seed", Usage: l10n.T("path to a JSON or YAML seed file")},
			&cli.DurationFlag{Name: "latency", Usage: l10n.T("artificial latency to inject per request")},
			&cli.StringFlag{Name: "fail", Usage: l10n.T("failure injection (rate=<float>,code=<httpStatus>)")},
			&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Value: "info", Usage: l10n.T("Log level (debug, info, warn, error)")},
		},
		Action: serve,
	}
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func serve(c *cli.Context) error {
	log := logging.NewConsole(logging.ParseLevel(c.String("log-level")))

	store := mock.New()
	if path := c.String("seed"); path != "" {
		entries, err := devseed.Load(path)
		if err != nil {
			return fmt.Errorf("load seed: %w", err)
		}
		if err := store.Seed(entries); err != nil {
			return fmt.Errorf("apply seed: %w", err)
		}
		log.Info("Loaded %d seed entries from %s", len(entries), path)
	}

	failCfg, err := sandbox.ParseFailConfig(c.String("fail"))
	if err != nil {
		return fmt.Errorf("parse fail flag: %w", err)
	}

	addr := c.String("addr")
	server := &http.Server{
		Addr: addr,
		Handler: sandbox.NewHandler(store, sandbox.Options{
			Password: c.String("password"),
			Latency:  c.Duration("latency"),
			Fail:     failCfg,
			Logger:   log,
		}),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		log.Warn("Interrupted, shutting down...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Info("Sandbox listening on %s", addr)
	host := addr
	if strings.HasPrefix(host, ":") {
		host = "localhost" + host
	}
	fmt.Fprintln(c.App.Writer)
	fmt.Fprintln(c.App.Writer, "export FILESRV_RUNTIME_MODE=http")
	fmt.Fprintf(c.App.Writer, "export FILESRV_API_URL=http://%s\n", host)
	fmt.Fprintf(c.App.Writer, "export FILESRV_PASSWORD=%s\n", c.String("password"))
	fmt.Fprintln(c.App.Writer)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
