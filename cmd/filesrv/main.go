// Package main provides the CLI entry point for filesrv.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/zyc-labs/filesrv_sdk_go/pkg/blocks"
	"github.com/zyc-labs/filesrv_sdk_go/pkg/config"
	"github.com/zyc-labs/filesrv_sdk_go/pkg/logging"
)

var version = "dev"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		logging.NewConsole(logging.LevelWarn).Warn("Interrupted, shutting down...")
		cancel()
	}()

	if err := newApp().RunContext(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// session is the state shared by commands that talk to a server.
type session struct {
	cfg config.Config
	log logging.Logger
	ext *blocks.Extension
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "filesrv",
		Usage:   l10n.T("Work with a remote file server"),
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   l10n.T("Configuration file (default: $XDG_CONFIG_HOME/filesrv/config.yaml)"),
				EnvVars: []string{"FILESRV_CONFIG"},
			},
			&cli.StringFlag{Name: "url", Usage: l10n.T("Server base address")},
			&cli.StringFlag{Name: "password", Usage: l10n.T("Shared secret")},
			&cli.StringFlag{Name: "mode", Usage: l10n.T("Runtime mode (http, mock, auto)")},
			&cli.StringFlag{Name: "seed", Usage: l10n.T("Seed file for mock mode")},
			&cli.StringFlag{
				Name:    "log-level",
				Aliases: []string{"l"},
				Usage:   l10n.T("Log level (debug, info, warn, error)"),
			},
			&cli.BoolFlag{Name: "quiet", Aliases: []string{"Q"}, Usage: l10n.T("Suppress all log output")},
		},
		Commands: []*cli.Command{
			pingCommand(),
			authCommand(),
			lsCommand(),
			blockCommand("mkdir", blocks.OpCreateDirectory, l10n.T("Create a directory"), blocks.ArgPath),
			blockCommand("touch", blocks.OpCreateFile, l10n.T("Create an empty file"), blocks.ArgPath),
			blockCommand("write", blocks.OpWriteFile, l10n.T("Replace the content of a file"), blocks.ArgPath, blocks.ArgContent),
			blockCommand("cat", blocks.OpReadFile, l10n.T("Print the content of a file"), blocks.ArgPath),
			blockCommand("rm", blocks.OpDeletePath, l10n.T("Delete a file or directory"), blocks.ArgPath),
			blocksCommand(),
			invokeCommand(),
			configCommand(),
		},
	}
}

// openSession resolves configuration from file, environment and flags, in
// that order, and builds the client.
func openSession(c *cli.Context) (*session, error) {
	cfg, used, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if c.IsSet("url") {
		cfg.Server.URL = c.String("url")
	}
	if c.IsSet("password") {
		cfg.Server.Password = c.String("password")
	}
	if c.IsSet("mode") {
		cfg.Mode = strings.ToLower(strings.TrimSpace(c.String("mode")))
	}
	if c.IsSet("seed") {
		cfg.MockSeed = c.String("seed")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.Bool("quiet") {
		cfg.Log.Quiet = true
	}

	log := cfg.Logger()
	if used != "" {
		log.Debug("Using configuration %s", used)
	}
	client, mode, err := cfg.Client(log)
	if err != nil {
		return nil, err
	}
	log.Debug("Runtime mode: %s", mode)
	return &session{cfg: cfg, log: log, ext: blocks.New(client, log)}, nil
}

// withSession adapts an action that needs a server connection.
func withSession(fn func(c *cli.Context, s *session) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		s, err := openSession(c)
		if err != nil {
			return err
		}
		return fn(c, s)
	}
}
