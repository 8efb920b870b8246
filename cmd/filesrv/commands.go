package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/zyc-labs/filesrv_sdk_go/pkg/blocks"
	"github.com/zyc-labs/filesrv_sdk_go/pkg/config"
)

func pingCommand() *cli.Command {
	return &cli.Command{
		Name:  "ping",
		Usage: l10n.T("Check whether the server is online"),
		Action: withSession(func(c *cli.Context, s *session) error {
			v, err := s.ext.Invoke(c.Context, blocks.OpCheckConnection, nil)
			if err != nil {
				return err
			}
			if !v.Bool {
				return cli.Exit(l10n.T("offline"), 1)
			}
			fmt.Fprintln(c.App.Writer, l10n.T("online"))
			return nil
		}),
	}
}

func authCommand() *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: l10n.T("Check whether the shared secret is accepted"),
		Action: withSession(func(c *cli.Context, s *session) error {
			ok, err := s.ext.Client().IsPasswordValid(c.Context)
			if err != nil {
				return err
			}
			if !ok {
				return cli.Exit(l10n.T("password rejected"), 1)
			}
			fmt.Fprintln(c.App.Writer, l10n.T("password accepted"))
			return nil
		}),
	}
}

func lsCommand() *cli.Command {
	return &cli.Command{
		Name:      "ls",
		Usage:     l10n.T("List a directory"),
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: l10n.T("Print the listing as JSON text")},
		},
		Action: withSession(func(c *cli.Context, s *session) error {
			path := c.Args().First()
			if c.Bool("json") {
				v, err := s.ext.Invoke(c.Context, blocks.OpListDirectory, blocks.Args{blocks.ArgPath: path})
				if err != nil {
					return err
				}
				fmt.Fprintln(c.App.Writer, v.String())
				return nil
			}
			entries, err := s.ext.Client().ListEntries(c.Context, path)
			if err != nil {
				return err
			}
			renderEntries(c.App.Writer, entries)
			return nil
		}),
	}
}

// blockCommand maps positional arguments onto the named block arguments.
func blockCommand(name, opcode, usage string, argNames ...string) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "<" + strings.ToLower(strings.Join(argNames, "> <")) + ">",
		Action: withSession(func(c *cli.Context, s *session) error {
			if c.NArg() != len(argNames) {
				return fmt.Errorf(l10n.T("%s expects %d argument(s), got %d"), name, len(argNames), c.NArg())
			}
			args := blocks.Args{}
			for i, argName := range argNames {
				args[argName] = c.Args().Get(i)
			}
			v, err := s.ext.Invoke(c.Context, opcode, args)
			if err != nil {
				return err
			}
			if v.Kind != blocks.KindNone {
				fmt.Fprintln(c.App.Writer, v.String())
			}
			return nil
		}),
	}
}

func blocksCommand() *cli.Command {
	return &cli.Command{
		Name:  "blocks",
		Usage: l10n.T("List the available blocks"),
		Action: func(c *cli.Context) error {
			renderDescriptors(c.App.Writer, blocks.Descriptors())
			return nil
		},
	}
}

func invokeCommand() *cli.Command {
	return &cli.Command{
		Name:      "invoke",
		Usage:     l10n.T("Run a block by opcode"),
		ArgsUsage: "<opcode> [KEY=VALUE...]",
		Action: withSession(func(c *cli.Context, s *session) error {
			if c.NArg() < 1 {
				return errors.New(l10n.T("missing opcode"))
			}
			args, err := parseBlockArgs(c.Args().Tail())
			if err != nil {
				return err
			}
			v, err := s.ext.Invoke(c.Context, c.Args().First(), args)
			if err != nil {
				return err
			}
			if v.Kind != blocks.KindNone {
				fmt.Fprintln(c.App.Writer, v.String())
			}
			return nil
		}),
	}
}

func parseBlockArgs(raw []string) (blocks.Args, error) {
	args := blocks.Args{}
	for _, kv := range raw {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf(l10n.T("invalid argument %q, want KEY=VALUE"), kv)
		}
		args[strings.ToUpper(key)] = value
	}
	return args, nil
}

func configCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: l10n.T("Manage the configuration file"),
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: l10n.T("Write a configuration file with default values"),
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "force", Usage: l10n.T("Overwrite an existing file")},
				},
				Action: func(c *cli.Context) error {
					path := c.String("config")
					if path == "" {
						var err error
						if path, err = config.DefaultPath(); err != nil {
							return err
						}
					}
					if !c.Bool("force") {
						if _, err := os.Stat(path); err == nil {
							return fmt.Errorf(l10n.T("%s already exists, use --force to overwrite"), path)
						} else if !errors.Is(err, fs.ErrNotExist) {
							return err
						}
					}
					written, err := config.Save(config.Defaults(), path)
					if err != nil {
						return err
					}
					fmt.Fprintln(c.App.Writer, written)
					return nil
				},
			},
			{
				Name:  "show",
				Usage: l10n.T("Print the effective configuration"),
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "show-password", Usage: l10n.T("Print the shared secret in clear")},
				},
				Action: withSession(func(c *cli.Context, s *session) error {
					cfg := s.cfg
					if !c.Bool("show-password") && cfg.Server.Password != "" {
						cfg.Server.Password = "********"
					}
					enc := yaml.NewEncoder(c.App.Writer)
					defer enc.Close()
					return enc.Encode(cfg)
				}),
			},
		},
	}
}
