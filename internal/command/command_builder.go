// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/rowsync/internal/config"
	"github.com/tfctl/rowsync/internal/meta"
)

// CommandBuilder constructs a cli.Command for the list commands (diff,
// replay, sync, demo) using a consistent pattern. The builder wires
// metadata, adds the tldr flag and, unless Bare is set, the global flags,
// and checks the positional argument count.
type CommandBuilder struct {
	Name      string
	Usage     string
	UsageText string
	Flags     []cli.Flag
	MinArgs   int
	MaxArgs   int
	Bare      bool
	Action    func(context.Context, *cli.Command) error
	Meta      meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (cb *CommandBuilder) Build() *cli.Command {
	flags := append(cb.Flags, tldrFlag)
	if !cb.Bare {
		flags = append(flags, NewGlobalFlags(cb.Name, cb.Meta.Config.Source)...)
	}

	if cb.Meta.Config.Source != "" {
		for _, f := range cb.Flags {
			NameSpacedValueChainFromConfigFile(cb.Name, cb.Meta.Config.Source, f)
		}
	}

	validate := ArgsValidator(cb.MinArgs, cb.MaxArgs)

	return &cli.Command{
		Name:      cb.Name,
		Usage:     cb.Usage,
		UsageText: cb.UsageText,
		Metadata: map[string]any{
			"meta": cb.Meta,
		},
		Flags: flags,
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			config.Config.Namespace = cb.Name
			if c.Bool("tldr") {
				return ctx, nil
			}
			return ctx, validate(ctx, c)
		},
		Action: cb.Action,
	}
}

var tldrFlag = &cli.BoolFlag{
	Name:        "tldr",
	Usage:       "show tldr page",
	Hidden:      !pathHas("tldr"),
	HideDefault: true,
}

// stdout is where a command prints results: the root command's Writer when
// one is set, os.Stdout otherwise.
func stdout(cmd *cli.Command) io.Writer {
	if w := cmd.Root().Writer; w != nil {
		return w
	}
	return os.Stdout
}

// stderr is the error counterpart of stdout.
func stderr(cmd *cli.Command) io.Writer {
	if w := cmd.Root().ErrWriter; w != nil {
		return w
	}
	return os.Stderr
}
