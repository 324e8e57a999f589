// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/rowsync/internal/config"
	"github.com/tfctl/rowsync/internal/log"
	"github.com/tfctl/rowsync/internal/meta"
	"github.com/tfctl/rowsync/internal/version"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	sd, _ := os.Getwd()

	// The arg[1] immediately following the binary (arg[0]) is the rowsync
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	var ns string
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		ns = args[1]
	}

	// A missing config file is fine. A broken one is not.
	cfg, err := config.Load()
	if err != nil && !errors.Is(err, config.ErrNotFound) {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	config.Config.Namespace = ns
	cfg.Namespace = ns
	log.Debugf("config: source=%s namespace=%s", cfg.Source, ns)

	meta := meta.Meta{
		Args:        args,
		Config:      cfg,
		Context:     ctx,
		StartingDir: sd,
	}

	app := &cli.Command{
		Name:    "rowsync",
		Usage:   "keyed list reconciliation",
		Version: version.String(),
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "rowsync version info",
				HideDefault: true,
			},
		},
		HideVersion: true,
	}

	app.Commands = append(app.Commands,
		diffCommandBuilder(meta),
		replayCommandBuilder(meta),
		syncCommandBuilder(meta),
		demoCommandBuilder(meta),
		completionCommandBuilder(meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
