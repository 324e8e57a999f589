// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/rowsync/internal/config"
	"github.com/tfctl/rowsync/internal/log"
	"github.com/tfctl/rowsync/internal/meta"
	"github.com/tfctl/rowsync/internal/output"
	"github.com/tfctl/rowsync/internal/snapshot"
)

// syncCommandAction is the action handler for the "sync" subcommand. It
// compares NEW with the snapshot last stored under NAME, prints the change
// records and then stores NEW as the snapshot.
func syncCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "sync") {
		return nil
	}

	name := cmd.Args().Get(0)

	if hours := purgeHours(cmd); hours > 0 {
		n, err := snapshot.Purge(hours)
		if err != nil {
			return fmt.Errorf("failed to purge snapshots: %w", err)
		}
		log.Debugf("snapshots purged: hours=%d count=%d", hours, n)
	}

	if cmd.Bool("forget") {
		return snapshot.Delete(name)
	}

	if cmd.Args().Len() < 2 { //nolint:mnd
		return fmt.Errorf("sync: NEW is required unless --forget is set")
	}

	last, found, err := snapshot.Load(name)
	if err != nil {
		return err
	}

	lists, err := LoadItems(ctx, cmd, cmd.Args().Get(1))
	if err != nil {
		return err
	}
	newItems := lists[0]

	changes := newDetector().Detect(newItems, last.Items)

	opts := output.NewOptions(cmd)
	if opts.Titles {
		if found {
			opts.Header = fmt.Sprintf("%s (last synced %s)", name, humanize.Time(last.Saved))
		} else {
			opts.Header = name + " (first sync)"
		}
		opts.Footer = output.Summary(changes)
	}

	if err := output.Spit(stdout(cmd), output.Records(changes, last.Items, newItems), opts); err != nil {
		return err
	}

	if cmd.Bool("dry-run") {
		return nil
	}

	if err := snapshot.Save(name, newItems); err != nil {
		if errors.Is(err, snapshot.ErrDisabled) {
			log.Warnf("%v: %s not saved", err, name)
			return nil
		}
		return fmt.Errorf("failed to save snapshot %s: %w", name, err)
	}
	return nil
}

// purgeHours is --purge when set, else the cache.clean config value.
func purgeHours(cmd *cli.Command) int {
	if cmd.IsSet("purge") {
		return cmd.Int("purge")
	}
	hours, _ := config.GetInt("cache.clean", 0)
	return hours
}

// syncCommandBuilder constructs the cli.Command for "sync".
func syncCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "sync",
		Usage:     "print the changes since the last sync of a named list and remember it",
		UsageText: "rowsync sync NAME NEW [options]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "print the changes without storing NEW",
			},
			&cli.BoolFlag{
				Name:  "forget",
				Usage: "delete the snapshot stored under NAME",
			},
			&cli.IntFlag{
				Name:  "purge",
				Usage: "delete snapshots not synced within this many hours (default: config cache.clean)",
			},
		},
		MinArgs: 1,
		MaxArgs: 2, //nolint:mnd
		Action:  syncCommandAction,
		Meta:    meta,
	}).Build()
}
