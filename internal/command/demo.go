// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/rowsync/internal/dispatcher"
	"github.com/tfctl/rowsync/internal/items"
	"github.com/tfctl/rowsync/internal/log"
	"github.com/tfctl/rowsync/internal/meta"
	"github.com/tfctl/rowsync/internal/surface/tui"
)

// demoSources returns the sources behind the demo list: next draws a random
// list from a generator seeded with seed, and reload, only when file is set,
// reads file again.
func demoSources(ctx context.Context, cmd *cli.Command, file string, seed uint64) (next, reload tui.Source) {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) //nolint:gosec,mnd
	next = func() ([]items.Item, error) {
		return items.Generate(rng), nil
	}

	if file != "" {
		reload = func() ([]items.Item, error) {
			lists, err := LoadItems(ctx, cmd, file)
			if err != nil {
				return nil, err
			}
			return lists[0], nil
		}
	}
	return next, reload
}

// demoCommandAction is the action handler for the "demo" subcommand. It
// shows a list in the terminal and reconciles a fresh list onto it on every
// key press.
func demoCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "demo") {
		return nil
	}

	seed := uint64(cmd.Int("seed")) //nolint:gosec
	if seed == 0 {
		seed = uint64(time.Now().UnixNano()) //nolint:gosec
	}

	file := cmd.Args().First()
	next, reload := demoSources(ctx, cmd, file, seed)

	first := next
	if reload != nil {
		first = reload
	}
	initial, err := first()
	if err != nil {
		return err
	}

	return tui.Run(ctx, tui.New(initial, next, reload, dispatcher.WithHook(dispatcher.LogHook())))
}

// demoCommandBuilder constructs the cli.Command for "demo".
func demoCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "demo",
		Usage:     "interactive list that reconciles random or reloaded items",
		UsageText: "rowsync demo [FILE] [options]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "seed",
				Usage: "random seed for generated lists (default: time based)",
			},
		},
		MinArgs: 0,
		MaxArgs: 1,
		Action:  demoCommandAction,
		Meta:    meta,
	}).Build()
}
