// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/rowsync/internal/differ"
	"github.com/tfctl/rowsync/internal/dispatcher"
	"github.com/tfctl/rowsync/internal/items"
	"github.com/tfctl/rowsync/internal/log"
	"github.com/tfctl/rowsync/internal/meta"
	"github.com/tfctl/rowsync/internal/output"
	"github.com/tfctl/rowsync/internal/surface/memory"
)

// ErrReplayMismatch is returned when the replayed rows do not match NEW.
var ErrReplayMismatch = errors.New("replayed rows do not match the new list")

// step is one line of a replay trace.
type step struct {
	Seq    int    `json:"seq" yaml:"seq"`
	Phase  string `json:"phase" yaml:"phase"`
	Change string `json:"change,omitempty" yaml:"change,omitempty"`
	Rows   *int   `json:"rows,omitempty" yaml:"rows,omitempty"`
}

// replayCommandAction is the action handler for the "replay" subcommand. It
// dispatches the changes between OLD and NEW onto an in-memory surface,
// prints what the dispatcher did and checks that the surface ends up
// showing NEW.
func replayCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "replay") {
		return nil
	}

	lists, err := LoadItems(ctx, cmd, cmd.Args().Get(0), cmd.Args().Get(1))
	if err != nil {
		return err
	}
	oldItems, newItems := lists[0], lists[1]

	rows := memory.New(oldItems)
	if cmd.Bool("empty") {
		rows = memory.New[items.Item](nil)
	}

	var trace []step
	record := func(e dispatcher.Event) {
		s := step{Seq: len(trace) + 1, Phase: e.Phase.String()}
		if e.Change != nil {
			s.Change = e.Change.String()
		} else {
			count := e.Count
			s.Rows = &count
		}
		trace = append(trace, s)
	}

	d := dispatcher.New(newDetector(), dispatcher.WithHook(dispatcher.Hooks(record, dispatcher.LogHook())))
	changes := d.Reconcile(rows, oldItems, newItems)

	opts := output.NewOptions(cmd)
	if opts.Titles {
		opts.Footer = output.Summary(changes)
	}

	headers := []string{"seq", "phase", "change", "rows"}
	err = output.Emit(stdout(cmd), trace, headers, func(s step) []string {
		return []string{strconv.Itoa(s.Seq), s.Phase, output.InterfaceToString(s.Change, "-"), output.InterfaceToString(s.Rows, "-")}
	}, opts)
	if err != nil {
		return err
	}

	return verifyReplay(cmd, rows, newItems, opts.Color)
}

// verifyReplay settles rows and compares them with newItems. On a mismatch
// the difference is written to stderr.
func verifyReplay(cmd *cli.Command, rows *memory.Rows[items.Item], newItems []items.Item, color bool) error {
	if err := rows.Settle(); err != nil {
		return fmt.Errorf("%w: %w", ErrReplayMismatch, err)
	}

	verr := rows.Verify(items.SameKey, items.SameContent)
	if verr == nil {
		log.Debugf("replay verified: rows=%d calls=%d", rows.ItemCount(), len(rows.Calls()))
		return nil
	}

	_, err := differ.Diff(stderr(cmd), newItems, rows.Visible(), differ.Options{
		Color:  color,
		Ignore: []string{"fields"},
	})
	if err != nil {
		log.WithError(err).Warnf("replay diff failed")
	}
	return fmt.Errorf("%w: %w", ErrReplayMismatch, verr)
}

// replayCommandBuilder constructs the cli.Command for "replay".
func replayCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "replay",
		Usage:     "replay the changes between two lists onto a simulated list view",
		UsageText: "rowsync replay OLD NEW [options]",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "empty",
				Usage: "start from an empty view, which takes the full reset path",
			},
		},
		MinArgs: 2, //nolint:mnd
		MaxArgs: 2, //nolint:mnd
		Action:  replayCommandAction,
		Meta:    meta,
	}).Build()
}
