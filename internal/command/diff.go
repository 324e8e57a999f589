// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/rowsync/internal/detector"
	"github.com/tfctl/rowsync/internal/items"
	"github.com/tfctl/rowsync/internal/log"
	"github.com/tfctl/rowsync/internal/meta"
	"github.com/tfctl/rowsync/internal/output"
)

// newDetector is the detector every command uses: identity by item key,
// content by the rendered content string.
func newDetector() *detector.Detector[items.Item] {
	return detector.NewKeyed(items.KeyOf, items.SameContent)
}

// diffCommandAction is the action handler for the "diff" subcommand. It
// loads OLD and NEW and prints the change records that turn one into the
// other.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %v", m.Args[1:])

	if ShortCircuitTLDR(ctx, cmd, "diff") {
		return nil
	}

	lists, err := LoadItems(ctx, cmd, cmd.Args().Get(0), cmd.Args().Get(1))
	if err != nil {
		return err
	}
	oldItems, newItems := lists[0], lists[1]

	changes := newDetector().Detect(newItems, oldItems)
	log.Debugf("diff: old=%d new=%d %s", len(oldItems), len(newItems), output.Summary(changes))

	opts := output.NewOptions(cmd)
	if opts.Titles {
		opts.Footer = output.Summary(changes)
	}

	return output.Spit(stdout(cmd), output.Records(changes, oldItems, newItems), opts)
}

// diffCommandBuilder constructs the cli.Command for "diff".
func diffCommandBuilder(meta meta.Meta) *cli.Command {
	return (&CommandBuilder{
		Name:      "diff",
		Usage:     "print the changes between two lists",
		UsageText: "rowsync diff OLD NEW [options]",
		MinArgs:   2, //nolint:mnd
		MaxArgs:   2, //nolint:mnd
		Action:    diffCommandAction,
		Meta:      meta,
	}).Build()
}
