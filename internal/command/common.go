// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/rowsync/internal/aws"
	"github.com/tfctl/rowsync/internal/items"
	"github.com/tfctl/rowsync/internal/log"
	"github.com/tfctl/rowsync/internal/meta"
)

// BuildSpec turns --key, --parent, --content and --filter into an items.Spec
// and applies the global transform spec to the content attributes.
func BuildSpec(cmd *cli.Command) (items.Spec, error) {
	spec := items.Spec{
		Parent: cmd.String("parent"),
		Key:    cmd.String("key"),
		Filter: cmd.String("filter"),
	}

	if content := cmd.String("content"); content != "" {
		if err := spec.Content.Set(content); err != nil {
			return items.Spec{}, fmt.Errorf("invalid --content: %w", err)
		}
		if err := spec.Content.SetGlobalTransformSpec(); err != nil {
			return items.Spec{}, fmt.Errorf("invalid --content: %w", err)
		}
	}

	log.Debugf("spec: parent=%q key=%q content=%v filter=%q", spec.Parent, spec.Key, &spec.Content, spec.Filter)
	return spec, nil
}

// LoadItems reads every src with the spec built from cmd. An S3 client is
// only created when one of the sources needs it, and then shared.
func LoadItems(ctx context.Context, cmd *cli.Command, srcs ...string) ([][]items.Item, error) {
	spec, err := BuildSpec(cmd)
	if err != nil {
		return nil, err
	}

	var opts []items.Option
	for _, src := range srcs {
		if aws.IsURI(src) {
			client, err := aws.NewS3FromEnv(ctx,
				aws.WithProfile(cmd.String("s3-profile")),
				aws.WithRegion(cmd.String("s3-region")),
				aws.WithEndpoint(cmd.String("s3-endpoint")),
			)
			if err != nil {
				return nil, fmt.Errorf("failed to create s3 client: %w", err)
			}
			opts = append(opts, items.WithS3(client))
			break
		}
	}

	lists := make([][]items.Item, len(srcs))
	for n, src := range srcs {
		if lists[n], err = items.Load(ctx, src, spec, opts...); err != nil {
			return nil, err
		}
	}
	return lists, nil
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr rowsync <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "rowsync", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}
