// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

// NewGlobalFlags returns the flags shared by every command that reads item
// documents and prints change records. When cfgPath is set, each flag also
// picks up "<ns>.<flag>" and then "<flag>" from that config file.
func NewGlobalFlags(ns string, cfgPath string) []cli.Flag {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "colored text output: auto, always or never",
			Value:   "auto",
			Sources: cli.EnvVars("ROWSYNC_COLOR"),
			Validator: func(value string) error {
				return FlagValidators(value, ColorValidator)
			},
		},
		&cli.StringFlag{
			Name:    "content",
			Aliases: []string{"a"},
			Usage:   "comma-separated attributes that make up item content (default: whole element)",
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters applied to items before comparing",
		},
		&cli.StringFlag{
			Name:    "key",
			Aliases: []string{"k"},
			Usage:   "path of the item identity",
			Value:   "id",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format",
			Value:   "text",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		&cli.IntFlag{
			Name:  "padding",
			Usage: "spaces between text columns",
			Value: 2, //nolint:mnd
		},
		&cli.StringFlag{
			Name:    "parent",
			Aliases: []string{"p"},
			Usage:   "path of the item list inside each document",
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of record columns to sort by",
			Validator: func(value string) error {
				return FlagValidators(value, SortValidator)
			},
		},
		&cli.BoolFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Value:   false,
		},
		NewS3EndpointFlag(),
		&cli.StringFlag{
			Name:    "s3-profile",
			Usage:   "AWS profile used for s3:// sources",
			Sources: cli.EnvVars("ROWSYNC_S3_PROFILE"),
		},
		&cli.StringFlag{
			Name:    "s3-region",
			Usage:   "AWS region used for s3:// sources",
			Sources: cli.EnvVars("ROWSYNC_S3_REGION"),
		},
	}

	if cfgPath != "" {
		for _, f := range flags {
			NameSpacedValueChainFromConfigFile(ns, cfgPath, f)
		}
	}

	return flags
}

// NewS3EndpointFlag constructs the flag naming an S3 compatible endpoint,
// such as a local MinIO, for s3:// sources.
func NewS3EndpointFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:  "s3-endpoint",
		Usage: "S3 compatible endpoint for s3:// sources",
		Sources: cli.NewValueSourceChain(
			cli.EnvVar("ROWSYNC_S3_ENDPOINT"),
			cli.EnvVar("AWS_ENDPOINT_URL_S3"),
		),
	}
}

// NameSpacedValueChainFromConfigFile adds namespaced and global config file
// sources to the flag's Sources chain. Flag types without a chain are left
// alone.
func NameSpacedValueChainFromConfigFile(ns string, path string, flag cli.Flag) cli.Flag {
	var chain *cli.ValueSourceChain
	switch f := flag.(type) {
	case *cli.StringFlag:
		chain = &f.Sources
	case *cli.BoolFlag:
		chain = &f.Sources
	case *cli.IntFlag:
		chain = &f.Sources
	default:
		return flag
	}

	name := flag.Names()[0]
	if ns != "" {
		chain.Chain = append(chain.Chain, yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)))
	}
	chain.Chain = append(chain.Chain, yaml.YAML(name, altsrc.StringSourcer(path)))

	return flag
}

// pathHas reports whether target is an executable on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
