// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/rowsync/internal/output"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// ArgsValidator returns a Before check that the command got between min and
// max positional arguments.
func ArgsValidator(minArgs, maxArgs int) func(context.Context, *cli.Command) error {
	return func(ctx context.Context, c *cli.Command) error {
		n := c.Args().Len()
		switch {
		case n < minArgs:
			return fmt.Errorf("%s: want at least %d argument(s), got %d", c.Name, minArgs, n)
		case n > maxArgs:
			return fmt.Errorf("%s: want at most %d argument(s), got %d", c.Name, maxArgs, n)
		}
		return nil
	}
}

func OutputValidator(value any) error {
	var validOutputFlagValues = []string{"text", "json", "yaml"}
	s, _ := value.(string)
	if !slices.Contains(validOutputFlagValues, s) {
		return fmt.Errorf("must be one of %v", validOutputFlagValues)
	}
	return nil
}

func ColorValidator(value any) error {
	s, _ := value.(string)
	switch strings.ToLower(s) {
	case "auto", "always", "never":
		return nil
	}
	if _, err := strconv.ParseBool(s); err == nil {
		return nil
	}
	return fmt.Errorf("must be auto, always, never or a bool")
}

func SortValidator(value any) error {
	s, _ := value.(string)
	return output.SortRecords(nil, s)
}
