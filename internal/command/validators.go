// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/aware/internal/vpc"
)

var (
	validOutputFlagValues  = []string{"tree", "text", "json", "yaml", "raw"}
	validGroupByFlagValues = []string{"vpc", "tag"}
)

// GlobalFlagsValidator checks combinations of flags that are each valid on
// their own.
func GlobalFlagsValidator(ctx context.Context, c *cli.Command) error {
	if c.Bool("browse") && c.String("output") != "tree" {
		return errors.New("--browse requires --output tree")
	}
	return nil
}

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// JammedFlagValidator verifies that the arg following a flag does not begin
// with '--'.  urfave/cli allows this and I don't see how to turn it off.
func JammedFlagValidator(value any) error {
	if s, ok := value.(string); ok && strings.HasPrefix(s, "--") {
		return errors.New("must not begin with '--'")
	}
	return nil
}

func oneOf(value any, valid []string) error {
	s, _ := value.(string)
	if !slices.Contains(valid, s) {
		return fmt.Errorf("must be one of %v", valid)
	}
	return nil
}

func OutputValidator(value any) error {
	return oneOf(value, validOutputFlagValues)
}

func GroupByValidator(value any) error {
	return oneOf(value, validGroupByFlagValues)
}

// TagValidator accepts key=value or a bare key.
func TagValidator(value any) error {
	s, _ := value.(string)
	_, err := vpc.ParseTag(s)
	return err
}

func PositiveValidator(value any) error {
	if n, ok := value.(int); !ok || n < 1 {
		return errors.New("must be at least 1")
	}
	return nil
}

func NonNegativeValidator(value any) error {
	if n, ok := value.(int); !ok || n < 0 {
		return errors.New("must not be negative")
	}
	return nil
}
