// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/lithammer/dedent"
	"github.com/urfave/cli/v3"

	"github.com/staranto/aware/internal/meta"
	"github.com/staranto/aware/internal/output"
	"github.com/staranto/aware/internal/progress"
	"github.com/staranto/aware/internal/stack"
	"github.com/staranto/aware/internal/tree"
)

var cfAttrs = []string{"region,stack,stack_status,logical_id,type,physical_id,status"}

var cfDescription = dedent.Dedent(`
	Lists the CloudFormation stacks of each region with the resources each
	stack manages, as LogicalId (STATUS) and then Type: PhysicalId.

	--stack restricts the listing to stacks whose name or stack id matches.`)

// CfCommandAction is the action handler for the "cf" subcommand.
func CfCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner{
		CommandName:  "cf",
		SchemaType:   reflect.TypeOf(output.StackRow{}),
		DefaultAttrs: cfAttrs,
		Collect: func(ctx context.Context, clients Clients, region string, p progress.Progress) (*tree.Node, []any, error) {
			inv, err := stack.NewCollector(clients.CloudFormation(region), region,
				stack.WithStacks(cmd.StringSlice("stack")),
				stack.WithParallel(cmd.Int("parallel")),
				stack.WithProgress(p),
			).Collect(ctx)
			if err != nil {
				return nil, nil, err
			}
			return tree.Region(region, tree.Stacks(inv)), anyRows(output.StackRows(inv)), nil
		},
	}
	return runner.Run(ctx, cmd)
}

// CfCommandBuilder constructs the cli.Command for "cf".
func CfCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	flags := append([]cli.Flag{
		&cli.StringSliceFlag{
			Name:  "stack",
			Usage: "stack name or id to list, repeatable",
			Validator: func(values []string) error {
				for _, v := range values {
					if err := JammedFlagValidator(v); err != nil {
						return err
					}
				}
				return nil
			},
		},
		browseFlag,
	}, NewAWSFlags("cf")...)

	return (&QueryCommandBuilder{
		Name:        "cf",
		Usage:       "CloudFormation stacks and their resources",
		UsageText:   `aware cf [--stack name-or-id]... [options]`,
		Description: cfDescription,
		Flags:       flags,
		Action:      CfCommandAction,
		Meta:        meta,
	}).Build()
}
