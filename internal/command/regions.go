// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/urfave/cli/v3"

	awsx "github.com/staranto/aware/internal/aws"
	"github.com/staranto/aware/internal/meta"
	"github.com/staranto/aware/internal/output"
	"github.com/staranto/aware/internal/progress"
	"github.com/staranto/aware/internal/tree"
)

var regionsAttrs = []string{"region,endpoint,opt_in"}

// RegionsCommandAction lists the regions of the partition. It makes a single
// call so the runner visits one pseudo region.
func RegionsCommandAction(ctx context.Context, cmd *cli.Command) error {
	runner := &QueryActionRunner{
		CommandName:  "regions",
		SchemaType:   reflect.TypeOf(output.RegionRow{}),
		DefaultAttrs: regionsAttrs,
		Regions: func(context.Context, *cli.Command, Clients) ([]string, error) {
			return []string{""}, nil
		},
		Collect: func(ctx context.Context, clients Clients, _ string, _ progress.Progress) (*tree.Node, []any, error) {
			regions, err := awsx.DescribeRegions(ctx, clients.EC2(""), cmd.Bool("all"))
			if err != nil {
				return nil, nil, err
			}
			root := tree.New("AWS Regions")
			for _, r := range regions {
				title := r.Name
				if r.OptIn != "" {
					title += " (" + r.OptIn + ")"
				}
				root.Add(tree.New(title))
			}
			return root, anyRows(output.RegionRows(regions)), nil
		},
	}
	return runner.Run(ctx, cmd)
}

// RegionsCommandBuilder constructs the cli.Command for "regions".
func RegionsCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:  "all",
			Usage: "include regions the account has not opted into",
		},
	}
	for _, f := range NewAWSFlags("regions") {
		switch f.Names()[0] {
		case "profile", "max-attempts":
			flags = append(flags, f)
		}
	}

	return (&QueryCommandBuilder{
		Name:      "regions",
		Usage:     "regions available to the account",
		UsageText: `aware regions [--all] [options]`,
		Flags:     flags,
		Action:    RegionsCommandAction,
		Meta:      meta,
	}).Build()
}
