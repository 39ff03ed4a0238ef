// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"reflect"

	"github.com/lithammer/dedent"
	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/aware/internal/meta"
	"github.com/staranto/aware/internal/output"
	"github.com/staranto/aware/internal/progress"
	"github.com/staranto/aware/internal/tree"
	"github.com/staranto/aware/internal/vpc"
)

var (
	ec2VpcAttrs = []string{"region,vpc,kind,id,name,state"}
	ec2TagAttrs = []string{"region,key,value,resource_type,resource_id"}
)

var ec2Description = dedent.Dedent(`
	Lists the VPCs of each region with the resources inside them: subnets,
	instances, internet gateways, route tables, network ACLs, peering
	connections, endpoints, NAT gateways, security groups, VPN connections,
	VPN gateways and network interfaces.

	--vpc restricts the listing to the given VPCs. --tag restricts the VPCs
	and every collection inside them to resources carrying the tag, given as
	key=value or as a bare key. A VPC without the tags is not shown, even
	when tagged resources live in it.

	--group-by tag lists the matching tags instead, grouped by key, value and
	resource type.`)

// Ec2CommandAction is the action handler for the "ec2" subcommand.
func Ec2CommandAction(ctx context.Context, cmd *cli.Command) error {
	tags, err := vpc.ParseTags(cmd.StringSlice("tag"))
	if err != nil {
		return err
	}
	scope := vpc.Scope{VpcIDs: cmd.StringSlice("vpc"), Tags: tags}
	byTag := cmd.String("group-by") == "tag"

	runner := &QueryActionRunner{
		CommandName:  "ec2",
		SchemaType:   reflect.TypeOf(output.ResourceRow{}),
		DefaultAttrs: ec2VpcAttrs,
		Collect: func(ctx context.Context, clients Clients, region string, p progress.Progress) (*tree.Node, []any, error) {
			c := vpc.NewCollector(clients.EC2(region), region,
				vpc.WithScope(scope),
				vpc.WithParallel(cmd.Int("parallel")),
				vpc.WithProgress(p),
			)
			if byTag {
				inv, err := c.CollectTags(ctx)
				if err != nil {
					return nil, nil, err
				}
				return tree.Region(region, tree.Tags(inv)), anyRows(output.TagRows(inv)), nil
			}

			inv, err := c.Collect(ctx)
			if err != nil {
				return nil, nil, err
			}
			return tree.Region(region, tree.Vpcs(inv)), anyRows(output.ResourceRows(inv)), nil
		},
	}
	if byTag {
		runner.SchemaType = reflect.TypeOf(output.TagRow{})
		runner.DefaultAttrs = ec2TagAttrs
	}
	return runner.Run(ctx, cmd)
}

// Ec2CommandBuilder constructs the cli.Command for "ec2".
func Ec2CommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	flags := append([]cli.Flag{
		&cli.StringSliceFlag{
			Name:  "vpc",
			Usage: "VPC id to list, repeatable",
			Validator: func(values []string) error {
				for _, v := range values {
					if err := JammedFlagValidator(v); err != nil {
						return err
					}
				}
				return nil
			},
		},
		&cli.StringSliceFlag{
			Name:  "tag",
			Usage: "tag selector, key=value or key, repeatable",
			Validator: func(values []string) error {
				for _, v := range values {
					if err := FlagValidators(v, JammedFlagValidator, TagValidator); err != nil {
						return err
					}
				}
				return nil
			},
		},
		&cli.StringFlag{
			Name:    "group-by",
			Aliases: []string{"g"},
			Usage:   "group resources by vpc or tag",
			Sources: cli.NewValueSourceChain(
				yaml.YAML("ec2.group-by", altsrc.StringSourcer(meta.Config.Source)),
			),
			Value: "vpc",
			Validator: func(value string) error {
				return FlagValidators(value, GroupByValidator)
			},
		},
		browseFlag,
	}, NewAWSFlags("ec2")...)

	return (&QueryCommandBuilder{
		Name:        "ec2",
		Usage:       "EC2 resources grouped by VPC or tag",
		UsageText:   `aware ec2 [--vpc id]... [--tag key=value]... [--group-by vpc|tag] [options]`,
		Description: ec2Description,
		Flags:       flags,
		Action:      Ec2CommandAction,
		Meta:        meta,
	}).Build()
}
