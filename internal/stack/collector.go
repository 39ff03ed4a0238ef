// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package stack

import (
	"cmp"
	"context"
	"fmt"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"golang.org/x/sync/errgroup"

	awsx "github.com/staranto/aware/internal/aws"
	"github.com/staranto/aware/internal/progress"
)

// DefaultParallel bounds the number of stacks listed concurrently.
const DefaultParallel = 4

// Inventory is the stacks collected for one region.
type Inventory struct {
	Region string
	Stacks []Stack
}

// Count returns the number of stacks plus their resources.
func (inv *Inventory) Count() int {
	n := len(inv.Stacks)
	for _, s := range inv.Stacks {
		n += len(s.Resources)
	}
	return n
}

// Collector gathers CloudFormation stacks and their resources in a region.
type Collector struct {
	api      awsx.CloudFormationAPI
	region   string
	names    []string
	parallel int
	progress progress.Progress
}

type Option func(*Collector)

// WithStacks restricts collection to stacks named (or identified) by names.
func WithStacks(names []string) Option {
	return func(c *Collector) { c.names = names }
}

func WithParallel(n int) Option {
	return func(c *Collector) { c.parallel = n }
}

func WithProgress(p progress.Progress) Option {
	return func(c *Collector) { c.progress = p }
}

func NewCollector(api awsx.CloudFormationAPI, region string, opts ...Option) *Collector {
	c := &Collector{
		api:      api,
		region:   region,
		parallel: DefaultParallel,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.parallel < 1 {
		c.parallel = 1
	}
	c.progress = progress.OrNop(c.progress)
	return c
}

// CollectStacks describes the region's stacks, keeping only the requested
// ones when names were given. Stacks keep the order the API returns them in.
func (c *Collector) CollectStacks(ctx context.Context) ([]Stack, error) {
	var stacks []Stack

	p := cloudformation.NewDescribeStacksPaginator(c.api, &cloudformation.DescribeStacksInput{})
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to describe stacks in %s: %w", c.region, err)
		}
		for _, s := range page.Stacks {
			st := fromStack(s)
			if len(c.names) > 0 && !st.Matches(c.names) {
				continue
			}
			stacks = append(stacks, st)
		}
	}

	log.Debugf("%s: %d stacks", c.region, len(stacks))
	return stacks, nil
}

// Collect describes the stacks and then lists the resources of each.
func (c *Collector) Collect(ctx context.Context) (*Inventory, error) {
	stacks, err := c.CollectStacks(ctx)
	if err != nil {
		return nil, err
	}

	inv := &Inventory{Region: c.region, Stacks: stacks}
	if len(stacks) == 0 {
		log.Infof("%s: no stacks in scope", c.region)
		return inv, nil
	}

	c.progress.Begin(c.region, len(stacks))
	defer c.progress.Finish()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallel)
	for i := range inv.Stacks {
		st := &inv.Stacks[i]
		g.Go(func() error {
			c.progress.Describe(st.Name)
			resources, err := c.listResources(gctx, cmp.Or(st.ID, st.Name))
			if err != nil {
				return fmt.Errorf("failed to list resources of stack %s in %s: %w", st.Name, c.region, err)
			}
			st.Resources = resources
			c.progress.Advance()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return inv, nil
}

// listResources drains ListStackResources for the stack. Callers pass the
// stack id when there is one since a deleted stack's name can be reused.
func (c *Collector) listResources(ctx context.Context, stack string) ([]Resource, error) {
	var resources []Resource

	in := &cloudformation.ListStackResourcesInput{StackName: awsv2.String(stack)}
	p := cloudformation.NewListStackResourcesPaginator(c.api, in)
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, s := range page.StackResourceSummaries {
			resources = append(resources, fromSummary(s))
		}
	}
	return resources, nil
}
