// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package vpc

import (
	"context"
	"fmt"

	"github.com/apex/log"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"golang.org/x/sync/errgroup"

	awsx "github.com/staranto/aware/internal/aws"
	"github.com/staranto/aware/internal/progress"
)

// DefaultParallel bounds the number of collections in flight per region.
const DefaultParallel = 4

// Collector gathers the EC2 inventory of a single region.
type Collector struct {
	api      awsx.EC2API
	region   string
	scope    Scope
	parallel int
	progress progress.Progress
}

// Option customizes a Collector.
type Option func(*Collector)

// WithScope restricts collection to the given VPCs and tags.
func WithScope(scope Scope) Option {
	return func(c *Collector) { c.scope = scope }
}

// WithParallel sets how many collections run concurrently. Values < 1 mean
// one at a time.
func WithParallel(n int) Option {
	return func(c *Collector) { c.parallel = n }
}

// WithProgress sets the progress sink.
func WithProgress(p progress.Progress) Option {
	return func(c *Collector) { c.progress = p }
}

// NewCollector returns a Collector for region using api.
func NewCollector(api awsx.EC2API, region string, opts ...Option) *Collector {
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

// CollectVpcs describes the VPCs selected by the scope's VPC ids and tags,
// or every VPC in the region when the scope is empty.
func (c *Collector) CollectVpcs(ctx context.Context) ([]Resource, error) {
	in := &ec2.DescribeVpcsInput{
		Filters: c.scope.Filters(Vpcs.ScopeFilter()),
	}
	vpcs, err := drain(ctx, ec2.NewDescribeVpcsPaginator(c.api, in),
		func(o *ec2.DescribeVpcsOutput) []Resource { return convert(o.Vpcs, fromVpc) })
	if err != nil {
		return nil, fmt.Errorf("failed to collect %s in %s: %w", Vpcs, c.region, err)
	}
	log.Debugf("%s: %d VPCs", c.region, len(vpcs))
	return vpcs, nil
}

// Collect gathers the VPCs and then every collection in Kinds, and
// associates the results with their VPCs.
func (c *Collector) Collect(ctx context.Context) (*Inventory, error) {
	inv := NewInventory(c.region)

	c.progress.Begin(c.region, len(Kinds)+1)
	defer c.progress.Finish()

	c.progress.Describe("Collecting " + Vpcs.String())
	vpcs, err := c.CollectVpcs(ctx)
	if err != nil {
		return nil, err
	}
	inv.Vpcs = vpcs
	c.progress.Advance()

	if len(vpcs) == 0 {
		log.Infof("%s: no VPCs in scope", c.region)
		return inv, nil
	}

	// A scoped run narrows the child collections to the VPCs that matched.
	// Unscoped, every VPC in the region is in play and the filter would just
	// repeat every id.
	scope := c.scope
	if len(scope.VpcIDs) > 0 || len(scope.Tags) > 0 {
		scope.VpcIDs = inv.VpcIDs()
	}

	results := make([][]Resource, len(Kinds))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.parallel)
	for i, kind := range Kinds {
		g.Go(func() error {
			c.progress.Describe(kind.String())
			found, err := collectors[kind](gctx, c.api, scope)
			if err != nil {
				return fmt.Errorf("failed to collect %s in %s: %w", kind, c.region, err)
			}
			log.Debugf("%s: %d %s", c.region, len(found), kind)
			results[i] = found
			c.progress.Advance()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	for i, kind := range Kinds {
		inv.Add(kind, results[i]...)
	}
	inv.associate()

	return inv, nil
}

// CollectTags gathers the tag descriptions for the tag grouping. With no
// tags in scope every tag in the region is returned. Each selector is a
// separate query so that several selectors widen rather than narrow.
func (c *Collector) CollectTags(ctx context.Context) (*Inventory, error) {
	inv := NewInventory(c.region)

	selectors := c.scope.Tags
	if len(selectors) == 0 {
		selectors = []Tag{{}}
	}

	c.progress.Begin(c.region, len(selectors))
	defer c.progress.Finish()

	seen := make(map[TagDescription]bool)
	for _, sel := range selectors {
		c.progress.Describe("Collecting tags " + sel.String())

		in := &ec2.DescribeTagsInput{}
		if sel.Key != "" {
			in.Filters = sel.TagFilters()
		}

		tags, err := drain(ctx, ec2.NewDescribeTagsPaginator(c.api, in),
			func(o *ec2.DescribeTagsOutput) []TagDescription { return convert(o.Tags, fromTagDescription) })
		if err != nil {
			return nil, fmt.Errorf("failed to collect tags in %s: %w", c.region, err)
		}

		for _, t := range tags {
			if seen[t] {
				continue
			}
			seen[t] = true
			inv.Tags = append(inv.Tags, t)
		}
		c.progress.Advance()
	}

	log.Debugf("%s: %d tag descriptions", c.region, len(inv.Tags))
	return inv, nil
}

// pager is the shape shared by every ec2 paginator.
type pager[O any] interface {
	HasMorePages() bool
	NextPage(context.Context, ...func(*ec2.Options)) (O, error)
}

// drain reads every page from p and concatenates what items extracts from
// each.
func drain[O, T any](ctx context.Context, p pager[O], items func(O) []T) ([]T, error) {
	var results []T
	for p.HasMorePages() {
		page, err := p.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		results = append(results, items(page)...)
	}
	return results, nil
}
