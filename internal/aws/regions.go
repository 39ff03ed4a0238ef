// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package aws

import (
	"context"
	"fmt"
	"sort"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// optInNotOptedIn is the DescribeRegions opt-in status of a region the
// account has not enabled. Calls against such a region fail with AuthFailure.
const optInNotOptedIn = "not-opted-in"

// Region is a region name and its opt-in status.
type Region struct {
	Name     string `json:"region"`
	Endpoint string `json:"endpoint"`
	OptIn    string `json:"opt_in"`
}

// DescribeRegions returns every region known to the partition, sorted by
// name. Unless includeAll is set, regions the account has not opted into are
// dropped.
func DescribeRegions(ctx context.Context, api EC2API, includeAll bool) ([]Region, error) {
	out, err := api.DescribeRegions(ctx, &ec2.DescribeRegionsInput{
		AllRegions: awsv2.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe regions: %w", err)
	}

	regions := make([]Region, 0, len(out.Regions))
	for _, r := range out.Regions {
		name := awsv2.ToString(r.RegionName)
		if name == "" {
			continue
		}
		optIn := awsv2.ToString(r.OptInStatus)
		if !includeAll && optIn == optInNotOptedIn {
			log.Debugf("skipping region %s: %s", name, optIn)
			continue
		}
		regions = append(regions, Region{
			Name:     name,
			Endpoint: awsv2.ToString(r.Endpoint),
			OptIn:    optIn,
		})
	}

	sort.Slice(regions, func(i, j int) bool {
		return regions[i].Name < regions[j].Name
	})

	return regions, nil
}

// Regions is DescribeRegions reduced to the region names.
func Regions(ctx context.Context, api EC2API, includeAll bool) ([]string, error) {
	regions, err := DescribeRegions(ctx, api, includeAll)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(regions))
	for _, r := range regions {
		names = append(names, r.Name)
	}
	return names, nil
}
