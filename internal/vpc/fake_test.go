// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package vpc

import (
	"context"
	"sync"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	awsx "github.com/staranto/aware/internal/aws"
)

var _ awsx.EC2API = (*fakeEC2)(nil)

// fakeEC2 answers every describe call from canned data. Vpcs and Subnets
// come back in pages to exercise pagination. Every call's filters are
// recorded under the operation name.
type fakeEC2 struct {
	mu      sync.Mutex
	filters map[string][][]types.Filter

	vpcPages     [][]types.Vpc
	subnetPages  [][]types.Subnet
	reservations []types.Reservation
	igws         []types.InternetGateway
	routeTables  []types.RouteTable
	nacls        []types.NetworkAcl
	peerings     []types.VpcPeeringConnection
	endpoints    []types.VpcEndpoint
	nats         []types.NatGateway
	groups       []types.SecurityGroup
	vpnConns     []types.VpnConnection
	vpnGateways  []types.VpnGateway
	enis         []types.NetworkInterface
	tags         []types.TagDescription

	failOn string
	err    error
}

func (f *fakeEC2) record(op string, filters []types.Filter) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.filters == nil {
		f.filters = make(map[string][][]types.Filter)
	}
	f.filters[op] = append(f.filters[op], filters)
	if f.failOn == op {
		return f.err
	}
	return nil
}

func (f *fakeEC2) calls(op string) [][]types.Filter {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.filters[op]
}

// pageOf returns page n of pages and the token for the next one.
func pageOf[T any](pages [][]T, token *string) ([]T, *string) {
	n := 0
	if token != nil {
		switch *token {
		case "2":
			n = 1
		case "3":
			n = 2
		}
	}
	if n >= len(pages) {
		return nil, nil
	}
	var next *string
	if n+1 < len(pages) {
		next = awsv2.String([]string{"2", "3"}[n])
	}
	return pages[n], next
}

func (f *fakeEC2) DescribeRegions(_ context.Context, _ *ec2.DescribeRegionsInput, _ ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error) {
	return &ec2.DescribeRegionsOutput{}, f.record("DescribeRegions", nil)
}

func (f *fakeEC2) DescribeTags(_ context.Context, in *ec2.DescribeTagsInput, _ ...func(*ec2.Options)) (*ec2.DescribeTagsOutput, error) {
	if err := f.record("DescribeTags", in.Filters); err != nil {
		return nil, err
	}
	var out []types.TagDescription
	for _, t := range f.tags {
		if matchesTagFilters(t, in.Filters) {
			out = append(out, t)
		}
	}
	return &ec2.DescribeTagsOutput{Tags: out}, nil
}

func matchesTagFilters(t types.TagDescription, filters []types.Filter) bool {
	for _, f := range filters {
		var v string
		switch awsv2.ToString(f.Name) {
		case "key":
			v = awsv2.ToString(t.Key)
		case "value":
			v = awsv2.ToString(t.Value)
		default:
			continue
		}
		found := false
		for _, want := range f.Values {
			if want == v {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (f *fakeEC2) DescribeVpcs(_ context.Context, in *ec2.DescribeVpcsInput, _ ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error) {
	if err := f.record("DescribeVpcs", in.Filters); err != nil {
		return nil, err
	}
	vpcs, next := pageOf(f.vpcPages, in.NextToken)
	return &ec2.DescribeVpcsOutput{Vpcs: vpcs, NextToken: next}, nil
}

func (f *fakeEC2) DescribeSubnets(_ context.Context, in *ec2.DescribeSubnetsInput, _ ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error) {
	if err := f.record("DescribeSubnets", in.Filters); err != nil {
		return nil, err
	}
	subnets, next := pageOf(f.subnetPages, in.NextToken)
	return &ec2.DescribeSubnetsOutput{Subnets: subnets, NextToken: next}, nil
}

func (f *fakeEC2) DescribeInstances(_ context.Context, in *ec2.DescribeInstancesInput, _ ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error) {
	return &ec2.DescribeInstancesOutput{Reservations: f.reservations}, f.record("DescribeInstances", in.Filters)
}

func (f *fakeEC2) DescribeInternetGateways(_ context.Context, in *ec2.DescribeInternetGatewaysInput, _ ...func(*ec2.Options)) (*ec2.DescribeInternetGatewaysOutput, error) {
	return &ec2.DescribeInternetGatewaysOutput{InternetGateways: f.igws}, f.record("DescribeInternetGateways", in.Filters)
}

func (f *fakeEC2) DescribeRouteTables(_ context.Context, in *ec2.DescribeRouteTablesInput, _ ...func(*ec2.Options)) (*ec2.DescribeRouteTablesOutput, error) {
	return &ec2.DescribeRouteTablesOutput{RouteTables: f.routeTables}, f.record("DescribeRouteTables", in.Filters)
}

func (f *fakeEC2) DescribeNetworkAcls(_ context.Context, in *ec2.DescribeNetworkAclsInput, _ ...func(*ec2.Options)) (*ec2.DescribeNetworkAclsOutput, error) {
	return &ec2.DescribeNetworkAclsOutput{NetworkAcls: f.nacls}, f.record("DescribeNetworkAcls", in.Filters)
}

// DescribeVpcPeeringConnections honours the requester and accepter filters
// so the two-sided query can be checked.
func (f *fakeEC2) DescribeVpcPeeringConnections(_ context.Context, in *ec2.DescribeVpcPeeringConnectionsInput, _ ...func(*ec2.Options)) (*ec2.DescribeVpcPeeringConnectionsOutput, error) {
	if err := f.record("DescribeVpcPeeringConnections", in.Filters); err != nil {
		return nil, err
	}
	var out []types.VpcPeeringConnection
	for _, p := range f.peerings {
		if matchesPeering(p, in.Filters) {
			out = append(out, p)
		}
	}
	return &ec2.DescribeVpcPeeringConnectionsOutput{VpcPeeringConnections: out}, nil
}

func matchesPeering(p types.VpcPeeringConnection, filters []types.Filter) bool {
	for _, f := range filters {
		var v string
		switch awsv2.ToString(f.Name) {
		case "requester-vpc-info.vpc-id":
			v = awsv2.ToString(p.RequesterVpcInfo.VpcId)
		case "accepter-vpc-info.vpc-id":
			v = awsv2.ToString(p.AccepterVpcInfo.VpcId)
		default:
			continue
		}
		found := false
		for _, want := range f.Values {
			if want == v {
				found = true
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (f *fakeEC2) DescribeVpcEndpoints(_ context.Context, in *ec2.DescribeVpcEndpointsInput, _ ...func(*ec2.Options)) (*ec2.DescribeVpcEndpointsOutput, error) {
	return &ec2.DescribeVpcEndpointsOutput{VpcEndpoints: f.endpoints}, f.record("DescribeVpcEndpoints", in.Filters)
}

func (f *fakeEC2) DescribeNatGateways(_ context.Context, in *ec2.DescribeNatGatewaysInput, _ ...func(*ec2.Options)) (*ec2.DescribeNatGatewaysOutput, error) {
	return &ec2.DescribeNatGatewaysOutput{NatGateways: f.nats}, f.record("DescribeNatGateways", in.Filter)
}

func (f *fakeEC2) DescribeSecurityGroups(_ context.Context, in *ec2.DescribeSecurityGroupsInput, _ ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error) {
	return &ec2.DescribeSecurityGroupsOutput{SecurityGroups: f.groups}, f.record("DescribeSecurityGroups", in.Filters)
}

func (f *fakeEC2) DescribeVpnConnections(_ context.Context, in *ec2.DescribeVpnConnectionsInput, _ ...func(*ec2.Options)) (*ec2.DescribeVpnConnectionsOutput, error) {
	return &ec2.DescribeVpnConnectionsOutput{VpnConnections: f.vpnConns}, f.record("DescribeVpnConnections", in.Filters)
}

func (f *fakeEC2) DescribeVpnGateways(_ context.Context, in *ec2.DescribeVpnGatewaysInput, _ ...func(*ec2.Options)) (*ec2.DescribeVpnGatewaysOutput, error) {
	return &ec2.DescribeVpnGatewaysOutput{VpnGateways: f.vpnGateways}, f.record("DescribeVpnGateways", in.Filters)
}

func (f *fakeEC2) DescribeNetworkInterfaces(_ context.Context, in *ec2.DescribeNetworkInterfacesInput, _ ...func(*ec2.Options)) (*ec2.DescribeNetworkInterfacesOutput, error) {
	return &ec2.DescribeNetworkInterfacesOutput{NetworkInterfaces: f.enis}, f.record("DescribeNetworkInterfaces", in.Filters)
}

func nameTag(name string) []types.Tag {
	return []types.Tag{{Key: awsv2.String("Name"), Value: awsv2.String(name)}}
}

// newFakeEC2 returns a region with two VPCs, the first of them populated
// with one resource of every kind.
func newFakeEC2() *fakeEC2 {
	s := awsv2.String
	return &fakeEC2{
		vpcPages: [][]types.Vpc{
			{{VpcId: s("vpc-1"), Tags: nameTag("main"), State: types.VpcStateAvailable}},
			{{VpcId: s("vpc-2")}},
		},
		subnetPages: [][]types.Subnet{
			{{SubnetId: s("subnet-1"), VpcId: s("vpc-1"), Tags: nameTag("public")}},
			{{SubnetId: s("subnet-2"), VpcId: s("vpc-1")}},
		},
		reservations: []types.Reservation{
			{Instances: []types.Instance{{InstanceId: s("i-1"), VpcId: s("vpc-1"), Tags: nameTag("web"),
				State: &types.InstanceState{Name: types.InstanceStateNameRunning}}}},
			{Instances: []types.Instance{{InstanceId: s("i-2"), VpcId: s("vpc-1")}}},
		},
		igws: []types.InternetGateway{{InternetGatewayId: s("igw-1"),
			Attachments: []types.InternetGatewayAttachment{{VpcId: s("vpc-1"), State: types.AttachmentStatusAttached}}}},
		routeTables: []types.RouteTable{{RouteTableId: s("rtb-1"), VpcId: s("vpc-1")}},
		nacls:       []types.NetworkAcl{{NetworkAclId: s("acl-1"), VpcId: s("vpc-1"), IsDefault: awsv2.Bool(true)}},
		peerings: []types.VpcPeeringConnection{{
			VpcPeeringConnectionId: s("pcx-1"),
			RequesterVpcInfo:       &types.VpcPeeringConnectionVpcInfo{VpcId: s("vpc-1")},
			AccepterVpcInfo:        &types.VpcPeeringConnectionVpcInfo{VpcId: s("vpc-2")},
		}},
		endpoints: []types.VpcEndpoint{{VpcEndpointId: s("vpce-1"), VpcId: s("vpc-1"), ServiceName: s("com.amazonaws.us-east-1.s3")}},
		nats:      []types.NatGateway{{NatGatewayId: s("nat-1"), VpcId: s("vpc-1")}},
		groups:    []types.SecurityGroup{{GroupId: s("sg-1"), VpcId: s("vpc-1"), Description: s("default VPC security group")}},
		vpnConns:  []types.VpnConnection{{VpnConnectionId: s("vpn-1"), VpnGatewayId: s("vgw-1")}},
		vpnGateways: []types.VpnGateway{{VpnGatewayId: s("vgw-1"),
			VpcAttachments: []types.VpcAttachment{{VpcId: s("vpc-1")}}}},
		enis: []types.NetworkInterface{{NetworkInterfaceId: s("eni-1"), VpcId: s("vpc-1"), Description: s("Primary network interface")}},
		tags: []types.TagDescription{
			{Key: s("env"), Value: s("prod"), ResourceType: types.ResourceTypeInstance, ResourceId: s("i-1")},
			{Key: s("env"), Value: s("dev"), ResourceType: types.ResourceTypeInstance, ResourceId: s("i-2")},
			{Key: s("team"), Value: s("core"), ResourceType: types.ResourceTypeVpc, ResourceId: s("vpc-1")},
		},
	}
}
