// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package vpc

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ec2"

	awsx "github.com/staranto/aware/internal/aws"
)

type collectFunc func(context.Context, awsx.EC2API, Scope) ([]Resource, error)

var collectors = map[Kind]collectFunc{
	Subnets:               collectSubnets,
	Instances:             collectInstances,
	InternetGateways:      collectInternetGateways,
	RouteTables:           collectRouteTables,
	NetworkAcls:           collectNetworkAcls,
	VpcPeeringConnections: collectVpcPeeringConnections,
	VpcEndpoints:          collectVpcEndpoints,
	NatGateways:           collectNatGateways,
	SecurityGroups:        collectSecurityGroups,
	VpnConnections:        collectVpnConnections,
	VpnGateways:           collectVpnGateways,
	NetworkInterfaces:     collectNetworkInterfaces,
}

func collectSubnets(ctx context.Context, api awsx.EC2API, scope Scope) ([]Resource, error) {
	in := &ec2.DescribeSubnetsInput{Filters: scope.Filters(Subnets.ScopeFilter())}
	return drain(ctx, ec2.NewDescribeSubnetsPaginator(api, in),
		func(o *ec2.DescribeSubnetsOutput) []Resource { return convert(o.Subnets, fromSubnet) })
}

func collectInstances(ctx context.Context, api awsx.EC2API, scope Scope) ([]Resource, error) {
	in := &ec2.DescribeInstancesInput{Filters: scope.Filters(Instances.ScopeFilter())}
	return drain(ctx, ec2.NewDescribeInstancesPaginator(api, in),
		func(o *ec2.DescribeInstancesOutput) []Resource {
			return convert(instancesOf(o.Reservations), fromInstance)
		})
}

func collectInternetGateways(ctx context.Context, api awsx.EC2API, scope Scope) ([]Resource, error) {
	in := &ec2.DescribeInternetGatewaysInput{Filters: scope.Filters(InternetGateways.ScopeFilter())}
	return drain(ctx, ec2.NewDescribeInternetGatewaysPaginator(api, in),
		func(o *ec2.DescribeInternetGatewaysOutput) []Resource {
			return convert(o.InternetGateways, fromInternetGateway)
		})
}

func collectRouteTables(ctx context.Context, api awsx.EC2API, scope Scope) ([]Resource, error) {
	in := &ec2.DescribeRouteTablesInput{Filters: scope.Filters(RouteTables.ScopeFilter())}
	return drain(ctx, ec2.NewDescribeRouteTablesPaginator(api, in),
		func(o *ec2.DescribeRouteTablesOutput) []Resource { return convert(o.RouteTables, fromRouteTable) })
}

func collectNetworkAcls(ctx context.Context, api awsx.EC2API, scope Scope) ([]Resource, error) {
	in := &ec2.DescribeNetworkAclsInput{Filters: scope.Filters(NetworkAcls.ScopeFilter())}
	return drain(ctx, ec2.NewDescribeNetworkAclsPaginator(api, in),
		func(o *ec2.DescribeNetworkAclsOutput) []Resource { return convert(o.NetworkAcls, fromNetworkAcl) })
}

// collectVpcPeeringConnections queries the requester side and, when scoped
// to VPCs, the accepter side too. A peering between two selected VPCs shows
// up in both answers and is kept once.
func collectVpcPeeringConnections(ctx context.Context, api awsx.EC2API, scope Scope) ([]Resource, error) {
	sides := []string{VpcPeeringConnections.ScopeFilter()}
	if len(scope.VpcIDs) > 0 {
		sides = append(sides, accepterFilter)
	}

	var peerings []Resource
	seen := make(map[string]bool)
	for _, side := range sides {
		in := &ec2.DescribeVpcPeeringConnectionsInput{Filters: scope.Filters(side)}
		found, err := drain(ctx, ec2.NewDescribeVpcPeeringConnectionsPaginator(api, in),
			func(o *ec2.DescribeVpcPeeringConnectionsOutput) []Resource {
				return convert(o.VpcPeeringConnections, fromVpcPeeringConnection)
			})
		if err != nil {
			return nil, err
		}
		for _, p := range found {
			if seen[p.ID] {
				continue
			}
			seen[p.ID] = true
			peerings = append(peerings, p)
		}
	}
	return peerings, nil
}

func collectVpcEndpoints(ctx context.Context, api awsx.EC2API, scope Scope) ([]Resource, error) {
	in := &ec2.DescribeVpcEndpointsInput{Filters: scope.Filters(VpcEndpoints.ScopeFilter())}
	return drain(ctx, ec2.NewDescribeVpcEndpointsPaginator(api, in),
		func(o *ec2.DescribeVpcEndpointsOutput) []Resource { return convert(o.VpcEndpoints, fromVpcEndpoint) })
}

// NAT gateways name their filter list Filter, not Filters.
func collectNatGateways(ctx context.Context, api awsx.EC2API, scope Scope) ([]Resource, error) {
	in := &ec2.DescribeNatGatewaysInput{Filter: scope.Filters(NatGateways.ScopeFilter())}
	return drain(ctx, ec2.NewDescribeNatGatewaysPaginator(api, in),
		func(o *ec2.DescribeNatGatewaysOutput) []Resource { return convert(o.NatGateways, fromNatGateway) })
}

func collectSecurityGroups(ctx context.Context, api awsx.EC2API, scope Scope) ([]Resource, error) {
	in := &ec2.DescribeSecurityGroupsInput{Filters: scope.Filters(SecurityGroups.ScopeFilter())}
	return drain(ctx, ec2.NewDescribeSecurityGroupsPaginator(api, in),
		func(o *ec2.DescribeSecurityGroupsOutput) []Resource {
			return convert(o.SecurityGroups, fromSecurityGroup)
		})
}

// DescribeVpnConnections is not paginated and has no VPC filter. Connections
// are tied to VPCs later through their gateway.
func collectVpnConnections(ctx context.Context, api awsx.EC2API, scope Scope) ([]Resource, error) {
	out, err := api.DescribeVpnConnections(ctx, &ec2.DescribeVpnConnectionsInput{
		Filters: scope.Filters(VpnConnections.ScopeFilter()),
	})
	if err != nil {
		return nil, err
	}
	return convert(out.VpnConnections, fromVpnConnection), nil
}

// DescribeVpnGateways is not paginated.
func collectVpnGateways(ctx context.Context, api awsx.EC2API, scope Scope) ([]Resource, error) {
	out, err := api.DescribeVpnGateways(ctx, &ec2.DescribeVpnGatewaysInput{
		Filters: scope.Filters(VpnGateways.ScopeFilter()),
	})
	if err != nil {
		return nil, err
	}
	return convert(out.VpnGateways, fromVpnGateway), nil
}

func collectNetworkInterfaces(ctx context.Context, api awsx.EC2API, scope Scope) ([]Resource, error) {
	in := &ec2.DescribeNetworkInterfacesInput{Filters: scope.Filters(NetworkInterfaces.ScopeFilter())}
	return drain(ctx, ec2.NewDescribeNetworkInterfacesPaginator(api, in),
		func(o *ec2.DescribeNetworkInterfacesOutput) []Resource {
			return convert(o.NetworkInterfaces, fromNetworkInterface)
		})
}
