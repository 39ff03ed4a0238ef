// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package vpc

import (
	"github.com/iancoleman/strcase"
)

// Kind identifies one of the EC2 resource collections aware gathers.
type Kind int

const (
	Vpcs Kind = iota
	Subnets
	Instances
	InternetGateways
	RouteTables
	NetworkAcls
	VpcPeeringConnections
	VpcEndpoints
	NatGateways
	SecurityGroups
	VpnConnections
	VpnGateways
	NetworkInterfaces
)

// Kinds are the collections that hang off a VPC, in display order. Vpcs
// itself is not among them.
var Kinds = []Kind{
	Subnets,
	Instances,
	InternetGateways,
	RouteTables,
	NetworkAcls,
	VpcPeeringConnections,
	VpcEndpoints,
	NatGateways,
	SecurityGroups,
	VpnConnections,
	VpnGateways,
	NetworkInterfaces,
}

type kindInfo struct {
	name  string
	title string
	// scopeFilter is the EC2 filter name that restricts the collection to a
	// set of VPC ids. Empty when the API has no such filter.
	scopeFilter string
}

var kinds = map[Kind]kindInfo{
	Vpcs:                  {"Vpcs", "VPCs", "vpc-id"},
	Subnets:               {"Subnets", "Subnets", "vpc-id"},
	Instances:             {"Instances", "Instances", "vpc-id"},
	InternetGateways:      {"InternetGateways", "Internet Gateways", "attachment.vpc-id"},
	RouteTables:           {"RouteTables", "Route Tables", "vpc-id"},
	NetworkAcls:           {"NetworkAcls", "Network ACLs", "vpc-id"},
	VpcPeeringConnections: {"VpcPeeringConnections", "VPC Peering Connections", "requester-vpc-info.vpc-id"},
	VpcEndpoints:          {"VpcEndpoints", "VPC Endpoints", "vpc-id"},
	NatGateways:           {"NatGateways", "NAT Gateways", "vpc-id"},
	SecurityGroups:        {"SecurityGroups", "Security Groups", "vpc-id"},
	VpnConnections:        {"VpnConnections", "VPN Connections", ""},
	VpnGateways:           {"VpnGateways", "VPN Gateways", "attachment.vpc-id"},
	NetworkInterfaces:     {"NetworkInterfaces", "Network Interfaces", "vpc-id"},
}

// accepterFilter is the second side of a peering connection. Peerings are
// queried once per side when scoped to VPCs.
const accepterFilter = "accepter-vpc-info.vpc-id"

// String returns the display title, e.g. "Internet Gateways".
func (k Kind) String() string {
	if info, ok := kinds[k]; ok {
		return info.title
	}
	return "Unknown"
}

// Key returns the snake_case key used in row output, e.g. "internet_gateways".
func (k Kind) Key() string {
	if info, ok := kinds[k]; ok {
		return strcase.ToSnake(info.name)
	}
	return "unknown"
}

// ScopeFilter returns the EC2 filter name that scopes k to VPC ids.
func (k Kind) ScopeFilter() string {
	return kinds[k].scopeFilter
}

// KindFromKey is the inverse of Key.
func KindFromKey(key string) (Kind, bool) {
	for k := range kinds {
		if k.Key() == key {
			return k, true
		}
	}
	return 0, false
}
