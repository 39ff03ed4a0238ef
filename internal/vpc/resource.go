// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package vpc

import (
	"fmt"
	"slices"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// Resource is the normalized form of every collected EC2 item. The SDK
// models differ in where they keep their id, name and VPC, so each is
// converted once at collection time and the rest of aware only sees this.
type Resource struct {
	Kind   Kind
	ID     string
	Name   string
	State  string
	VpcIDs []string
	Tags   map[string]string
	// Gateway is the VPN gateway a VPN connection terminates on. VPN
	// connections carry no VPC id, so they are associated through it.
	Gateway string
}

// Label is the display form: "id (name)", or just the id when unnamed.
func (r Resource) Label() string {
	if r.Name == "" {
		return r.ID
	}
	return fmt.Sprintf("%s (%s)", r.ID, r.Name)
}

// BelongsTo reports whether the resource is associated with vpcID.
func (r Resource) BelongsTo(vpcID string) bool {
	return slices.Contains(r.VpcIDs, vpcID)
}

func tagMap(tags []types.Tag) map[string]string {
	if len(tags) == 0 {
		return nil
	}
	m := make(map[string]string, len(tags))
	for _, t := range tags {
		m[awsv2.ToString(t.Key)] = awsv2.ToString(t.Value)
	}
	return m
}

// nameOf prefers the Name tag and falls back to fallback, which is the
// description for the kinds that have one.
func nameOf(tags map[string]string, fallback *string) string {
	if n := tags["Name"]; n != "" {
		return n
	}
	return awsv2.ToString(fallback)
}

// appendVpc appends id to ids unless it is empty or already present.
func appendVpc(ids []string, id *string) []string {
	v := awsv2.ToString(id)
	if v == "" || slices.Contains(ids, v) {
		return ids
	}
	return append(ids, v)
}

func convert[T, R any](in []T, fn func(T) R) []R {
	out := make([]R, 0, len(in))
	for _, item := range in {
		out = append(out, fn(item))
	}
	return out
}

func fromVpc(v types.Vpc) Resource {
	tags := tagMap(v.Tags)
	return Resource{
		Kind:   Vpcs,
		ID:     awsv2.ToString(v.VpcId),
		Name:   nameOf(tags, nil),
		State:  string(v.State),
		VpcIDs: appendVpc(nil, v.VpcId),
		Tags:   tags,
	}
}

func fromSubnet(s types.Subnet) Resource {
	tags := tagMap(s.Tags)
	return Resource{
		Kind:   Subnets,
		ID:     awsv2.ToString(s.SubnetId),
		Name:   nameOf(tags, nil),
		State:  string(s.State),
		VpcIDs: appendVpc(nil, s.VpcId),
		Tags:   tags,
	}
}

func fromInstance(i types.Instance) Resource {
	tags := tagMap(i.Tags)
	r := Resource{
		Kind:   Instances,
		ID:     awsv2.ToString(i.InstanceId),
		Name:   nameOf(tags, nil),
		VpcIDs: appendVpc(nil, i.VpcId),
		Tags:   tags,
	}
	if i.State != nil {
		r.State = string(i.State.Name)
	}
	return r
}

// instancesOf flattens reservations into their instances.
func instancesOf(reservations []types.Reservation) []types.Instance {
	var instances []types.Instance
	for _, r := range reservations {
		instances = append(instances, r.Instances...)
	}
	return instances
}

func fromInternetGateway(g types.InternetGateway) Resource {
	tags := tagMap(g.Tags)
	r := Resource{
		Kind: InternetGateways,
		ID:   awsv2.ToString(g.InternetGatewayId),
		Name: nameOf(tags, nil),
		Tags: tags,
	}
	for _, a := range g.Attachments {
		r.VpcIDs = appendVpc(r.VpcIDs, a.VpcId)
		r.State = string(a.State)
	}
	return r
}

func fromRouteTable(t types.RouteTable) Resource {
	tags := tagMap(t.Tags)
	return Resource{
		Kind:   RouteTables,
		ID:     awsv2.ToString(t.RouteTableId),
		Name:   nameOf(tags, nil),
		VpcIDs: appendVpc(nil, t.VpcId),
		Tags:   tags,
	}
}

func fromNetworkAcl(a types.NetworkAcl) Resource {
	tags := tagMap(a.Tags)
	r := Resource{
		Kind:   NetworkAcls,
		ID:     awsv2.ToString(a.NetworkAclId),
		Name:   nameOf(tags, nil),
		VpcIDs: appendVpc(nil, a.VpcId),
		Tags:   tags,
	}
	if awsv2.ToBool(a.IsDefault) {
		r.State = "default"
	}
	return r
}

func fromVpcPeeringConnection(p types.VpcPeeringConnection) Resource {
	tags := tagMap(p.Tags)
	r := Resource{
		Kind: VpcPeeringConnections,
		ID:   awsv2.ToString(p.VpcPeeringConnectionId),
		Name: nameOf(tags, nil),
		Tags: tags,
	}
	if p.RequesterVpcInfo != nil {
		r.VpcIDs = appendVpc(r.VpcIDs, p.RequesterVpcInfo.VpcId)
	}
	if p.AccepterVpcInfo != nil {
		r.VpcIDs = appendVpc(r.VpcIDs, p.AccepterVpcInfo.VpcId)
	}
	if p.Status != nil {
		r.State = string(p.Status.Code)
	}
	return r
}

func fromVpcEndpoint(e types.VpcEndpoint) Resource {
	tags := tagMap(e.Tags)
	return Resource{
		Kind:   VpcEndpoints,
		ID:     awsv2.ToString(e.VpcEndpointId),
		Name:   nameOf(tags, nil),
		State:  string(e.State),
		VpcIDs: appendVpc(nil, e.VpcId),
		Tags:   tags,
	}
}

func fromNatGateway(n types.NatGateway) Resource {
	tags := tagMap(n.Tags)
	return Resource{
		Kind:   NatGateways,
		ID:     awsv2.ToString(n.NatGatewayId),
		Name:   nameOf(tags, nil),
		State:  string(n.State),
		VpcIDs: appendVpc(nil, n.VpcId),
		Tags:   tags,
	}
}

func fromSecurityGroup(g types.SecurityGroup) Resource {
	tags := tagMap(g.Tags)
	return Resource{
		Kind:   SecurityGroups,
		ID:     awsv2.ToString(g.GroupId),
		Name:   nameOf(tags, g.Description),
		VpcIDs: appendVpc(nil, g.VpcId),
		Tags:   tags,
	}
}

func fromVpnConnection(c types.VpnConnection) Resource {
	tags := tagMap(c.Tags)
	return Resource{
		Kind:    VpnConnections,
		ID:      awsv2.ToString(c.VpnConnectionId),
		Name:    nameOf(tags, nil),
		State:   string(c.State),
		Tags:    tags,
		Gateway: awsv2.ToString(c.VpnGatewayId),
	}
}

func fromVpnGateway(g types.VpnGateway) Resource {
	tags := tagMap(g.Tags)
	r := Resource{
		Kind:  VpnGateways,
		ID:    awsv2.ToString(g.VpnGatewayId),
		Name:  nameOf(tags, nil),
		State: string(g.State),
		Tags:  tags,
	}
	for _, a := range g.VpcAttachments {
		r.VpcIDs = appendVpc(r.VpcIDs, a.VpcId)
	}
	return r
}

func fromNetworkInterface(n types.NetworkInterface) Resource {
	tags := tagMap(n.TagSet)
	return Resource{
		Kind:   NetworkInterfaces,
		ID:     awsv2.ToString(n.NetworkInterfaceId),
		Name:   nameOf(tags, n.Description),
		State:  string(n.Status),
		VpcIDs: appendVpc(nil, n.VpcId),
		Tags:   tags,
	}
}
