// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package vpc

import (
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// TagDescription is one tag on one resource as reported by DescribeTags.
type TagDescription struct {
	Key          string `json:"key"`
	Value        string `json:"value"`
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id"`
}

func fromTagDescription(t types.TagDescription) TagDescription {
	return TagDescription{
		Key:          awsv2.ToString(t.Key),
		Value:        awsv2.ToString(t.Value),
		ResourceType: string(t.ResourceType),
		ResourceID:   awsv2.ToString(t.ResourceId),
	}
}

// Inventory is everything collected for one region.
type Inventory struct {
	Region string
	Vpcs   []Resource
	Tags   []TagDescription

	byKind map[Kind][]Resource
}

// NewInventory returns an empty Inventory for region.
func NewInventory(region string) *Inventory {
	return &Inventory{
		Region: region,
		byKind: make(map[Kind][]Resource),
	}
}

// Add appends resources to the collection of kind.
func (inv *Inventory) Add(kind Kind, resources ...Resource) {
	if len(resources) == 0 {
		return
	}
	inv.byKind[kind] = append(inv.byKind[kind], resources...)
}

// VpcIDs returns the ids of the collected VPCs, in collection order.
func (inv *Inventory) VpcIDs() []string {
	ids := make([]string, 0, len(inv.Vpcs))
	for _, v := range inv.Vpcs {
		ids = append(ids, v.ID)
	}
	return ids
}

// Vpc returns the collected VPC with id.
func (inv *Inventory) Vpc(id string) (Resource, bool) {
	for _, v := range inv.Vpcs {
		if v.ID == id {
			return v, true
		}
	}
	return Resource{}, false
}

// All returns every collected resource of kind.
func (inv *Inventory) All(kind Kind) []Resource {
	return inv.byKind[kind]
}

// Resources returns the resources of kind associated with vpcID, in
// collection order.
func (inv *Inventory) Resources(vpcID string, kind Kind) []Resource {
	var out []Resource
	for _, r := range inv.byKind[kind] {
		if r.BelongsTo(vpcID) {
			out = append(out, r)
		}
	}
	return out
}

// Count returns the number of collected resources, VPCs included.
func (inv *Inventory) Count() int {
	n := len(inv.Vpcs)
	for _, rs := range inv.byKind {
		n += len(rs)
	}
	return n
}

// Empty reports whether nothing at all was collected.
func (inv *Inventory) Empty() bool {
	return inv.Count() == 0 && len(inv.Tags) == 0
}

// associate ties VPN connections to the VPCs their VPN gateway is attached
// to. A connection whose gateway was not collected stays unassociated.
func (inv *Inventory) associate() {
	attached := make(map[string][]string)
	for _, g := range inv.byKind[VpnGateways] {
		attached[g.ID] = g.VpcIDs
	}

	conns := inv.byKind[VpnConnections]
	for i := range conns {
		for _, id := range attached[conns[i].Gateway] {
			conns[i].VpcIDs = appendVpc(conns[i].VpcIDs, &id)
		}
	}
}
