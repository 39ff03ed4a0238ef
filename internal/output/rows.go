// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"time"

	"github.com/dustin/go-humanize"

	awsx "github.com/staranto/aware/internal/aws"
	"github.com/staranto/aware/internal/stack"
	"github.com/staranto/aware/internal/vpc"
)

// ResourceRow is one EC2 resource under one VPC. A resource associated with
// two VPCs, such as a peering connection, yields a row for each.
type ResourceRow struct {
	Region string            `json:"region"`
	Vpc    string            `json:"vpc"`
	Kind   string            `json:"kind"`
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	State  string            `json:"state"`
	Tags   map[string]string `json:"tags,omitempty"`
}

// ResourceRows flattens inv VPC by VPC. Each VPC contributes its own row
// first, then its resources in display order.
func ResourceRows(inv *vpc.Inventory) []ResourceRow {
	var rows []ResourceRow
	for _, v := range inv.Vpcs {
		rows = append(rows, resourceRow(inv.Region, v.ID, v))
		for _, kind := range vpc.Kinds {
			for _, r := range inv.Resources(v.ID, kind) {
				rows = append(rows, resourceRow(inv.Region, v.ID, r))
			}
		}
	}
	return rows
}

func resourceRow(region, vpcID string, r vpc.Resource) ResourceRow {
	return ResourceRow{
		Region: region,
		Vpc:    vpcID,
		Kind:   r.Kind.Key(),
		ID:     r.ID,
		Name:   r.Name,
		State:  r.State,
		Tags:   r.Tags,
	}
}

// TagRow is one tag on one resource.
type TagRow struct {
	Region       string `json:"region"`
	Key          string `json:"key"`
	Value        string `json:"value"`
	ResourceType string `json:"resource_type"`
	ResourceID   string `json:"resource_id"`
}

func TagRows(inv *vpc.Inventory) []TagRow {
	rows := make([]TagRow, 0, len(inv.Tags))
	for _, t := range inv.Tags {
		rows = append(rows, TagRow{
			Region:       inv.Region,
			Key:          t.Key,
			Value:        t.Value,
			ResourceType: t.ResourceType,
			ResourceID:   t.ResourceID,
		})
	}
	return rows
}

// StackRow is one resource of one stack. A stack without resources still
// gets a row with the resource fields empty.
type StackRow struct {
	Region      string `json:"region"`
	Stack       string `json:"stack"`
	StackID     string `json:"stack_id"`
	StackStatus string `json:"stack_status"`
	Created     string `json:"created,omitempty"`
	Updated     string `json:"updated,omitempty"`
	Age         string `json:"age,omitempty"`
	LogicalID   string `json:"logical_id"`
	PhysicalID  string `json:"physical_id"`
	Type        string `json:"type"`
	Status      string `json:"status"`
}

func StackRows(inv *stack.Inventory) []StackRow {
	var rows []StackRow
	for _, s := range inv.Stacks {
		base := StackRow{
			Region:      inv.Region,
			Stack:       s.Name,
			StackID:     s.ID,
			StackStatus: s.Status,
			Created:     timestamp(s.Created),
			Updated:     timestamp(s.LastUpdated),
		}
		if !s.Created.IsZero() {
			base.Age = humanize.Time(s.Created)
		}

		if len(s.Resources) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, r := range s.Resources {
			row := base
			row.LogicalID = r.LogicalID
			row.PhysicalID = r.PhysicalID
			row.Type = r.Type
			row.Status = r.Status
			rows = append(rows, row)
		}
	}
	return rows
}

// RegionRow is one region as listed by the regions command.
type RegionRow struct {
	Region   string `json:"region"`
	Endpoint string `json:"endpoint"`
	OptIn    string `json:"opt_in"`
}

func RegionRows(regions []awsx.Region) []RegionRow {
	rows := make([]RegionRow, 0, len(regions))
	for _, r := range regions {
		rows = append(rows, RegionRow{Region: r.Name, Endpoint: r.Endpoint, OptIn: r.OptIn})
	}
	return rows
}

func timestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339)
}
