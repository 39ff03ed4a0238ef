// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package stack

import (
	"fmt"
	"slices"
	"time"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation/types"
)

const (
	noType = "no type"
	noID   = "no id"
)

// Stack is a CloudFormation stack and the resources it manages.
type Stack struct {
	Name        string
	ID          string
	Status      string
	Created     time.Time
	LastUpdated time.Time
	Tags        map[string]string
	Resources   []Resource
}

// Label is "name (STATUS)", or just the name when the status is unknown.
func (s Stack) Label() string {
	return label(s.Name, s.Status)
}

// Matches reports whether the stack is named by one of names, either by
// stack name or by stack id.
func (s Stack) Matches(names []string) bool {
	return slices.Contains(names, s.Name) || slices.Contains(names, s.ID)
}

// Resource is one entry of ListStackResources.
type Resource struct {
	LogicalID   string
	PhysicalID  string
	Type        string
	Status      string
	LastUpdated time.Time
}

// Label is "LogicalId (STATUS)".
func (r Resource) Label() string {
	return label(r.LogicalID, r.Status)
}

// Detail is the single leaf shown under a resource: "Type: PhysicalId", with
// the type padded to 40 columns so the ids line up.
func (r Resource) Detail() string {
	typ, id := r.Type, r.PhysicalID
	if typ == "" {
		typ = noType
	}
	if id == "" {
		id = noID
	}
	return fmt.Sprintf("%-40s: %s", typ, id)
}

func label(name, status string) string {
	if status == "" {
		return name
	}
	return fmt.Sprintf("%s (%s)", name, status)
}

func fromStack(s types.Stack) Stack {
	st := Stack{
		Name:        awsv2.ToString(s.StackName),
		ID:          awsv2.ToString(s.StackId),
		Status:      string(s.StackStatus),
		Created:     awsv2.ToTime(s.CreationTime),
		LastUpdated: awsv2.ToTime(s.LastUpdatedTime),
	}
	if len(s.Tags) > 0 {
		st.Tags = make(map[string]string, len(s.Tags))
		for _, t := range s.Tags {
			st.Tags[awsv2.ToString(t.Key)] = awsv2.ToString(t.Value)
		}
	}
	return st
}

func fromSummary(s types.StackResourceSummary) Resource {
	return Resource{
		LogicalID:   awsv2.ToString(s.LogicalResourceId),
		PhysicalID:  awsv2.ToString(s.PhysicalResourceId),
		Type:        awsv2.ToString(s.ResourceType),
		Status:      string(s.ResourceStatus),
		LastUpdated: awsv2.ToTime(s.LastUpdatedTimestamp),
	}
}
