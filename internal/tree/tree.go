// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package tree

import (
	"maps"
	"slices"

	"github.com/staranto/aware/internal/stack"
	"github.com/staranto/aware/internal/vpc"
)

// Node is one line of the presentation tree and everything below it.
type Node struct {
	Title    string  `json:"title"`
	Children []*Node `json:"children,omitempty"`
}

// New returns a node titled title with children.
func New(title string, children ...*Node) *Node {
	return &Node{Title: title, Children: children}
}

// Leaves returns a leaf node for every title.
func Leaves(titles ...string) []*Node {
	nodes := make([]*Node, 0, len(titles))
	for _, t := range titles {
		nodes = append(nodes, New(t))
	}
	return nodes
}

// Add appends children and returns n.
func (n *Node) Add(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// Leaf reports whether n has no children.
func (n *Node) Leaf() bool {
	return len(n.Children) == 0
}

// Size returns the number of nodes in the tree rooted at n.
func (n *Node) Size() int {
	size := 1
	for _, c := range n.Children {
		size += c.Size()
	}
	return size
}

// Region wraps children in the per-region root.
func Region(name string, children []*Node) *Node {
	return New("AWS Region "+name, children...)
}

// Vpcs builds one node per VPC with a group per non-empty kind, in display
// order.
func Vpcs(inv *vpc.Inventory) []*Node {
	nodes := make([]*Node, 0, len(inv.Vpcs))
	for _, v := range inv.Vpcs {
		node := New(v.Label())
		for _, kind := range vpc.Kinds {
			resources := inv.Resources(v.ID, kind)
			if len(resources) == 0 {
				continue
			}
			group := New(kind.String())
			for _, r := range resources {
				group.Add(New(r.Label()))
			}
			node.Add(group)
		}
		nodes = append(nodes, node)
	}
	return nodes
}

// Tags builds the tag grouping: key, value, resource type and then the
// resource ids, every level sorted.
func Tags(inv *vpc.Inventory) []*Node {
	grouped := make(map[string]map[string]map[string][]string)
	for _, t := range inv.Tags {
		if grouped[t.Key] == nil {
			grouped[t.Key] = make(map[string]map[string][]string)
		}
		if grouped[t.Key][t.Value] == nil {
			grouped[t.Key][t.Value] = make(map[string][]string)
		}
		grouped[t.Key][t.Value][t.ResourceType] = append(grouped[t.Key][t.Value][t.ResourceType], t.ResourceID)
	}

	root := New("Tags")
	for _, key := range sortedKeys(grouped) {
		keyNode := New(key)
		for _, value := range sortedKeys(grouped[key]) {
			valueNode := New(value)
			for _, typ := range sortedKeys(grouped[key][value]) {
				ids := slices.Clone(grouped[key][value][typ])
				slices.Sort(ids)
				valueNode.Add(New(typ, Leaves(ids...)...))
			}
			keyNode.Add(valueNode)
		}
		root.Add(keyNode)
	}
	return []*Node{root}
}

// Stacks builds one node per stack, each resource carrying its type and
// physical id as a single leaf.
func Stacks(inv *stack.Inventory) []*Node {
	nodes := make([]*Node, 0, len(inv.Stacks))
	for _, s := range inv.Stacks {
		node := New(s.Label())
		for _, r := range s.Resources {
			node.Add(New(r.Label(), New(r.Detail())))
		}
		nodes = append(nodes, node)
	}
	return nodes
}

func sortedKeys[V any](m map[string]V) []string {
	return slices.Sorted(maps.Keys(m))
}
