// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package filters

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/staranto/aware/internal/attrs"
)

func TestBuildFilters(t *testing.T) {
	tests := []struct {
		name      string
		spec      string
		delimiter string
		want      []Filter
	}{
		{
			name: "empty spec",
			spec: "",
		},
		{
			name: "exact match",
			spec: "kind=subnets",
			want: []Filter{{Key: "kind", Operand: "=", Target: "subnets"}},
		},
		{
			name: "negated prefix",
			spec: "id!^sg-",
			want: []Filter{{Key: "id", Operand: "^", Target: "sg-", Negate: true}},
		},
		{
			name: "multiple filters",
			spec: "kind=instances,state=running",
			want: []Filter{
				{Key: "kind", Operand: "=", Target: "instances"},
				{Key: "state", Operand: "=", Target: "running"},
			},
		},
		{
			name: "regex target keeps operand characters",
			spec: "name/^web-\\d+$",
			want: []Filter{{Key: "name", Operand: "/", Target: "^web-\\d+$"}},
		},
		{
			name: "invalid expressions skipped",
			spec: "kind=vpcs,bogus,=orphan,state=available",
			want: []Filter{
				{Key: "kind", Operand: "=", Target: "vpcs"},
				{Key: "state", Operand: "=", Target: "available"},
			},
		},
		{
			name:      "custom delimiter",
			spec:      "name@a,b|kind=subnets",
			delimiter: "|",
			want: []Filter{
				{Key: "name", Operand: "@", Target: "a,b"},
				{Key: "kind", Operand: "=", Target: "subnets"},
			},
		},
		{
			name: "dotted key",
			spec: "tags.env=prod",
			want: []Filter{{Key: "tags.env", Operand: "=", Target: "prod"}},
		},
		{
			name: "empty target",
			spec: "name=",
			want: []Filter{{Key: "name", Operand: "=", Target: ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.delimiter != "" {
				t.Setenv(DelimEnv, tt.delimiter)
			}
			got := BuildFilters(tt.spec)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilter_String(t *testing.T) {
	assert.Equal(t, "id!^sg-", Filter{Key: "id", Operand: "^", Target: "sg-", Negate: true}.String())
	assert.Equal(t, "kind=vpcs", Filter{Key: "kind", Operand: "=", Target: "vpcs"}.String())
}

func TestCheckStringOperand(t *testing.T) {
	tests := []struct {
		name   string
		value  string
		filter Filter
		want   bool
	}{
		{"exact", "running", Filter{Operand: "=", Target: "running"}, true},
		{"exact miss", "running", Filter{Operand: "=", Target: "stopped"}, false},
		{"negated exact", "running", Filter{Operand: "=", Target: "stopped", Negate: true}, true},
		{"prefix", "subnet-0abc", Filter{Operand: "^", Target: "subnet-"}, true},
		{"prefix miss", "sg-0abc", Filter{Operand: "^", Target: "subnet-"}, false},
		{"fold", "AVAILABLE", Filter{Operand: "~", Target: "available"}, true},
		{"fold is not contains", "unavailable", Filter{Operand: "~", Target: "available"}, false},
		{"contains", "web-tier-sg", Filter{Operand: "@", Target: "tier"}, true},
		{"negated contains", "db-sg", Filter{Operand: "@", Target: "tier", Negate: true}, true},
		{"regex", "i-0123456789abcdef0", Filter{Operand: "/", Target: `^i-[0-9a-f]{17}$`}, true},
		{"negated regex", "vpc-1", Filter{Operand: "/", Target: `^i-`, Negate: true}, true},
		{"greater", "us-west-2", Filter{Operand: ">", Target: "us-east-1"}, true},
		{"less", "eu-west-1", Filter{Operand: "<", Target: "us-east-1"}, true},
		{"invalid regex", "x", Filter{Operand: "/", Target: "[bad"}, false},
		{"unsupported operand", "x", Filter{Operand: "?", Target: "x"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkStringOperand(tt.value, tt.filter))
		})
	}
}

func TestCheckNumericOperand(t *testing.T) {
	tests := []struct {
		name   string
		value  float64
		filter Filter
		want   bool
	}{
		{"equal", 3, Filter{Operand: "=", Target: "3"}, true},
		{"negated equal", 3, Filter{Operand: "=", Target: "3", Negate: true}, false},
		{"greater", 10, Filter{Operand: ">", Target: "2"}, true},
		{"less", 1.5, Filter{Operand: "<", Target: "2"}, true},
		{"padded target", 4, Filter{Operand: "=", Target: " 4 "}, true},
		{"invalid target", 4, Filter{Operand: "=", Target: "four"}, false},
		{"unsupported operand", 4, Filter{Operand: "^", Target: "4"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkNumericOperand(tt.value, tt.filter))
		})
	}
}

func TestCheckContainsOperand(t *testing.T) {
	tests := []struct {
		name   string
		value  interface{}
		filter Filter
		want   bool
	}{
		{"list member", []any{"vpc-1", "vpc-2"}, Filter{Operand: "@", Target: "vpc-2"}, true},
		{"list non member", []any{"vpc-1"}, Filter{Operand: "@", Target: "vpc-2"}, false},
		{"negated list", []any{"vpc-1"}, Filter{Operand: "@", Target: "vpc-2", Negate: true}, true},
		{"list of numbers", []any{1.0, 2.0}, Filter{Operand: "@", Target: "2"}, true},
		{"map key", map[string]any{"env": "prod"}, Filter{Operand: "@", Target: "env"}, true},
		{"negated map key", map[string]any{"env": "prod"}, Filter{Operand: "@", Target: "env", Negate: true}, false},
		{"wrong operand", []any{"a"}, Filter{Operand: "=", Target: "a"}, false},
		{"unsupported type", 42, Filter{Operand: "@", Target: "4"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkContainsOperand(tt.value, tt.filter))
		})
	}
}

const rows = `[
  {"region":"us-east-1","vpc":"vpc-1","kind":"vpcs","id":"vpc-1","name":"main","state":"available","tags":{"Name":"main","env":"prod"}},
  {"region":"us-east-1","vpc":"vpc-1","kind":"subnets","id":"subnet-1","name":"public-a","state":"available","tags":{"env":"prod"}},
  {"region":"us-east-1","vpc":"vpc-1","kind":"instances","id":"i-1","name":"web","state":"running","cpus":2},
  {"region":"us-east-1","vpc":"vpc-1","kind":"instances","id":"i-2","name":"batch","state":"stopped","cpus":8}
]`

func attrList(t *testing.T, spec string) attrs.AttrList {
	t.Helper()
	var al attrs.AttrList
	require.NoError(t, al.Set(spec))
	return al
}

func ids(results []map[string]interface{}) []string {
	out := make([]string, 0, len(results))
	for _, r := range results {
		out = append(out, r["id"].(string))
	}
	return out
}

func TestFilterDataset(t *testing.T) {
	candidates := gjson.Parse(rows)
	al := attrList(t, "id,kind,name,state,cpus")

	tests := []struct {
		name string
		spec string
		want []string
	}{
		{"no filter", "", []string{"vpc-1", "subnet-1", "i-1", "i-2"}},
		{"by kind", "kind=instances", []string{"i-1", "i-2"}},
		{"and of filters", "kind=instances,state=running", []string{"i-1"}},
		{"numeric", "cpus>4", []string{"i-2"}},
		{"negated prefix", "id!^i-", []string{"vpc-1", "subnet-1"}},
		{"tag path outside attrs", "tags.env=prod", []string{"vpc-1", "subnet-1"}},
		{"map contains", "tags@Name", []string{"vpc-1"}},
		{"missing value fails", "cpus=2", []string{"i-1"}},
		{"missing value passes negation", "cpus!=2", []string{"vpc-1", "subnet-1", "i-2"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterDataset(candidates, al, tt.spec)
			assert.Equal(t, tt.want, ids(got))
		})
	}
}

func TestFilterDataset_Projection(t *testing.T) {
	al := attrList(t, "id,name:label,!state,tags.env")
	got := FilterDataset(gjson.Parse(rows), al, "state=stopped")

	require.Len(t, got, 1)
	assert.Equal(t, map[string]interface{}{
		"id":    "i-2",
		"label": "batch",
		"state": "stopped",
		"env":   nil,
	}, got[0])
}

func TestFilterDataset_OutputKeyResolves(t *testing.T) {
	// Filters address attributes by their output key.
	al := attrList(t, "id,name:label")
	got := FilterDataset(gjson.Parse(rows), al, "label^pub")
	assert.Equal(t, []string{"subnet-1"}, ids(got))
}

func TestFilterDataset_Empty(t *testing.T) {
	got := FilterDataset(gjson.Parse(`[]`), attrList(t, "id"), "kind=vpcs")
	assert.Empty(t, got)
}
