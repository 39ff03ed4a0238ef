// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package vpc

import (
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTag(t *testing.T) {
	tests := []struct {
		in      string
		want    Tag
		wantErr bool
	}{
		{"env=prod", Tag{Key: "env", Value: "prod"}, false},
		{"env", Tag{Key: "env"}, false},
		{"env=", Tag{Key: "env"}, false},
		{" env = prod ", Tag{Key: "env", Value: "prod"}, false},
		{"url=https://x?a=b", Tag{Key: "url", Value: "https://x?a=b"}, false},
		{"=prod", Tag{}, true},
		{"", Tag{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTag(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseTags(t *testing.T) {
	tags, err := ParseTags([]string{"a=1", "b"})
	require.NoError(t, err)
	assert.Equal(t, []Tag{{Key: "a", Value: "1"}, {Key: "b"}}, tags)

	_, err = ParseTags([]string{"a=1", "=2"})
	assert.Error(t, err)
}

func TestTag_String(t *testing.T) {
	assert.Equal(t, "env=prod", Tag{Key: "env", Value: "prod"}.String())
	assert.Equal(t, "env", Tag{Key: "env"}.String())
}

func filterPairs(filters []types.Filter) [][]string {
	var out [][]string
	for _, f := range filters {
		out = append(out, append([]string{awsv2.ToString(f.Name)}, f.Values...))
	}
	return out
}

func TestScope_Filters(t *testing.T) {
	tests := []struct {
		name   string
		scope  Scope
		filter string
		want   [][]string
	}{
		{
			name:   "empty",
			filter: "vpc-id",
		},
		{
			name:   "vpcs",
			scope:  Scope{VpcIDs: []string{"vpc-1", "vpc-2"}},
			filter: "vpc-id",
			want:   [][]string{{"vpc-id", "vpc-1", "vpc-2"}},
		},
		{
			name:   "vpcs without filter name",
			scope:  Scope{VpcIDs: []string{"vpc-1"}},
			filter: "",
		},
		{
			name:   "tags",
			scope:  Scope{Tags: []Tag{{Key: "env", Value: "prod"}, {Key: "team"}}},
			filter: "vpc-id",
			want:   [][]string{{"tag:env", "prod"}, {"tag-key", "team"}},
		},
		{
			name:   "vpc first then tags",
			scope:  Scope{VpcIDs: []string{"vpc-1"}, Tags: []Tag{{Key: "env", Value: "prod"}}},
			filter: "attachment.vpc-id",
			want:   [][]string{{"attachment.vpc-id", "vpc-1"}, {"tag:env", "prod"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, filterPairs(tt.scope.Filters(tt.filter)))
		})
	}
}

func TestScope_FiltersCopiesValues(t *testing.T) {
	s := Scope{VpcIDs: []string{"vpc-1"}}
	f := s.Filters("vpc-id")
	f[0].Values[0] = "changed"
	assert.Equal(t, "vpc-1", s.VpcIDs[0])
}

func TestTag_TagFilters(t *testing.T) {
	assert.Equal(t, [][]string{{"key", "env"}}, filterPairs(Tag{Key: "env"}.TagFilters()))
	assert.Equal(t, [][]string{{"key", "env"}, {"value", "prod"}},
		filterPairs(Tag{Key: "env", Value: "prod"}.TagFilters()))
}
