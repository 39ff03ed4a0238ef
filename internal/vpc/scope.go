// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package vpc

import (
	"fmt"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// Tag is a tag selector. An empty Value matches any resource that has Key.
type Tag struct {
	Key   string
	Value string
}

func (t Tag) String() string {
	if t.Value == "" {
		return t.Key
	}
	return t.Key + "=" + t.Value
}

// ParseTag parses "key=value" or a bare "key".
func ParseTag(spec string) (Tag, error) {
	key, value, _ := strings.Cut(spec, "=")
	key = strings.TrimSpace(key)
	if key == "" {
		return Tag{}, fmt.Errorf("invalid tag %q: empty key", spec)
	}
	return Tag{Key: key, Value: strings.TrimSpace(value)}, nil
}

// ParseTags parses each of specs with ParseTag.
func ParseTags(specs []string) ([]Tag, error) {
	tags := make([]Tag, 0, len(specs))
	for _, s := range specs {
		t, err := ParseTag(s)
		if err != nil {
			return nil, err
		}
		tags = append(tags, t)
	}
	return tags, nil
}

// Scope is the caller's selection: which VPCs and which tags.
type Scope struct {
	VpcIDs []string
	Tags   []Tag
}

// Filters builds the EC2 filter list for one describe call. The VPC filter
// is only emitted when both name and VpcIDs are non-empty. Every tag adds its
// own filter; EC2 ANDs separate filters together.
func (s Scope) Filters(name string) []types.Filter {
	var filters []types.Filter

	if name != "" && len(s.VpcIDs) > 0 {
		filters = append(filters, filter(name, s.VpcIDs...))
	}

	for _, t := range s.Tags {
		if t.Value == "" {
			filters = append(filters, filter("tag-key", t.Key))
			continue
		}
		filters = append(filters, filter("tag:"+t.Key, t.Value))
	}

	return filters
}

// TagFilters builds DescribeTags filters for a single selector.
func (t Tag) TagFilters() []types.Filter {
	filters := []types.Filter{filter("key", t.Key)}
	if t.Value != "" {
		filters = append(filters, filter("value", t.Value))
	}
	return filters
}

func filter(name string, values ...string) types.Filter {
	v := make([]string, len(values))
	copy(v, values)
	return types.Filter{
		Name:   awsv2.String(name),
		Values: v,
	}
}
