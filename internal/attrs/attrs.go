// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package attrs

import (
	"fmt"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/apex/log"

	"github.com/staranto/aware/internal/config"
)

// Attr is one column of row output. Key is a gjson path into the row,
// e.g. name or tags.env.
type Attr struct {
	Key string
	// Include is false for attrs that only exist to be filtered or sorted on.
	Include bool
	// OutputKey names the value in json/yaml output and titles the text column.
	OutputKey string
	// TransformSpec holds the case (u, l), length (n, -n) and time (t)
	// transforms applied to string values.
	TransformSpec string
}

var lengthRegex = regexp.MustCompile(`-?\d+`)

// Transform applies the attr's TransformSpec to value. Non-string values
// pass through untouched.
func (a *Attr) Transform(value interface{}) interface{} {
	result, ok := value.(string)
	if !ok {
		return value
	}

	if strings.ContainsAny(a.TransformSpec, "tT") {
		result = a.localTime(result)
	}

	// The last case letter wins so an attr's own spec overrides a global one,
	// e.g. --attrs '*::U,name::l' lower cases name.
	lastL := strings.LastIndexAny(a.TransformSpec, "lL")
	lastU := strings.LastIndexAny(a.TransformSpec, "uU")

	if lastL > lastU {
		result = strings.ToLower(result)
	} else if lastU > lastL {
		result = strings.ToUpper(result)
	}

	// Same for lengths, the last one wins. A negative length elides the
	// middle of the value.
	if match := lengthRegex.FindAllString(a.TransformSpec, -1); len(match) != 0 {
		l, _ := strconv.Atoi(match[len(match)-1])
		abs := int(math.Abs(float64(l)))
		if len(result) > abs {
			if l < 0 {
				keep := max(abs/2-1, 0)
				result = result[:keep] + ".." + result[len(result)-keep:]
			} else {
				result = result[:l]
			}
		}
	}

	return result
}

// localTime converts an RFC3339 timestamp into the configured timezone, or
// TZ when none is configured. Without either the value is left alone.
func (a *Attr) localTime(value string) string {
	tz, _ := config.GetString("timezone", "")
	if tz == "" {
		tz = os.Getenv("TZ")
	}
	if tz == "" {
		return value
	}

	loc, err := time.LoadLocation(tz)
	if err != nil {
		log.Errorf("unknown timezone: %s", tz)
		return value
	}

	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		log.Debugf("not a timestamp: %s", value)
		return value
	}
	return t.In(loc).Format("2006-01-02T15:04:05MST")
}

type AttrList []Attr

// String renders the list in --attrs form.
func (a *AttrList) String() string {
	result := make([]string, 0, len(*a))
	for _, attr := range *a {
		result = append(result, fmt.Sprintf("%s:%s:%s", attr.Key, attr.OutputKey, attr.TransformSpec))
	}
	return strings.Join(result, ",")
}

// Set parses a comma separated list of key:outputKey:transform specs and
// merges them into the list. The output key defaults to the last segment of
// key. A leading ! hides the attr and a key of * carries a transform for
// every attr.
func (a *AttrList) Set(value string) error {
	if value == "" || value == "*" {
		return nil
	}

	const (
		keyIdx = iota
		outputIdx
		transformIdx
	)

specloop:
	for _, spec := range strings.Split(value, ",") {
		attr := Attr{Include: true}

		fields := strings.Split(spec, ":")

		attr.Key = strings.TrimSpace(fields[keyIdx])
		if strings.HasPrefix(attr.Key, "!") {
			attr.Include = false
			attr.Key = attr.Key[1:]
		}
		// Keys are row paths already, a leading . is tolerated.
		attr.Key = strings.TrimPrefix(attr.Key, ".")
		if attr.Key == "" {
			return fmt.Errorf("invalid attribute spec: %q", spec)
		}

		if attr.Key == "*" {
			attr.Include = false
		}

		switch {
		case len(fields) == 1:
			segments := strings.Split(attr.Key, ".")
			attr.OutputKey = segments[len(segments)-1]
		case strings.TrimSpace(fields[outputIdx]) != "":
			attr.OutputKey = strings.TrimSpace(fields[outputIdx])
		default:
			attr.OutputKey = attr.Key
		}

		if len(fields) > transformIdx {
			attr.TransformSpec = strings.TrimSpace(fields[transformIdx])
		}

		// An attr already in the list, one of the command defaults or a
		// repeat, is updated in place.
		for i := range *a {
			if (*a)[i].Key == attr.Key || (*a)[i].OutputKey == attr.Key {
				(*a)[i].Include = attr.Include
				(*a)[i].OutputKey = attr.OutputKey
				(*a)[i].TransformSpec = attr.TransformSpec
				continue specloop
			}
		}

		*a = append(*a, attr)
	}

	return nil
}

// SetGlobalTransformSpec prepends the transform of the first * attr to every
// attr in the list.
func (alist *AttrList) SetGlobalTransformSpec() error {
	spec := ""
	for a := range *alist {
		if (*alist)[a].Key == "*" {
			spec = (*alist)[a].TransformSpec
			break
		}
	}

	if spec == "" {
		return nil
	}

	for a := range *alist {
		(*alist)[a].TransformSpec = spec + "," + (*alist)[a].TransformSpec
	}

	return nil
}

// Included returns the output keys of the visible attrs, in order.
func (alist AttrList) Included() []string {
	keys := make([]string, 0, len(alist))
	for _, attr := range alist {
		if attr.Include {
			keys = append(keys, attr.OutputKey)
		}
	}
	return keys
}

func (a *AttrList) Type() string {
	return "list"
}
