// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package meta

import (
	"context"

	"github.com/staranto/aware/internal/config"
)

// Meta are the meta-options that are available on all or most commands.
type Meta struct {
	Args    []string
	Config  config.Type
	Context context.Context
}

// Command returns the subcommand name, or "" when args hold none.
func (m Meta) Command() string {
	if len(m.Args) < 2 {
		return ""
	}
	return m.Args[1]
}
