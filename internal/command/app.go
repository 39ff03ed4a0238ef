// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT
package command

import (
	"context"
	"sort"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/aware/internal/config"
	"github.com/staranto/aware/internal/meta"
)

func InitApp(ctx context.Context, args []string) (*cli.Command, error) {
	// The arg[1] immediately following the binary (arg[0]) is the aware
	// subcommand and also represents the namespace key to be used when
	// retrieving config values. arg[1] could be -h/--help, so ignore it if it
	// appears to be a flag.
	if len(args) > 1 && !strings.HasPrefix(args[1], "-") {
		config.Config.Namespace = args[1]
	}

	meta := meta.Meta{
		Args:    args,
		Config:  config.Config,
		Context: ctx,
	}

	app := &cli.Command{
		Name:  "aware",
		Usage: "AWS resource explorer",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:        "version",
				Aliases:     []string{"v"},
				Usage:       "aware version info",
				HideDefault: true,
			},
		},
	}

	app.Commands = append(app.Commands,
		CfCommandBuilder(app, meta),
		Ec2CommandBuilder(app, meta),
		RegionsCommandBuilder(app, meta),
		CompletionCommandBuilder(app, meta),
	)

	// Make sure flags are sorted for the --help text.
	for _, cmd := range app.Commands {
		sort.Slice(cmd.Flags, func(i, j int) bool {
			return cmd.Flags[i].Names()[0] < cmd.Flags[j].Names()[0]
		})
	}

	return app, nil
}
