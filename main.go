// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"

	"github.com/apex/log"

	"github.com/staranto/aware/internal/command"
	"github.com/staranto/aware/internal/config"
	mylog "github.com/staranto/aware/internal/log"
	"github.com/staranto/aware/internal/version"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	mylog.InitLogger()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	args := os.Args

	if len(args) < 2 {
		fmt.Fprintln(os.Stderr, "No command specified.")
		args = append(args, "--help")
	} else {
		args = mangleArguments(args)
	}

	// Short-circuit --version/-v.
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return 0
		}
	}

	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if err := app.Run(ctx, args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 2
	}

	return 0
}

// mangleArguments expands an @set argument into the arguments stored under
// <command>.<set> in the config file. Without an @set, @defaults is implied.
// The expansion takes the place of the @set, so later arguments override it.
func mangleArguments(args []string) []string {
	// Nothing to do for top level flags such as --version.
	if len(args) < 2 || strings.HasPrefix(args[1], "-") {
		return args
	}

	// We know the first two args are going to be the executable and command.
	preamble := make([]string, 2, len(args)+8)
	copy(preamble, args[:2])

	// Short-circuit for --help/-h. If help is requested, just keep the preamble
	// and add --help flag.
	for _, a := range args[2:] {
		if a == "--help" || a == "-h" {
			return append(preamble, "--help")
		}
	}

	set, explicit := "defaults", false
	idx := 0
	var rest []string
	for _, a := range args[2:] {
		if !explicit && strings.HasPrefix(a, "@") && len(a) > 1 {
			set, explicit = a[1:], true
			idx = len(rest)
			continue
		}
		rest = append(rest, a)
	}

	setArgs, err := config.GetStringSlice(args[1] + "." + set)
	if err != nil && explicit {
		log.Warnf("argument set @%s not found for %s", set, args[1])
	}

	mangled := append(preamble, rest[:idx]...)
	mangled = append(mangled, setArgs...)
	mangled = append(mangled, rest[idx:]...)

	log.Debugf("set=%s, args=%v", set, mangled)
	return mangled
}
