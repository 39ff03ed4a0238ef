// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	md2man "github.com/cpuguy83/go-md2man/v2/md2man"
	"github.com/urfave/cli/v3"

	"github.com/staranto/aware/internal/command"
)

// Doc generator. For every aware subcommand it writes:
//   - docs/commands/aware-<cmd>.md built from the command's own help
//   - docs/man/share/man1/aware-<cmd>.1 via md2man
//   - docs/tldr/aware-<cmd>.md from the short description and examples

type example struct {
	Desc string
	Cmd  string
}

var examples = map[string][]example{
	"ec2": {
		{"List every VPC and its resources in one region", "aware ec2 -r {{us-east-1}}"},
		{"List only resources tagged env=prod", "aware ec2 --tag {{env=prod}}"},
		{"Group the matching tags by key and value", "aware ec2 --tag {{env}} --group-by tag"},
		{"Show one VPC as a table with titles", "aware ec2 --vpc {{vpc-0abc}} -o text -t"},
		{"Page the tree for every enabled region", "aware ec2 --browse"},
	},
	"cf": {
		{"List the stacks of one region with their resources", "aware cf -r {{us-west-2}}"},
		{"Show a single stack as JSON", "aware cf --stack {{my-stack}} -o json"},
		{"List only resources that failed", "aware cf -o text -f {{status^UPDATE_FAILED}}"},
	},
	"regions": {
		{"List the regions enabled for the account", "aware regions"},
		{"Include regions that need opting into", "aware regions --all -o text -t"},
	},
	"completion": {
		{"Generate the bash completion script", "aware completion bash"},
		{"Generate the zsh completion script", "aware completion zsh"},
	},
}

func main() {
	var (
		repoRoot           string
		writeOnlyIfChanged bool
	)

	flag.StringVar(&repoRoot, "root", ".", "repo root (default current dir)")
	flag.BoolVar(&writeOnlyIfChanged, "only-if-changed", true, "only write files if content changed")
	flag.Parse()

	commandsDir := filepath.Join(repoRoot, "docs", "commands")
	manOutDir := filepath.Join(repoRoot, "docs", "man", "share", "man1")
	tldrOutDir := filepath.Join(repoRoot, "docs", "tldr")

	for _, dir := range []string{commandsDir, manOutDir, tldrOutDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fatalf("creating %s: %v", dir, err)
		}
	}

	app, err := command.InitApp(context.Background(), []string{"aware"})
	if err != nil {
		fatalf("building app: %v", err)
	}

	for _, cmd := range app.Commands {
		name := "aware-" + cmd.Name
		exs := examples[cmd.Name]

		md := buildMarkdown(cmd, exs)
		if err := writeFileIfChanged(filepath.Join(commandsDir, name+".md"), []byte(md), writeOnlyIfChanged); err != nil {
			fatalf("writing markdown for %s: %v", cmd.Name, err)
		}

		man := md2man.Render([]byte(md))
		if err := writeFileIfChanged(filepath.Join(manOutDir, name+".1"), man, writeOnlyIfChanged); err != nil {
			fatalf("writing man page for %s: %v", cmd.Name, err)
		}

		tldr := buildTLDR(cmd.Name, cmd.Usage, exs)
		if err := writeFileIfChanged(filepath.Join(tldrOutDir, name+".md"), []byte(tldr), writeOnlyIfChanged); err != nil {
			fatalf("writing TLDR for %s: %v", cmd.Name, err)
		}
	}
}

func fatalf(f string, a ...any) {
	fmt.Fprintf(os.Stderr, f+"\n", a...)
	os.Exit(1)
}

func writeFileIfChanged(path string, new []byte, onlyIfChanged bool) error {
	if !onlyIfChanged {
		return os.WriteFile(path, new, 0o644)
	}
	old, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return os.WriteFile(path, new, 0o644)
		}
		return err
	}
	if bytes.Equal(bytes.TrimSpace(old), bytes.TrimSpace(new)) {
		return nil
	}
	return os.WriteFile(path, new, 0o644)
}

// buildMarkdown renders a man page style document from the command's name,
// usage, description and flags.
func buildMarkdown(cmd *cli.Command, exs []example) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# aware-%s 1\n\n", cmd.Name)

	b.WriteString("## NAME\n\n")
	fmt.Fprintf(&b, "aware-%s - %s\n\n", cmd.Name, cmd.Usage)

	b.WriteString("## SYNOPSIS\n\n")
	usage := cmd.UsageText
	if usage == "" {
		usage = "aware " + cmd.Name + " [options]"
	}
	fmt.Fprintf(&b, "`%s`\n\n", usage)

	if desc := strings.TrimSpace(cmd.Description); desc != "" {
		b.WriteString("## DESCRIPTION\n\n")
		b.WriteString(desc)
		b.WriteString("\n\n")
	}

	var visible []cli.Flag
	for _, f := range cmd.Flags {
		if vf, ok := f.(cli.VisibleFlag); ok && !vf.IsVisible() {
			continue
		}
		visible = append(visible, f)
	}
	if len(visible) > 0 {
		b.WriteString("## OPTIONS\n\n")
		for _, f := range visible {
			fmt.Fprintf(&b, "%s\n", flagNames(f))
			if df, ok := f.(cli.DocGenerationFlag); ok && df.GetUsage() != "" {
				fmt.Fprintf(&b, ": %s\n", df.GetUsage())
			}
			b.WriteString("\n")
		}
	}

	if len(exs) > 0 {
		b.WriteString("## EXAMPLES\n\n")
		for _, ex := range exs {
			fmt.Fprintf(&b, "%s:\n\n    %s\n\n", ex.Desc, placeholders(ex.Cmd))
		}
	}

	return b.String()
}

// flagNames renders "**--name**, **-n**".
func flagNames(f cli.Flag) string {
	names := f.Names()
	parts := make([]string, 0, len(names))
	for _, n := range names {
		prefix := "--"
		if len(n) == 1 {
			prefix = "-"
		}
		parts = append(parts, "**"+prefix+n+"**")
	}
	return strings.Join(parts, ", ")
}

// placeholders strips the tldr {{...}} markers for the man page.
func placeholders(s string) string {
	return strings.NewReplacer("{{", "", "}}", "").Replace(s)
}

func buildTLDR(cmd, short string, exs []example) string {
	var b strings.Builder
	b.WriteString("# aware " + cmd + "\n\n")
	if short != "" {
		b.WriteString("> " + strings.ToUpper(short[:1]) + short[1:] + ".\n")
	} else {
		b.WriteString("> aware " + cmd + "\n")
	}
	b.WriteString("> More information: https://github.com/staranto/aware.\n\n")

	if len(exs) == 0 {
		b.WriteString("- Show help for the command:\n\n")
		b.WriteString("`aware " + cmd + " --help`\n")
		return b.String()
	}

	for i, ex := range exs {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString("- " + strings.TrimSpace(ex.Desc) + ":\n\n")
		b.WriteString("`" + sanitizeCommand(ex.Cmd) + "`\n")
	}
	return b.String()
}

func sanitizeCommand(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
