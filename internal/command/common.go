// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"reflect"
	"slices"
	"strings"

	"github.com/apex/log"
	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cloudformation"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"

	"github.com/staranto/aware/internal/attrs"
	awsx "github.com/staranto/aware/internal/aws"
	"github.com/staranto/aware/internal/browse"
	"github.com/staranto/aware/internal/meta"
	"github.com/staranto/aware/internal/output"
	"github.com/staranto/aware/internal/progress"
	"github.com/staranto/aware/internal/tree"
)

// fallbackRegion is used for account level calls, such as listing regions,
// when neither the flags nor the AWS environment name a region.
const fallbackRegion = "us-east-1"

// ShortCircuitTLDR checks the --tldr flag and, if present and available,
// runs `tldr aware <subcmd>` and returns true so the caller can exit early.
func ShortCircuitTLDR(ctx context.Context, cmd *cli.Command, subcmd string) bool {
	if cmd.Bool("tldr") {
		if _, err := exec.LookPath("tldr"); err == nil {
			c := exec.CommandContext(ctx, "tldr", "aware", subcmd)
			c.Stdout = os.Stdout
			c.Stderr = os.Stderr
			_ = c.Run()
		}
		return true
	}
	return false
}

// DumpSchemaIfRequested prints the attribute names of the row type t when
// --schema is set, and returns true if it handled the request.
func DumpSchemaIfRequested(cmd *cli.Command, t reflect.Type) bool {
	if cmd.Bool("schema") {
		output.DumpSchema(writer(cmd), t)
		return true
	}
	return false
}

// BuildAttrs constructs an AttrList with defaults and optional extras from
// --attrs, then applies the global transform spec.
func BuildAttrs(cmd *cli.Command, defaults ...string) (attrs.AttrList, error) {
	var al attrs.AttrList
	for _, d := range defaults {
		if err := al.Set(d); err != nil {
			return nil, err
		}
	}
	if extras := cmd.String("attrs"); extras != "" {
		if err := al.Set(extras); err != nil {
			return nil, fmt.Errorf("--attrs: %w", err)
		}
	}
	//nolint:errcheck
	al.SetGlobalTransformSpec()
	return al, nil
}

// GetMeta returns the meta.Meta stored in the command's Metadata. If missing
// or of an unexpected type, it returns the zero value.
func GetMeta(cmd *cli.Command) meta.Meta {
	if cmd == nil || cmd.Metadata == nil {
		return meta.Meta{}
	}
	if m, ok := cmd.Metadata["meta"].(meta.Meta); ok {
		return m
	}
	return meta.Meta{}
}

// writer is where results go, the root command's Writer when set.
func writer(cmd *cli.Command) io.Writer {
	if root := cmd.Root(); root != nil && root.Writer != nil {
		return root.Writer
	}
	return os.Stdout
}

// Clients hands out service clients per region.
type Clients interface {
	EC2(region string) awsx.EC2API
	CloudFormation(region string) awsx.CloudFormationAPI
}

type sdkClients struct {
	cfg awsv2.Config
}

func (c sdkClients) region(region string) string {
	switch {
	case region != "":
		return region
	case c.cfg.Region != "":
		return c.cfg.Region
	}
	return fallbackRegion
}

func (c sdkClients) EC2(region string) awsx.EC2API {
	return awsx.NewEC2(c.cfg, func(o *ec2.Options) { o.Region = c.region(region) })
}

func (c sdkClients) CloudFormation(region string) awsx.CloudFormationAPI {
	return awsx.NewCloudFormation(c.cfg, func(o *cloudformation.Options) { o.Region = c.region(region) })
}

// NewClients loads the AWS config selected by --profile and --max-attempts.
var NewClients = func(ctx context.Context, cmd *cli.Command) (Clients, error) {
	awsCfg, err := awsx.LoadAWSConfig(ctx,
		awsx.WithProfile(cmd.String("profile")),
		awsx.WithMaxAttempts(cmd.Int("max-attempts")),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return sdkClients{cfg: awsCfg}, nil
}

// ResolveRegions returns the --region values, de-duplicated in the order
// given, or every enabled region when there are none.
func ResolveRegions(ctx context.Context, cmd *cli.Command, clients Clients) ([]string, error) {
	var regions []string
	for _, r := range cmd.StringSlice("region") {
		for _, part := range strings.Split(r, ",") {
			part = strings.TrimSpace(part)
			if part != "" && !slices.Contains(regions, part) {
				regions = append(regions, part)
			}
		}
	}
	if len(regions) > 0 {
		return regions, nil
	}

	regions, err := awsx.Regions(ctx, clients.EC2(""), false)
	if err != nil {
		return nil, err
	}
	log.Debugf("regions: %v", regions)
	return regions, nil
}

// NewProgress picks the progress sink: a bar when stderr is a terminal,
// debug log lines otherwise, and nothing with --no-progress.
func NewProgress(cmd *cli.Command) progress.Progress {
	switch {
	case !cmd.Bool("progress"):
		return progress.Nop{}
	case term.IsTerminal(int(os.Stderr.Fd())):
		return progress.NewBar(os.Stderr)
	}
	return progress.NewLog()
}

// Report gathers per-region results and writes them in the --output format.
// Tree output streams region by region; the other formats are written once
// by Flush.
type Report struct {
	opts   output.Options
	al     attrs.AttrList
	w      io.Writer
	browse bool
	title  string

	regions int
	roots   []*tree.Node
	rows    []any
}

// NewReport returns a Report for cmd's output flags.
func NewReport(cmd *cli.Command, al attrs.AttrList) *Report {
	return &Report{
		opts:   output.NewOptions(cmd),
		al:     al,
		w:      writer(cmd),
		browse: cmd.Bool("browse"),
		title:  "aware " + cmd.Name,
	}
}

// Add records one region's tree and rows.
func (r *Report) Add(root *tree.Node, rows []any) error {
	defer func() { r.regions++ }()

	switch r.opts.Format {
	case "tree":
		if r.browse {
			r.roots = append(r.roots, root)
			return nil
		}
		if r.regions > 0 {
			fmt.Fprintln(r.w)
		}
		return tree.Render(r.w, []*tree.Node{root}, r.opts.Color)
	case "raw":
		r.roots = append(r.roots, root)
	default:
		r.rows = append(r.rows, rows...)
	}
	return nil
}

// Flush writes whatever Add held back.
func (r *Report) Flush(ctx context.Context) error {
	switch r.opts.Format {
	case "tree":
		if !r.browse || len(r.roots) == 0 {
			return nil
		}
		var sb strings.Builder
		if err := tree.Render(&sb, r.roots, r.opts.Color); err != nil {
			return err
		}
		return browse.Run(ctx, r.title, sb.String())
	case "raw":
		if r.roots == nil {
			r.roots = []*tree.Node{}
		}
		return output.Raw(r.w, r.roots)
	default:
		return output.SliceDiceSpit(r.rows, r.al, r.opts, r.w)
	}
}

// anyRows widens a typed row slice for Report.Add.
func anyRows[T any](rows []T) []any {
	out := make([]any, len(rows))
	for i, row := range rows {
		out[i] = row
	}
	return out
}

// QueryCommandBuilder constructs a cli.Command for the query subcommands
// (ec2, cf, regions) using a consistent pattern: metadata, tldr and schema
// flags, the global output flags and the shared validator.
type QueryCommandBuilder struct {
	Name        string
	Usage       string
	UsageText   string
	Description string
	Flags       []cli.Flag
	Action      func(context.Context, *cli.Command) error
	Meta        meta.Meta
}

// Build returns a configured cli.Command from the builder.
func (qcb *QueryCommandBuilder) Build() *cli.Command {
	return &cli.Command{
		Name:        qcb.Name,
		Usage:       qcb.Usage,
		UsageText:   qcb.UsageText,
		Description: qcb.Description,
		Metadata: map[string]any{
			"meta": qcb.Meta,
		},
		Flags: append(qcb.Flags, append([]cli.Flag{
			tldrFlag,
			schemaFlag,
		}, NewGlobalFlags(qcb.Name)...)...),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			return ctx, GlobalFlagsValidator(ctx, c)
		},
		Action: qcb.Action,
	}
}

// QueryActionRunner encapsulates the action shared by the query commands:
// short-circuit checks, attrs, clients and regions, then one Collect call
// per region feeding a Report.
type QueryActionRunner struct {
	CommandName  string
	SchemaType   reflect.Type
	DefaultAttrs []string
	// Regions lists the regions to visit. ResolveRegions when nil.
	Regions func(context.Context, *cli.Command, Clients) ([]string, error)
	// Collect gathers one region and returns its tree and rows.
	Collect func(ctx context.Context, clients Clients, region string, p progress.Progress) (*tree.Node, []any, error)
}

// Run executes the query action with the provided context and command.
func (qar *QueryActionRunner) Run(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("Executing action for %s: %v", m.Command(), m.Args)

	if ShortCircuitTLDR(ctx, cmd, qar.CommandName) {
		return nil
	}
	if DumpSchemaIfRequested(cmd, qar.SchemaType) {
		return nil
	}

	al, err := BuildAttrs(cmd, qar.DefaultAttrs...)
	if err != nil {
		return err
	}
	log.Debugf("attrs: %v", al.String())

	clients, err := NewClients(ctx, cmd)
	if err != nil {
		return err
	}

	resolve := qar.Regions
	if resolve == nil {
		resolve = ResolveRegions
	}
	regions, err := resolve(ctx, cmd, clients)
	if err != nil {
		return err
	}

	report := NewReport(cmd, al)
	prog := NewProgress(cmd)
	for i, region := range regions {
		root, rows, err := qar.Collect(ctx, clients, region, progress.Numbered(prog, i+1, len(regions)))
		if err != nil {
			return err
		}
		if err := report.Add(root, rows); err != nil {
			return err
		}
	}

	return report.Flush(ctx)
}
