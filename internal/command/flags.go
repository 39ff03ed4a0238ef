// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"

	"github.com/staranto/aware/internal/config"
	"github.com/staranto/aware/internal/vpc"
)

func init() {
	cfg = config.Config
}

var (
	cfg config.Type

	schemaFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "schema",
		Usage:       "dump the attribute names available to --attrs, --filter and --sort",
		HideDefault: true,
	}

	tldrFlag *cli.BoolFlag = &cli.BoolFlag{
		Name:        "tldr",
		Usage:       "show tldr page",
		Hidden:      !pathHas("tldr"),
		HideDefault: true,
	}
)

// NewGlobalFlags returns the output flags every query command carries. ns is
// the command name, used to look up namespaced defaults in the config file.
func NewGlobalFlags(ns string) (flags []cli.Flag) {
	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "attrs",
			Aliases: []string{"a"},
			Usage:   "comma-separated list of attributes to include in results",
		},
		&cli.BoolWithInverseFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "enable colored output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"color", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("color", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
		&cli.StringFlag{
			Name:    "filter",
			Aliases: []string{"f"},
			Usage:   "comma-separated list of filters to apply to results",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format, one of tree, text, json, yaml or raw",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"output", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("output", altsrc.StringSourcer(cfg.Source)),
			),
			Value: "tree",
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator, OutputValidator)
			},
		},
		&cli.StringFlag{
			Name:    "sort",
			Aliases: []string{"s"},
			Usage:   "comma-separated list of attributes to sort the results by",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"sort", altsrc.StringSourcer(cfg.Source)),
			),
		},
		&cli.BoolWithInverseFlag{
			Name:    "titles",
			Aliases: []string{"t"},
			Usage:   "show titles with text output",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+"."+"titles", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("titles", altsrc.StringSourcer(cfg.Source)),
			),
			Value: false,
		},
	}

	return
}

// NewAWSFlags returns the flags selecting the account, regions and request
// behaviour for commands that call AWS.
func NewAWSFlags(ns string) []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{
			Name:    "region",
			Aliases: []string{"r"},
			Usage:   "region to query, repeatable. Every enabled region when omitted",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("AWARE_REGIONS"),
			),
			Validator: func(values []string) error {
				for _, v := range values {
					if err := JammedFlagValidator(v); err != nil {
						return err
					}
				}
				return nil
			},
		},
		NameSpacedValueChainFlagFromConfigFile(ns, cfg.Source, &cli.StringFlag{
			Name:    "profile",
			Aliases: []string{"p"},
			Usage:   "shared config profile. Defaults to the AWS environment chain",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("AWARE_PROFILE"),
			),
			Validator: func(value string) error {
				return FlagValidators(value, JammedFlagValidator)
			},
		}),
		&cli.IntFlag{
			Name:  "max-attempts",
			Usage: "maximum attempts per AWS call, 0 for the SDK default",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+".max-attempts", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("max-attempts", altsrc.StringSourcer(cfg.Source)),
			),
			Value: 0,
			Validator: func(value int) error {
				return FlagValidators(value, NonNegativeValidator)
			},
		},
		&cli.IntFlag{
			Name:  "parallel",
			Usage: "collections in flight per region",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("AWARE_PARALLEL"),
				yaml.YAML(ns+".parallel", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("parallel", altsrc.StringSourcer(cfg.Source)),
			),
			Value: vpc.DefaultParallel,
			Validator: func(value int) error {
				return FlagValidators(value, PositiveValidator)
			},
		},
		&cli.BoolFlag{
			Name:  "progress",
			Usage: "show collection progress on stderr",
			Sources: cli.NewValueSourceChain(
				yaml.YAML(ns+".progress", altsrc.StringSourcer(cfg.Source)),
				yaml.YAML("progress", altsrc.StringSourcer(cfg.Source)),
			),
			Value: true,
		},
	}
}

// browseFlag opens tree output in a pager.
var browseFlag = &cli.BoolFlag{
	Name:        "browse",
	Aliases:     []string{"b"},
	Usage:       "page tree output in a scrollable viewer",
	HideDefault: true,
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// pathHas reports whether target is on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
