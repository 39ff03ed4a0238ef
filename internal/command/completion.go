// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/aware/internal/meta"
)

const bashCompletionScript = `# bash completion for aware
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_aware()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "ec2 cf regions completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--attrs -a --color -c --filter -f --output -o --sort -s --titles -t --schema --tldr"
    local aws="--profile -p --max-attempts"

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "tree text json yaml raw" -- "$cur") )
            return 0
            ;;
        --group-by|-g)
            COMPREPLY=( $(compgen -W "vpc tag" -- "$cur") )
            return 0
            ;;
    esac

    case "$cmd" in
        ec2)
            local opts="$common $aws --region -r --parallel --progress --browse -b --vpc --tag --group-by -g"
            ;;
        cf)
            local opts="$common $aws --region -r --parallel --progress --browse -b --stack"
            ;;
        regions)
            local opts="$common $aws --all"
            ;;
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _aware aware
`

const zshCompletionScript = `#compdef aware

_aware() {
  local -a cmds
  cmds=(
    'ec2:EC2 resources grouped by VPC or tag'
    'cf:CloudFormation stacks and their resources'
    'regions:regions available to the account'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
    '(-a --attrs)'{-a,--attrs}'[attributes to include]:attrs'
    '(-c --color)'{-c,--color}'[enable colored output]'
    '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
    '(-o --output)'{-o,--output}'[output format]:format:(tree text json yaml raw)'
    '(-s --sort)'{-s,--sort}'[sort attributes]:attrs'
    '(-t --titles)'{-t,--titles}'[show titles]'
    '--schema[dump schema]'
    '--tldr[show tldr page]'
    '(-p --profile)'{-p,--profile}'[shared config profile]:profile'
    '--max-attempts[maximum attempts per call]:attempts'
  )

  local -a collect
  collect=(
    '*'{-r,--region}'[region to query]:region'
    '--parallel[collections in flight per region]:parallel'
    '--progress[show progress]'
    '(-b --browse)'{-b,--browse}'[page tree output]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'aware commands' cmds
    return
  fi

  case $words[2] in
    ec2)
      _arguments -C \
        $common $collect \
        '*--vpc[VPC id]:vpc' \
        '*--tag[tag selector]:tag' \
        '(-g --group-by)'{-g,--group-by}'[grouping]:group:(vpc tag)'
      ;;
    cf)
      _arguments -C \
        $common $collect \
        '*--stack[stack name or id]:stack'
      ;;
    regions)
      _arguments -C \
        $common \
        '--all[include regions not opted into]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _aware aware
`

// completionScript picks the script for shell, falling back to $SHELL.
func completionScript(shell string) (string, bool) {
	if shell == "" {
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			shell = "zsh"
		case strings.HasSuffix(sh, "bash"):
			shell = "bash"
		}
	}

	switch shell {
	case "bash":
		return bashCompletionScript, true
	case "zsh":
		return zshCompletionScript, true
	}
	return "", false
}

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	script, ok := completionScript(cmd.Args().First())
	if !ok {
		fmt.Fprintln(os.Stderr, "usage: aware completion [bash|zsh]")
		return nil
	}
	fmt.Fprint(writer(cmd), script)
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "aware completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
