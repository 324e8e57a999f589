// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/rowsync/internal/meta"
)

const bashCompletionScript = `# bash completion for rowsync
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_rowsync()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "diff replay sync demo completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--color -c --content -a --filter -f --key -k --output -o --padding --parent -p --sort -s --titles -t --s3-endpoint --s3-profile --s3-region --tldr"

    case "$cmd" in
        diff)
            local opts="$common"
            ;;
        replay)
            local opts="$common --empty"
            ;;
        sync)
            local opts="$common --dry-run --forget --purge"
            ;;
        demo)
            local opts="$common --seed"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
            return 0
            ;;
        --color|-c)
            COMPREPLY=( $(compgen -W "auto always never" -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # Positional OLD/NEW/FILE arguments are item documents.
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _rowsync rowsync
`

const zshCompletionScript = `#compdef rowsync

_rowsync() {
  local -a cmds
  cmds=(
    'diff:print the changes between two lists'
    'replay:replay the changes onto a simulated list view'
    'sync:print the changes since the last sync of a named list'
    'demo:interactive reconciled list'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-a --content)'{-a,--content}'[content attributes]:attrs'
  '(-c --color)'{-c,--color}'[colored text]:mode:(auto always never)'
  '(-f --filter)'{-f,--filter}'[filters to apply]:filters'
  '(-k --key)'{-k,--key}'[identity path]:path'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)'
  '--padding[column padding]:padding'
  '(-p --parent)'{-p,--parent}'[list path]:path'
  '(-s --sort)'{-s,--sort}'[sort columns]:columns'
  '(-t --titles)'{-t,--titles}'[show titles]'
  '--s3-endpoint[S3 compatible endpoint]:url'
  '--s3-profile[AWS profile]:profile'
  '--s3-region[AWS region]:region'
  '--tldr[show tldr page]'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'rowsync commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    diff)
      _arguments -C $common '1:OLD:_files' '2:NEW:_files'
      ;;
    replay)
      _arguments -C $common \
        '--empty[start from an empty view]' \
        '1:OLD:_files' '2:NEW:_files'
      ;;
    sync)
      _arguments -C $common \
        '--dry-run[do not store NEW]' \
        '--forget[delete the snapshot]' \
        '--purge[purge snapshots older than hours]:hours' \
        '1:NAME:' '2:NEW:_files'
      ;;
    demo)
      _arguments -C $common \
        '--seed[random seed]:seed' \
        '::FILE:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common '*:file:_files'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _rowsync rowsync
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	w := stdout(cmd)

	shell := cmd.Args().First()
	if shell == "" {
		// Try to detect from SHELL.
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
		fmt.Fprint(w, bashCompletionScript)
	case "zsh":
		fmt.Fprint(w, zshCompletionScript)
	default:
		fmt.Fprintln(stderr(cmd), "usage: rowsync completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "rowsync completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
