// Copyright 2025 KrakLabs
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program. If not, see <https://www.gnu.org/licenses/>.
//
// For commercial licensing, contact: licensing@kraklabs.com
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package main

import (
	"fmt"
	"os"
)

const bashCompletion = `_dsgl_completions() {
    local cur prev
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"
    if [ "$COMP_CWORD" -eq 1 ]; then
        COMPREPLY=( $(compgen -W "init compile check partition completion version" -- "$cur") )
        return
    fi
    case "$prev" in
        -o|--output|--device-dir|-c|--config)
            COMPREPLY=( $(compgen -f -- "$cur") )
            ;;
        *)
            COMPREPLY=( $(compgen -f -- "$cur") )
            ;;
    esac
}
complete -F _dsgl_completions dsgl
`

const zshCompletion = `#compdef dsgl
_dsgl() {
    local -a commands
    commands=(
        'init:create a .dsgl/config.yaml in the current directory'
        'compile:parse, resolve, partition, and emit C'
        'check:parse and resolve only'
        'partition:run the partitioner and print the assignment'
        'completion:generate a shell completion script'
        'version:show version information'
    )
    _arguments '1: :->command' '*: :->args'
    case $state in
        command) _describe 'command' commands ;;
        args) _files ;;
    esac
}
_dsgl
`

const fishCompletion = `complete -c dsgl -f
complete -c dsgl -n '__fish_use_subcommand' -a 'init' -d 'create a .dsgl/config.yaml in the current directory'
complete -c dsgl -n '__fish_use_subcommand' -a 'compile' -d 'parse, resolve, partition, and emit C'
complete -c dsgl -n '__fish_use_subcommand' -a 'check' -d 'parse and resolve only'
complete -c dsgl -n '__fish_use_subcommand' -a 'partition' -d 'run the partitioner and print the assignment'
complete -c dsgl -n '__fish_use_subcommand' -a 'completion' -d 'generate a shell completion script'
complete -c dsgl -n '__fish_use_subcommand' -a 'version' -d 'show version information'
`

// runCompletion writes a static completion script for the requested shell
// to stdout.
func runCompletion(args []string, globals GlobalFlags) {
	if len(args) != 1 {
		fmt.Fprintln(os.Stderr, "Usage: dsgl completion <bash|zsh|fish>")
		os.Exit(1)
	}

	switch args[0] {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "unsupported shell: %s (want bash, zsh, or fish)\n", args[0])
		os.Exit(1)
	}
}
