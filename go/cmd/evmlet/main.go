// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Evmlet decodes and executes byte code of a small EVM instruction subset.
//
// Usage:
//
//	evmlet debug <file>   prints a listing of the instructions in the file
//	evmlet run <file>     executes the code and prints the final stack
//
// The file contains the code as hex string, as produced by Solidity
// compilers with the --bin option.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/Fantom-foundation/Evmlet/go/evmlet"
	"github.com/urfave/cli/v2"

	// Registers the short-form VM configurations.
	_ "github.com/Fantom-foundation/Evmlet/go/interpreter/sfvm"
)

const errInvalidArguments = evmlet.ConstError("invalid arguments")

func main() {
	if err := newApp(os.Stdout, os.Stderr).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// modes lists the commands selectable as the first argument.
var modes = []*cli.Command{
	AddCommonFlags(DebugCmd),
	AddCommonFlags(RunCmd),
}

func newApp(stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "evmlet",
		Usage:     "Decode and execute EVM byte code",
		Copyright: "(c) 2024 Fantom Foundation",
		ArgsUsage: "<mode> <file>",
		Flags: []cli.Flag{
			VerbosityFlag,
		},
		Commands:        modes,
		HideHelpCommand: true,
		Before:          setupLogging,
		Action:          unknownMode,
		Writer:          stdout,
		ErrWriter:       stderr,
	}
}

// unknownMode is invoked if the first argument does not name a mode.
func unknownMode(context *cli.Context) error {
	names := make([]string, 0, len(modes))
	for _, mode := range modes {
		names = append(names, mode.Name)
	}
	if !context.Args().Present() {
		return fmt.Errorf("%w: missing mode, use one of: %s", errInvalidArguments, strings.Join(names, ", "))
	}
	return fmt.Errorf("%w: unknown mode %q, use one of: %s", errInvalidArguments, context.Args().First(), strings.Join(names, ", "))
}
