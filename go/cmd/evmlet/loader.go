// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package main

import (
	"fmt"
	"os"

	"github.com/Fantom-foundation/Evmlet/go/hexcode"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

// codeFileArg returns the single code file argument of a mode.
func codeFileArg(context *cli.Context) (string, error) {
	switch context.Args().Len() {
	case 0:
		return "", fmt.Errorf("%w: missing code file, usage: %s %s", errInvalidArguments, context.Command.Name, context.Command.ArgsUsage)
	case 1:
		return context.Args().First(), nil
	}
	return "", fmt.Errorf("%w: too many arguments, usage: %s %s", errInvalidArguments, context.Command.Name, context.Command.ArgsUsage)
}

// loadCode reads the hex encoded code from the given file. Surrounding white
// space and a 0x prefix are ignored.
func loadCode(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read code file: %w", err)
	}
	code, err := hexcode.Decode(hexcode.Normalize(string(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	log.Info("Loaded code", "file", path, "size", len(code))
	return code, nil
}
