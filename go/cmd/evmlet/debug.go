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
	"github.com/Fantom-foundation/Evmlet/go/interpreter/sfvm"
	"github.com/urfave/cli/v2"
)

var DebugCmd = cli.Command{
	Action:    doDebug,
	Name:      "debug",
	Usage:     "Print a listing of the instructions of a code file",
	ArgsUsage: "<file>",
}

func doDebug(context *cli.Context) error {
	path, err := codeFileArg(context)
	if err != nil {
		return err
	}
	code, err := loadCode(path)
	if err != nil {
		return err
	}
	return sfvm.Disassemble(context.App.Writer, code)
}
