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
	"runtime/pprof"

	"github.com/ethereum/go-ethereum/log"
	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"
)

var commonFlags = []cli.Flag{
	CpuProfileFlag,
}

// AddCommonFlags adds the flags shared by all modes to the given command and
// wraps its action to handle them.
func AddCommonFlags(command cli.Command) *cli.Command {
	command.Flags = append(command.Flags, commonFlags...)

	action := command.Action
	command.Action = func(context *cli.Context) (err error) {
		if cpuprofileFilename := CpuProfileFlag.Fetch(context); cpuprofileFilename != "" {
			f, err := os.Create(cpuprofileFilename)
			if err != nil {
				return fmt.Errorf("could not create CPU profile: %w", err)
			}
			defer f.Close()
			if err := pprof.StartCPUProfile(f); err != nil {
				return fmt.Errorf("could not start CPU profile: %w", err)
			}
			defer pprof.StopCPUProfile()
		}

		return action(context)
	}
	return &command
}

// setupLogging installs the default logger writing to the error output of the
// application. Colors are used if the output is a terminal.
func setupLogging(context *cli.Context) error {
	output := context.App.ErrWriter
	useColor := false
	if file, ok := output.(*os.File); ok && isatty.IsTerminal(file.Fd()) {
		useColor = true
		output = colorable.NewColorable(file)
	}
	log.SetDefault(log.NewLogger(log.NewTerminalHandlerWithLevel(output, VerbosityFlag.Fetch(context), useColor)))
	return nil
}
