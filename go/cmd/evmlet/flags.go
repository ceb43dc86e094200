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
	"log/slog"

	"github.com/Fantom-foundation/Evmlet/go/interpreter/sfvm"
	"github.com/ethereum/go-ethereum/log"
	"github.com/urfave/cli/v2"
)

type interpreterFlagType struct {
	cli.StringFlag
}

var InterpreterFlag = &interpreterFlagType{
	cli.StringFlag{
		Name:    "interpreter",
		Aliases: []string{"i"},
		Usage:   "name of the registered interpreter configuration used for the execution",
		Value:   "sfvm",
	},
}

func (f *interpreterFlagType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}

type traceFlagType struct {
	cli.BoolFlag
}

var TraceFlag = &traceFlagType{
	cli.BoolFlag{
		Name:  "trace",
		Usage: "print each executed instruction to stderr",
	},
}

func (f *traceFlagType) Fetch(context *cli.Context) bool {
	return context.Bool(f.Name)
}

type statsFlagType struct {
	cli.BoolFlag
}

var StatsFlag = &statsFlagType{
	cli.BoolFlag{
		Name:  "stats",
		Usage: "print execution statistics to stderr",
	},
}

func (f *statsFlagType) Fetch(context *cli.Context) bool {
	return context.Bool(f.Name)
}

type memoryFlagType struct {
	cli.BoolFlag
}

var MemoryFlag = &memoryFlagType{
	cli.BoolFlag{
		Name:  "memory",
		Usage: "print the final memory content after the stack",
	},
}

func (f *memoryFlagType) Fetch(context *cli.Context) bool {
	return context.Bool(f.Name)
}

type maxMemoryFlagType struct {
	cli.Uint64Flag
}

var MaxMemoryFlag = &maxMemoryFlagType{
	cli.Uint64Flag{
		Name:  "max-memory",
		Usage: "upper limit of the memory size in bytes",
		Value: sfvm.DefaultMaxMemorySize,
	},
}

func (f *maxMemoryFlagType) Fetch(context *cli.Context) uint64 {
	return context.Uint64(f.Name)
}

type verbosityFlagType struct {
	cli.IntFlag
}

var VerbosityFlag = &verbosityFlagType{
	cli.IntFlag{
		Name:  "verbosity",
		Usage: "log level: 0=crit, 1=error, 2=warn, 3=info, 4=debug, 5=trace",
		Value: 3,
	},
}

func (f *verbosityFlagType) Fetch(context *cli.Context) slog.Level {
	return log.FromLegacyLevel(context.Int(f.Name))
}

type cpuProfileType struct {
	cli.StringFlag
}

var CpuProfileFlag = &cpuProfileType{
	cli.StringFlag{
		Name:      "cpuprofile",
		Usage:     "store CPU profile in the provided filename",
		TakesFile: true,
	},
}

func (f *cpuProfileType) Fetch(context *cli.Context) string {
	return context.String(f.Name)
}
