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
	"io"
	"strings"
	"time"

	"github.com/Fantom-foundation/Evmlet/go/evmlet"
	"github.com/Fantom-foundation/Evmlet/go/interpreter/sfvm"
	"github.com/dsnet/golib/unitconv"
	"github.com/ethereum/go-ethereum/log"
	"github.com/holiman/uint256"
	"github.com/urfave/cli/v2"
)

var RunCmd = cli.Command{
	Action:    doRun,
	Name:      "run",
	Usage:     "Execute a code file and print the final stack",
	ArgsUsage: "<file>",
	Flags: []cli.Flag{
		InterpreterFlag,
		TraceFlag,
		StatsFlag,
		MemoryFlag,
		MaxMemoryFlag,
	},
}

func doRun(context *cli.Context) error {
	path, err := codeFileArg(context)
	if err != nil {
		return err
	}
	code, err := loadCode(path)
	if err != nil {
		return err
	}
	interpreter, err := createInterpreter(context)
	if err != nil {
		return err
	}

	hash := sfvm.Keccak256(code)
	start := time.Now()
	result, err := interpreter.Run(evmlet.Parameters{
		Code:     code,
		CodeHash: &hash,
	})
	duration := time.Since(start)
	if err != nil {
		return fmt.Errorf("execution failed: %w", err)
	}
	log.Debug("Execution halted", "reason", result.Reason, "pc", result.Pc, "steps", result.Steps, "time", duration)

	out := context.App.Writer
	printStack(out, result.Stack)
	if MemoryFlag.Fetch(context) {
		printMemory(out, result.Memory)
	}
	if StatsFlag.Fetch(context) {
		printStatistics(context.App.ErrWriter, interpreter, result.Steps, duration)
	}
	return nil
}

// createInterpreter obtains the interpreter selected on the command line. The
// tracing and memory flags are passed as an sfvm configuration overriding the
// respective options of the selected entry; all other options are retained.
func createInterpreter(context *cli.Context) (evmlet.Interpreter, error) {
	name := InterpreterFlag.Fetch(context)
	if evmlet.GetInterpreterFactory(name) == nil {
		return nil, fmt.Errorf("%w: unknown interpreter %q, use one of: %s",
			errInvalidArguments, name, strings.Join(evmlet.RegisteredInterpreterNames(), ", "))
	}

	trace := TraceFlag.Fetch(context)
	if !trace && !context.IsSet(MaxMemoryFlag.Name) {
		return evmlet.NewInterpreter(name)
	}
	config := sfvm.Config{
		MaxMemorySize: MaxMemoryFlag.Fetch(context),
	}
	if trace {
		config.Trace = context.App.ErrWriter
	}
	return evmlet.NewInterpreter(name, config)
}

// printStack prints the stack starting with the top element. Each element is
// labeled with its position counted from the bottom of the stack.
func printStack(out io.Writer, stack []uint256.Int) {
	for i := len(stack) - 1; i >= 0; i-- {
		word := stack[i].Bytes32()
		fmt.Fprintf(out, "|%d:\t0x%x|\n", i, word[:])
	}
}

// printMemory prints the memory content in rows of 32 bytes.
func printMemory(out io.Writer, memory []byte) {
	fmt.Fprintf(out, "memory: %d bytes\n", len(memory))
	for offset := 0; offset < len(memory); offset += 32 {
		end := min(offset+32, len(memory))
		fmt.Fprintf(out, "0x%04x: %x\n", offset, memory[offset:end])
	}
}

func printStatistics(out io.Writer, interpreter evmlet.Interpreter, steps uint64, duration time.Duration) {
	fmt.Fprintf(out, "steps: %d\n", steps)
	fmt.Fprintf(out, "time: %v\n", duration)
	if seconds := duration.Seconds(); seconds > 0 {
		rate := float64(steps) / seconds
		fmt.Fprintf(out, "throughput: %ssteps/s\n", unitconv.FormatPrefix(rate, unitconv.SI, 0))
	}
	if profiling, ok := interpreter.(evmlet.ProfilingInterpreter); ok {
		fmt.Fprint(out, profiling.DumpProfile())
	}
}
