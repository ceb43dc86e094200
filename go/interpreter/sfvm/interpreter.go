// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package sfvm

import (
	"fmt"

	"github.com/Fantom-foundation/Evmlet/go/evmlet"
)

// status is enumeration of the execution state of an interpreter run.
type status byte

const (
	statusRunning status = iota // < all fine, ops are processed
	statusStopped               // < execution stopped with a STOP
	statusEnded                 // < execution reached the end of the code
	statusFailed                // < execution stopped with an error
)

// context is the execution environment of an interpreter run. It contains the
// decoded program and the internal execution state such as the program
// counter, stack, and memory. For each run, a new context is created.
type context struct {
	// Inputs
	program *Program

	// Execution state
	next   int // < index of the next instruction in the program
	pc     int // < position of the next instruction in the byte code
	steps  uint64
	stack  *stack
	memory *Memory

	// Configuration
	maxMemorySize uint64
}

// --- Interpreter ---

type runner interface {
	// run executes the program in the given context until it halts.
	// It returns the final status of the execution and an error if the
	// execution got aborted, in which case the status is statusFailed.
	run(*context) (status, error)
}

type interpreterConfig struct {
	maxMemorySize uint64
	runner        runner
}

func run(config interpreterConfig, program *Program) (evmlet.Result, error) {
	if config.maxMemorySize == 0 {
		config.maxMemorySize = DefaultMaxMemorySize
	}

	ctxt := context{
		program:       program,
		stack:         NewStack(),
		memory:        NewMemory(),
		maxMemorySize: config.maxMemorySize,
	}
	defer ReturnStack(ctxt.stack)

	if config.runner == nil {
		config.runner = vanillaRunner{}
	}
	status, err := config.runner.run(&ctxt)
	if err != nil {
		return evmlet.Result{}, err
	}
	return generateResult(status, &ctxt)
}

func generateResult(status status, ctxt *context) (evmlet.Result, error) {
	res := evmlet.Result{
		Stack:  ctxt.stack.values(),
		Memory: ctxt.memory.Data(),
		Pc:     ctxt.pc,
		Steps:  ctxt.steps,
	}
	switch status {
	case statusStopped:
		res.Reason = evmlet.HaltedStop
	case statusEnded:
		res.Reason = evmlet.HaltedEndOfCode
	default:
		return evmlet.Result{}, fmt.Errorf("unexpected error in interpreter, unknown status: %v", status)
	}
	return res, nil
}

// --- Runners ---

// vanillaRunner is the default runner that executes the program without any
// additional features.
type vanillaRunner struct{}

func (r vanillaRunner) run(c *context) (status, error) {
	status := statusRunning
	var err error
	for status == statusRunning {
		status, err = step(c)
		if err != nil {
			return status, err
		}
	}
	return status, nil
}

// --- Execution ---

// step executes the instruction at the current position of the program.
// Fatal errors, like a stack underflow, are reported together with the
// status statusFailed.
func step(c *context) (status, error) {
	instruction, err := c.program.fetch(c.next)
	if err != nil {
		return statusFailed, err
	}
	if instruction.Op == END {
		c.pc = instruction.Pc
		return statusEnded, nil
	}

	if err := checkStackLimits(c.stack.len(), instruction.Op); err != nil {
		return statusFailed, &InstructionError{Op: instruction.Op, Pc: instruction.Pc, Err: err}
	}

	// Memory is grown before the instruction is executed, based on the offset
	// on top of the stack.
	if width := memoryAccessWidth(instruction.Op); width > 0 {
		if err := c.memory.expand(c.stack.peek(), width, c.maxMemorySize); err != nil {
			return statusFailed, &InstructionError{Op: instruction.Op, Pc: instruction.Pc, Err: err}
		}
	}

	c.next++
	c.pc = instruction.Pc + instruction.Width()
	c.steps++

	status := statusRunning
	switch instruction.Op {
	case STOP:
		status = opStop()
	case ADD:
		opAdd(c)
	case MUL:
		opMul(c)
	case MLOAD:
		err = opMload(c)
	case MSTORE:
		err = opMstore(c)
	case MSTORE8:
		err = opMstore8(c)
	case UNKNOWN:
		// nothing
	default:
		if instruction.Op.isPush() {
			opPush(c, &instruction.Value)
		} else {
			err = fmt.Errorf("unsupported instruction")
		}
	}

	if err != nil {
		return statusFailed, &InstructionError{Op: instruction.Op, Pc: instruction.Pc, Err: err}
	}
	return status, nil
}

// checkStackLimits checks that the instruction will not pop more elements
// than are present on the stack.
func checkStackLimits(stackLen int, op OpCode) error {
	if required := op.info().Pops; stackLen < required {
		return fmt.Errorf("%w: %d elements required, %d available", ErrStackUnderflow, required, stackLen)
	}
	return nil
}

// memoryAccessWidth returns the number of bytes accessed in memory by the
// given instruction at the offset on top of the stack. Zero is returned for
// instructions not accessing memory.
func memoryAccessWidth(op OpCode) uint64 {
	switch op {
	case MLOAD, MSTORE:
		return 32
	case MSTORE8:
		return 1
	}
	return 0
}
