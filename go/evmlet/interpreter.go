// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package evmlet

import (
	"fmt"

	"github.com/holiman/uint256"
)

//go:generate mockgen -source interpreter.go -destination interpreter_mock.go -package evmlet

// Interpreter is a component capable of executing Evmlet byte code. Each Run
// is independent; no state is retained between runs.
type Interpreter interface {
	// Run executes the code provided by the parameters until it halts. The
	// result describes the final state of the machine. Errors are returned
	// for aborted runs, for instance on a stack underflow or a malformed
	// instruction at the end of the code.
	Run(Parameters) (Result, error)
}

// ProfilingInterpreter is an optional extension to the Interpreter interface
// which may be implemented by interpreters collecting statistical data on
// their executions.
type ProfilingInterpreter interface {
	Interpreter

	// ResetProfile resets the operation statistic collected by the underlying
	// Interpreter implementation.
	ResetProfile()

	// DumpProfile returns a human-readable snapshot of the profiling data
	// collected since the last reset.
	DumpProfile() string
}

// Parameters summarizes the inputs of a single execution.
type Parameters struct {
	Code     []byte
	CodeHash *Hash // optional, used to cache the decoded code if present
}

// Result summarizes the final state of a completed execution.
type Result struct {
	Stack  []uint256.Int // the final stack, bottom element first
	Memory []byte        // a copy of the final memory content
	Pc     int           // the program counter at the time the run halted
	Steps  uint64        // the number of executed instructions
	Reason HaltReason
}

// HaltReason describes why an execution ended.
type HaltReason byte

const (
	HaltedEndOfCode HaltReason = iota // < the program counter reached the end of the code
	HaltedStop                        // < a STOP instruction was executed
)

func (r HaltReason) String() string {
	switch r {
	case HaltedEndOfCode:
		return "end of code"
	case HaltedStop:
		return "stop"
	}
	return fmt.Sprintf("HaltReason(%d)", byte(r))
}

// Hash represents the 256-bit (32 bytes) Keccak hash of a code.
type Hash [32]byte

func (h Hash) String() string {
	return fmt.Sprintf("0x%x", h[:])
}
