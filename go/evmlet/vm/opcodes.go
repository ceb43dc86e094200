// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package vm

import (
	"fmt"
	"strings"
)

// OpCode is a single byte instruction of the EVM byte code.
type OpCode byte

// The subset of EVM instructions supported by Evmlet. All other byte values
// are decoded as unknown instructions.
const (
	STOP    OpCode = 0x00
	ADD     OpCode = 0x01
	MUL     OpCode = 0x02
	MLOAD   OpCode = 0x51
	MSTORE  OpCode = 0x52
	MSTORE8 OpCode = 0x53
	PUSH1   OpCode = 0x60
	PUSH2   OpCode = 0x61
	PUSH32  OpCode = 0x7F
)

// OpInfo summarizes the static properties of a supported OpCode. It is the
// single source of truth for decoding, disassembling, and checking the stack
// requirements of an instruction.
type OpInfo struct {
	Name        string // the mnemonic, e.g. "PUSH1"
	Description string // a short human-readable description
	Immediate   int    // number of immediate bytes following the opcode
	Pops        int    // number of stack elements consumed
	Pushes      int    // number of stack elements produced
}

var opInfos = [256]*OpInfo{
	STOP:    {Name: "STOP", Description: "Halts execution"},
	ADD:     {Name: "ADD", Description: "Addition operation", Pops: 2, Pushes: 1},
	MUL:     {Name: "MUL", Description: "Multiplication operation", Pops: 2, Pushes: 1},
	MLOAD:   {Name: "MLOAD", Description: "Load word from memory", Pops: 1, Pushes: 1},
	MSTORE:  {Name: "MSTORE", Description: "Save word to memory", Pops: 2},
	MSTORE8: {Name: "MSTORE8", Description: "Save byte to memory", Pops: 2},
	PUSH1:   {Name: "PUSH1", Description: "Place 1-byte item on the stack", Immediate: 1, Pushes: 1},
	PUSH2:   {Name: "PUSH2", Description: "Place 2-bytes item on the stack", Immediate: 2, Pushes: 1},
	PUSH32:  {Name: "PUSH32", Description: "Place 32-bytes item on the stack", Immediate: 32, Pushes: 1},
}

// Info returns the static properties of the given OpCode. The second result
// is false if the OpCode is not supported.
func (op OpCode) Info() (OpInfo, bool) {
	info := opInfos[op]
	if info == nil {
		return OpInfo{}, false
	}
	return *info, true
}

func (op OpCode) String() string {
	if info := opInfos[op]; info != nil {
		return info.Name
	}
	return fmt.Sprintf("OpCode(%d)", byte(op))
}

// Width returns the number of bytes occupied by the instruction in the code,
// including its immediate data. Unsupported OpCodes have a width of 1.
func (op OpCode) Width() int {
	if info := opInfos[op]; info != nil {
		return info.Immediate + 1
	}
	return 1
}

// IsPush returns true if the OpCode places an immediate value on the stack.
func (op OpCode) IsPush() bool {
	return op == PUSH1 || op == PUSH2 || op == PUSH32
}

// IsValid determines whether the given OpCode is supported.
func IsValid(op OpCode) bool {
	// All supported instructions have a non-generic print output.
	return !strings.HasPrefix(op.String(), "OpCode(")
}

// ValidOpCodes returns all supported OpCodes in ascending order.
func ValidOpCodes() []OpCode {
	res := make([]OpCode, 0, 16)
	for i := 0; i < 256; i++ {
		op := OpCode(i)
		if IsValid(op) {
			res = append(res, op)
		}
	}
	return res
}
