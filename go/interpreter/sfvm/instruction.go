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
	"bytes"
	"fmt"

	"github.com/Fantom-foundation/Evmlet/go/evmlet/vm"
	"github.com/holiman/uint256"
)

// Instruction is a single instruction decoded from the byte code.
type Instruction struct {
	// The op-code of this instruction.
	Op OpCode
	// The position of the instruction in the byte code. For END this is the
	// length of the code.
	Pc int
	// The raw byte the instruction was decoded from; zero for END.
	Code byte
	// The immediate value of PUSH instructions, zero for all others.
	Value uint256.Int
}

// Width returns the number of bytes occupied by this instruction in the byte
// code, including immediate data. END occupies no bytes.
func (i Instruction) Width() int {
	switch i.Op {
	case END:
		return 0
	case UNKNOWN:
		return 1
	}
	return vm.OpCode(i.Op).Width()
}

func (i Instruction) String() string {
	if i.Op.isPush() {
		return fmt.Sprintf("%v %v", i.Op, i.Value.Hex())
	}
	return i.Op.String()
}

// Describe returns a human-readable line for this instruction consisting of
// its position, its mnemonic and a short description.
func (i Instruction) Describe() string {
	switch i.Op {
	case END:
		return "END"
	case UNKNOWN:
		return fmt.Sprintf("0x%x\t%v\tOpcode not found 0x%02x", i.Pc, i.Op, i.Code)
	}
	info := i.Op.info()
	if i.Op.isPush() {
		return fmt.Sprintf("0x%x\t%v\t%s %v", i.Pc, i.Op, info.Description, i.Value.Hex())
	}
	return fmt.Sprintf("0x%x\t%v\t%s", i.Pc, i.Op, info.Description)
}

// Program is the decoded form of a byte code. Decoding stops at the first
// malformed instruction; the corresponding error is reported when the
// execution reaches that point.
type Program struct {
	instructions []Instruction
	codeLength   int
	err          error // < decoding error at the end of the instructions, nil if none
}

// fetch returns the instruction at the given index. Beyond the last decoded
// instruction, END or the decoding error is returned.
func (p *Program) fetch(index int) (Instruction, error) {
	if index < len(p.instructions) {
		return p.instructions[index], nil
	}
	if p.err != nil {
		return Instruction{}, p.err
	}
	return Instruction{Op: END, Pc: p.codeLength}, nil
}

func (p *Program) String() string {
	var buffer bytes.Buffer
	for _, instruction := range p.instructions {
		buffer.WriteString(fmt.Sprintf("0x%04x: %v\n", instruction.Pc, instruction))
	}
	if p.err != nil {
		buffer.WriteString(fmt.Sprintf("error: %v\n", p.err))
	}
	return buffer.String()
}
