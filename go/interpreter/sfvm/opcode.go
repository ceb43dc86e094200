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

	"github.com/Fantom-foundation/Evmlet/go/evmlet/vm"
)

// OpCode identifies a decoded instruction. The values 0x00-0xFF are the
// supported byte code instructions, values beyond that range are sentinels
// produced by the decoder that are not encoded in the byte code.
type OpCode uint16

const (
	STOP    = OpCode(vm.STOP)
	ADD     = OpCode(vm.ADD)
	MUL     = OpCode(vm.MUL)
	MLOAD   = OpCode(vm.MLOAD)
	MSTORE  = OpCode(vm.MSTORE)
	MSTORE8 = OpCode(vm.MSTORE8)
	PUSH1   = OpCode(vm.PUSH1)
	PUSH2   = OpCode(vm.PUSH2)
	PUSH32  = OpCode(vm.PUSH32)
)

const (
	// UNKNOWN is produced for any byte that is not a supported instruction.
	// Executing it has no effect.
	UNKNOWN OpCode = iota + 0x100
	// END is produced when the program counter reached the end of the code.
	END
)

func (o OpCode) String() string {
	switch o {
	case UNKNOWN:
		return "UNKNOWN"
	case END:
		return "END"
	}
	if o.isBaseInstruction() && vm.IsValid(vm.OpCode(o)) {
		return vm.OpCode(o).String()
	}
	return fmt.Sprintf("op(0x%04X)", uint16(o))
}

func (o OpCode) isBaseInstruction() bool {
	return o < 0x100
}

// isPush reports whether the instruction carries an immediate value to be
// placed on the stack.
func (o OpCode) isPush() bool {
	return o.isBaseInstruction() && vm.OpCode(o).IsPush()
}

// info returns the static properties of the instruction. Sentinels have no
// immediate data and no stack effects.
func (o OpCode) info() vm.OpInfo {
	if !o.isBaseInstruction() {
		return vm.OpInfo{Name: o.String()}
	}
	info, _ := vm.OpCode(o).Info()
	return info
}
