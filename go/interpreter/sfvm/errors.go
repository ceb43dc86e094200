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

const (
	ErrStackUnderflow       = evmlet.ConstError("stack underflow")
	ErrOutOfBoundsImmediate = evmlet.ConstError("immediate data exceeds code")
	ErrMemoryLimit          = evmlet.ConstError("memory limit exceeded")
	errMemoryAccess         = evmlet.ConstError("memory access out of bounds")
)

// InstructionError ties a fatal error to the instruction that caused it.
type InstructionError struct {
	Op  OpCode
	Pc  int
	Err error
}

func (e *InstructionError) Error() string {
	return fmt.Sprintf("%v at 0x%x: %v", e.Op, e.Pc, e.Err)
}

func (e *InstructionError) Unwrap() error {
	return e.Err
}
