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
	"io"
)

// Disassemble writes a human-readable listing of the given code to out, one
// line per instruction as produced by Instruction.Describe. Contrary to the
// execution, a STOP does not end the listing; the full code is walked and the
// listing is terminated by an END line. If an instruction's immediate data
// exceeds the code, the lines decoded so far are written and the error is
// returned.
func Disassemble(out io.Writer, code []byte) error {
	return walk(code, func(instruction Instruction) error {
		_, err := fmt.Fprintln(out, instruction.Describe())
		return err
	})
}

// walk calls the visitor for each instruction of the code, including the
// terminating END.
func walk(code []byte, visit func(Instruction) error) error {
	for pc := 0; ; {
		instruction, next, err := decode(code, pc)
		if err != nil {
			return err
		}
		if err := visit(instruction); err != nil {
			return err
		}
		if instruction.Op == END {
			return nil
		}
		pc = next
	}
}
