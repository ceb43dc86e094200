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

// loggingRunner is a runner that logs the execution of the program to an
// io.Writer. Each executed instruction produces a line of the format
//
//	<pc>, <instruction>, <top-of-stack>
//
// where the top of the stack is printed before the instruction is executed.
// If no writer is provided, nothing is logged.
type loggingRunner struct {
	log io.Writer
}

// newLogger creates a new logging runner that writes to the provided
// io.Writer.
func newLogger(writer io.Writer) loggingRunner {
	return loggingRunner{log: writer}
}

func (l loggingRunner) run(c *context) (status, error) {
	status := statusRunning
	var err error
	for status == statusRunning {
		if l.log != nil {
			if instruction, fetchErr := c.program.fetch(c.next); fetchErr == nil && instruction.Op != END {
				top := "-empty-"
				if c.stack.len() > 0 {
					top = c.stack.peek().Hex()
				}
				_, err = fmt.Fprintf(l.log, "0x%04x, %v, %v\n", instruction.Pc, instruction, top)
				if err != nil {
					return statusFailed, fmt.Errorf("failed to write trace: %w", err)
				}
			}
		}
		status, err = step(c)
		if err != nil {
			return status, err
		}
	}
	return status, nil
}
