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
	"slices"
	"strings"
	"sync"

	"github.com/holiman/uint256"
)

// stack is the unbounded 256-bit word-wide stack used by the VM.
//
// Boundaries are not checked. Users of the stack must prevent underflow
// situations; the interpreter does so by checking the requirements of each
// instruction before executing it.
//
// To reuse the allocated capacity among runs, a stack pool is provided. To
// obtain an empty stack from the pool, use NewStack(). To return a stack to
// the pool, use ReturnStack(s).
//
// The stack is not thread-safe. NewStack() and ReturnStack() are thread-safe.
type stack struct {
	data []uint256.Int
}

// push adds a copy of the given value to the top of the stack.
func (s *stack) push(d *uint256.Int) {
	s.data = append(s.data, *d)
}

// pop removes the top element from the stack and returns a pointer to it. The
// obtained pointer is only valid until the next push operation.
func (s *stack) pop() *uint256.Int {
	top := &s.data[len(s.data)-1]
	s.data = s.data[:len(s.data)-1]
	return top
}

// peek returns a pointer to the top element of the stack without removing it.
func (s *stack) peek() *uint256.Int {
	return &s.data[len(s.data)-1]
}

// peekN returns a pointer to the n-th element from the top of the stack
// without removing it. The top element is at index 0.
func (s *stack) peekN(n int) *uint256.Int {
	return &s.data[len(s.data)-n-1]
}

// len returns the number of elements on the stack.
func (s *stack) len() int {
	return len(s.data)
}

// values returns a copy of the stack content, the bottom element first.
func (s *stack) values() []uint256.Int {
	return slices.Clone(s.data)
}

func (s *stack) String() string {
	b := strings.Builder{}
	for i := 0; i < s.len(); i++ {
		bytes := s.peekN(i).Bytes32()
		b.WriteString(fmt.Sprintf("    [%4d] 0x%x\n", s.len()-i-1, bytes[:]))
	}
	return b.String()
}

// ------------------ Stack Pool ------------------

var stackPool = sync.Pool{
	New: func() interface{} {
		return &stack{data: make([]uint256.Int, 0, 16)}
	},
}

// NewStack returns an empty stack instance from a reuse pool.
func NewStack() *stack {
	return stackPool.Get().(*stack)
}

// ReturnStack returns the stack to the reuse pool. Any stack may only be
// returned once to avoid concurrent re-use. This is not checked internally.
func ReturnStack(s *stack) {
	s.data = s.data[:0]
	stackPool.Put(s)
}
