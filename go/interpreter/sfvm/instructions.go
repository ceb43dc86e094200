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

import "github.com/holiman/uint256"

func opStop() status {
	return statusStopped
}

func opAdd(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.Add(a, b)
}

func opMul(c *context) {
	a := c.stack.pop()
	b := c.stack.peek()
	b.Mul(a, b)
}

func opPush(c *context, value *uint256.Int) {
	c.stack.push(value)
}

// Memory instructions rely on the interpreter having expanded the memory to
// cover the accessed range, hence the offset is known to fit into 64 bits.

func opMload(c *context) error {
	trg := c.stack.peek()
	offset := trg.Uint64()
	return c.memory.getWord(offset, trg)
}

func opMstore(c *context) error {
	addr := c.stack.pop()
	value := c.stack.pop()
	return c.memory.setWord(addr.Uint64(), value)
}

func opMstore8(c *context) error {
	addr := c.stack.pop()
	value := c.stack.pop()
	return c.memory.setByte(addr.Uint64(), byte(value.Uint64()))
}
