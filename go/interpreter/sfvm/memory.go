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

	"github.com/holiman/uint256"
)

// Memory is the byte-addressable working storage of a run. It is zero
// initialized and grows on demand, but never shrinks. Growth is decided by
// the interpreter before an instruction is executed; all accessors require
// the accessed range to be covered already.
type Memory struct {
	store []byte
}

func NewMemory() *Memory {
	return &Memory{}
}

// DefaultMaxMemorySize is the default upper limit for the memory size of a
// single run.
const DefaultMaxMemorySize = 1 << 25 // = 32 MiB

func (m *Memory) length() uint64 {
	return uint64(len(m.store))
}

// resize grows the memory to the given size, zero-filling the new region. If
// the memory is already large enough, it does nothing.
func (m *Memory) resize(size uint64) {
	if current := m.length(); current < size {
		m.store = append(m.store, make([]byte, size-current)...)
	}
}

// expand grows the memory such that width bytes starting at the given offset
// are accessible. An error is returned if the required size exceeds the
// given limit or can not be represented.
func (m *Memory) expand(offset *uint256.Int, width uint64, limit uint64) error {
	if !offset.IsUint64() {
		return fmt.Errorf("%w: offset %v exceeds limit of %d bytes", ErrMemoryLimit, offset, limit)
	}
	needed := offset.Uint64() + width
	if needed < width || needed > limit {
		return fmt.Errorf("%w: accessing %d bytes at offset %d exceeds limit of %d bytes", ErrMemoryLimit, width, offset.Uint64(), limit)
	}
	m.resize(needed)
	return nil
}

// getWord reads the 32 byte big-endian word starting at the given offset
// into the target.
func (m *Memory) getWord(offset uint64, target *uint256.Int) error {
	if err := m.checkRange(offset, 32); err != nil {
		return err
	}
	target.SetBytes32(m.store[offset : offset+32])
	return nil
}

// setWord writes the given value as a 32 byte big-endian word starting at
// the given offset.
func (m *Memory) setWord(offset uint64, value *uint256.Int) error {
	if err := m.checkRange(offset, 32); err != nil {
		return err
	}
	value.WriteToSlice(m.store[offset : offset+32])
	return nil
}

// setByte writes a single byte at the given offset.
func (m *Memory) setByte(offset uint64, value byte) error {
	if err := m.checkRange(offset, 1); err != nil {
		return err
	}
	m.store[offset] = value
	return nil
}

func (m *Memory) checkRange(offset, size uint64) error {
	if offset+size < offset || offset+size > m.length() {
		return fmt.Errorf("%w: size %d, attempted to access %d bytes at %d", errMemoryAccess, m.length(), size, offset)
	}
	return nil
}

// Data returns a copy of the current memory content.
func (m *Memory) Data() []byte {
	return slices.Clone(m.store)
}
