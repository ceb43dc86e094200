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
	"github.com/Fantom-foundation/Evmlet/go/evmlet/vm"
	lru "github.com/hashicorp/golang-lru/v2"
)

// decode reads the instruction located at position pc of the given code. It
// returns the decoded instruction and the position of the next instruction.
// If pc is at or beyond the end of the code, END is returned and the position
// is not changed. If the immediate data of an instruction exceeds the code,
// an error is returned.
func decode(code []byte, pc int) (Instruction, int, error) {
	if pc >= len(code) {
		return Instruction{Op: END, Pc: len(code)}, pc, nil
	}

	res := Instruction{Op: OpCode(code[pc]), Pc: pc, Code: code[pc]}
	info, supported := vm.OpCode(code[pc]).Info()
	if !supported {
		res.Op = UNKNOWN
		return res, pc + 1, nil
	}

	if info.Immediate > 0 {
		start, end := pc+1, pc+1+info.Immediate
		if end > len(code) {
			return Instruction{}, pc, &InstructionError{
				Op:  res.Op,
				Pc:  pc,
				Err: fmt.Errorf("%w: need %d bytes, got %d", ErrOutOfBoundsImmediate, info.Immediate, len(code)-start),
			}
		}
		res.Value.SetBytes(code[start:end])
	}
	return res, pc + 1 + info.Immediate, nil
}

// decodeProgram decodes the full code until its end or the first malformed
// instruction.
func decodeProgram(code []byte) *Program {
	res := &Program{
		instructions: make([]Instruction, 0, len(code)),
		codeLength:   len(code),
	}
	for pc := 0; pc < len(code); {
		instruction, next, err := decode(code, pc)
		if err != nil {
			res.err = err
			break
		}
		res.instructions = append(res.instructions, instruction)
		pc = next
	}
	return res
}

// DecoderConfig contains a set of configuration options for the decoder.
type DecoderConfig struct {
	// CacheSize is the maximum number of decoded programs retained by the
	// decoder. If set to 0, a default size is used. If negative, no cache is
	// used.
	CacheSize int
}

const defaultCacheSize = 1 << 12

// maxCachedCodeLength is the maximum length of a code in bytes that is
// retained in the cache. Longer codes are decoded on every use. The limit is
// the maximum size of a contract on Ethereum compatible chains.
const maxCachedCodeLength = 1<<14 + 1<<13 // = 24_576 bytes

// Decoder converts byte code into programs and caches the results.
type Decoder struct {
	cache *lru.Cache[evmlet.Hash, *Program]
}

// NewDecoder creates a new decoder with the provided configuration.
func NewDecoder(config DecoderConfig) (*Decoder, error) {
	if config.CacheSize == 0 {
		config.CacheSize = defaultCacheSize
	}

	var cache *lru.Cache[evmlet.Hash, *Program]
	if config.CacheSize > 0 {
		var err error
		cache, err = lru.New[evmlet.Hash, *Program](config.CacheSize)
		if err != nil {
			return nil, err
		}
	}
	return &Decoder{cache: cache}, nil
}

// Decode converts the given code into a program. If the provided code hash is
// not nil, it is assumed to be the Keccak-256 hash of the code and is used to
// cache the result. Programs are immutable and may be shared among runs.
func (d *Decoder) Decode(code []byte, codeHash *evmlet.Hash) *Program {
	if d.cache == nil || codeHash == nil {
		return decodeProgram(code)
	}

	if res, found := d.cache.Get(*codeHash); found {
		return res
	}

	res := decodeProgram(code)
	if len(code) > maxCachedCodeLength {
		return res
	}
	d.cache.Add(*codeHash, res)
	return res
}
