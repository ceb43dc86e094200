// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package examples

import (
	"github.com/Fantom-foundation/Evmlet/go/evmlet/vm"
	"github.com/holiman/uint256"
)

// GetMemoryExample stores size words in consecutive memory slots, loads them
// back and sums them up.
func GetMemoryExample(size int) Example {
	return exampleSpec{
		Name:      "memory",
		generate:  memoryCode,
		reference: memory,
	}.build(size)
}

// memoryWord is the value stored in the i-th memory slot. It covers the full
// word width to exercise 32-byte pushes.
func memoryWord(i int) *uint256.Int {
	res := uint256.NewInt(uint64(i) + 1)
	return res.Or(res, new(uint256.Int).Lsh(uint256.NewInt(uint64(i)+1), 200))
}

func memoryCode(size int) []byte {
	var code []byte
	for i := 0; i < size; i++ {
		code = appendPush(code, memoryWord(i))
		code = appendPush(code, uint256.NewInt(uint64(i)*32))
		code = append(code, byte(vm.MSTORE))
	}
	code = appendPush(code, uint256.NewInt(0))
	for i := 0; i < size; i++ {
		code = appendPush(code, uint256.NewInt(uint64(i)*32))
		code = append(code, byte(vm.MLOAD), byte(vm.ADD))
	}
	return code
}

func memory(size int) uint256.Int {
	result := uint256.NewInt(0)
	for i := 0; i < size; i++ {
		result.Add(result, memoryWord(i))
	}
	return *result
}

// GetByteExample fills size words of memory byte by byte using MSTORE8 and
// sums up the resulting words.
func GetByteExample(size int) Example {
	return exampleSpec{
		Name:      "bytes",
		generate:  byteCode,
		reference: bytesSum,
	}.build(size)
}

func byteValue(offset int) byte {
	return byte(offset*7 + 1)
}

func byteCode(size int) []byte {
	var code []byte
	for offset := 0; offset < size*32; offset++ {
		code = appendPush(code, uint256.NewInt(uint64(byteValue(offset))))
		code = appendPush(code, uint256.NewInt(uint64(offset)))
		code = append(code, byte(vm.MSTORE8))
	}
	code = appendPush(code, uint256.NewInt(0))
	for i := 0; i < size; i++ {
		code = appendPush(code, uint256.NewInt(uint64(i)*32))
		code = append(code, byte(vm.MLOAD), byte(vm.ADD))
	}
	return code
}

func bytesSum(size int) uint256.Int {
	result := uint256.NewInt(0)
	word := make([]byte, 32)
	for i := 0; i < size; i++ {
		for j := range word {
			word[j] = byteValue(i*32 + j)
		}
		result.Add(result, new(uint256.Int).SetBytes(word))
	}
	return *result
}
