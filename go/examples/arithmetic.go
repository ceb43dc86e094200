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

// GetArithmeticExample computes
//
//	result = 0
//	for i := 1; i <= size; i++ {
//		result = (result + i) * i
//	}
//
// in 256-bit arithmetic, unrolled into straight-line code.
func GetArithmeticExample(size int) Example {
	return exampleSpec{
		Name:      "arithmetic",
		generate:  arithmeticCode,
		reference: arithmetic,
	}.build(size)
}

func arithmeticCode(size int) []byte {
	code := appendPush(nil, uint256.NewInt(0))
	for i := 1; i <= size; i++ {
		value := uint256.NewInt(uint64(i))
		code = appendPush(code, value)
		code = append(code, byte(vm.ADD))
		code = appendPush(code, value)
		code = append(code, byte(vm.MUL))
	}
	return code
}

func arithmetic(size int) uint256.Int {
	result := uint256.NewInt(0)
	for i := 1; i <= size; i++ {
		value := uint256.NewInt(uint64(i))
		result.Add(result, value)
		result.Mul(result, value)
	}
	return *result
}
