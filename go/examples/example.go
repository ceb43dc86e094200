// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package examples provides generated programs with known results, used to
// check and benchmark interpreter implementations.
package examples

import (
	"fmt"

	"github.com/Fantom-foundation/Evmlet/go/evmlet"
	"github.com/Fantom-foundation/Evmlet/go/evmlet/vm"
	"github.com/holiman/uint256"
	"golang.org/x/crypto/sha3"
)

// Example is an executable description of a program computing a single value
// from a size parameter.
type Example struct {
	exampleSpec
	code     []byte
	codeHash evmlet.Hash
	size     int
}

// exampleSpec specifies a program generator and a reference function
// computing the same value.
type exampleSpec struct {
	Name      string
	generate  func(size int) []byte      // produces the code for the given size
	reference func(size int) uint256.Int // computes the expected top of the stack
}

func (s exampleSpec) build(size int) Example {
	code := s.generate(size)
	hasher := sha3.NewLegacyKeccak256()
	hasher.Write(code)
	var hash evmlet.Hash
	hasher.Sum(hash[0:0])
	return Example{
		exampleSpec: s,
		code:        code,
		codeHash:    hash,
		size:        size,
	}
}

// Code returns the byte code of this example.
func (e *Example) Code() []byte {
	return e.code
}

func (e *Example) String() string {
	return fmt.Sprintf("%s-%d", e.Name, e.size)
}

type Result struct {
	Value uint256.Int
	Steps uint64
}

// RunOn runs this example on the given interpreter and returns the value on
// top of the final stack.
func (e *Example) RunOn(interpreter evmlet.Interpreter) (Result, error) {
	res, err := interpreter.Run(evmlet.Parameters{
		Code:     e.code,
		CodeHash: &e.codeHash,
	})
	if err != nil {
		return Result{}, err
	}
	if len(res.Stack) != 1 {
		return Result{}, fmt.Errorf("unexpected stack size; wanted 1, got %d", len(res.Stack))
	}
	return Result{
		Value: res.Stack[0],
		Steps: res.Steps,
	}, nil
}

// RunReference runs the reference function of this example to produce the
// expected result.
func (e *Example) RunReference() uint256.Int {
	return e.reference(e.size)
}

// GetAllExamples returns all examples in the given size.
func GetAllExamples(size int) []Example {
	return []Example{
		GetArithmeticExample(size),
		GetMemoryExample(size),
		GetByteExample(size),
	}
}

// appendPush appends the shortest supported push instruction for the given
// value to the code.
func appendPush(code []byte, value *uint256.Int) []byte {
	switch bits := value.BitLen(); {
	case bits <= 8:
		return append(code, byte(vm.PUSH1), byte(value.Uint64()))
	case bits <= 16:
		v := value.Uint64()
		return append(code, byte(vm.PUSH2), byte(v>>8), byte(v))
	}
	word := value.Bytes32()
	return append(append(code, byte(vm.PUSH32)), word[:]...)
}
