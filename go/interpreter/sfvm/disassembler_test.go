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
	"errors"
	"strings"
	"testing"
)

func TestDisassemble_ListsInstructions(t *testing.T) {
	tests := map[string]struct {
		code string
		want []string
	}{
		"empty code": {
			code: "",
			want: []string{"END"},
		},
		"stop": {
			code: "00",
			want: []string{
				"0x0\tSTOP\tHalts execution",
				"END",
			},
		},
		"stop does not end listing": {
			code: "0001",
			want: []string{
				"0x0\tSTOP\tHalts execution",
				"0x1\tADD\tAddition operation",
				"END",
			},
		},
		"addition program": {
			code: "6001600201",
			want: []string{
				"0x0\tPUSH1\tPlace 1-byte item on the stack 0x1",
				"0x2\tPUSH1\tPlace 1-byte item on the stack 0x2",
				"0x4\tADD\tAddition operation",
				"END",
			},
		},
		"memory program": {
			code: "602a60005260005160ff601f5302",
			want: []string{
				"0x0\tPUSH1\tPlace 1-byte item on the stack 0x2a",
				"0x2\tPUSH1\tPlace 1-byte item on the stack 0x0",
				"0x4\tMSTORE\tSave word to memory",
				"0x5\tPUSH1\tPlace 1-byte item on the stack 0x0",
				"0x7\tMLOAD\tLoad word from memory",
				"0x8\tPUSH1\tPlace 1-byte item on the stack 0xff",
				"0xa\tPUSH1\tPlace 1-byte item on the stack 0x1f",
				"0xc\tMSTORE8\tSave byte to memory",
				"0xd\tMUL\tMultiplication operation",
				"END",
			},
		},
		"push2": {
			code: "611234",
			want: []string{
				"0x0\tPUSH2\tPlace 2-bytes item on the stack 0x1234",
				"END",
			},
		},
		"unknown": {
			code: "ff",
			want: []string{
				"0x0\tUNKNOWN\tOpcode not found 0xff",
				"END",
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			var out strings.Builder
			if err := Disassemble(&out, hexCode(t, test.code)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if want, got := strings.Join(test.want, "\n")+"\n", out.String(); want != got {
				t.Errorf("unexpected listing, wanted\n%s\ngot\n%s", want, got)
			}
		})
	}
}

func TestDisassemble_Push32ListsFullValue(t *testing.T) {
	var out strings.Builder
	code := "7f" + strings.Repeat("ab", 32)
	if err := Disassemble(&out, hexCode(t, code)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "0x0\tPUSH32\tPlace 32-bytes item on the stack 0x" + strings.Repeat("ab", 32) + "\nEND\n"
	if got := out.String(); want != got {
		t.Errorf("unexpected listing, wanted %q, got %q", want, got)
	}
}

func TestDisassemble_TruncatedImmediateEndsListingWithError(t *testing.T) {
	var out strings.Builder
	err := Disassemble(&out, hexCode(t, "006101"))
	if !errors.Is(err, ErrOutOfBoundsImmediate) {
		t.Errorf("expected out-of-bounds immediate error, got %v", err)
	}
	if want, got := "0x0\tSTOP\tHalts execution\n", out.String(); want != got {
		t.Errorf("unexpected partial listing, wanted %q, got %q", want, got)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("injected error")
}

func TestDisassemble_WriteErrorsAreReported(t *testing.T) {
	if err := Disassemble(failingWriter{}, hexCode(t, "00")); err == nil {
		t.Errorf("expected write error to be reported")
	}
}

func walkAll(t *testing.T, code []byte) []Instruction {
	t.Helper()
	var res []Instruction
	err := walk(code, func(instruction Instruction) error {
		res = append(res, instruction)
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return res
}

func TestWalk_IncludesEnd(t *testing.T) {
	instructions := walkAll(t, hexCode(t, "60010000"))
	want := []OpCode{PUSH1, STOP, STOP, END}
	if len(want) != len(instructions) {
		t.Fatalf("unexpected number of instructions, wanted %d, got %d", len(want), len(instructions))
	}
	for i, op := range want {
		if got := instructions[i].Op; op != got {
			t.Errorf("unexpected instruction %d, wanted %v, got %v", i, op, got)
		}
	}
}

func TestWalk_MatchesProgram(t *testing.T) {
	code := hexCode(t, "6001600201ff00")
	program := decodeProgram(code)
	for i, want := range walkAll(t, code) {
		got, err := program.fetch(i)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want != got {
			t.Errorf("listing and program differ at %d, wanted %v, got %v", i, want, got)
		}
	}
}
