// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package evmlet

import (
	"slices"
	"testing"

	"go.uber.org/mock/gomock"
)

func TestInterpreterRegistry_RegisteredFactoriesCanBeRetrieved(t *testing.T) {
	ctrl := gomock.NewController(t)
	mock := NewMockInterpreter(ctrl)

	const name = "Registry-Test-Interpreter"
	err := RegisterInterpreterFactory(name, func(any) (Interpreter, error) {
		return mock, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, lookup := range []string{name, "registry-test-interpreter", "REGISTRY-TEST-INTERPRETER"} {
		got, err := NewInterpreter(lookup)
		if err != nil {
			t.Fatalf("failed to create interpreter %q: %v", lookup, err)
		}
		if got != mock {
			t.Errorf("lookup of %q produced wrong interpreter", lookup)
		}
	}

	if !slices.Contains(RegisteredInterpreterNames(), "registry-test-interpreter") {
		t.Errorf("registered name is missing in %v", RegisteredInterpreterNames())
	}
	if _, found := GetAllRegisteredInterpreters()["registry-test-interpreter"]; !found {
		t.Errorf("registered factory is missing")
	}
}

func TestInterpreterRegistry_ConfigurationIsForwardedToFactory(t *testing.T) {
	const name = "registry-test-config"
	var seen any
	err := RegisterInterpreterFactory(name, func(config any) (Interpreter, error) {
		seen = config
		return nil, nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := NewInterpreter(name, 12); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if seen != 12 {
		t.Errorf("configuration was not forwarded, got %v", seen)
	}

	if _, err := NewInterpreter(name, 1, 2); err == nil {
		t.Errorf("expected error for too many configurations")
	}
}

func TestInterpreterRegistry_UnknownNamesAreReported(t *testing.T) {
	if _, err := NewInterpreter("registry-test-unknown"); err == nil {
		t.Errorf("expected error for unknown interpreter")
	}
	if factory := GetInterpreterFactory("registry-test-unknown"); factory != nil {
		t.Errorf("expected no factory for unknown interpreter")
	}
}

func TestInterpreterRegistry_MultipleRegistrationsAreRejected(t *testing.T) {
	const name = "registry-test-duplicate"
	factory := func(any) (Interpreter, error) { return nil, nil }
	if err := RegisterInterpreterFactory(name, factory); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := RegisterInterpreterFactory(name, factory); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestInterpreterRegistry_NilFactoriesAreRejected(t *testing.T) {
	if err := RegisterInterpreterFactory("registry-test-nil", nil); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

func TestHaltReason_String(t *testing.T) {
	tests := map[HaltReason]string{
		HaltedEndOfCode: "end of code",
		HaltedStop:      "stop",
		HaltReason(7):   "HaltReason(7)",
	}
	for reason, want := range tests {
		if got := reason.String(); want != got {
			t.Errorf("unexpected print, wanted %s, got %s", want, got)
		}
	}
}

func TestHash_String(t *testing.T) {
	hash := Hash{0x12, 0x34}
	want := "0x1234000000000000000000000000000000000000000000000000000000000000"
	if got := hash.String(); want != got {
		t.Errorf("unexpected print, wanted %s, got %s", want, got)
	}
}
