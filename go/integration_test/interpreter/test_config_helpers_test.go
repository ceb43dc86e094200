// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

package interpreter_test

import (
	"slices"
	"sort"
	"strings"

	"github.com/Fantom-foundation/Evmlet/go/evmlet"
	_ "github.com/Fantom-foundation/Evmlet/go/interpreter/sfvm"
	"golang.org/x/exp/maps"
)

// getAllInterpreterVariantsForTests returns all registered interpreter variants
// that should be covered in integration tests.
func getAllInterpreterVariantsForTests() []string {
	// Logging variants write every executed instruction to stderr.
	variants := slices.DeleteFunc(
		maps.Keys(evmlet.GetAllRegisteredInterpreters()),
		func(s string) bool { return strings.Contains(s, "logging") },
	)
	sort.Strings(variants)
	return variants
}
