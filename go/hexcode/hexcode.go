// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package hexcode converts between the textual hex representation of
// contract byte code and its raw byte form.
package hexcode

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Fantom-foundation/Evmlet/go/evmlet"
)

// ErrDecode is matched by every error returned by Decode.
const ErrDecode = evmlet.ConstError("invalid hex code")

// DecodeError reports the position of the first malformed character of a
// hex string.
type DecodeError struct {
	Offset int    // position in the input string
	Reason string // what is wrong at this position
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: %s at offset %d", ErrDecode, e.Reason, e.Offset)
}

func (e *DecodeError) Unwrap() error {
	return ErrDecode
}

// Decode converts a string of hex digit pairs into bytes. Upper and lower case
// digits are accepted. The input must not carry a 0x prefix or white space,
// use Normalize to strip those first.
func Decode(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, &DecodeError{Offset: len(s), Reason: "odd length"}
	}
	res := make([]byte, len(s)/2)
	for i := 0; i < len(s); i += 2 {
		high, ok := fromHexChar(s[i])
		if !ok {
			return nil, &DecodeError{Offset: i, Reason: fmt.Sprintf("invalid hex digit %q", s[i])}
		}
		low, ok := fromHexChar(s[i+1])
		if !ok {
			return nil, &DecodeError{Offset: i + 1, Reason: fmt.Sprintf("invalid hex digit %q", s[i+1])}
		}
		res[i/2] = high<<4 | low
	}
	return res, nil
}

// Encode converts the given bytes into a string of lower case hex digits.
func Encode(data []byte) string {
	return hex.EncodeToString(data)
}

// Normalize removes surrounding white space and an optional 0x prefix from a
// hex string, as typically found in files produced by compilers.
func Normalize(s string) string {
	s = strings.TrimSpace(s)
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	return s
}

func fromHexChar(c byte) (byte, bool) {
	switch {
	case '0' <= c && c <= '9':
		return c - '0', true
	case 'a' <= c && c <= 'f':
		return c - 'a' + 10, true
	case 'A' <= c && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
