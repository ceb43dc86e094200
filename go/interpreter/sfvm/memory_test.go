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
	"bytes"
	"errors"
	"math"
	"testing"

	"github.com/holiman/uint256"
)

func TestMemory_NewMemoryIsEmpty(t *testing.T) {
	m := NewMemory()
	if want, got := uint64(0), m.length(); want != got {
		t.Errorf("unexpected size of new memory, wanted %d, got %d", want, got)
	}
	if want, got := 0, len(m.Data()); want != got {
		t.Errorf("unexpected data of new memory, wanted %d bytes, got %d", want, got)
	}
}

func TestMemory_Resize_GrowsToExactSize(t *testing.T) {
	tests := map[string]struct {
		sizes []uint64
		want  uint64
	}{
		"no resize":          {sizes: []uint64{}, want: 0},
		"single byte":        {sizes: []uint64{1}, want: 1},
		"no word rounding":   {sizes: []uint64{33}, want: 33},
		"grows":              {sizes: []uint64{1, 32, 64}, want: 64},
		"never shrinks":      {sizes: []uint64{64, 32}, want: 64},
		"same size is no-op": {sizes: []uint64{32, 32}, want: 32},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			m := NewMemory()
			for _, size := range test.sizes {
				m.resize(size)
			}
			if want, got := test.want, m.length(); want != got {
				t.Errorf("unexpected memory size, wanted %d, got %d", want, got)
			}
		})
	}
}

func TestMemory_Resize_ZeroFillsNewRegionAndKeepsContent(t *testing.T) {
	m := NewMemory()
	m.resize(2)
	if err := m.setByte(1, 0xAB); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	m.resize(5)
	if want, got := []byte{0, 0xAB, 0, 0, 0}, m.Data(); !bytes.Equal(want, got) {
		t.Errorf("unexpected memory content, wanted %x, got %x", want, got)
	}
}

func TestMemory_Expand_GrowsToCoverAccessedRange(t *testing.T) {
	tests := map[string]struct {
		offset uint64
		width  uint64
		want   uint64
	}{
		"word at zero":      {offset: 0, width: 32, want: 32},
		"word at offset":    {offset: 4, width: 32, want: 36},
		"byte at zero":      {offset: 0, width: 1, want: 1},
		"last byte of word": {offset: 31, width: 1, want: 32},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			m := NewMemory()
			if err := m.expand(uint256.NewInt(test.offset), test.width, DefaultMaxMemorySize); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if want, got := test.want, m.length(); want != got {
				t.Errorf("unexpected memory size, wanted %d, got %d", want, got)
			}
		})
	}
}

func TestMemory_Expand_ReportsExceededLimit(t *testing.T) {
	tests := map[string]struct {
		offset *uint256.Int
		width  uint64
		limit  uint64
	}{
		"beyond limit": {
			offset: uint256.NewInt(33),
			width:  32,
			limit:  64,
		},
		"offset exceeds 64 bit": {
			offset: new(uint256.Int).Lsh(uint256.NewInt(1), 64),
			width:  1,
			limit:  DefaultMaxMemorySize,
		},
		"offset plus width overflows": {
			offset: uint256.NewInt(math.MaxUint64),
			width:  32,
			limit:  math.MaxUint64,
		},
		"maximum word": {
			offset: new(uint256.Int).SetAllOne(),
			width:  32,
			limit:  DefaultMaxMemorySize,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			m := NewMemory()
			err := m.expand(test.offset, test.width, test.limit)
			if !errors.Is(err, ErrMemoryLimit) {
				t.Errorf("expected memory limit error, got %v", err)
			}
			if want, got := uint64(0), m.length(); want != got {
				t.Errorf("memory should not grow on failure, got size %d", got)
			}
		})
	}
}

func TestMemory_Expand_AcceptsAccessUpToLimit(t *testing.T) {
	m := NewMemory()
	if err := m.expand(uint256.NewInt(32), 32, 64); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want, got := uint64(64), m.length(); want != got {
		t.Errorf("unexpected memory size, wanted %d, got %d", want, got)
	}
}

func TestMemory_SetWord_GetWord_RoundTrip(t *testing.T) {
	value := new(uint256.Int).SetBytes([]byte{
		0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08,
		0x09, 0x0a, 0x0b, 0x0c, 0x0d, 0x0e, 0x0f, 0x10,
		0x11, 0x12, 0x13, 0x14, 0x15, 0x16, 0x17, 0x18,
		0x19, 0x1a, 0x1b, 0x1c, 0x1d, 0x1e, 0x1f, 0x20,
	})

	for _, offset := range []uint64{0, 1, 31, 32, 100} {
		m := NewMemory()
		m.resize(offset + 32)
		if err := m.setWord(offset, value); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got := uint256.Int{}
		if err := m.getWord(offset, &got); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !value.Eq(&got) {
			t.Errorf("unexpected value at offset %d, wanted %v, got %v", offset, value, &got)
		}
		want := value.Bytes32()
		if got := m.Data()[offset:]; !bytes.Equal(want[:], got) {
			t.Errorf("word is not stored big endian, wanted %x, got %x", want, got)
		}
	}
}

func TestMemory_SetWord_PadsSmallValuesWithLeadingZeros(t *testing.T) {
	m := NewMemory()
	m.resize(32)
	if err := m.setWord(0, uint256.NewInt(0x2a)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := make([]byte, 32)
	want[31] = 0x2a
	if got := m.Data(); !bytes.Equal(want, got) {
		t.Errorf("unexpected memory content, wanted %x, got %x", want, got)
	}
}

func TestMemory_SetByte_TouchesExactlyOneByte(t *testing.T) {
	m := NewMemory()
	m.resize(3)
	if err := m.setByte(1, 0xff); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want, got := []byte{0, 0xff, 0}, m.Data(); !bytes.Equal(want, got) {
		t.Errorf("unexpected memory content, wanted %x, got %x", want, got)
	}
}

func TestMemory_AccessBeyondSizeIsAnError(t *testing.T) {
	m := NewMemory()
	m.resize(32)

	word := uint256.Int{}
	if err := m.getWord(1, &word); !errors.Is(err, errMemoryAccess) {
		t.Errorf("expected memory access error for getWord, got %v", err)
	}
	if err := m.setWord(1, &word); !errors.Is(err, errMemoryAccess) {
		t.Errorf("expected memory access error for setWord, got %v", err)
	}
	if err := m.setByte(32, 1); !errors.Is(err, errMemoryAccess) {
		t.Errorf("expected memory access error for setByte, got %v", err)
	}
	if err := m.setByte(math.MaxUint64, 1); !errors.Is(err, errMemoryAccess) {
		t.Errorf("expected memory access error for overflowing offset, got %v", err)
	}
	if want, got := uint64(32), m.length(); want != got {
		t.Errorf("failed accesses should not change memory size, got %d", got)
	}
}

func TestMemory_Data_ReturnsCopy(t *testing.T) {
	m := NewMemory()
	m.resize(1)
	data := m.Data()
	data[0] = 1
	if want, got := byte(0), m.Data()[0]; want != got {
		t.Errorf("modifying the result of Data should not change the memory")
	}
}
