// Copyright (c) 2024 Fantom Foundation
//
// Use of this software is governed by the Business Source License included
// in the LICENSE file and at fantom.foundation/bsl11.
//
// Change Date: 2028-4-16
//
// On the date above, in accordance with the Business Source License, use of
// this software will be governed by the GNU Lesser General Public License v3.

// Package sfvm implements the short-form VM, an interpreter for a small subset
// of the EVM instruction set. Byte code is decoded into a program of
// instructions first, which is then executed by a simple dispatch loop.
package sfvm

import (
	"fmt"
	"io"
	"os"

	"github.com/Fantom-foundation/Evmlet/go/evmlet"
)

// Registers the short-form VM as a possible interpreter implementation.
func init() {
	configs := map[string]Config{
		// The default configuration to be used for production purposes.
		"sfvm": {},

		// Traces every executed instruction to stderr.
		"sfvm-logging": {Trace: os.Stderr},

		// Collects instruction statistics which can be obtained by DumpProfile.
		"sfvm-stats": {CollectStatistics: true},

		// Decodes the code on every run.
		"sfvm-no-code-cache": {DecoderConfig: DecoderConfig{CacheSize: -1}},
	}

	for name, config := range configs {
		config := config
		err := evmlet.RegisterInterpreterFactory(name, func(override any) (evmlet.Interpreter, error) {
			if override == nil {
				return NewVm(config)
			}
			custom, ok := override.(Config)
			if !ok {
				return nil, fmt.Errorf("invalid configuration type %T, expected sfvm.Config", override)
			}
			return NewVm(config.merge(custom))
		})
		if err != nil {
			panic(fmt.Sprintf("failed to register interpreter %s: %v", name, err))
		}
	}
}

// Config contains the options of a short-form VM instance.
type Config struct {
	DecoderConfig

	// MaxMemorySize is the upper limit of the memory of a single run in
	// bytes. If zero, DefaultMaxMemorySize is used.
	MaxMemorySize uint64

	// Trace, if not nil, receives a line for each executed instruction.
	Trace io.Writer

	// CollectStatistics enables the collection of instruction statistics.
	// It can not be combined with Trace.
	CollectStatistics bool
}

// merge returns a copy of this configuration in which all options set in the
// given override replace the current values. Zero values in the override keep
// the current values.
func (c Config) merge(override Config) Config {
	if override.CacheSize != 0 {
		c.CacheSize = override.CacheSize
	}
	if override.MaxMemorySize != 0 {
		c.MaxMemorySize = override.MaxMemorySize
	}
	if override.Trace != nil {
		c.Trace = override.Trace
	}
	if override.CollectStatistics {
		c.CollectStatistics = true
	}
	return c
}

type sfvm struct {
	config  Config
	decoder *Decoder
	runner  runner
}

// NewVm creates a new short-form VM instance using the given configuration.
func NewVm(config Config) (*sfvm, error) {
	if config.Trace != nil && config.CollectStatistics {
		return nil, fmt.Errorf("invalid configuration: tracing and statistics can not be combined")
	}
	decoder, err := NewDecoder(config.DecoderConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create decoder: %v", err)
	}

	var runner runner = vanillaRunner{}
	if config.Trace != nil {
		runner = newLogger(config.Trace)
	} else if config.CollectStatistics {
		runner = &statisticRunner{stats: newStatistics()}
	}
	return &sfvm{config: config, decoder: decoder, runner: runner}, nil
}

func (v *sfvm) Run(params evmlet.Parameters) (evmlet.Result, error) {
	program := v.decoder.Decode(params.Code, params.CodeHash)

	config := interpreterConfig{
		maxMemorySize: v.config.MaxMemorySize,
		runner:        v.runner,
	}
	return run(config, program)
}

// DumpProfile returns the statistics collected since the last reset. The
// result is empty if statistics are not collected by this instance.
func (v *sfvm) DumpProfile() string {
	if statsRunner, ok := v.runner.(*statisticRunner); ok {
		return statsRunner.getSummary()
	}
	return ""
}

func (v *sfvm) ResetProfile() {
	if statsRunner, ok := v.runner.(*statisticRunner); ok {
		statsRunner.reset()
	}
}
