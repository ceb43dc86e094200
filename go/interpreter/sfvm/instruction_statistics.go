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
	"sort"
	"strings"
	"sync"
)

// statisticRunner is a runner that collects statistics about the instruction
// sequence of the executed programs. Statistics are accumulated over all runs
// until reset.
type statisticRunner struct {
	mutex sync.Mutex
	stats *statistics
}

func (s *statisticRunner) run(c *context) (status, error) {
	stats := statsCollector{stats: newStatistics()}
	status := statusRunning
	var executionError error
	for status == statusRunning {
		// Only instructions accounted for in the step counter are recorded.
		instruction, _ := c.program.fetch(c.next)
		steps := c.steps
		status, executionError = step(c)
		if c.steps > steps {
			stats.nextOp(instruction.Op)
		}
		if executionError != nil {
			break
		}
	}
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.stats == nil {
		s.stats = newStatistics()
	}
	s.stats.insert(stats.stats)
	return status, executionError
}

// getSummary returns a summary of the collected statistics in a human-readable
// format.
func (s *statisticRunner) getSummary() string {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	if s.stats == nil {
		s.stats = newStatistics()
	}
	return s.stats.print()
}

// reset clears the collected statistics.
func (s *statisticRunner) reset() {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.stats = newStatistics()
}

// statistics contains the instruction sequence statistics of program
// executions. It counts the number of times each instruction is executed, as
// well as the number of times each pair of instructions is executed.
type statistics struct {
	count       uint64
	singleCount map[OpCode]uint64
	pairCount   map[[2]OpCode]uint64
}

func newStatistics() *statistics {
	return &statistics{
		singleCount: map[OpCode]uint64{},
		pairCount:   map[[2]OpCode]uint64{},
	}
}

// insert adds the instruction counts of the given statistics to this instance.
func (s *statistics) insert(src *statistics) {
	s.count += src.count
	for k, v := range src.singleCount {
		s.singleCount[k] += v
	}
	for k, v := range src.pairCount {
		s.pairCount[k] += v
	}
}

// print returns a human-readable summary of the collected statistics.
func (s *statistics) print() string {
	builder := strings.Builder{}
	write := func(format string, args ...interface{}) {
		builder.WriteString(fmt.Sprintf(format, args...))
	}
	percent := func(count uint64) float32 {
		return float32(count*100) / float32(s.count)
	}

	write("\n----- Statistics ------\n")
	write("\nSteps: %d\n", s.count)
	write("\nSingles:\n")
	for _, e := range getTopN(s.singleCount, 5) {
		write("\t%-30v: %d (%.2f%%)\n", e.key, e.count, percent(e.count))
	}
	write("\nPairs:\n")
	for _, e := range getTopN(s.pairCount, 5) {
		write("\t%-30v%-30v: %d (%.2f%%)\n", e.key[0], e.key[1], e.count, percent(e.count))
	}
	write("\n")
	return builder.String()
}

type entry[K any] struct {
	key   K
	count uint64
}

// getTopN returns the n most frequent entries of the given map, ties are
// ordered by their printed key to obtain a deterministic order.
func getTopN[K comparable](data map[K]uint64, n int) []entry[K] {
	list := make([]entry[K], 0, len(data))
	for k, c := range data {
		list = append(list, entry[K]{k, c})
	}
	sort.Slice(list, func(i, j int) bool {
		if list[i].count != list[j].count {
			return list[i].count > list[j].count
		}
		return fmt.Sprint(list[i].key) < fmt.Sprint(list[j].key)
	})
	if len(list) < n {
		return list
	}
	return list[0:n]
}

// statsCollector is a helper struct that keeps track of the last instruction
// executed by the VM to collect instruction pair statistics.
type statsCollector struct {
	stats *statistics
	last  OpCode
}

func (s *statsCollector) nextOp(op OpCode) {
	s.stats.count++
	s.stats.singleCount[op]++
	if s.stats.count > 1 {
		s.stats.pairCount[[2]OpCode{s.last, op}]++
	}
	s.last = op
}
