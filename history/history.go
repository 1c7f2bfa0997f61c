// Package history keeps a bounded list of submitted lines with a recall
// index for up/down navigation.
package history

import (
	"github.com/lixenwraith/kterm/constant"
)

// Overflow is the policy applied when a push finds the store full
type Overflow uint8

const (
	// EvictOldest drops the oldest entry to make room
	EvictOldest Overflow = iota
	// RejectNew keeps the store unchanged
	RejectNew
)

// Policy configures a Store
type Policy struct {
	Capacity       int
	Overflow       Overflow
	DedupeAdjacent bool // Skip a line equal to the newest entry
}

// DefaultPolicy is a ring of HistoryCapacity entries without dedupe
func DefaultPolicy() Policy {
	return Policy{
		Capacity: constant.HistoryCapacity,
		Overflow: EvictOldest,
	}
}

// Store is a ring buffer of lines, oldest first
// Recall index is in [0, Len()]; Len() means past the newest entry
type Store struct {
	policy  Policy
	entries []string
	head    int // Ring position of the oldest entry
	count   int
	index   int
}

// New creates an empty store; capacity below 1 falls back to HistoryCapacity
func New(p Policy) *Store {
	if p.Capacity < 1 {
		p.Capacity = constant.HistoryCapacity
	}
	return &Store{
		policy:  p,
		entries: make([]string, p.Capacity),
	}
}

// Push appends line subject to policy and resets the recall index
// Returns whether the line was stored
func (s *Store) Push(line string) bool {
	defer s.resetIndex()

	if line == "" {
		return false
	}
	if len(line) > constant.MaxLineLength {
		line = line[:constant.MaxLineLength]
	}
	if s.policy.DedupeAdjacent && s.count > 0 && s.at(s.count-1) == line {
		return false
	}

	if s.count == len(s.entries) {
		if s.policy.Overflow == RejectNew {
			return false
		}
		s.entries[s.head] = line
		s.head = (s.head + 1) % len(s.entries)
		return true
	}

	s.entries[(s.head+s.count)%len(s.entries)] = line
	s.count++
	return true
}

// RecallOlder moves one entry back; false when already at the oldest
func (s *Store) RecallOlder() (string, bool) {
	if s.index == 0 {
		return "", false
	}
	s.index--
	return s.at(s.index), true
}

// RecallNewer moves one entry forward; reaching past the newest returns
// an empty line. False when already past the newest
func (s *Store) RecallNewer() (string, bool) {
	if s.index >= s.count {
		return "", false
	}
	s.index++
	if s.index == s.count {
		return "", true
	}
	return s.at(s.index), true
}

// Len returns the number of stored lines
func (s *Store) Len() int {
	return s.count
}

// Cap returns the configured capacity
func (s *Store) Cap() int {
	return len(s.entries)
}

// Index returns the recall index
func (s *Store) Index() int {
	return s.index
}

// Entries returns the lines oldest first
func (s *Store) Entries() []string {
	out := make([]string, s.count)
	for i := range out {
		out[i] = s.at(i)
	}
	return out
}

// at returns the i-th entry counting from the oldest
func (s *Store) at(i int) string {
	return s.entries[(s.head+i)%len(s.entries)]
}

func (s *Store) resetIndex() {
	s.index = s.count
}
