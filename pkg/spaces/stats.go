package spaces

import (
	"fmt"
	"time"
)

// SearchStats collects statistics about one search run. The engine is
// single-threaded, so plain fields suffice.
type SearchStats struct {
	NodesExplored  int           // spaces taken from the top of the stack
	FailedSpaces   int           // spaces discarded as failed (commit, ordering, or fixpoint)
	StableSpaces   int           // spaces popped stable but unsolved
	SolutionsFound int           // solved spaces reported
	MaxDepth       int           // peak stack depth
	SearchTime     time.Duration // wall time across driver invocations

	started time.Time
}

// NewSearchStats creates a stats collector.
func NewSearchStats() *SearchStats {
	return &SearchStats{}
}

func (s *SearchStats) begin() {
	if s.started.IsZero() {
		s.started = time.Now()
	}
}

func (s *SearchStats) end() {
	if !s.started.IsZero() {
		s.SearchTime += time.Since(s.started)
		s.started = time.Time{}
	}
}

func (s *SearchStats) recordNode() { s.NodesExplored++ }

func (s *SearchStats) recordFailure() { s.FailedSpaces++ }

func (s *SearchStats) recordStable() { s.StableSpaces++ }

func (s *SearchStats) recordSolution() { s.SolutionsFound++ }

func (s *SearchStats) recordDepth(depth int) {
	if depth > s.MaxDepth {
		s.MaxDepth = depth
	}
}

// String returns a formatted statistics report.
func (s *SearchStats) String() string {
	return fmt.Sprintf(
		"Search Statistics:\n"+
			"  Nodes Explored: %d\n"+
			"  Failed Spaces:  %d\n"+
			"  Stable Spaces:  %d\n"+
			"  Solutions:      %d\n"+
			"  Max Depth:      %d\n"+
			"  Search Time:    %v\n",
		s.NodesExplored,
		s.FailedSpaces,
		s.StableSpaces,
		s.SolutionsFound,
		s.MaxDepth,
		s.SearchTime,
	)
}
