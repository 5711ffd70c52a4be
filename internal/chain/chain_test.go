package chain_test

import (
	"testing"

	"github.com/kpitt/gridlogic/internal/board"
	"github.com/kpitt/gridlogic/internal/chain"
	"github.com/kpitt/gridlogic/internal/constraint"
	"github.com/kpitt/gridlogic/internal/group"
	"github.com/kpitt/gridlogic/internal/kernel"
	"github.com/kpitt/gridlogic/internal/links"
)

func classicRegions() [][]int {
	regions := make([][]int, 9)
	for r := range regions {
		regions[r] = make([]int, 9)
		for c := range regions[r] {
			regions[r][c] = (r/3)*3 + c/3
		}
	}
	return regions
}

func newKernel() *kernel.Kernel {
	b := board.New(board.Classic9x9)
	reg := group.NewRegistry(9, 9, 9, classicRegions())
	graph := links.New()
	return kernel.New(b, reg, graph)
}

func TestSearchSkippedWhileBruteForcing(t *testing.T) {
	k := newKernel()
	s := chain.New()
	res, steps, err := s.Search(k, true)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if res != constraint.ResultNone || steps != nil {
		t.Fatalf("Search(isBruteForcing=true) = %v,%v, want ResultNone,nil", res, steps)
	}
}

func TestSearchOnFreshBoardFindsNothing(t *testing.T) {
	k := newKernel()
	s := chain.New()
	res, _, err := s.Search(k, false)
	if err != nil {
		t.Fatalf("Search error: %v", err)
	}
	if res != constraint.ResultNone {
		t.Fatalf("Search on a fresh, unconstrained board = %v, want ResultNone", res)
	}
}

func TestNewSearcherDefaultDepth(t *testing.T) {
	s := chain.New()
	if s.MaxDepth != chain.DefaultMaxDepth {
		t.Fatalf("New().MaxDepth = %d, want %d", s.MaxDepth, chain.DefaultMaxDepth)
	}
}

func TestSearchRunsCleanlyOnBivalueCell(t *testing.T) {
	k := newKernel()
	// Narrow r1c1 to a bivalue cell {1,2} and confirm the chain searcher
	// still runs cleanly over the resulting board without erroring.
	if _, err := k.KeepMask(0, 0, 1|2); err != nil {
		t.Fatalf("KeepMask error: %v", err)
	}
	s := chain.New()
	if _, _, err := s.Search(k, false); err != nil {
		t.Fatalf("Search error: %v", err)
	}
}
