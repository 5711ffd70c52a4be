package links_test

import "github.com/kpitt/gridlogic/internal/links"
import "testing"

func TestAddWeakLinkIdempotent(t *testing.T) {
	g := links.New()
	g.AddWeakLink(1, 2)
	g.AddWeakLink(1, 2)
	if got := g.NeighborsOf(1); len(got) != 1 || got[0] != 2 {
		t.Fatalf("NeighborsOf(1) = %v, want [2]", got)
	}
}

func TestAddWeakLinkIsSymmetric(t *testing.T) {
	g := links.New()
	g.AddWeakLink(1, 2)
	if !g.HasWeakLink(1, 2) {
		t.Fatalf("HasWeakLink(1,2) = false, want true")
	}
	if !g.HasWeakLink(2, 1) {
		t.Fatalf("HasWeakLink(2,1) = false, want true (weak links are symmetric)")
	}
	if got := g.NeighborsOf(2); len(got) != 1 || got[0] != 1 {
		t.Fatalf("NeighborsOf(2) = %v, want [1]", got)
	}
}

func TestNeighborsOfUnknownNodeIsEmpty(t *testing.T) {
	g := links.New()
	if got := g.NeighborsOf(42); len(got) != 0 {
		t.Fatalf("NeighborsOf on untouched node = %v, want empty", got)
	}
}

func TestCloneSharesAdjacency(t *testing.T) {
	g := links.New()
	g.AddWeakLink(1, 2)
	clone := g.Clone()
	g.AddWeakLink(1, 3)
	// The graph is documented as shared-by-reference across clones
	// (immutable after InitLinks settles), so the clone sees later adds.
	got := clone.NeighborsOf(1)
	if len(got) != 2 {
		t.Fatalf("Clone NeighborsOf(1) = %v, want 2 entries (shared adjacency)", got)
	}
}
