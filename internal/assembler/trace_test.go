package assembler

import (
	"errors"
	"testing"

	geom "github.com/twpayne/go-geom"
)

func newTestStore(t *testing.T, nodes []Node, ways []*Way, rels []*Relation) *MemStore {
	t.Helper()
	s := NewMemStore()
	for _, n := range nodes {
		if err := s.AddNode(n); err != nil {
			t.Fatalf("AddNode: %v", err)
		}
	}
	for _, w := range ways {
		if err := s.AddWay(w); err != nil {
			t.Fatalf("AddWay: %v", err)
		}
	}
	for _, r := range rels {
		if err := s.AddRelation(r); err != nil {
			t.Fatalf("AddRelation: %v", err)
		}
	}
	return s
}

func TestTraceWay(t *testing.T) {
	store := newTestStore(t, []Node{
		{ID: 1, Lon: 0, Lat: 0},
		{ID: 2, Lon: 1, Lat: 0},
		{ID: 3, Lon: 1, Lat: 1},
	}, nil, nil)

	w := &Way{ID: 10, NodeIDs: []int64{1, 2, 3}}
	coords, err := traceWay(w, store)
	if err != nil {
		t.Fatalf("traceWay: %v", err)
	}
	want := []geom.Coord{c(0, 0), c(1, 0), c(1, 1)}
	if !coordsEqual(coords, want) {
		t.Errorf("coords = %v, want %v", coords, want)
	}
}

func TestTraceWayMissingNode(t *testing.T) {
	store := newTestStore(t, []Node{{ID: 1, Lon: 0, Lat: 0}}, nil, nil)

	w := &Way{ID: 10, NodeIDs: []int64{1, 99}}
	_, err := traceWay(w, store)
	if err == nil {
		t.Fatal("expected error for missing node")
	}
	var unres *ErrUnresolvedReference
	if !errors.As(err, &unres) {
		t.Fatalf("expected ErrUnresolvedReference, got %T", err)
	}
	if unres.OwnerKind != "way" || unres.OwnerID != 10 {
		t.Errorf("owner = %s %d, want way 10", unres.OwnerKind, unres.OwnerID)
	}
	if unres.RefKind != "node" || unres.RefID != 99 {
		t.Errorf("reference = %s %d, want node 99", unres.RefKind, unres.RefID)
	}
}

func TestReverse(t *testing.T) {
	in := []geom.Coord{c(0, 0), c(1, 0), c(2, 0)}
	got := reverse(in)
	want := []geom.Coord{c(2, 0), c(1, 0), c(0, 0)}
	if !coordsEqual(got, want) {
		t.Errorf("reverse() = %v, want %v", got, want)
	}
	// Input must not be mutated.
	if !coordsEqual(in, []geom.Coord{c(0, 0), c(1, 0), c(2, 0)}) {
		t.Error("reverse mutated its input")
	}
}

func TestFlatten(t *testing.T) {
	got := flatten(
		[]geom.Coord{c(0, 0), c(1, 0)},
		[]geom.Coord{c(2, 2)},
	)
	want := []float64{0, 0, 1, 0, 2, 2}
	if len(got) != len(want) {
		t.Fatalf("flatten() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("flatten()[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}
