package assembler

import (
	"errors"
	"testing"
)

// squareNodes returns the four corner nodes of an axis-aligned square
// with the given lower-left corner, side length, and starting node id.
func squareNodes(startID int64, x, y, side float64) []Node {
	return []Node{
		{ID: startID, Lon: x, Lat: y},
		{ID: startID + 1, Lon: x + side, Lat: y},
		{ID: startID + 2, Lon: x + side, Lat: y + side},
		{ID: startID + 3, Lon: x, Lat: y + side},
	}
}

func TestComposeMultiPolygonWithHole(t *testing.T) {
	// Outer square (0,0)-(4,4) split into two ways, inner square
	// (1,1)-(2,2) as one closed way.
	nodes := append(squareNodes(1, 0, 0, 4), squareNodes(5, 1, 1, 1)...)
	ways := []*Way{
		{ID: 10, NodeIDs: []int64{1, 2, 3}},
		{ID: 11, NodeIDs: []int64{3, 4, 1}},
		{ID: 12, NodeIDs: []int64{5, 6, 7, 8, 5}},
	}
	rel := &Relation{ID: 100, Polygon: true, Members: []Member{
		{WayID: 10, Role: "outer"},
		{WayID: 11, Role: "outer"},
		{WayID: 12, Role: "inner"},
	}}
	store := newTestStore(t, nodes, ways, []*Relation{rel})

	rep := NewReport()
	mp, ids, err := composeMultiPolygon(rel, store, rep)
	if err != nil {
		t.Fatalf("composeMultiPolygon: %v", err)
	}
	if mp.NumPolygons() != 1 {
		t.Fatalf("NumPolygons() = %d, want 1", mp.NumPolygons())
	}
	p := mp.Polygon(0)
	if p.NumLinearRings() != 2 {
		t.Fatalf("NumLinearRings() = %d, want 2 (exterior + hole)", p.NumLinearRings())
	}
	if len(ids) != 2 || ids[0] != 10 || ids[1] != 12 {
		t.Errorf("component ids = %v, want [10 12]", ids)
	}
	if rep.HasFindings() {
		t.Errorf("unexpected findings: %+v", rep)
	}
}

func TestComposeMultiPolygonTwoOuters(t *testing.T) {
	// Two disjoint outer squares; the hole sits inside the second, so
	// containment must route it past the first.
	nodes := append(squareNodes(1, 0, 0, 1), squareNodes(5, 10, 10, 4)...)
	nodes = append(nodes, squareNodes(9, 11, 11, 1)...)
	ways := []*Way{
		{ID: 20, NodeIDs: []int64{1, 2, 3, 4, 1}},
		{ID: 21, NodeIDs: []int64{5, 6, 7, 8, 5}},
		{ID: 22, NodeIDs: []int64{9, 10, 11, 12, 9}},
	}
	rel := &Relation{ID: 200, Polygon: true, Members: []Member{
		{WayID: 20, Role: "outer"},
		{WayID: 21, Role: "outer"},
		{WayID: 22, Role: "inner"},
	}}
	store := newTestStore(t, nodes, ways, []*Relation{rel})

	mp, ids, err := composeMultiPolygon(rel, store, NewReport())
	if err != nil {
		t.Fatalf("composeMultiPolygon: %v", err)
	}
	if mp.NumPolygons() != 2 {
		t.Fatalf("NumPolygons() = %d, want 2", mp.NumPolygons())
	}
	if n := mp.Polygon(0).NumLinearRings(); n != 1 {
		t.Errorf("first polygon rings = %d, want 1", n)
	}
	if n := mp.Polygon(1).NumLinearRings(); n != 2 {
		t.Errorf("second polygon rings = %d, want 2", n)
	}
	if len(ids) != 3 || ids[0] != 20 || ids[1] != 21 || ids[2] != 22 {
		t.Errorf("component ids = %v, want [20 21 22]", ids)
	}
}

func TestComposeMultiPolygonForeignRole(t *testing.T) {
	nodes := squareNodes(1, 0, 0, 1)
	ways := []*Way{
		{ID: 30, NodeIDs: []int64{1, 2, 3, 4, 1}},
		{ID: 31, NodeIDs: []int64{1, 2}},
	}
	rel := &Relation{ID: 300, Polygon: true, Members: []Member{
		{WayID: 30, Role: "outer"},
		{WayID: 31, Role: "subarea"},
	}}
	store := newTestStore(t, nodes, ways, []*Relation{rel})

	rep := NewReport()
	mp, _, err := composeMultiPolygon(rel, store, rep)
	if err != nil {
		t.Fatalf("composeMultiPolygon: %v", err)
	}
	if mp.NumPolygons() != 1 {
		t.Errorf("NumPolygons() = %d, want 1", mp.NumPolygons())
	}
	if len(rep.ForeignRoles) != 1 {
		t.Fatalf("expected 1 foreign-role finding, got %d", len(rep.ForeignRoles))
	}
	fr := rep.ForeignRoles[0]
	if fr.RelationID != 300 || fr.WayID != 31 || fr.Role != "subarea" {
		t.Errorf("finding = %+v", fr)
	}
}

func TestComposeMultiPolygonUnclosed(t *testing.T) {
	nodes := squareNodes(1, 0, 0, 1)
	ways := []*Way{
		{ID: 40, NodeIDs: []int64{1, 2, 3, 4}}, // not closed
	}
	rel := &Relation{ID: 400, Polygon: true, Members: []Member{
		{WayID: 40, Role: "outer"},
	}}
	store := newTestStore(t, nodes, ways, []*Relation{rel})

	_, _, err := composeMultiPolygon(rel, store, NewReport())
	var unclosed *ErrUnclosedRing
	if !errors.As(err, &unclosed) {
		t.Fatalf("expected ErrUnclosedRing, got %v", err)
	}
	if unclosed.RelationID != 400 || unclosed.Role != "outer" || unclosed.OpenChains != 1 {
		t.Errorf("error = %+v", unclosed)
	}
}

func TestComposeMultiPolygonDegenerateMember(t *testing.T) {
	// A member way with no node refs cannot form an edge; the relation
	// is excluded with an unclosed-ring error instead of crashing.
	nodes := []Node{{ID: 1, Lon: 0, Lat: 0}}
	ways := []*Way{
		{ID: 60, NodeIDs: nil},
		{ID: 61, NodeIDs: []int64{1}},
	}
	rel := &Relation{ID: 700, Polygon: true, Members: []Member{
		{WayID: 60, Role: "outer"},
		{WayID: 61, Role: "outer"},
	}}
	store := newTestStore(t, nodes, ways, []*Relation{rel})

	_, _, err := composeMultiPolygon(rel, store, NewReport())
	var unclosed *ErrUnclosedRing
	if !errors.As(err, &unclosed) {
		t.Fatalf("expected ErrUnclosedRing, got %v", err)
	}
	if unclosed.RelationID != 700 || unclosed.Role != "outer" || unclosed.OpenChains != 2 {
		t.Errorf("error = %+v", unclosed)
	}
}

func TestComposeMultiPolygonNoExterior(t *testing.T) {
	nodes := squareNodes(1, 0, 0, 1)
	ways := []*Way{
		{ID: 50, NodeIDs: []int64{1, 2, 3, 4, 1}},
	}
	rel := &Relation{ID: 500, Polygon: true, Members: []Member{
		{WayID: 50, Role: "inner"},
	}}
	store := newTestStore(t, nodes, ways, []*Relation{rel})

	_, _, err := composeMultiPolygon(rel, store, NewReport())
	var empty *ErrEmptyPolygon
	if !errors.As(err, &empty) {
		t.Fatalf("expected ErrEmptyPolygon, got %v", err)
	}
	if empty.RelationID != 500 {
		t.Errorf("relation id = %d, want 500", empty.RelationID)
	}
}

func TestComposeMultiPolygonMissingWay(t *testing.T) {
	rel := &Relation{ID: 600, Polygon: true, Members: []Member{
		{WayID: 999, Role: "outer"},
	}}
	store := newTestStore(t, nil, nil, []*Relation{rel})

	_, _, err := composeMultiPolygon(rel, store, NewReport())
	var unres *ErrUnresolvedReference
	if !errors.As(err, &unres) {
		t.Fatalf("expected ErrUnresolvedReference, got %v", err)
	}
	if unres.OwnerKind != "relation" || unres.OwnerID != 600 || unres.RefKind != "way" || unres.RefID != 999 {
		t.Errorf("error = %+v", unres)
	}
}
