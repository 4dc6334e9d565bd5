package assembler

import (
	geom "github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/xy"
)

// composeMultiPolygon assembles a polygon relation's member ways into one
// multipolygon. Members are partitioned by declared role into the "outer"
// and "inner" groups; any other role is excluded from assembly and
// surfaced as a data-quality finding. Each group is assembled into rings
// independently.
//
// Every outer ring starts its own polygon. Each inner ring becomes a hole
// of the first polygon whose exterior contains the ring's first
// coordinate; an inner ring contained by no exterior falls back to the
// first polygon.
//
// The returned id labels carry one entry per assembled ring, outers
// first, in assembly order.
func composeMultiPolygon(rel *Relation, store Store, rep *Report) (*geom.MultiPolygon, []int64, error) {
	var outer, inner []memberWay
	for _, m := range rel.Members {
		w, ok := store.Way(m.WayID)
		if !ok {
			return nil, nil, &ErrUnresolvedReference{
				OwnerKind: "relation",
				OwnerID:   rel.ID,
				RefKind:   "way",
				RefID:     m.WayID,
			}
		}
		coords, err := traceWay(w, store)
		if err != nil {
			return nil, nil, err
		}
		switch m.Role {
		case "outer":
			outer = append(outer, memberWay{id: w.ID, coords: coords})
		case "inner":
			inner = append(inner, memberWay{id: w.ID, coords: coords})
		default:
			rep.addForeignRole(rel.ID, m.WayID, m.Role)
		}
	}

	outerRings, outerOpen := newRingAssembler(outer).assemble()
	innerRings, innerOpen := newRingAssembler(inner).assemble()

	if len(outerOpen) > 0 {
		return nil, nil, &ErrUnclosedRing{RelationID: rel.ID, Role: "outer", OpenChains: len(outerOpen)}
	}
	if len(innerOpen) > 0 {
		return nil, nil, &ErrUnclosedRing{RelationID: rel.ID, Role: "inner", OpenChains: len(innerOpen)}
	}
	if len(outerRings) == 0 {
		return nil, nil, &ErrEmptyPolygon{RelationID: rel.ID}
	}

	ids := make([]int64, 0, len(outerRings)+len(innerRings))
	polys := make([]*geom.Polygon, 0, len(outerRings))
	exteriors := make([][]float64, 0, len(outerRings))
	for _, r := range outerRings {
		flat := flatten(r.coords)
		p := geom.NewPolygon(geom.XY)
		p.Push(geom.NewLinearRingFlat(geom.XY, flat))
		polys = append(polys, p)
		exteriors = append(exteriors, flat)
		ids = append(ids, r.seedID)
	}

	for _, r := range innerRings {
		target := 0
		for i, ext := range exteriors {
			if xy.IsPointInRing(geom.XY, r.coords[0], ext) {
				target = i
				break
			}
		}
		polys[target].Push(geom.NewLinearRingFlat(geom.XY, flatten(r.coords)))
		ids = append(ids, r.seedID)
	}

	mp := geom.NewMultiPolygon(geom.XY)
	for _, p := range polys {
		mp.Push(p)
	}
	return mp, ids, nil
}
