package assembler

import (
	geom "github.com/twpayne/go-geom"
)

// traceWay resolves a way's node id sequence into an ordered coordinate
// sequence. Coordinates mirror the node order exactly: no deduplication,
// no reordering. Fails if any node id is absent from the store.
func traceWay(w *Way, store Store) ([]geom.Coord, error) {
	coords := make([]geom.Coord, 0, len(w.NodeIDs))
	for _, id := range w.NodeIDs {
		n, ok := store.Node(id)
		if !ok {
			return nil, &ErrUnresolvedReference{
				OwnerKind: "way",
				OwnerID:   w.ID,
				RefKind:   "node",
				RefID:     id,
			}
		}
		coords = append(coords, geom.Coord{n.Lon, n.Lat})
	}
	return coords, nil
}

// coordEq compares two coordinates for exact numeric equality.
// Ring closure uses no distance tolerance.
func coordEq(a, b geom.Coord) bool {
	return a[0] == b[0] && a[1] == b[1]
}

// flatten concatenates coordinate sequences into the flat layout used by
// go-geom constructors.
func flatten(seqs ...[]geom.Coord) []float64 {
	n := 0
	for _, seq := range seqs {
		n += len(seq)
	}
	flat := make([]float64, 0, n*2)
	for _, seq := range seqs {
		for _, c := range seq {
			flat = append(flat, c[0], c[1])
		}
	}
	return flat
}

// reverse returns a reversed copy of the coordinate sequence.
func reverse(coords []geom.Coord) []geom.Coord {
	out := make([]geom.Coord, len(coords))
	for i, c := range coords {
		out[len(coords)-1-i] = c
	}
	return out
}
