package assembler

// ring.go - chaining an unordered bag of way fragments into closed rings.
// Every way is an edge whose two endpoints are its first and last traced
// coordinates; chains grow by endpoint matching in either orientation.

import (
	geom "github.com/twpayne/go-geom"
)

// memberWay is one traced member way awaiting assembly.
type memberWay struct {
	id     int64
	coords []geom.Coord
}

// ring is an assembled coordinate chain. For closed rings the first and
// last coordinates are numerically equal; open chains are the reported
// remainder that could not be closed. seedID is the id of the way that
// started the chain and serves as the ring's id label.
type ring struct {
	seedID int64
	coords []geom.Coord
}

// ringAssembler consumes an arena of traced ways via a visited set,
// yielding zero or more closed rings plus zero or more open chains.
type ringAssembler struct {
	ways []memberWay
	used []bool
}

func newRingAssembler(ways []memberWay) *ringAssembler {
	return &ringAssembler{
		ways: ways,
		used: make([]bool, len(ways)),
	}
}

// assemble repeatedly selects the first unconsumed way, starts a chain
// with its coordinates, and extends the chain's open endpoint with
// connecting ways (reversed when needed, dropping the duplicated shared
// coordinate) until the chain closes or no connecting way remains.
//
// Tie-break when several ways share an endpoint: first match in input
// order. Closure requires exact coordinate equality, no tolerance.
// A way with fewer than two coordinates cannot form an edge; it is
// yielded as an open chain.
func (a *ringAssembler) assemble() (rings []ring, open []ring) {
	for i := range a.ways {
		if a.used[i] {
			continue
		}
		a.used[i] = true
		chain := append([]geom.Coord(nil), a.ways[i].coords...)
		seed := a.ways[i].id

		for len(chain) >= 2 && !isClosedRing(chain) {
			j, reversed := a.findConnecting(chain[len(chain)-1])
			if j < 0 {
				break
			}
			a.used[j] = true
			next := a.ways[j].coords
			if reversed {
				next = reverse(next)
			}
			// The shared endpoint is already the chain's last coordinate.
			chain = append(chain, next[1:]...)
		}

		r := ring{seedID: seed, coords: chain}
		if isClosedRing(chain) {
			rings = append(rings, r)
		} else {
			open = append(open, r)
		}
	}
	return rings, open
}

// findConnecting returns the index of the first unconsumed way with an
// endpoint equal to the chain's open endpoint, and whether the way must
// be reversed to connect. Returns -1 if no way connects.
func (a *ringAssembler) findConnecting(end geom.Coord) (int, bool) {
	for j := range a.ways {
		if a.used[j] {
			continue
		}
		coords := a.ways[j].coords
		if len(coords) == 0 {
			continue
		}
		if coordEq(coords[0], end) {
			return j, false
		}
		if coordEq(coords[len(coords)-1], end) {
			return j, true
		}
	}
	return -1, false
}

// isClosedRing reports whether the chain is a valid closed ring: at
// least 4 coordinates including the closing duplicate, first == last.
func isClosedRing(coords []geom.Coord) bool {
	if len(coords) < 4 {
		return false
	}
	return coordEq(coords[0], coords[len(coords)-1])
}
