package assembler

// assemble.go - the pass driver. One entity graph in, five (geometry
// collection, attribute table) pairs out. Relations are processed first,
// then ways not claimed by a polygon relation, then nodes. No state
// survives the pass.

import (
	"strconv"

	geom "github.com/twpayne/go-geom"
)

// Category identifies one of the five output categories.
type Category int

const (
	CategoryPoints Category = iota
	CategoryLineStrings
	CategoryPolygons
	CategoryMultiPolygons
	CategoryMultiLineStrings
)

// String returns a human-readable name for the category.
func (c Category) String() string {
	switch c {
	case CategoryPoints:
		return "points"
	case CategoryLineStrings:
		return "linestrings"
	case CategoryPolygons:
		return "polygons"
	case CategoryMultiPolygons:
		return "multipolygons"
	case CategoryMultiLineStrings:
		return "multilinestrings"
	default:
		return "unknown"
	}
}

// WayGeometry selects how standalone ways are assembled. Exactly two
// kinds exist; any other value is an interface misuse rejected with
// ErrInvalidCategory.
type WayGeometry int

const (
	// WayLineString assembles open ways into linestrings.
	WayLineString WayGeometry = iota + 1

	// WayPolygon assembles self-closed ways into single-ring polygons.
	WayPolygon
)

// Collection pairs one output category's geometries with its feature
// labels and attribute table. Invariant: len(Geoms) == len(Labels) ==
// Table row count, at all times.
type Collection struct {
	Category Category

	// Labels holds one feature label per geometry, in insertion order.
	Labels []string

	// Geoms holds the feature geometries. The concrete type is fixed per
	// category: *geom.Point, *geom.LineString, *geom.Polygon,
	// *geom.MultiPolygon, or *geom.MultiLineString.
	Geoms []geom.T

	// ComponentIDs holds, for relation-derived features only, one way id
	// label per geometry component (ring or line segment), parallel to
	// Geoms. Nil for node and way categories.
	ComponentIDs [][]int64

	// Table is the feature-attribute table; row i describes Geoms[i].
	Table *Table
}

// Options configures an assembly pass.
type Options struct {
	// ValidateShapes runs the full shape-consistency check over every
	// collection at the end of the pass. Per-feature checks always run.
	ValidateShapes bool
}

// DefaultOptions returns pass options with defaults.
func DefaultOptions() Options {
	return Options{ValidateShapes: true}
}

// Result holds the five category outputs of one pass plus the report of
// non-fatal data-quality findings.
type Result struct {
	Points           *Collection
	LineStrings      *Collection
	Polygons         *Collection
	MultiPolygons    *Collection
	MultiLineStrings *Collection
	Report           *Report
}

// Assemble runs one full pass over the entity graph.
//
// The pass either completes with five category outputs (some possibly
// empty) or aborts with an error naming the offending entity id:
// unresolved references and shape mismatches abort, while unclosed
// rings, foreign roles, and dropped keys are recovered by exclusion and
// recorded in the result's report.
func Assemble(store Store, keys KeyUniverses, opts Options) (*Result, error) {
	rep := NewReport()

	multiPolygons, multiLineStrings, err := AssembleRelations(store, keys, rep)
	if err != nil {
		return nil, err
	}

	exclude := PolygonWayIDs(store)
	polygons, err := AssembleWays(store, keys, WayPolygon, exclude, rep)
	if err != nil {
		return nil, err
	}
	lineStrings, err := AssembleWays(store, keys, WayLineString, exclude, rep)
	if err != nil {
		return nil, err
	}

	points, err := AssembleNodes(store, keys, rep)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Points:           points,
		LineStrings:      lineStrings,
		Polygons:         polygons,
		MultiPolygons:    multiPolygons,
		MultiLineStrings: multiLineStrings,
		Report:           rep,
	}
	if opts.ValidateShapes {
		for _, c := range res.Collections() {
			if err := CheckShapes(c); err != nil {
				return nil, err
			}
		}
	}
	return res, nil
}

// Collections returns the five collections in their fixed output order.
func (r *Result) Collections() []*Collection {
	return []*Collection{
		r.Points, r.LineStrings, r.Polygons, r.MultiPolygons, r.MultiLineStrings,
	}
}

// AssembleRelations processes every relation in document order: polygon
// relations become one multipolygon feature each, all others become one
// multilinestring feature per distinct member role. Relations whose
// rings cannot be closed are excluded and reported.
func AssembleRelations(store Store, keys KeyUniverses, rep *Report) (*Collection, *Collection, error) {
	mp := &Collection{
		Category:     CategoryMultiPolygons,
		ComponentIDs: [][]int64{},
		Table:        NewTable(keys.RelationKeys),
	}
	mls := &Collection{
		Category:     CategoryMultiLineStrings,
		ComponentIDs: [][]int64{},
		Table:        NewTable(keys.RelationKeys),
	}

	for _, rel := range store.Relations() {
		if rel.Polygon {
			g, ids, err := composeMultiPolygon(rel, store, rep)
			if err != nil {
				switch e := err.(type) {
				case *ErrUnclosedRing:
					rep.UnclosedRings = append(rep.UnclosedRings, e)
					continue
				case *ErrEmptyPolygon:
					rep.EmptyPolygons = append(rep.EmptyPolygons, e)
					continue
				default:
					return nil, nil, err
				}
			}
			label := strconv.FormatInt(rel.ID, 10)
			if err := appendFeature(mp, label, g, ids, rel.Tags, rep); err != nil {
				return nil, nil, err
			}
			continue
		}

		for _, role := range distinctRoles(rel) {
			g, ids, err := composeMultiLineString(rel, role, store)
			if err != nil {
				return nil, nil, err
			}
			label := relationRoleLabel(rel.ID, role)
			if err := appendFeature(mls, label, g, ids, rel.Tags, rep); err != nil {
				return nil, nil, err
			}
		}
	}
	return mp, mls, nil
}

// AssembleWays assembles the standalone ways of one geometry kind:
// self-closed ways into polygons, open ways into linestrings. Ways in
// the exclude set (members of polygon relations) are skipped.
func AssembleWays(store Store, keys KeyUniverses, kind WayGeometry, exclude map[int64]bool, rep *Report) (*Collection, error) {
	var cat Category
	switch kind {
	case WayLineString:
		cat = CategoryLineStrings
	case WayPolygon:
		cat = CategoryPolygons
	default:
		return nil, &ErrInvalidCategory{Kind: kind}
	}

	c := &Collection{
		Category: cat,
		Table:    NewTable(keys.WayKeys),
	}
	err := store.EachWay(func(w *Way) error {
		if exclude[w.ID] {
			return nil
		}
		if w.IsClosed() != (kind == WayPolygon) {
			return nil
		}
		coords, err := traceWay(w, store)
		if err != nil {
			return err
		}
		var g geom.T
		if kind == WayPolygon {
			p := geom.NewPolygon(geom.XY)
			p.Push(geom.NewLinearRingFlat(geom.XY, flatten(coords)))
			g = p
		} else {
			g = geom.NewLineStringFlat(geom.XY, flatten(coords))
		}
		return appendFeature(c, strconv.FormatInt(w.ID, 10), g, nil, w.Tags, rep)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// AssembleNodes emits every node as a point feature.
func AssembleNodes(store Store, keys KeyUniverses, rep *Report) (*Collection, error) {
	c := &Collection{
		Category: CategoryPoints,
		Table:    NewTable(keys.NodeKeys),
	}
	err := store.EachNode(func(n Node) error {
		g := geom.NewPointFlat(geom.XY, []float64{n.Lon, n.Lat})
		return appendFeature(c, strconv.FormatInt(n.ID, 10), g, nil, n.Tags, rep)
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

// PolygonWayIDs returns the set of way ids referenced by any polygon
// relation. Such ways are consumed by the relation pass and excluded
// from standalone way assembly.
func PolygonWayIDs(store Store) map[int64]bool {
	ids := make(map[int64]bool)
	for _, rel := range store.Relations() {
		if !rel.Polygon {
			continue
		}
		for _, m := range rel.Members {
			ids[m.WayID] = true
		}
	}
	return ids
}

// appendFeature appends one feature to the collection: geometry, label,
// component ids where present, and the parallel attribute row. The
// per-feature shape check runs on every append.
func appendFeature(c *Collection, label string, g geom.T, componentIDs []int64, tags Tags, rep *Report) error {
	c.Geoms = append(c.Geoms, g)
	c.Labels = append(c.Labels, label)
	if c.ComponentIDs != nil {
		c.ComponentIDs = append(c.ComponentIDs, componentIDs)
	}
	dropped := c.Table.AppendRow(label, tags)
	if len(dropped) > 0 {
		rep.addDropped(c.Category, label, dropped)
	}
	return checkFeature(c, len(c.Geoms)-1)
}
