package assembler

import (
	"fmt"

	geom "github.com/twpayne/go-geom"
)

// checkFeature verifies one feature's parallel arrays: the geometry, its
// label, its attribute row, and (for relation-derived features) its
// per-component id labels must all be present and agree in cardinality.
// A disagreement is a defect in the assembler, not bad input.
func checkFeature(c *Collection, i int) error {
	if i >= len(c.Labels) {
		return &ErrShapeMismatch{
			Category:     c.Category,
			FeatureIndex: i,
			Detail:       fmt.Sprintf("%d geometries but %d labels", len(c.Geoms), len(c.Labels)),
		}
	}
	if i >= c.Table.Len() {
		return &ErrShapeMismatch{
			Category:     c.Category,
			FeatureIndex: i,
			Detail:       fmt.Sprintf("%d geometries but %d attribute rows", len(c.Geoms), c.Table.Len()),
		}
	}
	if c.ComponentIDs != nil {
		want := componentCount(c.Geoms[i])
		if got := len(c.ComponentIDs[i]); got != want {
			return &ErrShapeMismatch{
				Category:     c.Category,
				FeatureIndex: i,
				Detail:       fmt.Sprintf("%d geometry components but %d component ids", want, got),
			}
		}
	}
	return nil
}

// CheckShapes verifies a whole collection: geometry count, label count,
// and attribute-table row count must be identical, and every feature
// must pass checkFeature.
func CheckShapes(c *Collection) error {
	if len(c.Geoms) != len(c.Labels) || len(c.Geoms) != c.Table.Len() {
		return &ErrShapeMismatch{
			Category:     c.Category,
			FeatureIndex: min(len(c.Geoms), min(len(c.Labels), c.Table.Len())),
			Detail: fmt.Sprintf("%d geometries, %d labels, %d attribute rows",
				len(c.Geoms), len(c.Labels), c.Table.Len()),
		}
	}
	if c.ComponentIDs != nil && len(c.ComponentIDs) != len(c.Geoms) {
		return &ErrShapeMismatch{
			Category:     c.Category,
			FeatureIndex: min(len(c.Geoms), len(c.ComponentIDs)),
			Detail: fmt.Sprintf("%d geometries but %d component id lists",
				len(c.Geoms), len(c.ComponentIDs)),
		}
	}
	for i := range c.Geoms {
		if err := checkFeature(c, i); err != nil {
			return err
		}
	}
	return nil
}

// componentCount returns the number of components a feature's id labels
// must cover: rings for multipolygons, line segments for
// multilinestrings, one for everything else.
func componentCount(g geom.T) int {
	switch v := g.(type) {
	case *geom.MultiPolygon:
		n := 0
		for i := 0; i < v.NumPolygons(); i++ {
			n += v.Polygon(i).NumLinearRings()
		}
		return n
	case *geom.MultiLineString:
		return v.NumLineStrings()
	default:
		return 1
	}
}
