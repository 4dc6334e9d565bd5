package osmsf

import (
	geom "github.com/twpayne/go-geom"

	"github.com/beetlebugorg/osmsf/internal/assembler"
)

// Bounds is the geographic extent of a document, passed through
// unchanged to every output collection.
type Bounds struct {
	MinLon float64
	MinLat float64
	MaxLon float64
	MaxLat float64
}

// CRS identifies the coordinate reference system of a document's
// coordinates. It is opaque metadata: the assembler never reprojects.
type CRS struct {
	EPSG  int
	Proj4 string
}

// WGS84 is the coordinate reference of OpenStreetMap data.
var WGS84 = CRS{EPSG: 4326, Proj4: "+proj=longlat +datum=WGS84 +no_defs"}

// Category identifies one of the five output categories.
type Category int

const (
	// CategoryPoints holds one point feature per node.
	CategoryPoints Category = iota

	// CategoryLineStrings holds one linestring feature per open way.
	CategoryLineStrings

	// CategoryPolygons holds one polygon feature per self-closed way.
	CategoryPolygons

	// CategoryMultiPolygons holds one multipolygon feature per polygon
	// relation.
	CategoryMultiPolygons

	// CategoryMultiLineStrings holds one multilinestring feature per
	// (non-polygon relation, distinct member role) pair.
	CategoryMultiLineStrings
)

// String returns the category's name as used in output labels.
func (c Category) String() string { return assembler.Category(c).String() }

// Dataset is the complete result of one assembly pass.
//
// Access each output category via Points, LineStrings, Polygons,
// MultiPolygons, and MultiLineStrings, or all five in fixed order via
// FeatureSets. The data-quality findings of the pass are available via
// Report.
type Dataset struct {
	points           *FeatureSet
	lineStrings      *FeatureSet
	polygons         *FeatureSet
	multiPolygons    *FeatureSet
	multiLineStrings *FeatureSet
	bounds           Bounds
	crs              CRS
	report           Report
}

// Points returns the node-derived point features.
func (d *Dataset) Points() *FeatureSet { return d.points }

// LineStrings returns the open-way linestring features.
func (d *Dataset) LineStrings() *FeatureSet { return d.lineStrings }

// Polygons returns the self-closed-way polygon features.
func (d *Dataset) Polygons() *FeatureSet { return d.polygons }

// MultiPolygons returns the polygon-relation multipolygon features.
func (d *Dataset) MultiPolygons() *FeatureSet { return d.multiPolygons }

// MultiLineStrings returns the role-grouped multilinestring features.
func (d *Dataset) MultiLineStrings() *FeatureSet { return d.multiLineStrings }

// FeatureSets returns the five collections in their fixed output order:
// points, linestrings, polygons, multipolygons, multilinestrings.
func (d *Dataset) FeatureSets() []*FeatureSet {
	return []*FeatureSet{
		d.points, d.lineStrings, d.polygons, d.multiPolygons, d.multiLineStrings,
	}
}

// Bounds returns the document extent carried by every collection.
func (d *Dataset) Bounds() Bounds { return d.bounds }

// CRS returns the coordinate reference metadata.
func (d *Dataset) CRS() CRS { return d.crs }

// Report returns the non-fatal data-quality findings of the pass.
func (d *Dataset) Report() Report { return d.report }

// FeatureSet is one output category: an ordered geometry collection with
// one label and one attribute-table row per feature. The collection
// length always equals the table's row count.
type FeatureSet struct {
	category     Category
	labels       []string
	geoms        []geom.T
	componentIDs [][]int64
	table        Table
	bounds       Bounds
	crs          CRS
}

// Category returns the collection's category.
func (f *FeatureSet) Category() Category { return f.category }

// Len returns the number of features.
func (f *FeatureSet) Len() int { return len(f.geoms) }

// Label returns the i'th feature's label: the decimal entity id for
// points, ways, and multipolygons, or "<relation-id>-<role>" for
// multilinestrings.
func (f *FeatureSet) Label(i int) string { return f.labels[i] }

// Geometry returns the i'th feature's geometry. The concrete type is
// fixed per category: *geom.Point, *geom.LineString, *geom.Polygon,
// *geom.MultiPolygon, or *geom.MultiLineString.
func (f *FeatureSet) Geometry(i int) geom.T { return f.geoms[i] }

// ComponentIDs returns, for relation-derived features, the way id
// labels of the i'th feature's geometry components (one per ring or
// line segment). Nil for node and way categories.
func (f *FeatureSet) ComponentIDs(i int) []int64 {
	if f.componentIDs == nil {
		return nil
	}
	return f.componentIDs[i]
}

// Table returns the feature-attribute table; row i describes feature i.
func (f *FeatureSet) Table() Table { return f.table }

// Bounds returns the pass-through document extent.
func (f *FeatureSet) Bounds() Bounds { return f.bounds }

// CRS returns the pass-through coordinate reference metadata.
func (f *FeatureSet) CRS() CRS { return f.crs }

// Table is a dense feature-attribute table. Rows follow the owning
// collection's feature order; columns are the entity kind's global key
// universe in sorted order. Cells are optional: an unset cell is
// distinct from an explicitly empty tag value.
type Table struct {
	t *assembler.Table
}

// Len returns the number of rows.
func (t Table) Len() int { return t.t.Len() }

// RowLabels returns the row labels in feature order.
func (t Table) RowLabels() []string { return t.t.RowLabels() }

// Columns returns the column labels in their fixed sorted order.
func (t Table) Columns() []string { return t.t.Columns() }

// Value returns the cell at (row, column name). ok is false for an
// unset cell or an unknown column.
func (t Table) Value(row int, column string) (value string, ok bool) {
	return t.t.Value(row, column)
}

// Report carries the non-fatal data-quality findings of one pass.
// Findings never abort assembly; the offending relation or key is
// excluded and recorded here.
type Report struct {
	// UnclosedRings lists relations excluded from multipolygon output
	// because a member chain could not be closed into a ring.
	UnclosedRings []UnclosedRing

	// EmptyPolygons lists the ids of polygon relations that yielded no
	// exterior ring.
	EmptyPolygons []int64

	// ForeignRoles lists polygon-relation members excluded for carrying
	// a role other than "outer" or "inner".
	ForeignRoles []ForeignRole

	// DroppedKeys lists tag keys dropped for falling outside their
	// category's global key universe.
	DroppedKeys []DroppedKey
}

// UnclosedRing identifies a relation whose member ways could not all be
// chained into closed rings.
type UnclosedRing struct {
	RelationID int64
	Role       string
	OpenChains int
}

// ForeignRole identifies a polygon-relation member with an unexpected
// role.
type ForeignRole struct {
	RelationID int64
	WayID      int64
	Role       string
}

// DroppedKey identifies a tag key dropped from an attribute table.
type DroppedKey struct {
	Category Category
	Label    string
	Key      string
}

// HasFindings reports whether the pass produced any findings.
func (r Report) HasFindings() bool {
	return len(r.UnclosedRings) > 0 || len(r.EmptyPolygons) > 0 ||
		len(r.ForeignRoles) > 0 || len(r.DroppedKeys) > 0
}

// convertDataset converts the internal pass result to the public API,
// attaching the pass-through bounds and CRS to every collection.
func convertDataset(res *assembler.Result, bounds Bounds, crs CRS) *Dataset {
	return &Dataset{
		points:           convertFeatureSet(res.Points, bounds, crs),
		lineStrings:      convertFeatureSet(res.LineStrings, bounds, crs),
		polygons:         convertFeatureSet(res.Polygons, bounds, crs),
		multiPolygons:    convertFeatureSet(res.MultiPolygons, bounds, crs),
		multiLineStrings: convertFeatureSet(res.MultiLineStrings, bounds, crs),
		bounds:           bounds,
		crs:              crs,
		report:           convertReport(res.Report),
	}
}

func convertFeatureSet(c *assembler.Collection, bounds Bounds, crs CRS) *FeatureSet {
	return &FeatureSet{
		category:     Category(c.Category),
		labels:       c.Labels,
		geoms:        c.Geoms,
		componentIDs: c.ComponentIDs,
		table:        Table{t: c.Table},
		bounds:       bounds,
		crs:          crs,
	}
}

func convertReport(rep *assembler.Report) Report {
	var out Report
	for _, u := range rep.UnclosedRings {
		out.UnclosedRings = append(out.UnclosedRings, UnclosedRing{
			RelationID: u.RelationID,
			Role:       u.Role,
			OpenChains: u.OpenChains,
		})
	}
	for _, e := range rep.EmptyPolygons {
		out.EmptyPolygons = append(out.EmptyPolygons, e.RelationID)
	}
	for _, f := range rep.ForeignRoles {
		out.ForeignRoles = append(out.ForeignRoles, ForeignRole{
			RelationID: f.RelationID,
			WayID:      f.WayID,
			Role:       f.Role,
		})
	}
	for _, d := range rep.DroppedKeys {
		out.DroppedKeys = append(out.DroppedKeys, DroppedKey{
			Category: Category(d.Category),
			Label:    d.Label,
			Key:      d.Key,
		})
	}
	return out
}
