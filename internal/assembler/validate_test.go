package assembler

import (
	"errors"
	"strings"
	"testing"

	geom "github.com/twpayne/go-geom"
)

func TestCheckShapesConsistent(t *testing.T) {
	c := &Collection{
		Category: CategoryPoints,
		Table:    NewTable([]string{"amenity"}),
	}
	c.Geoms = append(c.Geoms, geom.NewPointFlat(geom.XY, []float64{1, 2}))
	c.Labels = append(c.Labels, "1")
	c.Table.AppendRow("1", Tags{"amenity": "bench"})

	if err := CheckShapes(c); err != nil {
		t.Errorf("CheckShapes: %v", err)
	}
}

func TestCheckShapesLabelMismatch(t *testing.T) {
	c := &Collection{
		Category: CategoryPoints,
		Table:    NewTable(nil),
	}
	c.Geoms = append(c.Geoms, geom.NewPointFlat(geom.XY, []float64{1, 2}))
	// No label, no row.

	err := CheckShapes(c)
	var mismatch *ErrShapeMismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
	if mismatch.Category != CategoryPoints {
		t.Errorf("category = %v, want points", mismatch.Category)
	}
	if !strings.Contains(mismatch.Error(), "points") {
		t.Errorf("message should name the category: %q", mismatch.Error())
	}
}

func TestCheckShapesRowMismatch(t *testing.T) {
	c := &Collection{
		Category: CategoryLineStrings,
		Table:    NewTable(nil),
	}
	c.Geoms = append(c.Geoms, geom.NewLineStringFlat(geom.XY, []float64{0, 0, 1, 1}))
	c.Labels = append(c.Labels, "1")
	// Table row deliberately missing.

	err := CheckShapes(c)
	var mismatch *ErrShapeMismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
	if mismatch.FeatureIndex != 0 {
		t.Errorf("feature index = %d, want 0", mismatch.FeatureIndex)
	}
}

func TestCheckShapesComponentIDMismatch(t *testing.T) {
	mls := geom.NewMultiLineString(geom.XY)
	mls.Push(geom.NewLineStringFlat(geom.XY, []float64{0, 0, 1, 1}))
	mls.Push(geom.NewLineStringFlat(geom.XY, []float64{2, 2, 3, 3}))

	c := &Collection{
		Category:     CategoryMultiLineStrings,
		ComponentIDs: [][]int64{},
		Table:        NewTable(nil),
	}
	c.Geoms = append(c.Geoms, mls)
	c.Labels = append(c.Labels, "1-main")
	c.ComponentIDs = append(c.ComponentIDs, []int64{10}) // two segments, one id
	c.Table.AppendRow("1-main", nil)

	err := CheckShapes(c)
	var mismatch *ErrShapeMismatch
	if !errors.As(err, &mismatch) {
		t.Fatalf("expected ErrShapeMismatch, got %v", err)
	}
	if mismatch.FeatureIndex != 0 {
		t.Errorf("feature index = %d, want 0", mismatch.FeatureIndex)
	}
}

func TestComponentCount(t *testing.T) {
	p := geom.NewPolygon(geom.XY)
	p.Push(geom.NewLinearRingFlat(geom.XY, []float64{0, 0, 4, 0, 4, 4, 0, 0}))
	p.Push(geom.NewLinearRingFlat(geom.XY, []float64{1, 1, 2, 1, 2, 2, 1, 1}))
	mp := geom.NewMultiPolygon(geom.XY)
	mp.Push(p)

	mls := geom.NewMultiLineString(geom.XY)
	mls.Push(geom.NewLineStringFlat(geom.XY, []float64{0, 0, 1, 1}))

	tests := []struct {
		name string
		g    geom.T
		want int
	}{
		{"multipolygon counts rings", mp, 2},
		{"multilinestring counts segments", mls, 1},
		{"point counts one", geom.NewPointFlat(geom.XY, []float64{0, 0}), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := componentCount(tt.g); got != tt.want {
				t.Errorf("componentCount() = %d, want %d", got, tt.want)
			}
		})
	}
}
