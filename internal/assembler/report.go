package assembler

// Report collects the non-fatal data-quality findings of one pass.
// Findings localized to a single relation or way are recovered by
// exclusion-with-report rather than aborting the pass.
type Report struct {
	// UnclosedRings lists relations excluded from multipolygon output
	// because a member chain could not be closed.
	UnclosedRings []*ErrUnclosedRing

	// EmptyPolygons lists polygon relations that yielded no exterior ring.
	EmptyPolygons []*ErrEmptyPolygon

	// ForeignRoles lists polygon-relation members whose role was neither
	// "outer" nor "inner"; such members are excluded from assembly.
	ForeignRoles []ForeignRole

	// DroppedKeys lists tag keys that fell outside their category's
	// global key universe and were dropped from the attribute table.
	DroppedKeys []DroppedKey
}

// ForeignRole records a polygon-relation member excluded for carrying a
// role other than "outer" or "inner".
type ForeignRole struct {
	RelationID int64
	WayID      int64
	Role       string
}

// DroppedKey records a tag key dropped because it was absent from the
// category's key universe.
type DroppedKey struct {
	Category Category
	Label    string
	Key      string
}

// NewReport creates an empty report.
func NewReport() *Report { return &Report{} }

// HasFindings reports whether the pass produced any findings.
func (r *Report) HasFindings() bool {
	return len(r.UnclosedRings) > 0 || len(r.EmptyPolygons) > 0 ||
		len(r.ForeignRoles) > 0 || len(r.DroppedKeys) > 0
}

func (r *Report) addForeignRole(relID, wayID int64, role string) {
	r.ForeignRoles = append(r.ForeignRoles, ForeignRole{RelationID: relID, WayID: wayID, Role: role})
}

func (r *Report) addDropped(cat Category, label string, keys []string) {
	for _, k := range keys {
		r.DroppedKeys = append(r.DroppedKeys, DroppedKey{Category: cat, Label: label, Key: k})
	}
}

// Merge appends another report's findings, preserving their order.
func (r *Report) Merge(o *Report) {
	r.UnclosedRings = append(r.UnclosedRings, o.UnclosedRings...)
	r.EmptyPolygons = append(r.EmptyPolygons, o.EmptyPolygons...)
	r.ForeignRoles = append(r.ForeignRoles, o.ForeignRoles...)
	r.DroppedKeys = append(r.DroppedKeys, o.DroppedKeys...)
}
