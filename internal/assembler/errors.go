package assembler

import (
	"fmt"
)

// ErrUnresolvedReference indicates a way or relation references an id
// absent from the entity store. This is fatal: downstream geometry would
// be silently incomplete, so the whole pass aborts.
type ErrUnresolvedReference struct {
	OwnerKind string // "way" or "relation"
	OwnerID   int64
	RefKind   string // "node" or "way"
	RefID     int64
}

func (e *ErrUnresolvedReference) Error() string {
	return fmt.Sprintf("%s %d references missing %s %d",
		e.OwnerKind, e.OwnerID, e.RefKind, e.RefID)
}

// ErrUnclosedRing indicates a relation's member ways could not all be
// chained into closed rings. Reported per relation; the relation is
// excluded from polygon output while the pass continues.
type ErrUnclosedRing struct {
	RelationID int64
	Role       string // "outer" or "inner" group
	OpenChains int
}

func (e *ErrUnclosedRing) Error() string {
	return fmt.Sprintf("relation %d: %d open %s chain(s) could not be closed into rings",
		e.RelationID, e.OpenChains, e.Role)
}

// ErrEmptyPolygon indicates a polygon relation yielded no exterior ring
// at all. Like ErrUnclosedRing it excludes the relation from polygon
// output without aborting the pass.
type ErrEmptyPolygon struct {
	RelationID int64
}

func (e *ErrEmptyPolygon) Error() string {
	return fmt.Sprintf("relation %d: polygon must have at least one exterior ring", e.RelationID)
}

// ErrShapeMismatch indicates parallel per-feature arrays disagree in
// length. This is an internal-invariant violation (a defect in the
// assembler, not bad input) and aborts the pass.
type ErrShapeMismatch struct {
	Category     Category
	FeatureIndex int
	Detail       string
}

func (e *ErrShapeMismatch) Error() string {
	return fmt.Sprintf("shape mismatch in %s feature %d: %s",
		e.Category, e.FeatureIndex, e.Detail)
}

// ErrInvalidCategory indicates way assembly was requested with a
// geometry kind other than the two supported. A programming-interface
// misuse, not a data problem.
type ErrInvalidCategory struct {
	Kind WayGeometry
}

func (e *ErrInvalidCategory) Error() string {
	return fmt.Sprintf("way geometry kind must be WayLineString or WayPolygon, got %d", int(e.Kind))
}
