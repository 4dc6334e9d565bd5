package assembler

import (
	"sort"
	"strconv"

	geom "github.com/twpayne/go-geom"
)

// distinctRoles returns the relation's distinct member role strings in
// sorted order. The empty role is a valid, distinct role.
func distinctRoles(rel *Relation) []string {
	seen := make(map[string]bool, len(rel.Members))
	roles := make([]string, 0, len(rel.Members))
	for _, m := range rel.Members {
		if !seen[m.Role] {
			seen[m.Role] = true
			roles = append(roles, m.Role)
		}
	}
	sort.Strings(roles)
	return roles
}

// composeMultiLineString traces every member way carrying the given role
// into one multilinestring. Each way remains a separate line segment:
// segments are never chained across ways and never closed.
//
// The returned id labels carry one way id per line segment.
func composeMultiLineString(rel *Relation, role string, store Store) (*geom.MultiLineString, []int64, error) {
	mls := geom.NewMultiLineString(geom.XY)
	var ids []int64
	for _, m := range rel.Members {
		if m.Role != role {
			continue
		}
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
		mls.Push(geom.NewLineStringFlat(geom.XY, flatten(coords)))
		ids = append(ids, w.ID)
	}
	return mls, ids, nil
}

// relationRoleLabel builds the feature label for one (relation, role)
// pair: "<id>-<role>", or "<id>-(no role)" for the empty role.
func relationRoleLabel(relID int64, role string) string {
	if role == "" {
		return strconv.FormatInt(relID, 10) + "-(no role)"
	}
	return strconv.FormatInt(relID, 10) + "-" + role
}
