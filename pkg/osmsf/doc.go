// Package osmsf assembles a parsed OpenStreetMap entity graph (nodes,
// ways, and relations) into simple-features geometry collections paired
// with dense per-feature attribute tables.
//
// A pass produces five (geometry collection, attribute table) pairs:
// points (nodes), linestrings (open ways), polygons (self-closed ways),
// multipolygons (polygon relations), and multilinestrings (role-grouped
// non-polygon relations). Every collection carries the document's
// bounding box and coordinate reference metadata, and its length always
// equals its attribute table's row count.
//
// Typical usage:
//
//	doc, err := osmsf.LoadXML(ctx, file)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	dataset, err := osmsf.NewAssembler().Assemble(doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	polygons := dataset.MultiPolygons()
//	for i := 0; i < polygons.Len(); i++ {
//	    render(polygons.Label(i), polygons.Geometry(i))
//	}
package osmsf
