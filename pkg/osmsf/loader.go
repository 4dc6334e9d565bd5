package osmsf

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sort"

	"github.com/paulmach/osm"
	"github.com/paulmach/osm/osmpbf"
	"github.com/paulmach/osm/osmxml"

	"github.com/beetlebugorg/osmsf/internal/assembler"
	"github.com/beetlebugorg/osmsf/internal/storage"
)

// Document is a loaded entity graph ready for assembly: the entity
// store, the three global attribute-key universes, and the document's
// bounding extent. All of it is immutable for the duration of a pass.
type Document struct {
	store  assembler.Store
	keys   assembler.KeyUniverses
	bounds Bounds
	crs    CRS

	nodes     int
	ways      int
	relations int
}

// Bounds returns the extent covering every node in the document.
func (d *Document) Bounds() Bounds { return d.bounds }

// CRS returns the document's coordinate reference metadata.
func (d *Document) CRS() CRS { return d.crs }

// NodeCount returns the number of loaded nodes.
func (d *Document) NodeCount() int { return d.nodes }

// WayCount returns the number of loaded ways.
func (d *Document) WayCount() int { return d.ways }

// RelationCount returns the number of loaded relations.
func (d *Document) RelationCount() int { return d.relations }

// entityStore is the writable store populated by the loader. Both the
// in-memory store and the LevelDB-backed DiskStore satisfy it.
type entityStore interface {
	assembler.Store
	AddNode(assembler.Node) error
	AddWay(*assembler.Way) error
	AddRelation(*assembler.Relation) error
	Flush() error
}

// DiskStore is a LevelDB-backed entity store for documents too large to
// hold in memory. Pass it via LoadOptions.DiskStore; close it after the
// assembled dataset is no longer needed.
type DiskStore struct {
	s *storage.LevelDBStore
}

// OpenDiskStore opens (or creates) a disk-backed entity store at path.
func OpenDiskStore(path string) (*DiskStore, error) {
	s, err := storage.Open(path)
	if err != nil {
		return nil, err
	}
	return &DiskStore{s: s}, nil
}

// Close releases the underlying database.
func (d *DiskStore) Close() error { return d.s.Close() }

// LoadOptions configures document loading.
type LoadOptions struct {
	// DiskStore backs the entity store with LevelDB instead of memory.
	// Nil loads into memory.
	DiskStore *DiskStore

	// ErrorLog is an optional writer for loader diagnostics, such as
	// relation members that are not ways and are skipped.
	ErrorLog io.Writer
}

// LoadXML reads an OSM XML document and builds the entity store, the
// three key universes, and the bounding extent.
func LoadXML(ctx context.Context, r io.Reader) (*Document, error) {
	return Load(ctx, osmxml.New(ctx, r), LoadOptions{})
}

// LoadPBF reads an OSM PBF document, as LoadXML.
func LoadPBF(ctx context.Context, r io.Reader) (*Document, error) {
	return Load(ctx, osmpbf.New(ctx, r, runtime.GOMAXPROCS(0)), LoadOptions{})
}

// Load drains an OSM scanner into a Document.
//
// Relation members that are not ways carry no geometry in this model
// and are skipped, as are ways with fewer than two node refs. A
// relation is polygon-forming iff its "type" tag is "multipolygon" or
// "boundary".
func Load(ctx context.Context, scanner osm.Scanner, opts LoadOptions) (*Document, error) {
	defer scanner.Close()

	var st entityStore = assembler.NewMemStore()
	if opts.DiskStore != nil {
		st = opts.DiskStore.s
	}

	doc := &Document{crs: WGS84}
	nodeKeys := make(map[string]bool)
	wayKeys := make(map[string]bool)
	relKeys := make(map[string]bool)
	seen := false

	for scanner.Scan() {
		switch v := scanner.Object().(type) {
		case *osm.Node:
			tags := tagMap(v.Tags, nodeKeys)
			if err := st.AddNode(assembler.Node{
				ID:   int64(v.ID),
				Lon:  v.Lon,
				Lat:  v.Lat,
				Tags: tags,
			}); err != nil {
				return nil, err
			}
			if !seen {
				doc.bounds = Bounds{MinLon: v.Lon, MinLat: v.Lat, MaxLon: v.Lon, MaxLat: v.Lat}
				seen = true
			} else {
				doc.bounds.extend(v.Lon, v.Lat)
			}
			doc.nodes++

		case *osm.Way:
			if len(v.Nodes) < 2 {
				if opts.ErrorLog != nil {
					fmt.Fprintf(opts.ErrorLog, "way %d: %d node ref(s), skipped\n",
						v.ID, len(v.Nodes))
				}
				continue
			}
			refs := make([]int64, 0, len(v.Nodes))
			for _, wn := range v.Nodes {
				refs = append(refs, int64(wn.ID))
			}
			if err := st.AddWay(&assembler.Way{
				ID:      int64(v.ID),
				NodeIDs: refs,
				Tags:    tagMap(v.Tags, wayKeys),
			}); err != nil {
				return nil, err
			}
			doc.ways++

		case *osm.Relation:
			members := make([]assembler.Member, 0, len(v.Members))
			for _, m := range v.Members {
				if m.Type != osm.TypeWay {
					if opts.ErrorLog != nil {
						fmt.Fprintf(opts.ErrorLog, "relation %d: skipping %s member %d\n",
							v.ID, m.Type, m.Ref)
					}
					continue
				}
				members = append(members, assembler.Member{WayID: m.Ref, Role: m.Role})
			}
			relType := v.Tags.Find("type")
			if err := st.AddRelation(&assembler.Relation{
				ID:      int64(v.ID),
				Members: members,
				Polygon: relType == "multipolygon" || relType == "boundary",
				Tags:    tagMap(v.Tags, relKeys),
			}); err != nil {
				return nil, err
			}
			doc.relations++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if err := st.Flush(); err != nil {
		return nil, err
	}

	doc.store = st
	doc.keys = assembler.KeyUniverses{
		NodeKeys:     sortedKeys(nodeKeys),
		WayKeys:      sortedKeys(wayKeys),
		RelationKeys: sortedKeys(relKeys),
	}
	return doc, nil
}

// tagMap converts OSM tags to the store representation, accumulating
// the entity kind's key universe as a side effect.
func tagMap(tags osm.Tags, universe map[string]bool) assembler.Tags {
	if len(tags) == 0 {
		return nil
	}
	m := make(assembler.Tags, len(tags))
	for _, t := range tags {
		m[t.Key] = t.Value
		universe[t.Key] = true
	}
	return m
}

func sortedKeys(universe map[string]bool) []string {
	keys := make([]string, 0, len(universe))
	for k := range universe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func (b *Bounds) extend(lon, lat float64) {
	if lon < b.MinLon {
		b.MinLon = lon
	}
	if lon > b.MaxLon {
		b.MaxLon = lon
	}
	if lat < b.MinLat {
		b.MinLat = lat
	}
	if lat > b.MaxLat {
		b.MaxLat = lat
	}
}
