package assembler

// store.go - the read-only entity graph consumed by the assembly pass.
// The graph is produced upstream (document loader or disk-backed store);
// the assembler never mutates it.

// Tags holds the key/value attributes of a node, way, or relation.
// Insertion order is irrelevant; attribute rows are keyed by column name.
type Tags map[string]string

// Node is a single point with longitude/latitude and optional tags.
type Node struct {
	ID   int64
	Lon  float64
	Lat  float64
	Tags Tags
}

// Way is an ordered sequence of node references.
// A way is closed iff its first and last node ids are equal.
type Way struct {
	ID      int64
	NodeIDs []int64
	Tags    Tags
}

// IsClosed reports whether the way's first and last node ids are equal.
func (w *Way) IsClosed() bool {
	return len(w.NodeIDs) >= 2 && w.NodeIDs[0] == w.NodeIDs[len(w.NodeIDs)-1]
}

// Member is one (way, role) entry of a relation, in document order.
type Member struct {
	WayID int64
	Role  string
}

// Relation is an ordered collection of way members. Polygon is fixed at
// load time: polygon relations assemble into multipolygons, all others
// into role-grouped multilinestrings.
type Relation struct {
	ID      int64
	Members []Member
	Polygon bool
	Tags    Tags
}

// Store provides read-only access to the entity graph for one pass.
//
// Implementations must iterate nodes and ways in a stable order (the
// in-memory store uses insertion order, the disk-backed store ascending
// id order); the assembly output follows that order.
type Store interface {
	// Node returns the node with the given id.
	Node(id int64) (Node, bool)

	// Way returns the way with the given id.
	Way(id int64) (*Way, bool)

	// Relations returns all relations in document order.
	Relations() []*Relation

	// EachNode calls fn for every node in the store's iteration order.
	// Iteration stops at the first error, which is returned.
	EachNode(fn func(Node) error) error

	// EachWay calls fn for every way in the store's iteration order.
	EachWay(fn func(*Way) error) error
}

// KeyUniverses holds the three global attribute key sets, one per entity
// kind, computed once by the loader. Each slice is sorted and duplicate
// free; it fixes the column set of the corresponding attribute tables.
type KeyUniverses struct {
	NodeKeys     []string
	WayKeys      []string
	RelationKeys []string
}

// MemStore is the in-memory Store implementation. Entities are kept in
// insertion order; duplicate ids keep the first entry.
type MemStore struct {
	nodes     map[int64]int
	ways      map[int64]int
	nodeList  []Node
	wayList   []*Way
	relations []*Relation
}

// NewMemStore creates an empty in-memory entity store.
func NewMemStore() *MemStore {
	return &MemStore{
		nodes: make(map[int64]int),
		ways:  make(map[int64]int),
	}
}

// AddNode inserts a node. The first entry wins on duplicate ids.
func (s *MemStore) AddNode(n Node) error {
	if _, ok := s.nodes[n.ID]; ok {
		return nil
	}
	s.nodes[n.ID] = len(s.nodeList)
	s.nodeList = append(s.nodeList, n)
	return nil
}

// AddWay inserts a way. The first entry wins on duplicate ids.
func (s *MemStore) AddWay(w *Way) error {
	if _, ok := s.ways[w.ID]; ok {
		return nil
	}
	s.ways[w.ID] = len(s.wayList)
	s.wayList = append(s.wayList, w)
	return nil
}

// AddRelation appends a relation in document order.
func (s *MemStore) AddRelation(r *Relation) error {
	s.relations = append(s.relations, r)
	return nil
}

// Flush is a no-op for the in-memory store.
func (s *MemStore) Flush() error { return nil }

func (s *MemStore) Node(id int64) (Node, bool) {
	i, ok := s.nodes[id]
	if !ok {
		return Node{}, false
	}
	return s.nodeList[i], true
}

func (s *MemStore) Way(id int64) (*Way, bool) {
	i, ok := s.ways[id]
	if !ok {
		return nil, false
	}
	return s.wayList[i], true
}

func (s *MemStore) Relations() []*Relation { return s.relations }

func (s *MemStore) EachNode(fn func(Node) error) error {
	for _, n := range s.nodeList {
		if err := fn(n); err != nil {
			return err
		}
	}
	return nil
}

func (s *MemStore) EachWay(fn func(*Way) error) error {
	for _, w := range s.wayList {
		if err := fn(w); err != nil {
			return err
		}
	}
	return nil
}

// NodeCount returns the number of stored nodes.
func (s *MemStore) NodeCount() int { return len(s.nodeList) }

// WayCount returns the number of stored ways.
func (s *MemStore) WayCount() int { return len(s.wayList) }
