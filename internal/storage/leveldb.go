// Package storage provides a disk-backed entity store for inputs too
// large to hold in memory. Nodes and ways live in a LevelDB database
// keyed by big-endian id, so iteration runs in ascending id order;
// relations are few and stay in memory.
package storage

import (
	"encoding/binary"

	jsoniter "github.com/json-iterator/go"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/util"

	"github.com/beetlebugorg/osmsf/internal/assembler"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	prefixNode = 'n'
	prefixWay  = 'w'
)

// flushThreshold bounds the write batch before it is committed.
const flushThreshold = 128 << 10

// LevelDBStore implements the assembler's Store interface over a LevelDB
// database. Writes are batched; call Flush before reading.
type LevelDBStore struct {
	db        *leveldb.DB
	batch     leveldb.Batch
	pending   int
	relations []*assembler.Relation
}

// Open opens (or creates) a LevelDB-backed entity store at path.
func Open(path string) (*LevelDBStore, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		db, err = leveldb.RecoverFile(path, nil)
	}
	if err != nil {
		return nil, err
	}
	return &LevelDBStore{db: db}, nil
}

// Close flushes pending writes and closes the database.
func (s *LevelDBStore) Close() error {
	if err := s.Flush(); err != nil {
		s.db.Close()
		return err
	}
	return s.db.Close()
}

func entityKey(prefix byte, id int64) []byte {
	k := make([]byte, 9)
	k[0] = prefix
	binary.BigEndian.PutUint64(k[1:], uint64(id))
	return k
}

// AddNode stores a node.
func (s *LevelDBStore) AddNode(n assembler.Node) error {
	return s.put(entityKey(prefixNode, n.ID), n)
}

// AddWay stores a way.
func (s *LevelDBStore) AddWay(w *assembler.Way) error {
	return s.put(entityKey(prefixWay, w.ID), w)
}

// AddRelation keeps the relation in memory, in document order.
func (s *LevelDBStore) AddRelation(r *assembler.Relation) error {
	s.relations = append(s.relations, r)
	return nil
}

func (s *LevelDBStore) put(key []byte, v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.batch.Put(key, b)
	s.pending += len(key) + len(b)
	if s.pending > flushThreshold {
		return s.Flush()
	}
	return nil
}

// Flush commits all batched writes.
func (s *LevelDBStore) Flush() error {
	if s.pending == 0 {
		return nil
	}
	s.pending = 0
	err := s.db.Write(&s.batch, nil)
	s.batch.Reset()
	return err
}

// Node returns the node with the given id.
func (s *LevelDBStore) Node(id int64) (assembler.Node, bool) {
	v, err := s.db.Get(entityKey(prefixNode, id), nil)
	if err != nil {
		return assembler.Node{}, false
	}
	var n assembler.Node
	if err := json.Unmarshal(v, &n); err != nil {
		return assembler.Node{}, false
	}
	return n, true
}

// Way returns the way with the given id.
func (s *LevelDBStore) Way(id int64) (*assembler.Way, bool) {
	v, err := s.db.Get(entityKey(prefixWay, id), nil)
	if err != nil {
		return nil, false
	}
	w := new(assembler.Way)
	if err := json.Unmarshal(v, w); err != nil {
		return nil, false
	}
	return w, true
}

// Relations returns all relations in document order.
func (s *LevelDBStore) Relations() []*assembler.Relation { return s.relations }

// EachNode iterates all nodes in ascending id order.
func (s *LevelDBStore) EachNode(fn func(assembler.Node) error) error {
	iter := s.db.NewIterator(util.BytesPrefix([]byte{prefixNode}), nil)
	defer iter.Release()
	for iter.Next() {
		var n assembler.Node
		if err := json.Unmarshal(iter.Value(), &n); err != nil {
			return err
		}
		if err := fn(n); err != nil {
			return err
		}
	}
	return iter.Error()
}

// EachWay iterates all ways in ascending id order.
func (s *LevelDBStore) EachWay(fn func(*assembler.Way) error) error {
	iter := s.db.NewIterator(util.BytesPrefix([]byte{prefixWay}), nil)
	defer iter.Release()
	for iter.Next() {
		w := new(assembler.Way)
		if err := json.Unmarshal(iter.Value(), w); err != nil {
			return err
		}
		if err := fn(w); err != nil {
			return err
		}
	}
	return iter.Error()
}
