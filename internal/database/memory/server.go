// Package memory provides an in-process relational store with the same
// provisioning and transaction surface as the SQL adapters. Transactions
// work on a clone of the database state that replaces it on commit.
// Foreign keys and UNIQUE columns are enforced on insert.
package memory

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/Rana718/mcpseed/internal/types"
)

// Row is one committed record. Seq orders inserts across all tables of a
// database.
type Row struct {
	ID     int64
	Seq    int64
	Values map[string]interface{}
}

type table struct {
	def    types.SchemaTable
	rows   []Row
	index  map[int64]int
	nextID int64
}

type dbState struct {
	tables map[string]*table
	seq    int64
}

type Server struct {
	mu        sync.Mutex
	databases map[string]*dbState
	rng       *rand.Rand
}

func NewServer() *Server {
	return &Server{
		databases: make(map[string]*dbState),
		rng:       rand.New(rand.NewSource(1)),
	}
}

func newDBState() *dbState {
	return &dbState{tables: make(map[string]*table)}
}

func (d *dbState) clone() *dbState {
	c := &dbState{tables: make(map[string]*table, len(d.tables)), seq: d.seq}
	for name, t := range d.tables {
		ct := &table{
			def:    t.def,
			rows:   make([]Row, len(t.rows)),
			index:  make(map[int64]int, len(t.index)),
			nextID: t.nextID,
		}
		copy(ct.rows, t.rows)
		for id, i := range t.index {
			ct.index[id] = i
		}
		c.tables[name] = ct
	}
	return c
}

func (s *Server) exists(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.databases[name]
	return ok
}

func (s *Server) create(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.databases[name]; !ok {
		s.databases[name] = newDBState()
	}
}

func (s *Server) snapshot(name string) (*dbState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	db, ok := s.databases[name]
	if !ok {
		return nil, fmt.Errorf("database %q does not exist", name)
	}
	return db.clone(), nil
}

func (s *Server) replace(name string, state *dbState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.databases[name] = state
}

func (s *Server) intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Intn(n)
}

// Databases lists database names in sorted order.
func (s *Server) Databases() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.databases))
	for name := range s.databases {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Tables lists the committed tables of a database in sorted order.
func (s *Server) Tables(database string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	db, ok := s.databases[database]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(db.tables))
	for name := range db.tables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Count returns the committed row count of a table.
func (s *Server) Count(database, tableName string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if db, ok := s.databases[database]; ok {
		if t, ok := db.tables[tableName]; ok {
			return len(t.rows)
		}
	}
	return 0
}

// Rows returns copies of the committed rows of a table in insertion order.
func (s *Server) Rows(database, tableName string) []Row {
	s.mu.Lock()
	defer s.mu.Unlock()
	db, ok := s.databases[database]
	if !ok {
		return nil
	}
	t, ok := db.tables[tableName]
	if !ok {
		return nil
	}
	out := make([]Row, len(t.rows))
	for i, r := range t.rows {
		values := make(map[string]interface{}, len(r.Values))
		for k, v := range r.Values {
			values[k] = v
		}
		out[i] = Row{ID: r.ID, Seq: r.Seq, Values: values}
	}
	return out
}

// Schema returns the definition a table was created with.
func (s *Server) Schema(database, tableName string) (types.SchemaTable, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if db, ok := s.databases[database]; ok {
		if t, ok := db.tables[tableName]; ok {
			return t.def, true
		}
	}
	return types.SchemaTable{}, false
}
