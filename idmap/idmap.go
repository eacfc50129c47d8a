// Package idmap implements a bijective string↔integer identifier map.
//
// An IdMap assigns each distinct string a dense, non-negative integer id on
// first sight and returns the same id on every subsequent lookup. Reverse
// lookup (id -> string) is O(1). It backs both the term and document
// identifier spaces used throughout indexing and query evaluation.
package idmap

import (
	"bytes"
	"encoding/gob"
	"sync"
)

// IdMap is a bijective mapping between strings and contiguous integers
// starting at 0. The zero value is not usable; construct one with New.
//
// Safe for concurrent use: Intern takes an exclusive lock, LookupID and
// LookupString take a read lock.
type IdMap struct {
	mu        sync.RWMutex
	stringToID map[string]int
	idToString []string
}

// New returns an empty IdMap.
func New() *IdMap {
	return &IdMap{
		stringToID: make(map[string]int),
	}
}

// Intern returns the id assigned to s, assigning the next dense id (equal to
// Len() at the time of the call) if s has not been seen before.
func (m *IdMap) Intern(s string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	if id, ok := m.stringToID[s]; ok {
		return id
	}
	id := len(m.idToString)
	m.stringToID[s] = id
	m.idToString = append(m.idToString, s)
	return id
}

// LookupID returns the id assigned to s and true, or (0, false) if s has
// never been interned.
func (m *IdMap) LookupID(s string) (int, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.stringToID[s]
	return id, ok
}

// LookupString returns the string assigned to id. It panics if id is out of
// range [0, Len()) - callers within this module only ever pass ids that came
// from Intern or a postings list decoded against this same map.
func (m *IdMap) LookupString(id int) string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.idToString[id]
}

// Len returns the number of distinct strings interned so far.
func (m *IdMap) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.idToString)
}

// gobIdMap mirrors IdMap's persisted fields. Only idToString needs to be
// written: stringToID is rebuilt on load, since it is fully determined by
// idToString's ordering.
type gobIdMap struct {
	IDToString []string
}

// Save serializes the map to a gob-encoded byte slice, preserving the
// string<->id associations bit-for-bit across a save/load round trip.
func (m *IdMap) Save() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(gobIdMap{IDToString: m.idToString}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Load reconstructs an IdMap from bytes produced by Save.
func Load(data []byte) (*IdMap, error) {
	var g gobIdMap
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&g); err != nil {
		return nil, err
	}

	m := &IdMap{
		stringToID: make(map[string]int, len(g.IDToString)),
		idToString: g.IDToString,
	}
	for id, s := range g.IDToString {
		m.stringToID[s] = id
	}
	return m, nil
}
