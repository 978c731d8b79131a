package training

import (
	"fmt"
	"strings"
)

// Snapshot is an ordered mapping from metric name to value.
// The zero value is an empty snapshot ready to use.
type Snapshot struct {
	keys   []string
	values map[string]float64
}

// NewSnapshot creates an empty snapshot.
func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Set stores value under key, appending key if it is new.
func (s *Snapshot) Set(key string, value float64) {
	if s.values == nil {
		s.values = make(map[string]float64)
	}
	if _, ok := s.values[key]; !ok {
		s.keys = append(s.keys, key)
	}
	s.values[key] = value
}

// Get returns the value stored under key.
func (s *Snapshot) Get(key string) (float64, bool) {
	v, ok := s.values[key]
	return v, ok
}

// Keys returns the keys in insertion order.
func (s *Snapshot) Keys() []string {
	return append([]string(nil), s.keys...)
}

// Len returns the number of entries.
func (s *Snapshot) Len() int {
	return len(s.keys)
}

// Merge appends the entries of other, prefixing their keys.
func (s *Snapshot) Merge(other *Snapshot, prefix string) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		s.Set(prefix+k, other.values[k])
	}
}

// Clone returns a copy of s.
func (s *Snapshot) Clone() *Snapshot {
	c := &Snapshot{}
	c.Merge(s, "")
	return c
}

// String renders the snapshot as "k1: v1 - k2: v2".
func (s *Snapshot) String() string {
	parts := make([]string, len(s.keys))
	for i, k := range s.keys {
		parts[i] = fmt.Sprintf("%s: %.4f", k, s.values[k])
	}
	return strings.Join(parts, " - ")
}
