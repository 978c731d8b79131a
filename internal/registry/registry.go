// Package registry maps configuration names to losses, metrics and optimizers.
//
// Lookups are case-insensitive. An unknown name fails with an error that
// lists every name the table supports, in registration order.
package registry

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnknownName is matched (errors.Is) by every lookup failure.
var ErrUnknownName = errors.New("unknown name")

// UnknownNameError reports a name missing from a table.
type UnknownNameError struct {
	Kind      string // "loss", "metric" or "optimizer"
	Name      string
	Supported []string
}

func (e *UnknownNameError) Error() string {
	return fmt.Sprintf("invalid %s name %q, we support %v", e.Kind, e.Name, e.Supported)
}

// Is makes errors.Is(err, ErrUnknownName) hold.
func (e *UnknownNameError) Is(target error) bool {
	return target == ErrUnknownName
}

// Table is an ordered name to value mapping.
type Table[T any] struct {
	kind    string
	names   []string
	entries map[string]T
}

// NewTable creates an empty table; kind names the entries in error messages.
func NewTable[T any](kind string) *Table[T] {
	return &Table[T]{kind: kind, entries: make(map[string]T)}
}

// Register adds or replaces the entry for name.
func (t *Table[T]) Register(name string, value T) *Table[T] {
	key := strings.ToLower(name)
	if _, ok := t.entries[key]; !ok {
		t.names = append(t.names, key)
	}
	t.entries[key] = value
	return t
}

// Lookup returns the entry registered under name.
func (t *Table[T]) Lookup(name string) (T, error) {
	value, ok := t.entries[strings.ToLower(name)]
	if !ok {
		var zero T
		return zero, &UnknownNameError{Kind: t.kind, Name: name, Supported: t.Names()}
	}
	return value, nil
}

// Names returns the registered names in registration order.
func (t *Table[T]) Names() []string {
	return append([]string(nil), t.names...)
}
