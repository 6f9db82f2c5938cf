package mpdict

import (
	"log/slog"
	"slices"
)

// Dictionary is a tree node: empty, a single typed value, or a map of string
// keys to child dictionaries. The zero value is an empty dictionary ready for
// use. See the package documentation for the data model.
//
// Dictionaries own their subtrees exclusively and must not be copied; pass
// them by pointer. They are not safe for concurrent use.
type Dictionary struct {
	noCopy   noCopy
	value    valueSlot
	children map[string]*Dictionary
	log      *slog.Logger
}

// New returns an empty dictionary logging through slog.Default.
func New() *Dictionary {
	return &Dictionary{}
}

// NewLogged returns an empty dictionary that emits its warnings (re-insertion,
// removal of missing keys, unparseable update/extend input) through logger.
func NewLogged(logger *slog.Logger) *Dictionary {
	return &Dictionary{log: logger}
}

// SetLogger redirects warnings from this node and its current and future
// descendants to logger.
func (d *Dictionary) SetLogger(logger *slog.Logger) {
	d.log = logger
	for _, child := range d.children {
		child.SetLogger(logger)
	}
}

func (d *Dictionary) logger() *slog.Logger {
	if d.log != nil {
		return d.log
	}
	return slog.Default()
}

// IsMap reports whether this node can hold children, i.e. it holds no value.
// An empty node counts as a map with zero entries.
func (d *Dictionary) IsMap() bool {
	return !d.value.occupied()
}

// IsValue reports whether this node holds a typed value.
func (d *Dictionary) IsValue() bool {
	return d.value.occupied()
}

// IsEmpty reports whether this node holds neither a value nor children.
func (d *Dictionary) IsEmpty() bool {
	return d.IsMap() && len(d.children) == 0
}

// Has reports whether key is present among this node's children.
func (d *Dictionary) Has(key string) bool {
	_, ok := d.children[key]
	return ok
}

// Len returns the number of children.
func (d *Dictionary) Len() int {
	return len(d.children)
}

// Keys returns a snapshot of the child keys. Order is unspecified and not
// guaranteed to be stable across calls.
func (d *Dictionary) Keys() []string {
	if len(d.children) == 0 {
		return nil
	}
	keys := make([]string, 0, len(d.children))
	for key := range d.children {
		keys = append(keys, key)
	}
	return keys
}

// At walks the given key path, creating empty children for keys not seen
// before, and returns the node at the end of the path. Looking up a chain of
// never-before-seen keys materializes the whole chain as empty dictionaries.
// It fails with a *TypeError when any node along the path holds a value.
func (d *Dictionary) At(keys ...string) (*Dictionary, error) {
	cur := d
	for _, key := range keys {
		if cur.IsValue() {
			return nil, typeErrf(key, "cannot look up key %q in non-dictionary object of type %q", key, cur.value.typeName())
		}
		child := cur.children[key]
		if child == nil {
			if cur.children == nil {
				cur.children = make(map[string]*Dictionary)
			}
			child = &Dictionary{log: cur.log}
			cur.children[key] = child
		}
		cur = child
	}
	return cur, nil
}

// Lookup walks the given key path without modifying the tree. It fails with
// a *KeyError when a key is absent, and with a *TypeError when a node along
// the path holds a value.
func (d *Dictionary) Lookup(keys ...string) (*Dictionary, error) {
	cur := d
	for _, key := range keys {
		if cur.IsValue() {
			return nil, typeErrf(key, "cannot look up key %q in non-dictionary object of type %q", key, cur.value.typeName())
		}
		child := cur.children[key]
		if child == nil {
			return nil, keyErrf(key, "")
		}
		cur = child
	}
	return cur, nil
}

// Remove erases the child at key along with its subtree. Removing a missing
// key logs a warning and is a no-op.
func (d *Dictionary) Remove(key string) {
	if _, ok := d.children[key]; !ok {
		d.logger().Warn("dictionary: no key to remove", slog.String("key", key))
		return
	}
	delete(d.children, key)
}

// Clear erases all children, turning the node back into an empty dictionary.
// Calling Clear on a value node is a programming error and panics.
func (d *Dictionary) Clear() {
	if d.IsValue() {
		panic("mpdict: Clear called on a value node")
	}
	d.children = nil
}

// sortedKeys returns the child keys in lexical order, for deterministic
// serialization and printing.
func (d *Dictionary) sortedKeys() []string {
	keys := d.Keys()
	slices.Sort(keys)
	return keys
}

// noCopy makes `go vet` flag copies of structs that embed it.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}
