package mpdict

import (
	"log/slog"
	"reflect"
)

// Insert creates a value of type T at key and returns a pointer to it. When
// key already holds a value of the same type, Insert logs a warning and
// returns the existing value unchanged.
//
// It fails with a *TypeError when this node holds a value itself, when key
// holds a non-empty dictionary, or when key holds a value of a different
// type than T.
func Insert[T any](d *Dictionary, key string, v T) (*T, error) {
	return InsertAliased[T](d, key, v, nil)
}

// InsertAliased is Insert with a list of additional type identities the
// stored value may be accessed as, checked by As, Get and their variants.
// The usual aliases are interface types implemented by T, declared via
// TypeOf:
//
//	mpdict.InsertAliased(d, "shape", Circle{R: 2}, []reflect.Type{mpdict.TypeOf[Shape]()})
//
// The alias list is fixed at insertion and cannot be changed later.
func InsertAliased[T any](d *Dictionary, key string, v T, aliases []reflect.Type) (*T, error) {
	if d.IsValue() {
		return nil, typeErrf(key, "cannot insert at key %q in non-dictionary object of type %q", key, d.value.typeName())
	}
	child, err := d.At(key)
	if err != nil {
		return nil, err
	}
	if child.IsValue() {
		if !child.value.match(TypeOf[T]()) {
			return nil, typeErrf(key, "key %q already holds a value of type %q, not %q", key, child.value.typeName(), TypeOf[T]().String())
		}
		d.logger().Warn("dictionary: key already exists, returning existing value", slog.String("key", key))
		return reference[T](&child.value)
	}
	if !child.IsEmpty() {
		return nil, typeErrf(key, "cannot insert at key %q: child is a non-empty dictionary", key)
	}
	return bind(&child.value, v, aliases), nil
}

// Set assigns a value to this node. A map node is cleared first and becomes
// a value node; a value node of the same type is assigned in place. Once a
// node holds a value its type is fixed: assigning a value of a different
// type fails with a *TypeError.
func Set[T any](d *Dictionary, v T) error {
	if d.IsMap() {
		if !d.IsEmpty() {
			d.Clear()
		}
		bind(&d.value, v, nil)
		return nil
	}
	p, ok := d.value.ptr.(*T)
	if !ok {
		return typeErrf("", "cannot assign %q to value of type %q", TypeOf[T]().String(), d.value.typeName())
	}
	*p = v
	return nil
}

// SetAt assigns a value to the child at key, creating it when absent. It is
// shorthand for Set on the node returned by At.
func SetAt[T any](d *Dictionary, key string, v T) error {
	child, err := d.At(key)
	if err != nil {
		return err
	}
	return Set(child, v)
}

// As returns a pointer to this node's value as *T. It fails with a
// *TypeError when the node is not a value, or when the value's type is
// neither T nor one of its declared aliases.
func As[T any](d *Dictionary) (*T, error) {
	if !d.IsValue() {
		return nil, typeErrf("", "object is not a value")
	}
	return reference[T](&d.value)
}

// Get returns a pointer to the value at key. It fails with a *KeyError when
// key is absent, and with a *TypeError when the child is a dictionary or
// holds a value of a different type; the error names the stored and
// requested types.
func Get[T any](d *Dictionary, key string) (*T, error) {
	child, ok := d.children[key]
	if !ok {
		return nil, keyErrf(key, "")
	}
	if !child.IsValue() {
		return nil, typeErrf(key, "child at key %q is not a value", key)
	}
	p, err := reference[T](&child.value)
	if err != nil {
		return nil, typeErrAt(key, err)
	}
	return p, nil
}

// GetOr returns a copy of the value at key, or def when key is absent. An
// existing child must still type-check: GetOr fails with a *TypeError when
// the child is a dictionary or holds a value of a different type.
func GetOr[T any](d *Dictionary, key string, def T) (T, error) {
	child, ok := d.children[key]
	if !ok {
		return def, nil
	}
	if !child.IsValue() {
		return def, typeErrf(key, "object at key %q is a dictionary, cannot get a single value from it", key)
	}
	p, err := reference[T](&child.value)
	if err != nil {
		return def, typeErrAt(key, err)
	}
	return *p, nil
}
