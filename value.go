package mpdict

import (
	"reflect"
	"slices"
	"strings"

	"github.com/mpdict/mpdict/wire"
)

// valueSlot boxes one native value together with the operations bound to its
// concrete type at insertion time. An unoccupied slot (nil ptr) means the
// node is a map. A slot is bound exactly once and never rebound; clearing it
// means discarding the whole node.
type valueSlot struct {
	ptr     any          // *T for the stored type T
	rtype   reflect.Type // concrete stored type
	aliases []reflect.Type
	ops     *typeOps
}

func (v *valueSlot) occupied() bool {
	return v.ptr != nil
}

// match reports whether t is the stored concrete type or one of the alias
// types declared at insertion.
func (v *valueSlot) match(t reflect.Type) bool {
	return t == v.rtype || slices.Contains(v.aliases, t)
}

func (v *valueSlot) typeName() string {
	return v.ops.name
}

func (v *valueSlot) serialize(w *wire.Writer) error {
	return v.ops.encode(w, v.ptr)
}

func (v *valueSlot) deserialize(n wire.Node) error {
	return v.ops.decode(n, v.ptr)
}

func (v *valueSlot) print(sb *strings.Builder) {
	v.ops.print(sb, v.ptr)
}

// bind occupies the slot with a freshly boxed value and captures its type
// operations. Must only be called on an unoccupied slot.
func bind[T any](v *valueSlot, val T, aliases []reflect.Type) *T {
	p := new(T)
	*p = val
	rt := TypeOf[T]()
	v.ptr = p
	v.rtype = rt
	v.aliases = aliases
	v.ops = opsFor(rt)
	return p
}

// reference returns a pointer to the stored value as *T. T must be the
// stored concrete type, or an alias type declared at insertion; in the alias
// case T is typically an interface implemented by the stored value, and the
// returned pointer addresses an interface value backed by the same object.
func reference[T any](v *valueSlot) (*T, error) {
	want := TypeOf[T]()
	if !v.match(want) {
		return nil, typeErrf("", "object has type %q but is being cast to type %q", v.typeName(), want.String())
	}
	if p, ok := v.ptr.(*T); ok {
		return p, nil
	}
	if t, ok := v.ptr.(T); ok {
		return &t, nil
	}
	return nil, typeErrf("", "object of type %q cannot be viewed as %q", v.typeName(), want.String())
}

// TypeOf returns the reflect.Type of T, including interface types. It is the
// form alias types are declared in for InsertAliased.
func TypeOf[T any]() reflect.Type {
	return reflect.TypeOf((*T)(nil)).Elem()
}
