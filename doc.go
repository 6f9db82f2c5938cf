/*
Package mpdict implements a dynamically-typed dictionary tree that stores
heterogeneous native values behind a uniform interface and serializes to
MessagePack.

A Dictionary is either empty, a single typed value, or a map from string keys
to child dictionaries:

	type Dictionary =
	    | Empty
	    | Value of typed native value
	    | Map of (string -> Dictionary) map

The root is always a usable dictionary; values live in leaves. A value
remembers its concrete type at insertion time and can be serialized, updated
from wire data, printed and type-checked through operations bound when it was
inserted. Once a key holds a value of some type, that type is fixed: reading
or assigning it as a different type fails with a *TypeError.

# Typed access

Since methods cannot introduce type parameters, typed access goes through
package-level generic functions:

	d := mpdict.New()
	mpdict.SetAt(d, "mass", 1.5)
	mass, err := mpdict.Get[float64](d, "mass")

Scalar and geometric builtins also have direct accessor methods (Bool, Int,
Float64, Str, Vector2, ...) with the same error semantics as As.

# Serialization

Pack produces a MessagePack message for the whole tree; map entries are
written with sorted keys so output is deterministic. Update refreshes values
at keys already present in the tree and ignores unknown keys. Extend inserts
previously-unknown keys, inferring each native type from the wire value's
type tag and array length. Both operations treat unparseable top-level input
as a logged no-op.

# Builtin value types

bool, int, int8..int64, uint, uint8..uint64, float32, float64, string, and
the geometric types of package geom (Vector2, Vector3, VectorX, Quaternion,
Matrix3). Other types can join via Register; unregistered types serialize and
print as a type-name placeholder and cannot be deserialized.

# Ownership and concurrency

Each dictionary exclusively owns its children; there is no sharing between
trees and no deep-clone operation. Dictionaries are not safe for concurrent
use: callers sharing a tree across goroutines must serialize access
themselves.
*/
package mpdict
