package mpdict

import (
	"math"
	"reflect"
	"strings"
	"sync"

	"github.com/mpdict/mpdict/geom"
	"github.com/mpdict/mpdict/wire"
)

// typeOps is the operation set bound into a value slot: serialize to the
// wire, deserialize from a parsed wire node, and render as text. The funcs
// receive the slot's boxed *T as any.
type typeOps struct {
	name   string
	encode func(w *wire.Writer, v any) error
	decode func(n wire.Node, v any) error
	print  func(sb *strings.Builder, v any)
}

var (
	codecMu sync.RWMutex
	codecs  = make(map[reflect.Type]*typeOps)
)

// Register adds a value type to the codec tables. Values of registered types
// participate fully in serialization, update and text rendering. Builtin
// scalar and geometric types are pre-registered; registering a type again
// replaces its operations (existing slots keep the operations they were
// bound with).
func Register[T any](
	encode func(w *wire.Writer, v *T) error,
	decode func(n wire.Node, v *T) error,
	print func(sb *strings.Builder, v *T),
) {
	rt := TypeOf[T]()
	ops := &typeOps{
		name: rt.String(),
		encode: func(w *wire.Writer, v any) error {
			return encode(w, v.(*T))
		},
		decode: func(n wire.Node, v any) error {
			return decode(n, v.(*T))
		},
		print: func(sb *strings.Builder, v any) {
			print(sb, v.(*T))
		},
	}
	codecMu.Lock()
	codecs[rt] = ops
	codecMu.Unlock()
}

// opsFor returns the registered operations for rt, or fallback operations
// for unknown types: serialize and print as a type-name placeholder, refuse
// to deserialize.
func opsFor(rt reflect.Type) *typeOps {
	codecMu.RLock()
	ops := codecs[rt]
	codecMu.RUnlock()
	if ops != nil {
		return ops
	}
	placeholder := "<typeid:" + rt.String() + ">"
	return &typeOps{
		name: rt.String(),
		encode: func(w *wire.Writer, v any) error {
			return w.WriteString(placeholder)
		},
		decode: func(n wire.Node, v any) error {
			return typeErrf("", "no known deserialization function for type %q", rt.String())
		},
		print: func(sb *strings.Builder, v any) {
			sb.WriteByte('"')
			sb.WriteString(placeholder)
			sb.WriteByte('"')
		},
	}
}

// wireSigned extracts a signed integer from a scalar node, trusting the wire
// width tag and narrowing when the value fits [min, max].
func wireSigned(n wire.Node, what string, min, max int64) (int64, error) {
	switch n.Kind() {
	case wire.Int:
		v := n.Int()
		if v < min || v > max {
			return 0, typeErrf("", "value %d out of range for %s", v, what)
		}
		return v, nil
	case wire.Uint:
		u := n.Uint()
		if u > uint64(max) {
			return 0, typeErrf("", "value %d out of range for %s", u, what)
		}
		return int64(u), nil
	default:
		return 0, typeErrf("", "expecting %s, but deserialized node has type %v", what, n.Kind())
	}
}

// wireUnsigned extracts an unsigned integer from a scalar node. Only
// unsigned wire tags are accepted, matching the signedness check on write.
func wireUnsigned(n wire.Node, what string, max uint64) (uint64, error) {
	if n.Kind() != wire.Uint {
		return 0, typeErrf("", "expecting %s, but deserialized node has type %v", what, n.Kind())
	}
	u := n.Uint()
	if u > max {
		return 0, typeErrf("", "value %d out of range for %s", u, what)
	}
	return u, nil
}

// wireFloat extracts a floating-point value from a scalar node. Any numeric
// wire tag is accepted.
func wireFloat(n wire.Node, what string) (float64, error) {
	switch n.Kind() {
	case wire.Int, wire.Uint, wire.Float32, wire.Float64:
		return n.Float(), nil
	default:
		return 0, typeErrf("", "expecting %s, but deserialized node has type %v", what, n.Kind())
	}
}

// wireFloatAt extracts element i of an array node as a float64.
func wireFloatAt(n wire.Node, i int) (float64, error) {
	f, err := wireFloat(n.ArrayAt(i), "float64")
	if err != nil {
		return 0, typeErrf("", "array element %d: %v", i, err)
	}
	return f, nil
}

// checkArray verifies that n is an array of exactly want elements. Length
// mismatches on fixed-size geometric types are checked errors, never
// truncation.
func checkArray(n wire.Node, what string, want int) error {
	if n.Kind() != wire.Array {
		return typeErrf("", "expecting %s, but deserialized node has type %v", what, n.Kind())
	}
	if got := n.ArrayLen(); got != want {
		return typeErrf("", "expecting an array of length %d for %s, got length %d", want, what, got)
	}
	return nil
}

func encodeFloatArray(w *wire.Writer, vals ...float64) error {
	if err := w.StartArray(len(vals)); err != nil {
		return err
	}
	for _, v := range vals {
		if err := w.WriteFloat64(v); err != nil {
			return err
		}
	}
	return nil
}

func decBool(n wire.Node, v *bool) error {
	if n.Kind() != wire.Bool {
		return typeErrf("", "expecting bool, but deserialized node has type %v", n.Kind())
	}
	*v = n.Bool()
	return nil
}

func decString(n wire.Node, v *string) error {
	if n.Kind() != wire.Str {
		return typeErrf("", "expecting string, but deserialized node has type %v", n.Kind())
	}
	*v = n.Str()
	return nil
}

func decVector2(n wire.Node, v *geom.Vector2) error {
	if err := checkArray(n, "geom.Vector2", 2); err != nil {
		return err
	}
	return readFloats(n, &v.X, &v.Y)
}

func decVector3(n wire.Node, v *geom.Vector3) error {
	if err := checkArray(n, "geom.Vector3", 3); err != nil {
		return err
	}
	return readFloats(n, &v.X, &v.Y, &v.Z)
}

func decQuaternion(n wire.Node, v *geom.Quaternion) error {
	if err := checkArray(n, "geom.Quaternion", 4); err != nil {
		return err
	}
	return readFloats(n, &v.W, &v.X, &v.Y, &v.Z)
}

func decMatrix3(n wire.Node, v *geom.Matrix3) error {
	if err := checkArray(n, "geom.Matrix3", 9); err != nil {
		return err
	}
	for i := range v {
		f, err := wireFloatAt(n, i)
		if err != nil {
			return err
		}
		v[i] = f
	}
	return nil
}

// decVectorX adopts the wire array's length, unlike the fixed-size types.
func decVectorX(n wire.Node, v *geom.VectorX) error {
	if n.Kind() != wire.Array {
		return typeErrf("", "expecting geom.VectorX, but deserialized node has type %v", n.Kind())
	}
	out := make(geom.VectorX, n.ArrayLen())
	for i := range out {
		f, err := wireFloatAt(n, i)
		if err != nil {
			return err
		}
		out[i] = f
	}
	*v = out
	return nil
}

func readFloats(n wire.Node, dst ...*float64) error {
	for i, p := range dst {
		f, err := wireFloatAt(n, i)
		if err != nil {
			return err
		}
		*p = f
	}
	return nil
}

func registerSigned[T int | int8 | int16 | int32 | int64](what string, min, max int64) {
	Register(
		func(w *wire.Writer, v *T) error { return w.WriteInt(int64(*v)) },
		func(n wire.Node, v *T) error {
			i, err := wireSigned(n, what, min, max)
			if err != nil {
				return err
			}
			*v = T(i)
			return nil
		},
		func(sb *strings.Builder, v *T) { printInt(sb, int64(*v)) },
	)
}

func registerUnsigned[T uint | uint8 | uint16 | uint32 | uint64](what string, max uint64) {
	Register(
		func(w *wire.Writer, v *T) error { return w.WriteUint(uint64(*v)) },
		func(n wire.Node, v *T) error {
			u, err := wireUnsigned(n, what, max)
			if err != nil {
				return err
			}
			*v = T(u)
			return nil
		},
		func(sb *strings.Builder, v *T) { printUint(sb, uint64(*v)) },
	)
}

func init() {
	Register(
		func(w *wire.Writer, v *bool) error { return w.WriteBool(*v) },
		decBool,
		printBool,
	)

	registerSigned[int]("int", math.MinInt, math.MaxInt)
	registerSigned[int8]("int8", math.MinInt8, math.MaxInt8)
	registerSigned[int16]("int16", math.MinInt16, math.MaxInt16)
	registerSigned[int32]("int32", math.MinInt32, math.MaxInt32)
	registerSigned[int64]("int64", math.MinInt64, math.MaxInt64)

	registerUnsigned[uint]("uint", math.MaxUint)
	registerUnsigned[uint8]("uint8", math.MaxUint8)
	registerUnsigned[uint16]("uint16", math.MaxUint16)
	registerUnsigned[uint32]("uint32", math.MaxUint32)
	registerUnsigned[uint64]("uint64", math.MaxUint64)

	Register(
		func(w *wire.Writer, v *float32) error { return w.WriteFloat32(*v) },
		func(n wire.Node, v *float32) error {
			f, err := wireFloat(n, "float32")
			if err != nil {
				return err
			}
			*v = float32(f)
			return nil
		},
		func(sb *strings.Builder, v *float32) { printFloat(sb, float64(*v)) },
	)

	Register(
		func(w *wire.Writer, v *float64) error { return w.WriteFloat64(*v) },
		func(n wire.Node, v *float64) error {
			f, err := wireFloat(n, "float64")
			if err != nil {
				return err
			}
			*v = f
			return nil
		},
		func(sb *strings.Builder, v *float64) { printFloat(sb, *v) },
	)

	Register(
		func(w *wire.Writer, v *string) error { return w.WriteString(*v) },
		decString,
		printString,
	)

	Register(
		func(w *wire.Writer, v *geom.Vector2) error { return encodeFloatArray(w, v.X, v.Y) },
		decVector2,
		printVector2,
	)

	Register(
		func(w *wire.Writer, v *geom.Vector3) error { return encodeFloatArray(w, v.X, v.Y, v.Z) },
		decVector3,
		printVector3,
	)

	// Quaternions go on the wire in [w, x, y, z] order.
	Register(
		func(w *wire.Writer, v *geom.Quaternion) error { return encodeFloatArray(w, v.W, v.X, v.Y, v.Z) },
		decQuaternion,
		printQuaternion,
	)

	// Matrices are written row-major as a flat 9-element array.
	Register(
		func(w *wire.Writer, v *geom.Matrix3) error { return encodeFloatArray(w, (*v)[:]...) },
		decMatrix3,
		printMatrix3,
	)

	Register(
		func(w *wire.Writer, v *geom.VectorX) error { return encodeFloatArray(w, *v...) },
		decVectorX,
		printVectorX,
	)
}
