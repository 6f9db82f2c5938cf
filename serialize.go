package mpdict

import (
	"log/slog"
	"os"

	"github.com/mpdict/mpdict/geom"
	"github.com/mpdict/mpdict/wire"
)

// Pack serializes the whole tree to a MessagePack message. A value node
// becomes its bound scalar or array representation; a map node becomes a map
// of key to recursively packed child, with keys written in sorted order.
func (d *Dictionary) Pack() ([]byte, error) {
	w := wire.NewWriter()
	defer w.Release()
	if err := d.serialize(w); err != nil {
		return nil, err
	}
	out := make([]byte, w.Len())
	copy(out, w.Bytes())
	return out, nil
}

// Serialize writes the tree to an existing wire writer, for callers
// embedding dictionaries inside larger messages.
func (d *Dictionary) Serialize(w *wire.Writer) error {
	return d.serialize(w)
}

func (d *Dictionary) serialize(w *wire.Writer) error {
	if d.IsValue() {
		return d.value.serialize(w)
	}
	if err := w.StartMap(len(d.children)); err != nil {
		return err
	}
	for _, key := range d.sortedKeys() {
		if err := w.WriteString(key); err != nil {
			return err
		}
		if err := d.children[key].serialize(w); err != nil {
			return err
		}
	}
	return nil
}

// Update refreshes values at keys already present in the tree from a packed
// message. Wire keys absent from the tree are silently skipped: Update never
// introduces new keys (use Extend for that). Unparseable input is logged and
// leaves the tree unmodified; type mismatches between wire values and bound
// value types fail with a *TypeError.
func (d *Dictionary) Update(data []byte) error {
	node, err := wire.Parse(data)
	if err != nil {
		d.logger().Error("dictionary: cannot parse message, skipping update", slog.Any("err", err))
		return nil
	}
	return d.UpdateNode(node)
}

// UpdateNode is Update from an already parsed wire node.
func (d *Dictionary) UpdateNode(node wire.Node) error {
	if d.IsEmpty() {
		d.logger().Warn("dictionary: updating an empty dictionary has no effect")
		return nil
	}
	if d.IsValue() {
		return d.value.deserialize(node)
	}
	if !node.IsMap() {
		return typeErrf("", "expecting a map, not %v", node.Kind())
	}
	for i := 0; i < node.MapLen(); i++ {
		key := node.MapKeyAt(i)
		child, ok := d.children[key]
		if !ok {
			// Unknown keys are ignored on update; extend handles new keys
			// and infers their value types.
			continue
		}
		if err := child.UpdateNode(node.MapValueAt(i)); err != nil {
			return typeErrAt(key, err)
		}
	}
	return nil
}

// Extend inserts keys from a packed message that are not yet present in the
// tree, inferring each native type from the wire value. Keys already present
// are logged and skipped, never overwritten. Unparseable input is logged and
// leaves the tree unmodified.
func (d *Dictionary) Extend(data []byte) error {
	node, err := wire.Parse(data)
	if err != nil {
		d.logger().Error("dictionary: cannot parse message, skipping extend", slog.Any("err", err))
		return nil
	}
	return d.ExtendNode(node)
}

// ExtendNode is Extend from an already parsed wire node. Both this node and
// the wire node must be maps.
//
// Native types are inferred from wire type tags: bool, int, uint, float32,
// float64 and string map to themselves; arrays of length 2, 3, 4 and 9 map
// to geom.Vector2, geom.Vector3, geom.Quaternion and geom.Matrix3, any other
// length to geom.VectorX; maps extend recursively. The array-length rule is
// a heuristic: a dynamic vector that happens to have one of the fixed
// lengths is indistinguishable on the wire and comes back as the fixed-size
// type. Binary blobs and nils are unsupported and fail with a *TypeError.
func (d *Dictionary) ExtendNode(node wire.Node) error {
	if !d.IsMap() {
		return typeErrf("", "dictionary is not a map")
	}
	if !node.IsMap() {
		return typeErrf("", "argument should be a map, not %v", node.Kind())
	}
	for i := 0; i < node.MapLen(); i++ {
		key := node.MapKeyAt(i)
		if d.Has(key) {
			d.logger().Warn("dictionary: key already exists, ignoring value from message", slog.String("key", key))
			continue
		}
		if err := d.extendKey(key, node.MapValueAt(i)); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dictionary) extendKey(key string, n wire.Node) error {
	switch n.Kind() {
	case wire.Bool:
		_, err := Insert(d, key, n.Bool())
		return err
	case wire.Int:
		_, err := Insert(d, key, int(n.Int()))
		return err
	case wire.Uint:
		_, err := Insert(d, key, uint(n.Uint()))
		return err
	case wire.Float32:
		_, err := Insert(d, key, float32(n.Float()))
		return err
	case wire.Float64:
		_, err := Insert(d, key, n.Float())
		return err
	case wire.Str:
		_, err := Insert(d, key, n.Str())
		return err
	case wire.Array:
		return d.extendArrayKey(key, n)
	case wire.Map:
		child, err := d.At(key)
		if err != nil {
			return err
		}
		if err := child.ExtendNode(n); err != nil {
			return typeErrAt(key, err)
		}
		return nil
	default:
		return typeErrf(key, "cannot insert values of type %v", n.Kind())
	}
}

func (d *Dictionary) extendArrayKey(key string, n wire.Node) error {
	switch n.ArrayLen() {
	case 2:
		var v geom.Vector2
		if err := decVector2(n, &v); err != nil {
			return typeErrAt(key, err)
		}
		_, err := Insert(d, key, v)
		return err
	case 3:
		var v geom.Vector3
		if err := decVector3(n, &v); err != nil {
			return typeErrAt(key, err)
		}
		_, err := Insert(d, key, v)
		return err
	case 4:
		var v geom.Quaternion
		if err := decQuaternion(n, &v); err != nil {
			return typeErrAt(key, err)
		}
		_, err := Insert(d, key, v)
		return err
	case 9:
		var v geom.Matrix3
		if err := decMatrix3(n, &v); err != nil {
			return typeErrAt(key, err)
		}
		_, err := Insert(d, key, v)
		return err
	default:
		var v geom.VectorX
		if err := decVectorX(n, &v); err != nil {
			return typeErrAt(key, err)
		}
		_, err := Insert(d, key, v)
		return err
	}
}

// WriteFile serializes the whole tree to a file.
func (d *Dictionary) WriteFile(path string) error {
	data, err := d.Pack()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadFile refreshes the tree from a file written by WriteFile, with Update
// semantics: only keys already present in the tree are populated. Reading
// into an empty tree has no effect; pre-shape the tree first, or read the
// bytes and use Extend.
func (d *Dictionary) ReadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return d.Update(data)
}
