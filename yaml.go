package mpdict

import (
	"log/slog"

	"gopkg.in/yaml.v3"

	"github.com/mpdict/mpdict/geom"
)

// ExtendYAML inserts keys from a YAML mapping that are not yet present in
// the tree, with the same semantics and type-inference rules as Extend:
// existing keys are logged and skipped, scalars map to their native types,
// all-numeric sequences map to geometric types by length, nested mappings
// extend recursively. Null values and sequences with non-numeric elements
// fail with a *TypeError. Unparseable input is logged and leaves the tree
// unmodified.
func (d *Dictionary) ExtendYAML(data []byte) error {
	var root map[string]any
	if err := yaml.Unmarshal(data, &root); err != nil {
		d.logger().Error("dictionary: cannot parse YAML, skipping extend", slog.Any("err", err))
		return nil
	}
	return d.extendMap(root)
}

func (d *Dictionary) extendMap(m map[string]any) error {
	if !d.IsMap() {
		return typeErrf("", "dictionary is not a map")
	}
	for key, v := range m {
		if d.Has(key) {
			d.logger().Warn("dictionary: key already exists, ignoring value from YAML", slog.String("key", key))
			continue
		}
		if err := d.extendAnyKey(key, v); err != nil {
			return err
		}
	}
	return nil
}

func (d *Dictionary) extendAnyKey(key string, v any) error {
	switch v := v.(type) {
	case bool:
		_, err := Insert(d, key, v)
		return err
	case int:
		_, err := Insert(d, key, v)
		return err
	case uint64:
		// yaml.v3 decodes integers beyond MaxInt64 as uint64.
		_, err := Insert(d, key, uint(v))
		return err
	case float64:
		_, err := Insert(d, key, v)
		return err
	case string:
		_, err := Insert(d, key, v)
		return err
	case map[string]any:
		child, err := d.At(key)
		if err != nil {
			return err
		}
		if err := child.extendMap(v); err != nil {
			return typeErrAt(key, err)
		}
		return nil
	case []any:
		vec, err := numericSeq(v)
		if err != nil {
			return typeErrAt(key, err)
		}
		return d.insertVector(key, vec)
	default:
		return typeErrf(key, "cannot insert YAML values of type %T", v)
	}
}

func (d *Dictionary) insertVector(key string, vec []float64) error {
	switch len(vec) {
	case 2:
		_, err := Insert(d, key, geom.Vector2{X: vec[0], Y: vec[1]})
		return err
	case 3:
		_, err := Insert(d, key, geom.Vector3{X: vec[0], Y: vec[1], Z: vec[2]})
		return err
	case 4:
		_, err := Insert(d, key, geom.Quaternion{W: vec[0], X: vec[1], Y: vec[2], Z: vec[3]})
		return err
	case 9:
		var m geom.Matrix3
		copy(m[:], vec)
		_, err := Insert(d, key, m)
		return err
	default:
		_, err := Insert(d, key, geom.VectorX(vec))
		return err
	}
}

func numericSeq(seq []any) ([]float64, error) {
	out := make([]float64, len(seq))
	for i, e := range seq {
		switch e := e.(type) {
		case int:
			out[i] = float64(e)
		case uint64:
			out[i] = float64(e)
		case float64:
			out[i] = e
		default:
			return nil, typeErrf("", "sequence element %d has type %T, expecting a number", i, e)
		}
	}
	return out, nil
}
