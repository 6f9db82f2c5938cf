package mpdict

import "github.com/mpdict/mpdict/geom"

// Per-type accessor methods for the builtin value types, with the same error
// semantics as As. They return the value by copy; use As for a reference.

func scalar[T any](d *Dictionary) (T, error) {
	p, err := As[T](d)
	if err != nil {
		var zero T
		return zero, err
	}
	return *p, nil
}

func (d *Dictionary) Bool() (bool, error) { return scalar[bool](d) }

func (d *Dictionary) Int() (int, error)     { return scalar[int](d) }
func (d *Dictionary) Int8() (int8, error)   { return scalar[int8](d) }
func (d *Dictionary) Int16() (int16, error) { return scalar[int16](d) }
func (d *Dictionary) Int32() (int32, error) { return scalar[int32](d) }
func (d *Dictionary) Int64() (int64, error) { return scalar[int64](d) }

func (d *Dictionary) Uint() (uint, error)     { return scalar[uint](d) }
func (d *Dictionary) Uint8() (uint8, error)   { return scalar[uint8](d) }
func (d *Dictionary) Uint16() (uint16, error) { return scalar[uint16](d) }
func (d *Dictionary) Uint32() (uint32, error) { return scalar[uint32](d) }
func (d *Dictionary) Uint64() (uint64, error) { return scalar[uint64](d) }

func (d *Dictionary) Float32() (float32, error) { return scalar[float32](d) }
func (d *Dictionary) Float64() (float64, error) { return scalar[float64](d) }

// Str returns the stored string value. (String is the text renderer.)
func (d *Dictionary) Str() (string, error) { return scalar[string](d) }

func (d *Dictionary) Vector2() (geom.Vector2, error)       { return scalar[geom.Vector2](d) }
func (d *Dictionary) Vector3() (geom.Vector3, error)       { return scalar[geom.Vector3](d) }
func (d *Dictionary) VectorX() (geom.VectorX, error)       { return scalar[geom.VectorX](d) }
func (d *Dictionary) Quaternion() (geom.Quaternion, error) { return scalar[geom.Quaternion](d) }
func (d *Dictionary) Matrix3() (geom.Matrix3, error)       { return scalar[geom.Matrix3](d) }
