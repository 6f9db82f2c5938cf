package wire

import (
	"bytes"
	"testing"
)

func TestWriterKnownBytes(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	if err := w.StartMap(1); err != nil {
		t.Fatalf("StartMap failed: %v", err)
	}
	if err := w.WriteString("id"); err != nil {
		t.Fatalf("WriteString failed: %v", err)
	}
	if err := w.WriteInt(12); err != nil {
		t.Fatalf("WriteInt failed: %v", err)
	}

	want := []byte{0x81, 0xa2, 'i', 'd', 0x0c}
	if !bytes.Equal(w.Bytes(), want) {
		t.Fatalf("Bytes = % x, wanted % x", w.Bytes(), want)
	}
}

func TestParseScalarKinds(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	if err := w.StartArray(7); err != nil {
		t.Fatalf("StartArray failed: %v", err)
	}
	ensure := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("write failed: %v", err)
		}
	}
	ensure(w.WriteBool(true))
	ensure(w.WriteInt(-7))
	ensure(w.WriteInt(7)) // non-negative ints take the unsigned tag
	ensure(w.WriteUint(1 << 40))
	ensure(w.WriteFloat32(1.5))
	ensure(w.WriteFloat64(2.5))
	ensure(w.WriteString("hello"))

	n, err := Parse(w.Bytes())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !n.IsArray() || n.ArrayLen() != 7 {
		t.Fatalf("parsed kind=%v len=%d, wanted array of 7", n.Kind(), n.ArrayLen())
	}

	if e := n.ArrayAt(0); e.Kind() != Bool || !e.Bool() {
		t.Fatalf("elem 0 = %v/%v, wanted Bool true", e.Kind(), e.Bool())
	}
	if e := n.ArrayAt(1); e.Kind() != Int || e.Int() != -7 {
		t.Fatalf("elem 1 = %v/%d, wanted Int -7", e.Kind(), e.Int())
	}
	if e := n.ArrayAt(2); e.Kind() != Uint || e.Uint() != 7 {
		t.Fatalf("elem 2 = %v/%d, wanted Uint 7", e.Kind(), e.Uint())
	}
	if e := n.ArrayAt(3); e.Kind() != Uint || e.Uint() != 1<<40 {
		t.Fatalf("elem 3 = %v/%d, wanted Uint 2^40", e.Kind(), e.Uint())
	}
	if e := n.ArrayAt(4); e.Kind() != Float32 || e.Float() != 1.5 {
		t.Fatalf("elem 4 = %v/%v, wanted Float32 1.5", e.Kind(), e.Float())
	}
	if e := n.ArrayAt(5); e.Kind() != Float64 || e.Float() != 2.5 {
		t.Fatalf("elem 5 = %v/%v, wanted Float64 2.5", e.Kind(), e.Float())
	}
	if e := n.ArrayAt(6); e.Kind() != Str || e.Str() != "hello" {
		t.Fatalf("elem 6 = %v/%q, wanted Str hello", e.Kind(), e.Str())
	}
}

func TestParseMap(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	if err := w.StartMap(2); err != nil {
		t.Fatalf("StartMap failed: %v", err)
	}
	for _, kv := range []struct {
		k string
		v int64
	}{{"a", 1}, {"b", 2}} {
		if err := w.WriteString(kv.k); err != nil {
			t.Fatalf("WriteString failed: %v", err)
		}
		if err := w.WriteInt(kv.v); err != nil {
			t.Fatalf("WriteInt failed: %v", err)
		}
	}

	n, err := Parse(w.Bytes())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if !n.IsMap() || n.MapLen() != 2 {
		t.Fatalf("parsed kind=%v len=%d, wanted map of 2", n.Kind(), n.MapLen())
	}
	if n.MapKeyAt(0) != "a" || n.MapValueAt(0).Int() != 1 {
		t.Fatalf("entry 0 = %q/%d, wanted a/1", n.MapKeyAt(0), n.MapValueAt(0).Int())
	}
	if n.MapKeyAt(1) != "b" || n.MapValueAt(1).Int() != 2 {
		t.Fatalf("entry 1 = %q/%d, wanted b/2", n.MapKeyAt(1), n.MapValueAt(1).Int())
	}
}

func TestParseNested(t *testing.T) {
	w := NewWriter()
	defer w.Release()

	if err := w.StartMap(1); err != nil {
		t.Fatalf("StartMap failed: %v", err)
	}
	if err := w.WriteString("pos"); err != nil {
		t.Fatalf("WriteString failed: %v", err)
	}
	if err := w.StartArray(3); err != nil {
		t.Fatalf("StartArray failed: %v", err)
	}
	for _, f := range []float64{1, 2, 3} {
		if err := w.WriteFloat64(f); err != nil {
			t.Fatalf("WriteFloat64 failed: %v", err)
		}
	}

	n, err := Parse(w.Bytes())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	pos := n.MapValueAt(0)
	if !pos.IsArray() || pos.ArrayLen() != 3 {
		t.Fatalf("pos kind=%v len=%d, wanted array of 3", pos.Kind(), pos.ArrayLen())
	}
	if f := pos.ArrayAt(2).Float(); f != 3 {
		t.Fatalf("pos[2] = %v, wanted 3", f)
	}
}

func TestParseTruncated(t *testing.T) {
	// A map header promising two entries with no data behind it.
	if _, err := Parse([]byte{0x82}); err == nil {
		t.Fatalf("Parse(truncated) = nil error, wanted failure")
	}
	if _, err := Parse(nil); err == nil {
		t.Fatalf("Parse(empty) = nil error, wanted failure")
	}
}

func TestParseNonStringMapKey(t *testing.T) {
	// {1: 2}: integer keys are not part of the dictionary wire format.
	if _, err := Parse([]byte{0x81, 0x01, 0x02}); err == nil {
		t.Fatalf("Parse(map with int key) = nil error, wanted failure")
	}
}

func TestKindString(t *testing.T) {
	if got := Map.String(); got != "map" {
		t.Fatalf("Map.String() = %q, wanted %q", got, "map")
	}
	if got := Kind(99).String(); got != "Kind(99)" {
		t.Fatalf("Kind(99).String() = %q, wanted %q", got, "Kind(99)")
	}
}
