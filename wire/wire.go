// Package wire adapts the MessagePack codec to the two shapes the dictionary
// core needs: a streaming writer with map/array/scalar primitives, and a
// parser that turns a byte buffer into a navigable node tree.
//
// The writer and parser keep the wire-level distinction between signed and
// unsigned integers and between 32-bit and 64-bit floats, because the core
// uses those tags both for strict type checking on update and for native type
// inference on extend.
package wire

import (
	"bytes"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"github.com/vmihailenco/msgpack/v5/msgpcode"
)

// Writer is a streaming MessagePack writer over a growable buffer.
//
// Containers are length-prefixed on the wire, so StartMap and StartArray take
// the entry count up front and there is nothing to finish.
type Writer struct {
	buf bytes.Buffer
	enc *msgpack.Encoder
}

func NewWriter() *Writer {
	w := &Writer{}
	w.enc = msgpack.GetEncoder()
	w.enc.ResetDict(&w.buf, nil)
	return w
}

// Release returns the pooled encoder. The writer must not be used afterwards.
func (w *Writer) Release() {
	if w.enc != nil {
		msgpack.PutEncoder(w.enc)
		w.enc = nil
	}
}

// Bytes returns the accumulated message. The slice is owned by the writer.
func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}

func (w *Writer) Len() int {
	return w.buf.Len()
}

func (w *Writer) StartMap(n int) error {
	return w.enc.EncodeMapLen(n)
}

func (w *Writer) StartArray(n int) error {
	return w.enc.EncodeArrayLen(n)
}

func (w *Writer) WriteBool(b bool) error {
	return w.enc.EncodeBool(b)
}

// WriteInt encodes n using the smallest signed representation, down to a
// single-byte fixint.
func (w *Writer) WriteInt(n int64) error {
	return w.enc.EncodeInt(n)
}

// WriteUint encodes n using the smallest unsigned representation.
func (w *Writer) WriteUint(n uint64) error {
	return w.enc.EncodeUint(n)
}

func (w *Writer) WriteFloat32(f float32) error {
	return w.enc.EncodeFloat32(f)
}

func (w *Writer) WriteFloat64(f float64) error {
	return w.enc.EncodeFloat64(f)
}

func (w *Writer) WriteString(s string) error {
	return w.enc.EncodeString(s)
}

// Kind classifies a parsed node by its wire type tag.
type Kind int

const (
	Invalid Kind = iota
	Nil
	Bool
	Int     // negative fixint, int8..int64
	Uint    // positive fixint, uint8..uint64
	Float32 // float family, 32-bit tag
	Float64 // float family, 64-bit tag
	Str
	Bin
	Array
	Map
)

var kindNames = [...]string{
	Invalid: "invalid",
	Nil:     "nil",
	Bool:    "bool",
	Int:     "int",
	Uint:    "uint",
	Float32: "float32",
	Float64: "float64",
	Str:     "str",
	Bin:     "bin",
	Array:   "array",
	Map:     "map",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Node is one node of a parsed message: a map, an array or a scalar.
// The zero Node has kind Invalid.
type Node struct {
	kind  Kind
	b     bool
	i     int64
	u     uint64
	f     float64
	s     string
	raw   []byte
	keys  []string
	elems []Node // map values when kind == Map, array elements when kind == Array
}

func (n Node) Kind() Kind { return n.kind }

func (n Node) IsMap() bool   { return n.kind == Map }
func (n Node) IsArray() bool { return n.kind == Array }

func (n Node) Bool() bool { return n.b }

func (n Node) Int() int64 {
	if n.kind == Uint {
		return int64(n.u)
	}
	return n.i
}

func (n Node) Uint() uint64 { return n.u }

// Float returns the node's numeric value widened to float64. It is valid for
// the int, uint and both float kinds.
func (n Node) Float() float64 {
	switch n.kind {
	case Int:
		return float64(n.i)
	case Uint:
		return float64(n.u)
	default:
		return n.f
	}
}

func (n Node) Str() string { return n.s }

func (n Node) Bin() []byte { return n.raw }

// ArrayLen returns the element count of an array node, 0 otherwise.
func (n Node) ArrayLen() int {
	if n.kind != Array {
		return 0
	}
	return len(n.elems)
}

func (n Node) ArrayAt(i int) Node { return n.elems[i] }

// MapLen returns the entry count of a map node, 0 otherwise.
func (n Node) MapLen() int { return len(n.keys) }

func (n Node) MapKeyAt(i int) string { return n.keys[i] }

func (n Node) MapValueAt(i int) Node { return n.elems[i] }

// Parse reads a single MessagePack value from data and returns it as a node
// tree. It fails on truncated or malformed input and on map keys that are not
// strings.
func Parse(data []byte) (Node, error) {
	var r bytes.Reader
	r.Reset(data)
	dec := msgpack.GetDecoder()
	dec.ResetDict(&r, nil)
	node, err := parseNode(dec)
	msgpack.PutDecoder(dec)
	if err != nil {
		return Node{}, fmt.Errorf("wire: %w", err)
	}
	return node, nil
}

func parseNode(dec *msgpack.Decoder) (Node, error) {
	c, err := dec.PeekCode()
	if err != nil {
		return Node{}, err
	}
	switch {
	case c == msgpcode.Nil:
		if err := dec.DecodeNil(); err != nil {
			return Node{}, err
		}
		return Node{kind: Nil}, nil

	case c == msgpcode.False || c == msgpcode.True:
		b, err := dec.DecodeBool()
		if err != nil {
			return Node{}, err
		}
		return Node{kind: Bool, b: b}, nil

	case c <= 0x7f || (c >= msgpcode.Uint8 && c <= msgpcode.Uint64):
		// Positive fixint and the uint family carry the unsigned tag.
		u, err := dec.DecodeUint64()
		if err != nil {
			return Node{}, err
		}
		return Node{kind: Uint, u: u}, nil

	case c >= 0xe0 || (c >= msgpcode.Int8 && c <= msgpcode.Int64):
		i, err := dec.DecodeInt64()
		if err != nil {
			return Node{}, err
		}
		return Node{kind: Int, i: i}, nil

	case c == msgpcode.Float:
		f, err := dec.DecodeFloat32()
		if err != nil {
			return Node{}, err
		}
		return Node{kind: Float32, f: float64(f)}, nil

	case c == msgpcode.Double:
		f, err := dec.DecodeFloat64()
		if err != nil {
			return Node{}, err
		}
		return Node{kind: Float64, f: f}, nil

	case msgpcode.IsString(c):
		s, err := dec.DecodeString()
		if err != nil {
			return Node{}, err
		}
		return Node{kind: Str, s: s}, nil

	case msgpcode.IsBin(c):
		raw, err := dec.DecodeBytes()
		if err != nil {
			return Node{}, err
		}
		return Node{kind: Bin, raw: raw}, nil

	case msgpcode.IsFixedArray(c) || c == msgpcode.Array16 || c == msgpcode.Array32:
		n, err := dec.DecodeArrayLen()
		if err != nil {
			return Node{}, err
		}
		elems := make([]Node, n)
		for i := range elems {
			elems[i], err = parseNode(dec)
			if err != nil {
				return Node{}, err
			}
		}
		return Node{kind: Array, elems: elems}, nil

	case msgpcode.IsFixedMap(c) || c == msgpcode.Map16 || c == msgpcode.Map32:
		n, err := dec.DecodeMapLen()
		if err != nil {
			return Node{}, err
		}
		keys := make([]string, n)
		elems := make([]Node, n)
		for i := 0; i < n; i++ {
			keys[i], err = dec.DecodeString()
			if err != nil {
				return Node{}, fmt.Errorf("map key %d: %w", i, err)
			}
			elems[i], err = parseNode(dec)
			if err != nil {
				return Node{}, err
			}
		}
		return Node{kind: Map, keys: keys, elems: elems}, nil

	default:
		return Node{}, fmt.Errorf("unsupported code 0x%02x", c)
	}
}
