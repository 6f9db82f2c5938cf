package mpdict

import (
	"io"
	"strconv"
	"strings"

	"github.com/mpdict/mpdict/geom"
)

// String renders the dictionary as JSON-like text: {} for an empty node, the
// bound value rendering for a value node, and {"k1": v1, "k2": v2} with
// sorted keys for a map. Rendering never fails; values of unregistered types
// appear as a quoted type-name placeholder.
func (d *Dictionary) String() string {
	var sb strings.Builder
	d.writeText(&sb)
	return sb.String()
}

// WriteText writes the String rendering to w.
func (d *Dictionary) WriteText(w io.Writer) error {
	_, err := io.WriteString(w, d.String())
	return err
}

func (d *Dictionary) writeText(sb *strings.Builder) {
	switch {
	case d.IsEmpty():
		sb.WriteString("{}")
	case d.IsValue():
		d.value.print(sb)
	default:
		sb.WriteByte('{')
		for i, key := range d.sortedKeys() {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(strconv.Quote(key))
			sb.WriteString(": ")
			d.children[key].writeText(sb)
		}
		sb.WriteByte('}')
	}
}

func printBool(sb *strings.Builder, v *bool) {
	if *v {
		sb.WriteString("true")
	} else {
		sb.WriteString("false")
	}
}

func printInt(sb *strings.Builder, v int64) {
	sb.WriteString(strconv.FormatInt(v, 10))
}

func printUint(sb *strings.Builder, v uint64) {
	sb.WriteString(strconv.FormatUint(v, 10))
}

func printFloat(sb *strings.Builder, v float64) {
	sb.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
}

func printString(sb *strings.Builder, v *string) {
	sb.WriteString(strconv.Quote(*v))
}

func printFloats(sb *strings.Builder, vals ...float64) {
	sb.WriteByte('[')
	for i, v := range vals {
		if i > 0 {
			sb.WriteString(", ")
		}
		printFloat(sb, v)
	}
	sb.WriteByte(']')
}

func printVector2(sb *strings.Builder, v *geom.Vector2) {
	printFloats(sb, v.X, v.Y)
}

func printVector3(sb *strings.Builder, v *geom.Vector3) {
	printFloats(sb, v.X, v.Y, v.Z)
}

func printQuaternion(sb *strings.Builder, v *geom.Quaternion) {
	printFloats(sb, v.W, v.X, v.Y, v.Z)
}

// printMatrix3 renders rows nested, unlike the flat wire representation.
func printMatrix3(sb *strings.Builder, v *geom.Matrix3) {
	sb.WriteByte('[')
	for i := 0; i < 3; i++ {
		if i > 0 {
			sb.WriteString(", ")
		}
		printFloats(sb, v[3*i], v[3*i+1], v[3*i+2])
	}
	sb.WriteByte(']')
}

func printVectorX(sb *strings.Builder, v *geom.VectorX) {
	printFloats(sb, *v...)
}
