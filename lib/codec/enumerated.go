package codec

import (
	"github.com/go-asn1/codec/lib/per"
)

// EnumeratedConstraint binds a Go enumerated type T to its PER index
// mapping (clause 11). The type parameter is instantiated as *T, following
// the same pointer-receiver pattern encoding/json's Marshaler-discovery
// uses: T itself stays a plain value type (so zero values and comparisons
// work normally), while the index conversion lives on its pointer.
type EnumeratedConstraint[T any] interface {
	*T
	// Index returns the receiver's position in the enumeration root, or a
	// value >= Count() if it names an extension addition.
	Index() uint64
	// SetIndex sets the receiver from a decoded root or extension index.
	SetIndex(uint64)
	// Count returns the number of values in the enumeration root.
	Count() uint64
}

// WriteEnumerated encodes value's enumeration index (clause 11).
func WriteEnumerated[T any, PT EnumeratedConstraint[T]](e *per.Encoder, value T, extensible bool) error {
	p := PT(&value)
	return e.EncodeEnumerated(p.Index(), p.Count(), extensible)
}

// ReadEnumerated decodes an enumeration index into a T, the inverse of
// WriteEnumerated.
func ReadEnumerated[T any, PT EnumeratedConstraint[T]](d *per.Decoder, extensible bool) (T, error) {
	var value T
	p := PT(&value)
	index, err := d.DecodeEnumerated(p.Count(), extensible)
	if err != nil {
		return value, err
	}
	p.SetIndex(index)
	return value, nil
}
