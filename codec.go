// Package asn1 is the module's top-level entry point: a thin facade over
// lib/per (the primitive PER encoding procedures) that re-exports its
// encoder and decoder constructors. The typed descriptor layer for
// SEQUENCE/SEQUENCE OF/CHOICE/ENUMERATED is not re-exported; callers import
// lib/codec for it.
package asn1

import (
	"github.com/go-asn1/codec/lib/per"
)

// Aligned and Unaligned select the PER variant passed to NewEncoder/
// NewDecoder, spelling out the two booleans ITU-T X.691 calls ALIGNED and
// UNALIGNED variants at call sites that would otherwise read as a bare
// "true"/"false".
const (
	Unaligned = false
	Aligned   = true
)

// NewEncoder starts encoding a PER-encoded value using the given variant.
func NewEncoder(variant bool) *per.Encoder {
	return per.NewEncoder(variant)
}

// NewDecoder starts decoding data using the given variant.
func NewDecoder(data []byte, variant bool) *per.Decoder {
	return per.NewDecoder(data, variant)
}
