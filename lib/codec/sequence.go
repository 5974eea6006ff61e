// Package codec is the typed descriptor layer on top of lib/per: it builds
// SEQUENCE, SEQUENCE OF, CHOICE and ENUMERATED wire encodings (clauses 19,
// 20, 23 and their decode counterparts) out of the primitive procedures in
// lib/per, the way generated asn1c stubs would call into a runtime support
// library. Callers supply small closures for the per-field/per-alternative
// work; this package handles the preamble bits, extension bitmaps and
// open-type wrapping that every generated type needs.
package codec

import (
	"github.com/go-asn1/codec/lib/per"
)

// WriteSequence encodes a SEQUENCE preamble (clause 19.1-19.6: an optional
// extension bit followed by one presence bit per OPTIONAL/DEFAULT component
// of the extension root, in declaration order) and then invokes body to
// encode the components that are actually present.
//
// present has one entry per OPTIONAL/DEFAULT component in the extension
// root. ext has one entry per extension addition declared after the "...";
// a nil entry means that addition is absent from this value. When
// extensible is false, ext is ignored and must be empty.
func WriteSequence(e *per.Encoder, extensible bool, present []bool, body func() error, ext []func(*per.Encoder) error) error {
	hasExt := false
	for _, fn := range ext {
		if fn != nil {
			hasExt = true
			break
		}
	}

	if extensible {
		if err := e.WriteBit(hasExt); err != nil {
			return err
		}
	}

	for _, p := range present {
		if err := e.WriteBit(p); err != nil {
			return err
		}
	}

	if err := body(); err != nil {
		return err
	}

	if !extensible || !hasExt {
		return nil
	}

	if err := e.EncodeNormallySmallNonNegativeWholeNumber(uint64(len(ext))); err != nil {
		return err
	}
	for _, fn := range ext {
		if err := e.WriteBit(fn != nil); err != nil {
			return err
		}
	}
	for _, fn := range ext {
		if fn == nil {
			continue
		}
		inner := per.NewEncoder(e.Aligned())
		if err := fn(inner); err != nil {
			return err
		}
		if err := e.EncodeOctetString(inner.Bytes(), nil, nil, false); err != nil {
			return err
		}
	}
	return nil
}

// ReadSequence decodes a SEQUENCE preamble and invokes body with the
// decoded presence bitmap for the extension root's OPTIONAL/DEFAULT
// components (optionalCount entries, declaration order). If the value
// carries extension additions, each is decoded as an open-type blob and
// handed to the matching entry of ext (indexed by declaration order after
// "..."); additions beyond len(ext), or with a nil entry, are skipped.
func ReadSequence(d *per.Decoder, extensible bool, optionalCount int, body func(present []bool) error, ext []func(*per.Decoder) error) error {
	extended := false
	if extensible {
		bit, err := d.ReadBit()
		if err != nil {
			return err
		}
		extended = bit
	}

	present := make([]bool, optionalCount)
	for i := range present {
		bit, err := d.ReadBit()
		if err != nil {
			return err
		}
		present[i] = bit
	}

	if err := body(present); err != nil {
		return err
	}

	if !extended {
		return nil
	}

	n, err := d.DecodeNormallySmallNonNegativeWholeNumber()
	if err != nil {
		return err
	}
	bitmap := make([]bool, n)
	for i := range bitmap {
		bit, err := d.ReadBit()
		if err != nil {
			return err
		}
		bitmap[i] = bit
	}
	for i, present := range bitmap {
		if !present {
			continue
		}
		blob, err := d.DecodeOctetString(nil, nil, false)
		if err != nil {
			return err
		}
		if i >= len(ext) || ext[i] == nil {
			continue
		}
		inner := per.NewDecoder(blob, d.Aligned())
		if err := ext[i](inner); err != nil {
			return err
		}
	}
	return nil
}

// WriteOpt encodes value via write only when present is true. Intended to
// pair the body closure passed to WriteSequence with the same present slice
// used for the preamble, so a component's presence bit and its encoding
// can't drift apart.
func WriteOpt(present bool, write func() error) error {
	if !present {
		return nil
	}
	return write()
}

// ReadOpt decodes via read only when present is true, the read-side
// counterpart to WriteOpt.
func ReadOpt(present bool, read func() error) error {
	if !present {
		return nil
	}
	return read()
}
