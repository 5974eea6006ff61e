package codec

import (
	"github.com/go-asn1/codec/lib/per"
)

// ChoiceConstraint describes a CHOICE type's PER-visible shape (clause 23):
// the number of alternatives declared in the extension root, and whether
// the type carries an extension marker.
type ChoiceConstraint interface {
	RootCount() uint64
	Extensible() bool
}

// WriteChoice encodes a CHOICE index and invokes write to encode the
// chosen alternative's value. index is the zero-based position of the
// alternative in declaration order (root components first, then
// extension additions); inRoot reports whether the chosen alternative
// lies within the extension root rather than among the additions. An
// addition's index is written relative to the first addition (clause 23.8).
func WriteChoice(e *per.Encoder, c ChoiceConstraint, index uint64, inRoot bool, write func(*per.Encoder) error) error {
	extensible := c.Extensible()
	if extensible {
		if err := e.WriteBit(!inRoot); err != nil {
			return err
		}
	}

	if inRoot || !extensible {
		n := c.RootCount()
		if n > 1 {
			if err := e.EncodeConstrainedWholeNumber(0, int64(n-1), int64(index)); err != nil {
				return err
			}
		}
		return write(e)
	}

	if err := e.EncodeNormallySmallNonNegativeWholeNumber(index - c.RootCount()); err != nil {
		return err
	}
	inner := per.NewEncoder(e.Aligned())
	if err := write(inner); err != nil {
		return err
	}
	return e.EncodeOctetString(inner.Bytes(), nil, nil, false)
}

// ReadChoice decodes a CHOICE index and invokes the matching entry of
// reads (indexed by declaration order: root alternatives first, then
// extension additions) to decode the chosen
// alternative. An index referring to an extension addition is decoded as
// an open-type blob; if it falls outside reads (an addition this binding
// doesn't know about), ErrUnknownExtension is returned so callers can treat
// it as an ignorable unknown alternative rather than a hard decode error.
func ReadChoice(d *per.Decoder, c ChoiceConstraint, reads []func(*per.Decoder) error) error {
	extensible := c.Extensible()
	extended := false
	if extensible {
		bit, err := d.ReadBit()
		if err != nil {
			return err
		}
		extended = bit
	}

	if !extended {
		n := c.RootCount()
		var index uint64
		if n > 1 {
			value, err := d.DecodeConstrainedWholeNumber(0, int64(n-1))
			if err != nil {
				return err
			}
			index = uint64(value)
		}
		if index >= uint64(len(reads)) || reads[index] == nil {
			return &per.InvalidChoiceIndexError{Index: index, StdVariants: n}
		}
		return reads[index](d)
	}

	index, err := d.DecodeNormallySmallNonNegativeWholeNumber()
	if err != nil {
		return err
	}
	index += c.RootCount()
	blob, err := d.DecodeOctetString(nil, nil, false)
	if err != nil {
		return err
	}
	if index < uint64(len(reads)) && reads[index] != nil {
		inner := per.NewDecoder(blob, d.Aligned())
		return reads[index](inner)
	}
	return ErrUnknownExtension
}
