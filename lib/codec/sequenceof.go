package codec

import (
	"github.com/go-asn1/codec/lib/per"
)

// WriteSequenceOf encodes a SEQUENCE OF/SET OF (clause 20): a length
// determinant followed by that many components, fragmenting into
// FRAGMENT_SIZE-multiple blocks when the count exceeds the constrained
// range or has no upper bound. lb/ub follow EncodeLengthDeterminant's
// convention (nil meaning unconstrained in that direction).
func WriteSequenceOf[T any](e *per.Encoder, items []T, lb *uint64, ub *uint64, extensible bool, encodeItem func(*per.Encoder, T) error) error {
	n := uint64(len(items))

	if extensible {
		extended := (lb != nil && n < *lb) || (ub != nil && n > *ub)
		if err := e.WriteBit(extended); err != nil {
			return err
		}
		if extended {
			return writeSequenceOfFragments(e, items, nil, nil, encodeItem)
		}
	}

	return writeSequenceOfFragments(e, items, lb, ub, encodeItem)
}

func writeSequenceOfFragments[T any](e *per.Encoder, items []T, lb *uint64, ub *uint64, encodeItem func(*per.Encoder, T) error) error {
	n := uint64(len(items))
	offset := uint64(0)
	for {
		remaining := n - offset
		pending, err := e.EncodeLengthDeterminant(remaining, lb, ub)
		if err != nil {
			return err
		}
		length := remaining
		if pending != 0 {
			length = remaining - pending
		}
		for i := uint64(0); i < length; i++ {
			if err := encodeItem(e, items[offset+i]); err != nil {
				return err
			}
		}
		offset += length
		if pending == 0 {
			return nil
		}
	}
}

// ReadSequenceOf decodes a SEQUENCE OF/SET OF, the inverse of
// WriteSequenceOf.
func ReadSequenceOf[T any](d *per.Decoder, lb *uint64, ub *uint64, extensible bool, decodeItem func(*per.Decoder) (T, error)) ([]T, error) {
	if extensible {
		bit, err := d.ReadBit()
		if err != nil {
			return nil, err
		}
		if bit {
			return readSequenceOfFragments(d, nil, nil, decodeItem)
		}
	}
	return readSequenceOfFragments(d, lb, ub, decodeItem)
}

func readSequenceOfFragments[T any](d *per.Decoder, lb *uint64, ub *uint64, decodeItem func(*per.Decoder) (T, error)) ([]T, error) {
	var items []T
	for {
		n, pending, err := decodeLengthWithPending(d, lb, ub)
		if err != nil {
			return nil, err
		}
		for i := uint64(0); i < n; i++ {
			item, err := decodeItem(d)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		if pending == 0 {
			return items, nil
		}
	}
}

// decodeLengthWithPending mirrors EncodeLengthDeterminant/
// DecodeUnconstrainedLength's own branch between the constrained
// (ub < LENGTH_64K, both bounds known) and unconstrained/fragmented
// cases, the way DecodeOctetString and DecodeBitString already do for their
// own element types.
func decodeLengthWithPending(d *per.Decoder, lb *uint64, ub *uint64) (uint64, uint64, error) {
	if lb != nil && ub != nil && *ub < per.LENGTH_64K {
		n, err := d.DecodeLengthDeterminant(lb, ub)
		return n, 0, err
	}
	return d.DecodeUnconstrainedLength()
}
