package per

import (
	"encoding/asn1"
	"math"
	"unicode/utf16"

	"github.com/go-asn1/codec/lib/bitbuffer"
)

// Decoder represents a PER decoder for bit-level decoding. It mirrors
// Encoder's algorithms in reverse, reading through a bitbuffer.Reader instead
// of writing through a bitbuffer.Codec. It reads forward only; an open type
// or an extension addition is decoded from its own length-prefixed blob.
type Decoder struct {
	reader  *bitbuffer.Reader
	aligned bool
}

// NewDecoder creates a new PER decoder from encoded data.
// aligned: true for APER, false for UPER
func NewDecoder(data []byte, aligned bool) *Decoder {
	return &Decoder{
		reader:  bitbuffer.NewReader(data),
		aligned: aligned,
	}
}

// Pos returns the current bit read position, for callers that need to size
// an open-type blob.
func (d *Decoder) Pos() uint64 {
	return d.reader.Pos()
}

// Aligned reports whether this decoder reads ALIGNED PER rather than
// UNALIGNED PER, matching Encoder.Aligned.
func (d *Decoder) Aligned() bool {
	return d.aligned
}

// ReadBit consumes a single bit, MSB-first. The read-side counterpart to
// Encoder.WriteBit, used by higher-level decoders (lib/codec) to read
// preamble and presence bitmaps directly.
func (d *Decoder) ReadBit() (bool, error) {
	return d.reader.ReadBit()
}

func readBitsValue(r *bitbuffer.Reader, count uint8) (uint64, error) {
	if count == 0 {
		return 0, nil
	}
	dst := make([]byte, (int(count)+7)/8)
	if err := r.ReadBitsWithLen(dst, int(count)); err != nil {
		return 0, err
	}
	var value uint64
	for _, b := range dst {
		value = value<<8 | uint64(b)
	}
	return value >> (uint(len(dst))*8 - uint(count)), nil
}

// 11.5 Decoding of a constrained whole number

func (d *Decoder) DecodeConstrainedWholeNumber(lb, ub int64) (int64, error) {
	vr := ub - lb + 1
	if vr == 1 {
		return lb, nil
	}

	if !d.aligned {
		n := BitsNonNegativeBinaryInteger(uint64(vr - 1))
		value, err := readBitsValue(d.reader, uint8(n))
		if err != nil {
			return 0, err
		}
		return lb + int64(value), nil
	}

	if vr <= 0xFF {
		var n int
		switch {
		case vr == 0x02:
			n = 1
		case vr >= 0x03 && vr <= 0x04:
			n = 2
		case vr >= 0x05 && vr <= 0x08:
			n = 3
		case vr >= 0x09 && vr <= 0x10:
			n = 4
		case vr >= 0x11 && vr <= 0x20:
			n = 5
		case vr >= 0x21 && vr <= 0x40:
			n = 6
		case vr >= 0x41 && vr <= 0x80:
			n = 7
		case vr >= 0x81 && vr <= 0xFF:
			n = 8
		}
		value, err := readBitsValue(d.reader, uint8(n))
		if err != nil {
			return 0, err
		}
		return lb + int64(value), nil
	}
	if vr == 0x100 {
		if err := d.reader.Advance(); err != nil {
			return 0, err
		}
		value, err := readBitsValue(d.reader, 8)
		if err != nil {
			return 0, err
		}
		return lb + int64(value), nil
	}
	if vr >= 0x101 && vr <= 0x10000 {
		if err := d.reader.Advance(); err != nil {
			return 0, err
		}
		value, err := readBitsValue(d.reader, 16)
		if err != nil {
			return 0, err
		}
		return lb + int64(value), nil
	}

	octetsRange := OctetsNonNegativeBinaryIntegerLength(uint64(ub - lb))
	lbRange := uint64(1)
	ubRange := uint64(octetsRange)
	octets, err := d.DecodeLengthDeterminant(&lbRange, &ubRange)
	if err != nil {
		return 0, err
	}
	if err := d.reader.Advance(); err != nil {
		return 0, err
	}
	value, err := readBitsValue(d.reader, uint8(octets*8))
	if err != nil {
		return 0, err
	}
	return lb + int64(value), nil
}

// 11.6 Decoding of a normally small non-negative whole number

func (d *Decoder) DecodeNormallySmallNonNegativeWholeNumber() (uint64, error) {
	bit, err := d.reader.ReadBit()
	if err != nil {
		return 0, err
	}
	if !bit {
		value, err := readBitsValue(d.reader, 6)
		if err != nil {
			return 0, err
		}
		return value, nil
	}
	n, err := d.DecodeSemiConstrainedWholeNumber(0)
	if err != nil {
		return 0, err
	}
	return uint64(n), nil
}

// 11.7 Decoding of a semi-constrained whole number

func (d *Decoder) DecodeSemiConstrainedWholeNumber(lb int64) (int64, error) {
	octets, err := d.DecodeLengthDeterminant(nil, nil)
	if err != nil {
		return 0, err
	}
	if octets > 8 {
		return 0, &LengthDeterminantExceedsLimitError{Got: octets, Max: 8}
	}
	if d.aligned {
		if err := d.reader.Advance(); err != nil {
			return 0, err
		}
	}
	value, err := readBitsValue(d.reader, uint8(octets*8))
	if err != nil {
		return 0, err
	}
	return lb + int64(value), nil
}

// 11.8 Decoding of an unconstrained whole number

func (d *Decoder) DecodeUnconstrainedWholeNumber() (int64, error) {
	octets, err := d.DecodeLengthDeterminant(nil, nil)
	if err != nil {
		return 0, err
	}
	if octets > 8 {
		return 0, &LengthDeterminantExceedsLimitError{Got: octets, Max: 8}
	}
	if d.aligned {
		if err := d.reader.Advance(); err != nil {
			return 0, err
		}
	}
	bitLen := uint8(octets * 8)
	value, err := readBitsValue(d.reader, bitLen)
	if err != nil {
		return 0, err
	}
	// sign-extend from bitLen bits to int64
	if bitLen > 0 && bitLen < 64 && value&(1<<(bitLen-1)) != 0 {
		value |= ^uint64(0) << bitLen
	}
	return int64(value), nil
}

// 11.9 General rules for decoding a length determinant

func (d *Decoder) DecodeLengthDeterminant(lb *uint64, ub *uint64) (uint64, error) {
	if ub != nil && lb != nil && *ub < MAX_CONSTRAINED_LENGTH {
		n, err := d.DecodeConstrainedWholeNumber(int64(*lb), int64(*ub))
		if err != nil {
			return 0, err
		}
		return uint64(n), nil
	}
	n, _, err := d.DecodeUnconstrainedLength()
	return n, err
}

// DecodeUnconstrainedLength returns the decoded partial length "n" together
// with a fragment marker: for a fragment header (11.9.3.8) the marker equals
// n, meaning another length determinant follows the n items; otherwise it
// is 0.
func (d *Decoder) DecodeUnconstrainedLength() (uint64, uint64, error) {
	if d.aligned {
		if err := d.reader.Advance(); err != nil {
			return 0, 0, err
		}
	}

	first, err := d.reader.ReadBit()
	if err != nil {
		return 0, 0, err
	}
	if !first {
		n, err := readBitsValue(d.reader, 7)
		if err != nil {
			return 0, 0, err
		}
		return n, 0, nil
	}

	second, err := d.reader.ReadBit()
	if err != nil {
		return 0, 0, err
	}
	if !second {
		n, err := readBitsValue(d.reader, 14)
		if err != nil {
			return 0, 0, err
		}
		return n, 0, nil
	}

	k, err := readBitsValue(d.reader, 6)
	if err != nil {
		return 0, 0, err
	}
	if k == 0 || k > MAX_FRAGMENTS {
		return 0, 0, &LengthDeterminantExceedsLimitError{Got: k, Max: MAX_FRAGMENTS}
	}
	m := k * FRAGMENT_SIZE
	return m, m, nil
}

func (d *Decoder) DecodeNormallySmallLength() (uint64, error) {
	bit, err := d.reader.ReadBit()
	if err != nil {
		return 0, err
	}
	if !bit {
		n, err := readBitsValue(d.reader, 6)
		if err != nil {
			return 0, err
		}
		return n + 1, nil
	}
	n, _, err := d.DecodeUnconstrainedLength()
	return n, err
}

// 12 Decoding the boolean type

func (d *Decoder) DecodeBoolean() (bool, error) {
	bit, err := d.reader.ReadBit()
	if err != nil {
		return false, err
	}
	return bit, nil
}

// 13 Decoding the integer type

func (d *Decoder) DecodeInteger(lb *int64, ub *int64, extensible bool) (int64, error) {
	if extensible {
		bit, err := d.reader.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit {
			return d.DecodeUnconstrainedWholeNumber()
		}
	}

	if lb != nil && ub != nil && *lb == *ub {
		return *lb, nil
	}

	if lb != nil && ub != nil {
		return d.DecodeConstrainedWholeNumber(*lb, *ub)
	} else if lb != nil && ub == nil {
		return d.DecodeSemiConstrainedWholeNumber(*lb)
	}
	return d.DecodeUnconstrainedWholeNumber()
}

// 14 Decoding the enumerated type

func (d *Decoder) DecodeEnumerated(count uint64, extensible bool) (uint64, error) {
	if extensible {
		bit, err := d.reader.ReadBit()
		if err != nil {
			return 0, err
		}
		if bit {
			value, err := d.DecodeNormallySmallNonNegativeWholeNumber()
			if err != nil {
				return 0, err
			}
			return count + value, nil
		}
	}

	lb := int64(0)
	ub := int64(count - 1)
	value, err := d.DecodeConstrainedWholeNumber(lb, ub)
	if err != nil {
		return 0, err
	}
	return uint64(value), nil
}

// 15 / 11.3 / 8.5 Decoding the real type

func (d *Decoder) DecodeReal() (float64, error) {
	data, err := d.DecodeOctetString(nil, nil, false)
	if err != nil {
		return 0, err
	}
	if len(data) == 0 {
		return 0.0, nil
	}
	first := data[0]

	// 8.5.9: special values and minus zero (bits 8-7 = 01)
	if first&0xC0 == 0x40 {
		switch first {
		case 0x40:
			return math.Inf(1), nil
		case 0x41:
			return math.Inf(-1), nil
		case 0x42:
			return math.NaN(), nil
		case 0x43:
			return math.Copysign(0, -1), nil
		default:
			return 0, &InvalidStringError{Kind: "REAL special value"}
		}
	}

	// 8.5.6: only binary encoding (bit 8 = 1) is produced by EncodeReal.
	if first&0x80 == 0 {
		return 0, &UnsupportedOperationError{Op: "decimal REAL encoding"}
	}

	var (
		sign    = (first >> 6) & 1
		expFmt  = first & 0x03
		content = data[1:]
	)

	var exponent int64
	switch expFmt {
	case 0:
		if len(content) < 1 {
			return 0, &EndOfStreamError{}
		}
		exponent = int64(int8(content[0]))
		content = content[1:]
	case 1:
		if len(content) < 2 {
			return 0, &EndOfStreamError{}
		}
		exponent = int64(int16(uint16(content[0])<<8 | uint16(content[1])))
		content = content[2:]
	case 2:
		if len(content) < 3 {
			return 0, &EndOfStreamError{}
		}
		v := uint32(content[0])<<16 | uint32(content[1])<<8 | uint32(content[2])
		if v&0x800000 != 0 {
			v |= 0xFF000000
		}
		exponent = int64(int32(v))
		content = content[3:]
	default:
		if len(content) < 1 {
			return 0, &EndOfStreamError{}
		}
		length := int(content[0])
		content = content[1:]
		if len(content) < length {
			return 0, &EndOfStreamError{}
		}
		var v int64
		for i := 0; i < length; i++ {
			v = v<<8 | int64(content[i])
		}
		if length > 0 && length < 8 && content[0]&0x80 != 0 {
			v -= int64(1) << uint(length*8)
		}
		exponent = v
		content = content[length:]
	}

	var mantissa int64
	for _, b := range content {
		mantissa = mantissa<<8 | int64(b)
	}
	if sign == 1 {
		mantissa = -mantissa
	}

	return MakeFloat64(mantissa, int(exponent), 2), nil
}

// 16 Decoding the bitstring type

func (d *Decoder) ReadBits(dst []byte, count uint) error {
	if count == 0 {
		return nil
	}
	num := count / 8
	if num > 0 {
		if err := d.reader.ReadBits(dst[:num]); err != nil {
			return err
		}
	}
	remaining := count % 8
	if remaining > 0 {
		value, err := readBitsValue(d.reader, uint8(remaining))
		if err != nil {
			return err
		}
		dst[num] = byte(value << (8 - remaining))
	}
	return nil
}

func (d *Decoder) DecodeBitString(lb *uint64, ub *uint64, extensible bool) (*asn1.BitString, error) {
	if extensible {
		bit, err := d.reader.ReadBit()
		if err != nil {
			return nil, err
		}
		if bit {
			zero := uint64(0)
			return d.DecodeBitStringFragments(&zero, nil)
		}
	}

	if ub != nil && *ub == 0 {
		return &asn1.BitString{}, nil
	}

	if lb != nil && ub != nil && *lb == *ub && *ub <= 16 {
		n := *ub
		data := make([]byte, (n+7)/8)
		if err := d.ReadBits(data, uint(n)); err != nil {
			return nil, err
		}
		return &asn1.BitString{Bytes: data, BitLength: int(n)}, nil
	}

	if lb != nil && ub != nil && *lb == *ub && *ub < 65536 {
		if d.aligned {
			if err := d.reader.Advance(); err != nil {
				return nil, err
			}
		}
		n := *ub
		data := make([]byte, (n+7)/8)
		if err := d.ReadBits(data, uint(n)); err != nil {
			return nil, err
		}
		return &asn1.BitString{Bytes: data, BitLength: int(n)}, nil
	}

	if d.aligned {
		if err := d.reader.Advance(); err != nil {
			return nil, err
		}
	}
	return d.DecodeBitStringFragments(lb, ub)
}

func (d *Decoder) DecodeBitStringFragments(lb *uint64, ub *uint64) (*asn1.BitString, error) {
	if d.aligned {
		if err := d.reader.Advance(); err != nil {
			return nil, err
		}
	}

	var buf []byte
	total := uint64(0)

	for {
		n, pending, err := d.decodeLengthDeterminantWithPending(lb, ub)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			chunk := make([]byte, (n+7)/8)
			if err := d.ReadBits(chunk, uint(n)); err != nil {
				return nil, err
			}
			buf = appendBits(buf, total, chunk, n)
			total += n
		}
		if pending == 0 {
			break
		}
	}

	return &asn1.BitString{Bytes: buf, BitLength: int(total)}, nil
}

// decodeLengthDeterminantWithPending mirrors DecodeLengthDeterminant but also
// reports whether the decoded length was itself a fragment header (i.e. a
// LENGTH_16K-multiple "more follows" marker, per clause 11.9.3.8/11.9.4.2),
// matching EncodeBitStringFragments/EncodeOctetStringFragments' use of the
// "pending" return value of EncodeLengthDeterminant.
func (d *Decoder) decodeLengthDeterminantWithPending(lb *uint64, ub *uint64) (uint64, uint64, error) {
	if ub != nil && lb != nil && *ub < MAX_CONSTRAINED_LENGTH {
		n, err := d.DecodeConstrainedWholeNumber(int64(*lb), int64(*ub))
		if err != nil {
			return 0, 0, err
		}
		return uint64(n), 0, nil
	}
	return d.DecodeUnconstrainedLength()
}

func appendBits(dst []byte, dstBitOffset uint64, src []byte, count uint64) []byte {
	needed := (dstBitOffset + count + 7) / 8
	for uint64(len(dst)) < needed {
		dst = append(dst, 0)
	}
	for i := uint64(0); i < count; i++ {
		srcByte := src[i/8]
		bit := srcByte&(0x80>>(i%8)) != 0
		pos := dstBitOffset + i
		byteIdx := pos / 8
		bitIdx := pos % 8
		if bit {
			dst[byteIdx] |= 0x80 >> bitIdx
		} else {
			dst[byteIdx] &^= 0x80 >> bitIdx
		}
	}
	return dst
}

// 17 Decoding the octetstring type

func (d *Decoder) DecodeOctetString(lb *uint64, ub *uint64, extensible bool) ([]byte, error) {
	if extensible {
		bit, err := d.reader.ReadBit()
		if err != nil {
			return nil, err
		}
		if bit {
			zero := uint64(0)
			return d.DecodeOctetStringFragments(&zero, nil)
		}
	}

	if ub != nil && *ub == 0 {
		return []byte{}, nil
	}

	if lb != nil && ub != nil && *lb == *ub && *ub <= 2 {
		data := make([]byte, *ub)
		if err := d.reader.ReadBits(data); err != nil {
			return nil, err
		}
		return data, nil
	}

	if lb != nil && ub != nil && *lb == *ub && *ub < 65536 {
		if d.aligned {
			if err := d.reader.Advance(); err != nil {
				return nil, err
			}
		}
		data := make([]byte, *ub)
		if err := d.reader.ReadBits(data); err != nil {
			return nil, err
		}
		return data, nil
	}

	return d.DecodeOctetStringFragments(lb, ub)
}

func (d *Decoder) DecodeOctetStringFragments(lb *uint64, ub *uint64) ([]byte, error) {
	if d.aligned {
		if err := d.reader.Advance(); err != nil {
			return nil, err
		}
	}

	var buf []byte

	for {
		n, pending, err := d.decodeLengthDeterminantWithPending(lb, ub)
		if err != nil {
			return nil, err
		}
		if n > 0 {
			chunk := make([]byte, n)
			if err := d.reader.ReadBits(chunk); err != nil {
				return nil, err
			}
			buf = append(buf, chunk...)
		}
		if pending == 0 {
			break
		}
	}

	return buf, nil
}

// 18 Decoding the null type

func (d *Decoder) DecodeNull() error {
	return nil
}

// 24 Decoding the object identifier type

func (d *Decoder) DecodeObjectIdentifier() (asn1.ObjectIdentifier, error) {
	content, err := d.DecodeOctetString(nil, nil, false)
	if err != nil {
		return nil, err
	}

	der := encodeBERTagLength(0x06, content)
	var oid asn1.ObjectIdentifier
	if _, err := asn1.Unmarshal(der, &oid); err != nil {
		return nil, err
	}
	return oid, nil
}

// encodeBERTagLength rebuilds a minimal BER TLV header around content so
// that encoding/asn1 can parse it back into a Go value, the inverse of
// EncodeObjectIdentifier's header-stripping.
func encodeBERTagLength(tag byte, content []byte) []byte {
	n := len(content)
	var header []byte
	if n < 0x80 {
		header = []byte{tag, byte(n)}
	} else {
		length := OctetsNonNegativeBinaryIntegerLength(uint64(n))
		header = make([]byte, 2+length)
		header[0] = tag
		header[1] = 0x80 | byte(length)
		v := uint64(n)
		for i := length; i > 0; i-- {
			header[1+i] = byte(v)
			v >>= 8
		}
	}
	return append(header, content...)
}

// 30 Decoding the restricted character string types

func (d *Decoder) DecodeString(lb *uint64, ub *uint64, extensible bool) (string, error) {
	data, err := d.DecodeOctetString(lb, ub, extensible)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// DecodeNumericString is the inverse of EncodeNumericString: decode a
// character count, then unpack 4 bits per character and map each back
// through the permitted alphabet.
func (d *Decoder) DecodeNumericString(lb *uint64, ub *uint64, extensible bool) (string, error) {
	if extensible {
		bit, err := d.reader.ReadBit()
		if err != nil {
			return "", err
		}
		if bit {
			zero := uint64(0)
			return d.decodeNumericStringFragments(&zero, nil)
		}
	}
	return d.decodeNumericStringFragments(lb, ub)
}

func (d *Decoder) decodeNumericStringFragments(lb *uint64, ub *uint64) (string, error) {
	buf := make([]byte, 0)
	for {
		n, pending, err := d.decodeLengthDeterminantWithPending(lb, ub)
		if err != nil {
			return "", err
		}
		for i := uint64(0); i < n; i++ {
			idx, err := readBitsValue(d.reader, 4)
			if err != nil {
				return "", err
			}
			if idx >= uint64(len(numericStringAlphabet)) {
				return "", &InvalidStringError{Kind: "NumericString"}
			}
			buf = append(buf, numericStringAlphabet[idx])
		}
		if pending == 0 {
			return string(buf), nil
		}
	}
}

// DecodeBMPString is the inverse of EncodeBMPString: decode a character
// count, then unpack 16 bits per character directly into a UCS-2 code
// unit.
func (d *Decoder) DecodeBMPString(lb *uint64, ub *uint64, extensible bool) (string, error) {
	if extensible {
		bit, err := d.reader.ReadBit()
		if err != nil {
			return "", err
		}
		if bit {
			zero := uint64(0)
			return d.decodeBMPStringFragments(&zero, nil)
		}
	}
	return d.decodeBMPStringFragments(lb, ub)
}

func (d *Decoder) decodeBMPStringFragments(lb *uint64, ub *uint64) (string, error) {
	units := make([]uint16, 0)
	for {
		n, pending, err := d.decodeLengthDeterminantWithPending(lb, ub)
		if err != nil {
			return "", err
		}
		for i := uint64(0); i < n; i++ {
			value, err := readBitsValue(d.reader, 16)
			if err != nil {
				return "", err
			}
			units = append(units, uint16(value))
		}
		if pending == 0 {
			return string(utf16.Decode(units)), nil
		}
	}
}

// TODO - DecodeUniversalString (section 30.4) - known-multiplier character string
// Input: lb, ub, extensible -> string
// Inverse of the bit-packed 32-bit-per-character encoding.

// TODO - DecodeTeletexString (section 30.5) - non-known-multiplier character string
// TODO - DecodeVideotexString (section 30.5) - non-known-multiplier character string
// TODO - DecodeGraphicString (section 30.5) - non-known-multiplier character string
// TODO - DecodeGeneralString (section 30.5) - non-known-multiplier character string
// TODO - DecodeUnrestrictedCharacterString (section 31) - unrestricted character string
