package per

import (
	"encoding/asn1"
	"math"
	"testing"
)

func TestDecodeBooleanRoundTrip(t *testing.T) {
	test := func(value bool, aligned bool) {
		e := NewEncoder(aligned)
		if err := e.EncodeBoolean(value); err != nil {
			t.Fatalf("EncodeBoolean() error = %v", err)
		}
		d := NewDecoder(e.Bytes(), aligned)
		got, err := d.DecodeBoolean()
		if err != nil {
			t.Fatalf("DecodeBoolean() error = %v", err)
		}
		if got != value {
			t.Errorf("DecodeBoolean() = %v, want %v", got, value)
		}
	}
	test(true, false)
	test(false, false)
	test(true, true)
	test(false, true)
}

func TestDecodeIntegerRoundTrip(t *testing.T) {
	test := func(value int64, lb *int64, ub *int64, extensible bool, aligned bool, description string) {
		t.Run(description, func(t *testing.T) {
			e := NewEncoder(aligned)
			if err := e.EncodeInteger(value, lb, ub, extensible); err != nil {
				t.Fatalf("EncodeInteger() error = %v", err)
			}
			d := NewDecoder(e.Bytes(), aligned)
			got, err := d.DecodeInteger(lb, ub, extensible)
			if err != nil {
				t.Fatalf("DecodeInteger() error = %v", err)
			}
			if got != value {
				t.Errorf("DecodeInteger() = %d, want %d", got, value)
			}
		})
	}
	zero, small := int64(0), int64(255)
	test(130, &zero, &small, false, false, "constrained unaligned")
	test(130, &zero, &small, false, true, "constrained aligned")
	test(256, nil, nil, false, false, "unconstrained unaligned")
	test(-17, nil, nil, false, false, "unconstrained negative")
	lb64k := int64(0)
	ub64k := int64(100000)
	test(99999, &lb64k, &ub64k, false, false, "constrained beyond 64K range")
	test(130, &zero, &small, true, false, "extensible value in root")
	test(1000, &zero, &small, true, false, "extensible value outside root")
}

func TestDecodeOctetStringRoundTrip(t *testing.T) {
	test := func(value []byte, lb *uint64, ub *uint64, extensible bool, description string) {
		t.Run(description, func(t *testing.T) {
			e := NewEncoder(false)
			if err := e.EncodeOctetString(value, lb, ub, extensible); err != nil {
				t.Fatalf("EncodeOctetString() error = %v", err)
			}
			d := NewDecoder(e.Bytes(), false)
			got, err := d.DecodeOctetString(lb, ub, extensible)
			if err != nil {
				t.Fatalf("DecodeOctetString() error = %v", err)
			}
			if len(got) != len(value) {
				t.Fatalf("DecodeOctetString() returned %d bytes, want %d", len(got), len(value))
			}
			for i := range got {
				if got[i] != value[i] {
					t.Errorf("DecodeOctetString() byte %d = %02x, want %02x", i, got[i], value[i])
				}
			}
		})
	}
	two := uint64(2)
	test([]byte{0xAB, 0xCD}, &two, &two, false, "fixed length <= 2 (17.6)")
	ten := uint64(10)
	test([]byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, &ten, &ten, false, "fixed length > 2 (17.7)")
	test([]byte{0x01, 0x02, 0x03}, nil, nil, false, "unconstrained (17.8)")
	test([]byte{}, nil, nil, false, "empty unconstrained")
}

func TestDecodeOctetStringFragmented(t *testing.T) {
	value := make([]byte, int(FRAGMENT_SIZE)+100)
	for i := range value {
		value[i] = byte(i)
	}
	e := NewEncoder(false)
	if err := e.EncodeOctetString(value, nil, nil, false); err != nil {
		t.Fatalf("EncodeOctetString() error = %v", err)
	}
	d := NewDecoder(e.Bytes(), false)
	got, err := d.DecodeOctetString(nil, nil, false)
	if err != nil {
		t.Fatalf("DecodeOctetString() error = %v", err)
	}
	if len(got) != len(value) {
		t.Fatalf("DecodeOctetString() returned %d bytes, want %d", len(got), len(value))
	}
	for i := range got {
		if got[i] != value[i] {
			t.Fatalf("DecodeOctetString() byte %d mismatch: got %02x, want %02x", i, got[i], value[i])
		}
	}
}

func TestDecodeBitStringRoundTrip(t *testing.T) {
	test := func(bitLen int, data []byte, lb *uint64, ub *uint64, description string) {
		t.Run(description, func(t *testing.T) {
			e := NewEncoder(false)
			bs := asn1.BitString{Bytes: data, BitLength: bitLen}
			if err := e.EncodeBitString(&bs, lb, ub, false); err != nil {
				t.Fatalf("EncodeBitString() error = %v", err)
			}
			d := NewDecoder(e.Bytes(), false)
			got, err := d.DecodeBitString(lb, ub, false)
			if err != nil {
				t.Fatalf("DecodeBitString() error = %v", err)
			}
			if got.BitLength != bitLen {
				t.Fatalf("DecodeBitString() BitLength = %d, want %d", got.BitLength, bitLen)
			}
			nbytes := (bitLen + 7) / 8
			for i := 0; i < nbytes; i++ {
				if got.Bytes[i] != data[i] {
					t.Errorf("DecodeBitString() byte %d = %02x, want %02x", i, got.Bytes[i], data[i])
				}
			}
		})
	}
	four := uint64(4)
	test(4, []byte{0xB0}, &four, &four, "fixed length <= 16 (16.9)")
	twenty := uint64(20)
	test(20, []byte{0xAB, 0xCD, 0xE0}, &twenty, &twenty, "fixed length > 16 (16.10)")
	test(17, []byte{0xFF, 0xFF, 0x80}, nil, nil, "unconstrained (16.11)")
}

func TestDecodeEnumeratedRoundTrip(t *testing.T) {
	test := func(value uint64, count uint64, extensible bool) {
		e := NewEncoder(false)
		if err := e.EncodeEnumerated(value, count, extensible); err != nil {
			t.Fatalf("EncodeEnumerated() error = %v", err)
		}
		d := NewDecoder(e.Bytes(), false)
		got, err := d.DecodeEnumerated(count, extensible)
		if err != nil {
			t.Fatalf("DecodeEnumerated() error = %v", err)
		}
		if got != value {
			t.Errorf("DecodeEnumerated() = %d, want %d", got, value)
		}
	}
	test(0, 4, false)
	test(3, 4, false)
	test(2, 4, true)
	test(5, 4, true)
}

func TestDecodeRealRoundTrip(t *testing.T) {
	test := func(value float64, description string) {
		t.Run(description, func(t *testing.T) {
			e := NewEncoder(false)
			if err := e.EncodeReal(value); err != nil {
				t.Fatalf("EncodeReal() error = %v", err)
			}
			d := NewDecoder(e.Bytes(), false)
			got, err := d.DecodeReal()
			if err != nil {
				t.Fatalf("DecodeReal() error = %v", err)
			}
			if math.IsNaN(value) {
				if !math.IsNaN(got) {
					t.Errorf("DecodeReal() = %v, want NaN", got)
				}
				return
			}
			if got != value {
				t.Errorf("DecodeReal() = %v, want %v", got, value)
			}
		})
	}
	test(0.0, "plus zero")
	test(math.Copysign(0, -1), "minus zero")
	test(math.Inf(1), "plus infinity")
	test(math.Inf(-1), "minus infinity")
	test(math.NaN(), "not a number")
	test(1.5, "simple fraction")
	test(-123.25, "negative fraction")
	test(1024.0, "power of two")
}

func TestDecodeObjectIdentifierRoundTrip(t *testing.T) {
	oid := asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1}
	e := NewEncoder(false)
	if err := e.EncodeObjectIdentifier(oid); err != nil {
		t.Fatalf("EncodeObjectIdentifier() error = %v", err)
	}
	d := NewDecoder(e.Bytes(), false)
	got, err := d.DecodeObjectIdentifier()
	if err != nil {
		t.Fatalf("DecodeObjectIdentifier() error = %v", err)
	}
	if !got.Equal(oid) {
		t.Errorf("DecodeObjectIdentifier() = %v, want %v", got, oid)
	}
}

func TestDecodeStringRoundTrip(t *testing.T) {
	value := "HELLO WORLD"
	e := NewEncoder(false)
	if err := e.EncodeString(value, nil, nil, false); err != nil {
		t.Fatalf("EncodeString() error = %v", err)
	}
	d := NewDecoder(e.Bytes(), false)
	got, err := d.DecodeString(nil, nil, false)
	if err != nil {
		t.Fatalf("DecodeString() error = %v", err)
	}
	if got != value {
		t.Errorf("DecodeString() = %q, want %q", got, value)
	}
}

func TestDecodeNumericStringRoundTrip(t *testing.T) {
	value := "0123 456789"
	e := NewEncoder(false)
	if err := e.EncodeNumericString(value, nil, nil, false); err != nil {
		t.Fatalf("EncodeNumericString() error = %v", err)
	}
	d := NewDecoder(e.Bytes(), false)
	got, err := d.DecodeNumericString(nil, nil, false)
	if err != nil {
		t.Fatalf("DecodeNumericString() error = %v", err)
	}
	if got != value {
		t.Errorf("DecodeNumericString() = %q, want %q", got, value)
	}
}

func TestDecodeBMPStringRoundTrip(t *testing.T) {
	value := "Café ÜBER"
	e := NewEncoder(false)
	if err := e.EncodeBMPString(value, nil, nil, false); err != nil {
		t.Fatalf("EncodeBMPString() error = %v", err)
	}
	d := NewDecoder(e.Bytes(), false)
	got, err := d.DecodeBMPString(nil, nil, false)
	if err != nil {
		t.Fatalf("DecodeBMPString() error = %v", err)
	}
	if got != value {
		t.Errorf("DecodeBMPString() = %q, want %q", got, value)
	}
}
