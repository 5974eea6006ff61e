package per

import (
	"encoding/asn1"
	"encoding/hex"
	"math"
	"testing"
)

func TestEncodeBoolean(t *testing.T) {
	test := func(value bool, aligned bool, expected string, description string) {
		t.Run(description, func(t *testing.T) {
			e := NewEncoder(aligned)
			if err := e.EncodeBoolean(value); err != nil {
				t.Fatalf("EncodeBoolean() error = %v", err)
			}
			want, _ := hex.DecodeString(expected)
			got := e.Bytes()
			if hex.EncodeToString(got) != hex.EncodeToString(want) {
				t.Errorf("EncodeBoolean(%v) = %x, want %x", value, got, want)
			}
		})
	}
	test(true, false, "80", "true unaligned")
	test(false, false, "00", "false unaligned")
	test(true, true, "80", "true aligned")
}

func TestEncodeInteger(t *testing.T) {
	lb, ub := int64(0), int64(255)
	e := NewEncoder(false)
	if err := e.EncodeInteger(130, &lb, &ub, false); err != nil {
		t.Fatalf("EncodeInteger() error = %v", err)
	}
	got := e.Bytes()
	want, _ := hex.DecodeString("82")
	if hex.EncodeToString(got) != hex.EncodeToString(want) {
		t.Errorf("EncodeInteger(130, [0,255]) = %x, want %x", got, want)
	}
}

func TestEncodeIntegerUnconstrained(t *testing.T) {
	e := NewEncoder(false)
	if err := e.EncodeInteger(256, nil, nil, false); err != nil {
		t.Fatalf("EncodeInteger() error = %v", err)
	}
	got := e.Bytes()
	// unconstrained length determinant (02) + 2's complement 0100 (0x0100)
	want, _ := hex.DecodeString("020100")
	if hex.EncodeToString(got) != hex.EncodeToString(want) {
		t.Errorf("EncodeInteger(256, unconstrained) = %x, want %x", got, want)
	}
}

func TestEncodeOctetStringFixedShort(t *testing.T) {
	lb, ub := uint64(2), uint64(2)
	e := NewEncoder(false)
	if err := e.EncodeOctetString([]byte{0xAB, 0xCD}, &lb, &ub, false); err != nil {
		t.Fatalf("EncodeOctetString() error = %v", err)
	}
	got := e.Bytes()
	want, _ := hex.DecodeString("abcd")
	if hex.EncodeToString(got) != hex.EncodeToString(want) {
		t.Errorf("EncodeOctetString(fixed 2) = %x, want %x", got, want)
	}
}

func TestEncodeOctetStringUnconstrained(t *testing.T) {
	e := NewEncoder(false)
	if err := e.EncodeOctetString([]byte{0x01, 0x02, 0x03}, nil, nil, false); err != nil {
		t.Fatalf("EncodeOctetString() error = %v", err)
	}
	got := e.Bytes()
	want, _ := hex.DecodeString("03010203")
	if hex.EncodeToString(got) != hex.EncodeToString(want) {
		t.Errorf("EncodeOctetString(unconstrained) = %x, want %x", got, want)
	}
}

func TestEncodeBitStringFixedSmall(t *testing.T) {
	lb, ub := uint64(4), uint64(4)
	e := NewEncoder(false)
	bs := asn1.BitString{Bytes: []byte{0xB0}, BitLength: 4}
	if err := e.EncodeBitString(&bs, &lb, &ub, false); err != nil {
		t.Fatalf("EncodeBitString() error = %v", err)
	}
	got := e.Bytes()
	want, _ := hex.DecodeString("b0")
	if hex.EncodeToString(got) != hex.EncodeToString(want) {
		t.Errorf("EncodeBitString(fixed 4) = %x, want %x", got, want)
	}
}

func TestEncodeEnumerated(t *testing.T) {
	e := NewEncoder(false)
	if err := e.EncodeEnumerated(2, 4, false); err != nil {
		t.Fatalf("EncodeEnumerated() error = %v", err)
	}
	got := e.Bytes()
	want, _ := hex.DecodeString("80")
	if hex.EncodeToString(got) != hex.EncodeToString(want) {
		t.Errorf("EncodeEnumerated(2, count=4) = %x, want %x", got, want)
	}
}

func TestEncodeRealSpecialValues(t *testing.T) {
	test := func(value float64, description string) {
		t.Run(description, func(t *testing.T) {
			e := NewEncoder(false)
			if err := e.EncodeReal(value); err != nil {
				t.Fatalf("EncodeReal() error = %v", err)
			}
			got := e.Bytes()
			if len(got) != 2 {
				t.Fatalf("EncodeReal(%v) produced %d bytes, want 2", value, len(got))
			}
		})
	}
	test(math.Inf(1), "plus infinity")
	test(math.Inf(-1), "minus infinity")
	test(math.NaN(), "not a number")
}

func TestEncodeRealPlusZero(t *testing.T) {
	e := NewEncoder(false)
	if err := e.EncodeReal(0.0); err != nil {
		t.Fatalf("EncodeReal() error = %v", err)
	}
	got := e.Bytes()
	want, _ := hex.DecodeString("00")
	if hex.EncodeToString(got) != hex.EncodeToString(want) {
		t.Errorf("EncodeReal(+0) = %x, want %x", got, want)
	}
}

func TestEncodeNumericString(t *testing.T) {
	e := NewEncoder(false)
	if err := e.EncodeNumericString("12", nil, nil, false); err != nil {
		t.Fatalf("EncodeNumericString() error = %v", err)
	}
	got := e.Bytes()
	// length determinant 2 ("02") + nibbles for '1' (index 2 = 0010) and
	// '2' (index 3 = 0011) packed into one byte ("23")
	want, _ := hex.DecodeString("0223")
	if hex.EncodeToString(got) != hex.EncodeToString(want) {
		t.Errorf("EncodeNumericString(\"12\") = %x, want %x", got, want)
	}
}

func TestEncodeObjectIdentifier(t *testing.T) {
	e := NewEncoder(false)
	oid := asn1.ObjectIdentifier{1, 2, 840, 113549}
	if err := e.EncodeObjectIdentifier(oid); err != nil {
		t.Fatalf("EncodeObjectIdentifier() error = %v", err)
	}
	if len(e.Bytes()) == 0 {
		t.Errorf("EncodeObjectIdentifier() produced no bytes")
	}
}
