package codec

import (
	"testing"

	"github.com/go-asn1/codec/lib/per"
)

func encodeUint8Item(e *per.Encoder, v uint8) error {
	lb, ub := int64(0), int64(255)
	return e.EncodeInteger(int64(v), &lb, &ub, false)
}

func decodeUint8Item(d *per.Decoder) (uint8, error) {
	lb, ub := int64(0), int64(255)
	v, err := d.DecodeInteger(&lb, &ub, false)
	return uint8(v), err
}

func TestSequenceOfRoundTripSmall(t *testing.T) {
	items := []uint8{1, 2, 3, 4, 5}
	e := per.NewEncoder(false)
	if err := WriteSequenceOf(e, items, nil, nil, false, encodeUint8Item); err != nil {
		t.Fatalf("WriteSequenceOf() error = %v", err)
	}
	d := per.NewDecoder(e.Bytes(), false)
	got, err := ReadSequenceOf(d, nil, nil, false, decodeUint8Item)
	if err != nil {
		t.Fatalf("ReadSequenceOf() error = %v", err)
	}
	if len(got) != len(items) {
		t.Fatalf("got %d items, want %d", len(got), len(items))
	}
	for i := range items {
		if got[i] != items[i] {
			t.Errorf("item %d = %d, want %d", i, got[i], items[i])
		}
	}
}

func TestSequenceOfRoundTripFixedCount(t *testing.T) {
	items := []uint8{9, 8, 7}
	three := uint64(3)
	e := per.NewEncoder(false)
	if err := WriteSequenceOf(e, items, &three, &three, false, encodeUint8Item); err != nil {
		t.Fatalf("WriteSequenceOf() error = %v", err)
	}
	d := per.NewDecoder(e.Bytes(), false)
	got, err := ReadSequenceOf(d, &three, &three, false, decodeUint8Item)
	if err != nil {
		t.Fatalf("ReadSequenceOf() error = %v", err)
	}
	if len(got) != 3 || got[0] != 9 || got[1] != 8 || got[2] != 7 {
		t.Fatalf("got %v, want %v", got, items)
	}
}

func TestSequenceOfRoundTripFragmented(t *testing.T) {
	n := int(per.FRAGMENT_SIZE) + 50
	items := make([]uint8, n)
	for i := range items {
		items[i] = uint8(i)
	}
	e := per.NewEncoder(false)
	if err := WriteSequenceOf(e, items, nil, nil, false, encodeUint8Item); err != nil {
		t.Fatalf("WriteSequenceOf() error = %v", err)
	}
	d := per.NewDecoder(e.Bytes(), false)
	got, err := ReadSequenceOf(d, nil, nil, false, decodeUint8Item)
	if err != nil {
		t.Fatalf("ReadSequenceOf() error = %v", err)
	}
	if len(got) != n {
		t.Fatalf("got %d items, want %d", len(got), n)
	}
	for i := range items {
		if got[i] != items[i] {
			t.Fatalf("item %d = %d, want %d", i, got[i], items[i])
		}
	}
}

func TestSequenceOfRoundTripExtensibleBeyondRoot(t *testing.T) {
	items := []uint8{1, 2, 3, 4, 5}
	zero, three := uint64(0), uint64(3)
	e := per.NewEncoder(false)
	if err := WriteSequenceOf(e, items, &zero, &three, true, encodeUint8Item); err != nil {
		t.Fatalf("WriteSequenceOf() error = %v", err)
	}
	d := per.NewDecoder(e.Bytes(), false)
	got, err := ReadSequenceOf(d, &zero, &three, true, decodeUint8Item)
	if err != nil {
		t.Fatalf("ReadSequenceOf() error = %v", err)
	}
	if len(got) != len(items) {
		t.Fatalf("got %d items, want %d", len(got), len(items))
	}
}
