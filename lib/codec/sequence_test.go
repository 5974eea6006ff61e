package codec

import (
	"encoding/hex"
	"testing"

	"github.com/go-asn1/codec/lib/per"
)

// person models a small SEQUENCE { name UTF8String, age INTEGER OPTIONAL }
// with one extension addition, nickname UTF8String OPTIONAL, used purely to
// exercise WriteSequence/ReadSequence's preamble and open-type handling.
type person struct {
	name     string
	age      int64
	hasAge   bool
	nickname string
	hasNick  bool
}

func encodePerson(e *per.Encoder, p person) error {
	present := []bool{p.hasAge}
	var ext []func(*per.Encoder) error
	if p.hasNick {
		nick := p.nickname
		ext = []func(*per.Encoder) error{func(e *per.Encoder) error {
			return e.EncodeString(nick, nil, nil, false)
		}}
	}
	return WriteSequence(e, true, present, func() error {
		if err := e.EncodeString(p.name, nil, nil, false); err != nil {
			return err
		}
		return WriteOpt(p.hasAge, func() error {
			return e.EncodeInteger(p.age, nil, nil, false)
		})
	}, ext)
}

func decodePerson(d *per.Decoder) (person, error) {
	var p person
	err := ReadSequence(d, true, 1, func(present []bool) error {
		name, err := d.DecodeString(nil, nil, false)
		if err != nil {
			return err
		}
		p.name = name
		p.hasAge = present[0]
		return ReadOpt(present[0], func() error {
			age, err := d.DecodeInteger(nil, nil, false)
			if err != nil {
				return err
			}
			p.age = age
			return nil
		})
	}, []func(*per.Decoder) error{func(d *per.Decoder) error {
		nick, err := d.DecodeString(nil, nil, false)
		if err != nil {
			return err
		}
		p.nickname = nick
		p.hasNick = true
		return nil
	}})
	return p, err
}

func TestSequenceRoundTripNoOptionalsNoExtension(t *testing.T) {
	want := person{name: "Ada"}
	e := per.NewEncoder(false)
	if err := encodePerson(e, want); err != nil {
		t.Fatalf("encode error = %v", err)
	}
	d := per.NewDecoder(e.Bytes(), false)
	got, err := decodePerson(d)
	if err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if got.name != want.name || got.hasAge || got.hasNick {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestSequenceRoundTripWithOptional(t *testing.T) {
	want := person{name: "Grace", age: 42, hasAge: true}
	e := per.NewEncoder(false)
	if err := encodePerson(e, want); err != nil {
		t.Fatalf("encode error = %v", err)
	}
	d := per.NewDecoder(e.Bytes(), false)
	got, err := decodePerson(d)
	if err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if got.name != want.name || !got.hasAge || got.age != want.age {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

// TestSequenceExtensionCountIsUnbiased pins the wire bytes for a SEQUENCE
// with a single extension addition and no optional components, so the
// extension-count field can't silently regress to the biased "n-1"
// EncodeNormallySmallLength encoding: the count (1) must appear as the raw
// 7-bit normally-small-non-negative-whole-number "0 000001", not "0 000000".
func TestSequenceExtensionCountIsUnbiased(t *testing.T) {
	e := per.NewEncoder(false)
	ext := []func(*per.Encoder) error{func(e *per.Encoder) error {
		return e.EncodeOctetString(nil, nil, nil, false)
	}}
	err := WriteSequence(e, true, nil, func() error { return nil }, ext)
	if err != nil {
		t.Fatalf("WriteSequence() error = %v", err)
	}
	got := e.Bytes()
	want, _ := hex.DecodeString("81808000")
	if hex.EncodeToString(got) != hex.EncodeToString(want) {
		t.Errorf("WriteSequence() = %x, want %x", got, want)
	}
}

func TestSequenceRoundTripWithExtensionAddition(t *testing.T) {
	want := person{name: "Alan", age: 41, hasAge: true, nickname: "Turing", hasNick: true}
	e := per.NewEncoder(false)
	if err := encodePerson(e, want); err != nil {
		t.Fatalf("encode error = %v", err)
	}
	d := per.NewDecoder(e.Bytes(), false)
	got, err := decodePerson(d)
	if err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if got.name != want.name || !got.hasNick || got.nickname != want.nickname {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
