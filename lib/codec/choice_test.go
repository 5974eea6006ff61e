package codec

import (
	"testing"

	"github.com/go-asn1/codec/lib/per"
)

// twoWay models CHOICE { a INTEGER, b UTF8String } with no extension
// marker, root count 2.
type twoWay struct{}

func (twoWay) RootCount() uint64 { return 2 }
func (twoWay) Extensible() bool  { return false }

// extensibleChoice models CHOICE { a INTEGER, b UTF8String, ..., c BOOLEAN }.
type extensibleChoice struct{}

func (extensibleChoice) RootCount() uint64 { return 2 }
func (extensibleChoice) Extensible() bool  { return true }

func TestChoiceRoundTripRootAlternative(t *testing.T) {
	var c twoWay
	e := per.NewEncoder(false)
	if err := WriteChoice(e, c, 1, true, func(e *per.Encoder) error {
		return e.EncodeString("hello", nil, nil, false)
	}); err != nil {
		t.Fatalf("WriteChoice() error = %v", err)
	}

	var got string
	d := per.NewDecoder(e.Bytes(), false)
	err := ReadChoice(d, c, []func(*per.Decoder) error{
		func(d *per.Decoder) error { return nil },
		func(d *per.Decoder) error {
			v, err := d.DecodeString(nil, nil, false)
			if err != nil {
				return err
			}
			got = v
			return nil
		},
	})
	if err != nil {
		t.Fatalf("ReadChoice() error = %v", err)
	}
	if got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestChoiceRoundTripExtensionAddition(t *testing.T) {
	var c extensibleChoice
	e := per.NewEncoder(false)
	if err := WriteChoice(e, c, 2, false, func(e *per.Encoder) error {
		return e.EncodeBoolean(true)
	}); err != nil {
		t.Fatalf("WriteChoice() error = %v", err)
	}

	var got bool
	d := per.NewDecoder(e.Bytes(), false)
	err := ReadChoice(d, c, []func(*per.Decoder) error{
		func(d *per.Decoder) error { return nil },
		func(d *per.Decoder) error { return nil },
		func(d *per.Decoder) error {
			v, err := d.DecodeBoolean()
			if err != nil {
				return err
			}
			got = v
			return nil
		},
	})
	if err != nil {
		t.Fatalf("ReadChoice() error = %v", err)
	}
	if !got {
		t.Fatalf("got %v, want true", got)
	}
}

func TestChoiceUnknownExtensionIsSkippable(t *testing.T) {
	var c extensibleChoice
	e := per.NewEncoder(false)
	if err := WriteChoice(e, c, 2, false, func(e *per.Encoder) error {
		return e.EncodeBoolean(true)
	}); err != nil {
		t.Fatalf("WriteChoice() error = %v", err)
	}

	d := per.NewDecoder(e.Bytes(), false)
	err := ReadChoice(d, c, []func(*per.Decoder) error{
		func(d *per.Decoder) error { return nil },
		func(d *per.Decoder) error { return nil },
	})
	if err != ErrUnknownExtension {
		t.Fatalf("err = %v, want ErrUnknownExtension", err)
	}
}
