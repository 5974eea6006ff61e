package codec

import (
	"testing"

	"github.com/go-asn1/codec/lib/per"
)

// color models an ENUMERATED { red, green, blue } with no extension marker.
type color int

const (
	colorRed color = iota
	colorGreen
	colorBlue
)

func (c *color) Index() uint64  { return uint64(*c) }
func (c *color) SetIndex(i uint64) { *c = color(i) }
func (c *color) Count() uint64  { return 3 }

func TestEnumeratedRoundTrip(t *testing.T) {
	for _, want := range []color{colorRed, colorGreen, colorBlue} {
		e := per.NewEncoder(false)
		if err := WriteEnumerated[color, *color](e, want, false); err != nil {
			t.Fatalf("WriteEnumerated(%v) error = %v", want, err)
		}
		d := per.NewDecoder(e.Bytes(), false)
		got, err := ReadEnumerated[color, *color](d, false)
		if err != nil {
			t.Fatalf("ReadEnumerated() error = %v", err)
		}
		if got != want {
			t.Errorf("got %v, want %v", got, want)
		}
	}
}
