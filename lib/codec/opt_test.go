package codec

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-asn1/codec/lib/per"
)

func TestWriteOptSkipsWhenAbsent(t *testing.T) {
	called := false
	err := WriteOpt(false, func() error {
		called = true
		return nil
	})
	require.NoError(t, err)
	require.False(t, called, "write closure must not run when present is false")
}

func TestReadOptSkipsWhenAbsent(t *testing.T) {
	called := false
	err := ReadOpt(false, func() error {
		called = true
		return nil
	})
	require.NoError(t, err)
	require.False(t, called, "read closure must not run when present is false")
}

func TestChoiceUnknownExtensionIsSkippableRequire(t *testing.T) {
	var c extensibleChoice
	e := per.NewEncoder(false)
	err := WriteChoice(e, c, 2, false, func(e *per.Encoder) error {
		return e.EncodeBoolean(true)
	})
	require.NoError(t, err)

	d := per.NewDecoder(e.Bytes(), false)
	err = ReadChoice(d, c, []func(*per.Decoder) error{
		func(d *per.Decoder) error { return nil },
		func(d *per.Decoder) error { return nil },
	})
	require.ErrorIs(t, err, ErrUnknownExtension)
}
