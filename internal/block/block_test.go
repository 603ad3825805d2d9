package block

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	compressible := bytes.Repeat([]byte("predecessor"), 500)
	incompressible := make([]byte, 256)
	for i := range incompressible {
		incompressible[i] = byte(i * 31)
	}

	for _, typ := range []Type{TypeNone, TypeLZ4, TypeZSTD} {
		t.Run(typ.String(), func(t *testing.T) {
			for _, data := range [][]byte{compressible, incompressible, {}} {
				encoded, err := Compress(data, typ)
				require.NoError(t, err)

				decoded, err := Decompress(encoded, typ)
				require.NoError(t, err)
				assert.Equal(t, data, decoded)
			}
		})
	}
}

func TestCompressionShrinks(t *testing.T) {
	data := bytes.Repeat([]byte("predecessor"), 500)

	for _, typ := range []Type{TypeLZ4, TypeZSTD} {
		encoded, err := Compress(data, typ)
		require.NoError(t, err)
		assert.Less(t, len(encoded), len(data), typ.String())
	}
}

func TestUnknownType(t *testing.T) {
	_, err := Compress([]byte("x"), Type(99))
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestTruncated(t *testing.T) {
	_, err := Decompress([]byte{1, 2, 3}, TypeNone)
	assert.Error(t, err)
}
