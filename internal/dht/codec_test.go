package dht

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorhost/dialect/internal/catalog"
	"github.com/tensorhost/dialect/internal/ir"
)

func descriptor(t *testing.T, mnemonic string) *catalog.Descriptor {
	t.Helper()
	d, err := MustRegistry().Lookup(mnemonic)
	require.NoError(t, err)
	return d
}

func TestShapeCodec(t *testing.T) {
	d := descriptor(t, "dht.create_uninitialized_tensor.i32.2")
	cc := d.Codec.(catalog.CustomCodec)

	attrs, err := cc.Parse(d, []ir.Attr{ir.IntListAttr{3, 2}})
	require.NoError(t, err)
	assert.Equal(t, ir.IntListAttr{3, 2}, attrs[catalog.AttrShape])

	lits, err := cc.Print(d, attrs)
	require.NoError(t, err)
	assert.Equal(t, []ir.Attr{ir.IntListAttr{3, 2}}, lits)
}

func TestShapeCodecErrors(t *testing.T) {
	d := descriptor(t, "dht.create_uninitialized_tensor.i32.2")
	cc := d.Codec.(catalog.CustomCodec)

	t.Run("dimension count", func(t *testing.T) {
		_, err := cc.Parse(d, []ir.Attr{ir.IntListAttr{3}})
		var ce *catalog.CodecError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, catalog.ErrCodeAttributeArityMismatch, ce.Kind)
		assert.Equal(t, "shape has 1 dimensions, expected 2", ce.Message)
	})

	t.Run("literal count", func(t *testing.T) {
		_, err := cc.Parse(d, nil)
		var ce *catalog.CodecError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, catalog.ErrCodeAttributeArityMismatch, ce.Kind)
	})

	t.Run("literal kind", func(t *testing.T) {
		_, err := cc.Parse(d, []ir.Attr{ir.IntAttr(3)})
		var ce *catalog.CodecError
		require.ErrorAs(t, err, &ce)
		assert.Equal(t, catalog.ErrCodeTypeMismatch, ce.Kind)
	})
}

func TestScalarCodecMatchesElementType(t *testing.T) {
	intFill := descriptor(t, "dht.fill_tensor_with_constant.i32")
	floatFill := descriptor(t, "dht.fill_tensor_with_constant.f32")

	attrs, err := intFill.Codec.(catalog.CustomCodec).Parse(intFill, []ir.Attr{ir.IntAttr(7)})
	require.NoError(t, err)
	assert.Equal(t, ir.IntAttr(7), attrs[catalog.AttrValue])

	_, err = floatFill.Codec.(catalog.CustomCodec).Parse(floatFill, []ir.Attr{ir.IntAttr(7)})
	var ce *catalog.CodecError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, catalog.ErrCodeTypeMismatch, ce.Kind)
	assert.Equal(t, "constant is int, expected float for element type f32", ce.Message)
}

func TestValuesCodecWidensEmptyList(t *testing.T) {
	d := descriptor(t, "dht.set_tensor_with_constant_values.f64")
	cc := d.Codec.(catalog.CustomCodec)

	attrs, err := cc.Parse(d, []ir.Attr{ir.IntListAttr{}})
	require.NoError(t, err)
	assert.Equal(t, ir.FloatListAttr{}, attrs[catalog.AttrValues])
}

func TestValuesCodecRejectsMixedKinds(t *testing.T) {
	d := descriptor(t, "dht.set_tensor_with_constant_values.i32")
	cc := d.Codec.(catalog.CustomCodec)

	_, err := cc.Parse(d, []ir.Attr{ir.FloatListAttr{1.5}})
	var ce *catalog.CodecError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, catalog.ErrCodeTypeMismatch, ce.Kind)
}
