package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorhost/dialect/internal/catalog"
	"github.com/tensorhost/dialect/internal/chain"
	"github.com/tensorhost/dialect/internal/dht"
	"github.com/tensorhost/dialect/internal/ir"
	"github.com/tensorhost/dialect/internal/verify"
)

func TestBuilderBuildsVerifiedProgram(t *testing.T) {
	reg := dht.MustRegistry()
	b := New(reg)

	src := chain.NewFixedSource("c0")
	root, err := b.RootChain(src.Next())
	require.NoError(t, err)

	created, err := b.Append("dht.create_uninitialized_tensor.i32.2", nil,
		map[string]ir.Attr{catalog.AttrShape: ir.IntListAttr{3, 2}})
	require.NoError(t, err)
	require.Len(t, created, 1)
	assert.Equal(t, "0", created[0].Name)
	assert.Equal(t, ir.TensorKind(ir.I32, 2), created[0].Kind)

	filled, err := b.Append("dht.fill_tensor_with_constant.i32",
		[]ir.ValueRef{created[0], root},
		map[string]ir.Attr{catalog.AttrValue: ir.IntAttr(0)})
	require.NoError(t, err)

	ch, ok := ChainResult(filled)
	require.True(t, ok)

	_, err = b.Append("dht.print_tensor.i32", []ir.ValueRef{created[0], ch}, nil)
	require.NoError(t, err)

	prog := b.Program()
	require.Len(t, prog.Ops, 3)
	assert.Empty(t, verify.Program(reg, prog))
}

func TestBuilderResultNamesAreMonotonic(t *testing.T) {
	b := New(dht.MustRegistry())
	root, err := b.RootChain(chain.NewFixedSource("c0").Next())
	require.NoError(t, err)

	buf, err := b.Input("buf", ir.BufferKind())
	require.NoError(t, err)

	first, err := b.Append("dht.make_tensor.i32", []ir.ValueRef{buf, root}, nil)
	require.NoError(t, err)
	second, err := b.Append("dht.create_uninitialized_tensor.i32.0", nil,
		map[string]ir.Attr{catalog.AttrShape: ir.IntListAttr{}})
	require.NoError(t, err)

	assert.Equal(t, "0", first[0].Name)
	assert.Equal(t, "1", first[1].Name)
	assert.Equal(t, "2", second[0].Name)
}

func TestBuilderRejectsUnknownOperation(t *testing.T) {
	b := New(dht.MustRegistry())
	_, err := b.Append("dht.frobnicate.i32", nil, nil)
	require.Error(t, err)
	assert.True(t, catalog.IsUnknownOperation(err))
}

func TestBuilderRejectsUndefinedOperand(t *testing.T) {
	b := New(dht.MustRegistry())
	ghost := ir.ValueRef{Name: "ghost", Kind: ir.ChainKind()}

	_, err := b.Append("dht.create_uninitialized_tensor.i32.0", []ir.ValueRef{ghost},
		map[string]ir.Attr{catalog.AttrShape: ir.IntListAttr{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "undefined value %ghost")
}

func TestBuilderRejectsDuplicateInput(t *testing.T) {
	b := New(dht.MustRegistry())
	_, err := b.Input("c0", ir.ChainKind())
	require.NoError(t, err)
	_, err = b.Input("c0", ir.ChainKind())
	assert.Error(t, err)
}

func TestBuilderFailedAppendLeavesProgramIntact(t *testing.T) {
	reg := dht.MustRegistry()
	b := New(reg)
	root, err := b.RootChain(chain.NewFixedSource("c0").Next())
	require.NoError(t, err)

	created, err := b.Append("dht.create_uninitialized_tensor.i32.2", nil,
		map[string]ir.Attr{catalog.AttrShape: ir.IntListAttr{3, 2}})
	require.NoError(t, err)

	// Missing value attribute fails verification.
	_, err = b.Append("dht.fill_tensor_with_constant.i32",
		[]ir.ValueRef{created[0], root}, nil)
	require.Error(t, err)
	assert.True(t, verify.IsKind(err, verify.ErrCodeMissingAttribute))

	prog := b.Program()
	assert.Len(t, prog.Ops, 1, "failed append must not land in the program")
	assert.Empty(t, verify.Program(reg, prog))
}

func TestBuilderChainFanOut(t *testing.T) {
	// One chain result may order several consumers; the resulting
	// order is partial, not linear.
	reg := dht.MustRegistry()
	b := New(reg)
	root, err := b.RootChain(chain.NewFixedSource("c0").Next())
	require.NoError(t, err)

	created, err := b.Append("dht.create_uninitialized_tensor.i32.1", nil,
		map[string]ir.Attr{catalog.AttrShape: ir.IntListAttr{4}})
	require.NoError(t, err)

	filled, err := b.Append("dht.fill_tensor_with_constant.i32",
		[]ir.ValueRef{created[0], root},
		map[string]ir.Attr{catalog.AttrValue: ir.IntAttr(1)})
	require.NoError(t, err)
	ch, _ := ChainResult(filled)

	_, err = b.Append("dht.print_tensor.i32", []ir.ValueRef{created[0], ch}, nil)
	require.NoError(t, err)
	_, err = b.Append("dht.print_tensor.i32", []ir.ValueRef{created[0], ch}, nil)
	require.NoError(t, err)

	assert.Empty(t, verify.Program(reg, b.Program()))
}
