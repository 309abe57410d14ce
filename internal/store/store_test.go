package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorhost/dialect/internal/catalog"
	"github.com/tensorhost/dialect/internal/ir"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "programs.db"))
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })
	return st
}

func sampleProgram() *ir.Program {
	return &ir.Program{
		Inputs: []ir.ValueRef{{Name: "c0", Kind: ir.ChainKind()}},
		Ops: []*ir.OpInstance{
			{
				Mnemonic: "dht.create_uninitialized_tensor.i32.2",
				Results:  []ir.ValueRef{{Name: "t", Kind: ir.TensorKind(ir.I32, 2)}},
				Attrs:    map[string]ir.Attr{catalog.AttrShape: ir.IntListAttr{3, 2}},
			},
			{
				Mnemonic: "dht.fill_tensor_with_constant.i32",
				Operands: []ir.ValueRef{
					{Name: "t", Kind: ir.TensorKind(ir.I32, 2)},
					{Name: "c0", Kind: ir.ChainKind()},
				},
				Results: []ir.ValueRef{{Name: "c1", Kind: ir.ChainKind()}},
				Attrs:   map[string]ir.Attr{catalog.AttrValue: ir.IntAttr(0)},
			},
		},
	}
}

const sampleSource = `input %c0 chain
%t = dht.create_uninitialized_tensor.i32.2 [3, 2]
%c1 = dht.fill_tensor_with_constant.i32 %t, %c0 0
`

func TestOpenAppliesPragmas(t *testing.T) {
	st := openTestStore(t)

	var mode string
	require.NoError(t, st.DB().QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	var fk int
	require.NoError(t, st.DB().QueryRow("PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "programs.db")

	st, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	st, err = Open(path)
	require.NoError(t, err)
	assert.NoError(t, st.Close())
}

func TestRecordProgramRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	prog := sampleProgram()

	id, err := st.RecordProgram(ctx, prog, sampleSource)
	require.NoError(t, err)
	assert.Equal(t, ir.MustProgramID(prog), id)

	rec, err := st.GetProgram(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, id, rec.ID)
	assert.Equal(t, sampleSource, rec.Source)
	assert.Equal(t, 2, rec.OpCount)
	assert.NotEmpty(t, rec.CreatedAt)
}

func TestRecordProgramIsIdempotent(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()
	prog := sampleProgram()

	first, err := st.RecordProgram(ctx, prog, sampleSource)
	require.NoError(t, err)
	second, err := st.RecordProgram(ctx, prog, sampleSource)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	recs, err := st.ListPrograms(ctx)
	require.NoError(t, err)
	assert.Len(t, recs, 1)
}

func TestGetProgramNotFound(t *testing.T) {
	st := openTestStore(t)

	_, err := st.GetProgram(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestProgramsUsing(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	id, err := st.RecordProgram(ctx, sampleProgram(), sampleSource)
	require.NoError(t, err)

	other := &ir.Program{
		Ops: []*ir.OpInstance{
			{
				Mnemonic: "dht.create_uninitialized_tensor.f64.0",
				Results:  []ir.ValueRef{{Name: "s", Kind: ir.TensorKind(ir.F64, 0)}},
				Attrs:    map[string]ir.Attr{catalog.AttrShape: ir.IntListAttr{}},
			},
		},
	}
	otherID, err := st.RecordProgram(ctx, other, "%s = dht.create_uninitialized_tensor.f64.0 []\n")
	require.NoError(t, err)
	require.NotEqual(t, id, otherID)

	ids, err := st.ProgramsUsing(ctx, "dht.fill_tensor_with_constant.i32")
	require.NoError(t, err)
	assert.Equal(t, []string{id}, ids)

	ids, err = st.ProgramsUsing(ctx, "dht.tensor_equal.i32")
	require.NoError(t, err)
	assert.Empty(t, ids)
}
