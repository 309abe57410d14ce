package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tensorhost/dialect/internal/diag"
)

func TestProgramIDStable(t *testing.T) {
	prog := &Program{
		Inputs: []ValueRef{{Name: "c0", Kind: ChainKind()}},
		Ops:    []*OpInstance{makeInstance()},
	}

	first, err := ProgramID(prog)
	require.NoError(t, err)
	assert.Len(t, first, 64, "hex-encoded SHA-256")

	again, err := ProgramID(prog)
	require.NoError(t, err)
	assert.Equal(t, first, again)
}

func TestProgramIDIgnoresLocations(t *testing.T) {
	a := &Program{Ops: []*OpInstance{makeInstance()}}
	b := &Program{Ops: []*OpInstance{makeInstance()}}
	b.Ops[0].Loc = diag.Location{File: "other", Line: 3, Column: 9}

	assert.Equal(t, MustProgramID(a), MustProgramID(b))
}

func TestProgramIDChangesWithStructure(t *testing.T) {
	a := &Program{Ops: []*OpInstance{makeInstance()}}
	b := &Program{Ops: []*OpInstance{makeInstance()}}
	b.Ops[0].Attrs["shape"] = IntListAttr{2, 3}

	assert.NotEqual(t, MustProgramID(a), MustProgramID(b))
}

func TestHashWithDomainSeparation(t *testing.T) {
	// Moving a byte across the domain/data boundary must change the hash.
	a := hashWithDomain("ab", []byte("c"))
	b := hashWithDomain("a", []byte("bc"))
	assert.NotEqual(t, a, b)
}
