package diag

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnosticStringWithLocation(t *testing.T) {
	d := Diagnostic{
		Loc:     Location{File: "input", Line: 3, Column: 5},
		Message: "unknown operation dht.frobnicate.i32",
	}
	assert.Equal(t, "input:3:5: unknown operation dht.frobnicate.i32", d.String())
}

func TestDiagnosticStringWithoutLocation(t *testing.T) {
	d := Diagnostic{Message: "value %t defined more than once"}
	assert.Equal(t, "UnknownLocation: value %t defined more than once", d.String())
}

func TestLocationKnown(t *testing.T) {
	assert.False(t, Location{}.Known())
	assert.True(t, Location{File: "f", Line: 1, Column: 1}.Known())
}

func TestCollectorAccumulatesInOrder(t *testing.T) {
	c := &Collector{}
	c.Emit(Diagnostic{Message: "first"})
	c.Emit(Diagnostic{Loc: Location{File: "f", Line: 2, Column: 1}, Message: "second"})

	assert.Equal(t, []string{
		"UnknownLocation: first",
		"f:2:1: second",
	}, c.Strings())
}

func TestDiscardDropsEverything(t *testing.T) {
	var e Emitter = Discard{}
	e.Emit(Diagnostic{Message: "ignored"})
}
