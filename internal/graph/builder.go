// Package graph provides the programmatic construction path for
// dialect programs: look up a descriptor by mnemonic, bind operands
// and attributes, verify the instance, and append it. The builder
// auto-names results, so callers only juggle the value references they
// thread between operations.
package graph

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/tensorhost/dialect/internal/catalog"
	"github.com/tensorhost/dialect/internal/chain"
	"github.com/tensorhost/dialect/internal/ir"
	"github.com/tensorhost/dialect/internal/verify"
)

// Builder accumulates a program one verified instance at a time. A
// builder is single-threaded; independent sub-graphs get independent
// builders.
type Builder struct {
	reg     *catalog.Registry
	prog    ir.Program
	defined map[string]ir.ValueKind
	next    int
}

// New creates a builder over a read-only catalog.
func New(reg *catalog.Registry) *Builder {
	return &Builder{reg: reg, defined: make(map[string]ir.ValueKind)}
}

// Input declares a graph-entry value.
func (b *Builder) Input(name string, kind ir.ValueKind) (ir.ValueRef, error) {
	if _, dup := b.defined[name]; dup {
		return ir.ValueRef{}, fmt.Errorf("value %%%s defined more than once", name)
	}
	b.defined[name] = kind
	ref := ir.ValueRef{Name: name, Kind: kind}
	b.prog.Inputs = append(b.prog.Inputs, ref)
	return ref, nil
}

// RootChain declares a chain token as a graph-entry value. Distinct
// root chains start orderings that stay mutually unordered, which lets
// an executor run the sequences they anchor concurrently.
func (b *Builder) RootChain(tok chain.Token) (ir.ValueRef, error) {
	return b.Input(tok.Name(), ir.ChainKind())
}

// Append builds, verifies, and appends one instance. Results are named
// from a monotonic counter. On verification failure nothing is
// appended and the joined errors are returned; the builder stays
// usable for further construction.
func (b *Builder) Append(mnemonic string, operands []ir.ValueRef, attrs map[string]ir.Attr) ([]ir.ValueRef, error) {
	desc, err := b.reg.Lookup(mnemonic)
	if err != nil {
		return nil, err
	}

	for _, op := range operands {
		kind, ok := b.defined[op.Name]
		if !ok {
			return nil, fmt.Errorf("use of undefined value %%%s", op.Name)
		}
		if kind != op.Kind {
			return nil, fmt.Errorf("value %%%s is %s here but was defined as %s", op.Name, op.Kind, kind)
		}
	}

	results := make([]ir.ValueRef, len(desc.Results))
	for i, kind := range desc.Results {
		results[i] = ir.ValueRef{Name: strconv.Itoa(b.next + i), Kind: kind}
	}

	inst := &ir.OpInstance{
		Mnemonic: desc.Mnemonic,
		Operands: operands,
		Results:  results,
		Attrs:    attrs,
	}
	if errs := verify.Instance(b.reg, inst); len(errs) > 0 {
		joined := make([]error, len(errs))
		for i, e := range errs {
			joined[i] = e
		}
		return nil, errors.Join(joined...)
	}

	b.next += len(results)
	for _, res := range results {
		b.defined[res.Name] = res.Kind
	}
	b.prog.Ops = append(b.prog.Ops, inst)
	return results, nil
}

// Program returns the accumulated program. The builder must not be
// used afterwards.
func (b *Builder) Program() *ir.Program {
	return &b.prog
}

// ChainResult picks the chain-kind result out of an Append result
// list, for threading into the next side-effecting operation.
func ChainResult(results []ir.ValueRef) (ir.ValueRef, bool) {
	for _, r := range results {
		if r.Kind.IsChain() {
			return r, true
		}
	}
	return ir.ValueRef{}, false
}
