// Package verify checks the structural invariants of operation
// instances against their descriptors: positional operand and result
// kinds, chain threading on side-effecting operations, and attribute
// kinds and arities. Verification runs once per constructed instance
// and reports every violation it finds rather than failing fast.
package verify

import (
	"fmt"

	"github.com/tensorhost/dialect/internal/catalog"
	"github.com/tensorhost/dialect/internal/ir"
)

// Instance verifies one operation instance in isolation. Checks that
// need surrounding context, such as matching a value list against the
// statically known shape of a tensor operand, are performed by Program.
func Instance(reg *catalog.Registry, inst *ir.OpInstance) []*Error {
	d, err := reg.Lookup(inst.Mnemonic)
	if err != nil {
		return []*Error{{
			Kind:     ErrCodeUnknownOperation,
			Mnemonic: inst.Mnemonic,
			Message:  "unknown operation " + inst.Mnemonic,
			Loc:      inst.Loc,
		}}
	}

	v := &checker{desc: d, inst: inst}
	v.checkChains()
	if !v.chainBroken {
		v.checkSlots(d.Operands, inst.Operands, "operand")
		v.checkSlots(d.Results, inst.Results, "result")
	}
	v.checkAttrs()
	return v.errs
}

// Program verifies every instance of a program in order, tracking
// value definitions and statically known shapes across instances. The
// element count of a "values" attribute is checked against the shape of
// the tensor operand when that shape is known from an earlier creation
// op; when it is not, the check is deferred to the executor rather than
// reported as a failure.
func Program(reg *catalog.Registry, prog *ir.Program) []*Error {
	var errs []*Error
	defined := make(map[string]ir.ValueKind)
	shapes := make(map[string]ir.IntListAttr)

	define := func(ref ir.ValueRef, inst *ir.OpInstance) {
		if _, dup := defined[ref.Name]; dup {
			e := &Error{
				Kind:    ErrCodeRedefinedValue,
				Message: fmt.Sprintf("value %%%s defined more than once", ref.Name),
			}
			if inst != nil {
				e.Mnemonic = inst.Mnemonic
				e.Loc = inst.Loc
			}
			errs = append(errs, e)
			return
		}
		defined[ref.Name] = ref.Kind
	}

	for _, in := range prog.Inputs {
		define(in, nil)
	}

	for _, inst := range prog.Ops {
		errs = append(errs, Instance(reg, inst)...)

		for _, op := range inst.Operands {
			kind, ok := defined[op.Name]
			if !ok {
				errs = append(errs, &Error{
					Kind:     ErrCodeUndefinedValue,
					Mnemonic: inst.Mnemonic,
					Message:  fmt.Sprintf("use of undefined value %%%s", op.Name),
					Loc:      inst.Loc,
				})
				continue
			}
			if kind != op.Kind {
				errs = append(errs, &Error{
					Kind:     ErrCodeKindMismatch,
					Mnemonic: inst.Mnemonic,
					Message: fmt.Sprintf("value %%%s is %s here but was defined as %s",
						op.Name, op.Kind, kind),
					Loc: inst.Loc,
				})
			}
		}

		if e := checkValueCount(reg, inst, shapes); e != nil {
			errs = append(errs, e)
		}

		recordShapes(reg, inst, shapes)
		for _, res := range inst.Results {
			define(res, inst)
		}
	}
	return errs
}

// checkValueCount matches a dynamic "values" attribute against the
// statically known element count of the first tensor operand. Rank 0
// means exactly one value; otherwise the count is the product of the
// declared shape dimensions.
func checkValueCount(reg *catalog.Registry, inst *ir.OpInstance, shapes map[string]ir.IntListAttr) *Error {
	d, err := reg.Lookup(inst.Mnemonic)
	if err != nil {
		return nil
	}
	spec, ok := d.AttrSpec(catalog.AttrValues)
	if !ok || spec.Count != ir.CountDynamic {
		return nil
	}
	vals, ok := inst.Attr(catalog.AttrValues)
	if !ok {
		return nil
	}
	for _, op := range inst.Operands {
		if op.Kind.Class != ir.KindTensor {
			continue
		}
		shape, known := shapes[op.Name]
		if !known {
			return nil // deferred: shape not statically known
		}
		expected := int64(1)
		for _, dim := range shape {
			expected *= dim
		}
		if got := int64(ir.Len(vals)); got != expected {
			return &Error{
				Kind:     ErrCodeAttributeArityMismatch,
				Mnemonic: inst.Mnemonic,
				Message: fmt.Sprintf("attribute %q has %d elements, expected %d for shape %s",
					catalog.AttrValues, got, expected, shape),
				Loc: inst.Loc,
			}
		}
		return nil
	}
	return nil
}

// recordShapes remembers the static shape a creation op gives its
// tensor results, keyed by result name.
func recordShapes(reg *catalog.Registry, inst *ir.OpInstance, shapes map[string]ir.IntListAttr) {
	d, err := reg.Lookup(inst.Mnemonic)
	if err != nil {
		return
	}
	if _, ok := d.AttrSpec(catalog.AttrShape); !ok {
		return
	}
	shape, ok := inst.Attr(catalog.AttrShape)
	if !ok {
		return
	}
	dims, ok := shape.(ir.IntListAttr)
	if !ok {
		return
	}
	for _, res := range inst.Results {
		if res.Kind.Class == ir.KindTensor {
			shapes[res.Name] = dims
		}
	}
}

// checker accumulates errors for one instance.
type checker struct {
	desc        *catalog.Descriptor
	inst        *ir.OpInstance
	errs        []*Error
	chainBroken bool
}

func (v *checker) add(kind, format string, args ...any) {
	v.errs = append(v.errs, &Error{
		Kind:     kind,
		Mnemonic: v.inst.Mnemonic,
		Message:  fmt.Sprintf(format, args...),
		Loc:      v.inst.Loc,
	})
}

// checkChains enforces the ordering invariant: a side-effecting
// instance binds exactly one chain operand and one chain result. When
// the binding is broken, positional checks are skipped so the one
// missing chain does not also surface as an arity error.
func (v *checker) checkChains() {
	if !v.desc.SideEffecting {
		return
	}
	if n := chainCount(v.inst.Operands); n != 1 {
		v.add(ErrCodeMissingChainBinding,
			"side-effecting operation has %d chain operands, want exactly 1", n)
		v.chainBroken = true
	}
	if n := chainCount(v.inst.Results); n != 1 {
		v.add(ErrCodeMissingChainBinding,
			"side-effecting operation has %d chain results, want exactly 1", n)
		v.chainBroken = true
	}
}

func chainCount(refs []ir.ValueRef) int {
	n := 0
	for _, r := range refs {
		if r.Kind.IsChain() {
			n++
		}
	}
	return n
}

func (v *checker) checkSlots(want []ir.ValueKind, got []ir.ValueRef, what string) {
	if len(want) != len(got) {
		v.add(ErrCodeArityMismatch, "have %d %ss, expected %d", len(got), what, len(want))
		return
	}
	for i, k := range want {
		if k.Accepts(got[i].Kind) {
			continue
		}
		if k.Class == ir.KindTensor && got[i].Kind.Class == ir.KindTensor {
			v.add(ErrCodeTypeMismatch, "%s %d is %s, expected %s", what, i, got[i].Kind, k)
		} else {
			v.add(ErrCodeKindMismatch, "%s %d is %s, expected %s", what, i, got[i].Kind, k)
		}
	}
}

func (v *checker) checkAttrs() {
	for _, spec := range v.desc.Attrs {
		a, ok := v.inst.Attr(spec.Name)
		if !ok {
			v.add(ErrCodeMissingAttribute, "missing attribute %q", spec.Name)
			continue
		}
		if ir.KindOf(a) != spec.Kind {
			v.add(ErrCodeTypeMismatch, "attribute %q is %s, expected %s",
				spec.Name, ir.KindOf(a), spec.Kind)
			continue
		}
		if spec.Count >= 0 && (spec.Kind == ir.AttrInts || spec.Kind == ir.AttrFloats) {
			if got := ir.Len(a); got != spec.Count {
				v.add(ErrCodeAttributeArityMismatch,
					"attribute %q has %d elements, expected %d", spec.Name, got, spec.Count)
			}
		}
	}
	for _, name := range v.inst.AttrNames() {
		if _, ok := v.desc.AttrSpec(name); !ok {
			v.add(ErrCodeUnknownAttribute, "unknown attribute %q", name)
		}
	}
}
