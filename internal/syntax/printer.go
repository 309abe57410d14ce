package syntax

import (
	"fmt"
	"strings"

	"github.com/tensorhost/dialect/internal/catalog"
	"github.com/tensorhost/dialect/internal/ir"
)

// PrintProgram renders a program in its surface syntax: input
// declarations first, then one line per operation. The output parses
// back to a structurally equal program.
func PrintProgram(reg *catalog.Registry, prog *ir.Program) (string, error) {
	var b strings.Builder
	for _, in := range prog.Inputs {
		fmt.Fprintf(&b, "input %%%s %s\n", in.Name, in.Kind)
	}
	for _, op := range prog.Ops {
		line, err := PrintOp(reg, op)
		if err != nil {
			return "", err
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

// PrintOp renders one operation line.
func PrintOp(reg *catalog.Registry, op *ir.OpInstance) (string, error) {
	desc, err := reg.Lookup(op.Mnemonic)
	if err != nil {
		return "", err
	}

	var b strings.Builder
	if len(op.Results) > 0 {
		b.WriteString(joinRefs(op.Results))
		b.WriteString(" = ")
	}
	b.WriteString(op.Mnemonic)
	if len(op.Operands) > 0 {
		b.WriteByte(' ')
		b.WriteString(joinRefs(op.Operands))
	}

	attrText, err := printAttrs(desc, op)
	if err != nil {
		return "", err
	}
	b.WriteString(attrText)
	return b.String(), nil
}

func printAttrs(desc *catalog.Descriptor, op *ir.OpInstance) (string, error) {
	if cc, ok := desc.Codec.(catalog.CustomCodec); ok {
		lits, err := cc.Print(desc, op.Attrs)
		if err != nil {
			return "", fmt.Errorf("%s: %w", op.Mnemonic, err)
		}
		if len(lits) == 0 {
			return "", nil
		}
		parts := make([]string, len(lits))
		for i, lit := range lits {
			parts[i] = lit.String()
		}
		return " " + strings.Join(parts, " "), nil
	}

	if len(op.Attrs) == 0 {
		return "", nil
	}
	parts := make([]string, 0, len(op.Attrs))
	for _, name := range op.AttrNames() {
		parts = append(parts, name+" = "+op.Attrs[name].String())
	}
	return " {" + strings.Join(parts, ", ") + "}", nil
}

func joinRefs(refs []ir.ValueRef) string {
	parts := make([]string, len(refs))
	for i, r := range refs {
		parts[i] = "%" + r.Name
	}
	return strings.Join(parts, ", ")
}
