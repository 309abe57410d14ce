package ir

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strconv"
	"unicode/utf16"

	"golang.org/x/text/unicode/norm"
)

// MarshalCanonical produces the deterministic JSON used for
// content-addressed program identity and golden comparisons.
//
// Properties:
//  1. Object keys sorted by UTF-16 code units
//  2. No HTML escaping (< > & are written as-is)
//  3. Strings NFC normalized at the serialization boundary
//  4. Floats formatted with strconv shortest form
//
// The encoding is project-defined; it only has to be stable across
// runs and platforms, which the rules above guarantee.
func MarshalCanonical(v any) ([]byte, error) {
	switch val := v.(type) {
	case nil:
		return nil, fmt.Errorf("null is forbidden in canonical JSON")
	case string:
		return marshalCanonicalString(val)
	case bool:
		if val {
			return []byte("true"), nil
		}
		return []byte("false"), nil
	case int:
		return []byte(strconv.Itoa(val)), nil
	case int64:
		return []byte(strconv.FormatInt(val, 10)), nil
	case float64:
		return []byte(strconv.FormatFloat(val, 'g', -1, 64)), nil
	case IntAttr:
		return MarshalCanonical(int64(val))
	case FloatAttr:
		return MarshalCanonical(float64(val))
	case IntListAttr:
		arr := make([]any, len(val))
		for i, e := range val {
			arr[i] = e
		}
		return marshalCanonicalArray(arr)
	case FloatListAttr:
		arr := make([]any, len(val))
		for i, e := range val {
			arr[i] = e
		}
		return marshalCanonicalArray(arr)
	case []any:
		return marshalCanonicalArray(val)
	case map[string]any:
		return marshalCanonicalObject(val)
	default:
		return nil, fmt.Errorf("unsupported type for canonical JSON: %T", v)
	}
}

// canonicalKeys sorts keys by UTF-16 code units, not UTF-8 bytes. The
// two orders differ for strings containing supplementary characters.
func canonicalKeys(obj map[string]any) []string {
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	slices.SortFunc(keys, compareUTF16)
	return keys
}

func compareUTF16(a, b string) int {
	a16 := utf16.Encode([]rune(a))
	b16 := utf16.Encode([]rune(b))
	for i := 0; i < len(a16) && i < len(b16); i++ {
		if a16[i] != b16[i] {
			if a16[i] < b16[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a16) < len(b16):
		return -1
	case len(a16) > len(b16):
		return 1
	}
	return 0
}

func marshalCanonicalString(s string) ([]byte, error) {
	normalized := norm.NFC.String(s)

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(normalized); err != nil {
		return nil, err
	}

	// json.Encoder appends a trailing newline.
	result := buf.Bytes()
	if len(result) > 0 && result[len(result)-1] == '\n' {
		result = result[:len(result)-1]
	}
	return result, nil
}

func marshalCanonicalArray(arr []any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, elem := range arr {
		if i > 0 {
			buf.WriteByte(',')
		}
		elemBytes, err := MarshalCanonical(elem)
		if err != nil {
			return nil, fmt.Errorf("array[%d]: %w", i, err)
		}
		buf.Write(elemBytes)
	}
	buf.WriteByte(']')
	return buf.Bytes(), nil
}

func marshalCanonicalObject(obj map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range canonicalKeys(obj) {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyBytes, err := marshalCanonicalString(k)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", k, err)
		}
		buf.Write(keyBytes)
		buf.WriteByte(':')
		valBytes, err := MarshalCanonical(obj[k])
		if err != nil {
			return nil, fmt.Errorf("value for key %q: %w", k, err)
		}
		buf.Write(valBytes)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// CanonicalMap converts a program to the plain map form consumed by
// MarshalCanonical. Source locations are deliberately excluded so the
// identity of a program depends only on its structure.
func (p *Program) CanonicalMap() map[string]any {
	inputs := make([]any, len(p.Inputs))
	for i, in := range p.Inputs {
		inputs[i] = map[string]any{
			"name": in.Name,
			"kind": in.Kind.String(),
		}
	}

	ops := make([]any, len(p.Ops))
	for i, op := range p.Ops {
		operands := make([]any, len(op.Operands))
		for j, r := range op.Operands {
			operands[j] = r.Name
		}
		results := make([]any, len(op.Results))
		for j, r := range op.Results {
			results[j] = r.Name
		}
		attrs := make(map[string]any, len(op.Attrs))
		for _, name := range op.AttrNames() {
			attrs[name] = op.Attrs[name]
		}
		ops[i] = map[string]any{
			"mnemonic": op.Mnemonic,
			"operands": operands,
			"results":  results,
			"attrs":    attrs,
		}
	}

	return map[string]any{
		"inputs": inputs,
		"ops":    ops,
	}
}
