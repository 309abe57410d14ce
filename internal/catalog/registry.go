package catalog

import (
	"errors"
	"fmt"
)

// DuplicateMnemonicError reports a second registration under an
// already-used mnemonic. It is fatal at catalog construction time.
type DuplicateMnemonicError struct {
	Mnemonic string
}

func (e *DuplicateMnemonicError) Error() string {
	return fmt.Sprintf("duplicate mnemonic %q: already registered", e.Mnemonic)
}

// InvalidDescriptorError reports a descriptor that violates a
// structural catalog invariant, such as a side-effecting operation
// without balanced chain bindings. Also fatal at construction time.
type InvalidDescriptorError struct {
	Mnemonic string
	Reason   string
}

func (e *InvalidDescriptorError) Error() string {
	return fmt.Sprintf("invalid descriptor %q: %s", e.Mnemonic, e.Reason)
}

// UnknownOperationError reports a lookup of a mnemonic the catalog does
// not contain.
type UnknownOperationError struct {
	Mnemonic string
}

func (e *UnknownOperationError) Error() string {
	return "unknown operation " + e.Mnemonic
}

// IsUnknownOperation reports whether err is an unknown-mnemonic lookup
// failure. Uses errors.As to handle wrapped errors.
func IsUnknownOperation(err error) bool {
	var ue *UnknownOperationError
	return errors.As(err, &ue)
}

// Registry is the operation catalog: a write-once mapping from
// mnemonic to descriptor that also remembers registration order so
// enumeration (and therefore catalog dumps) is reproducible.
type Registry struct {
	byName map[string]*Descriptor
	order  []*Descriptor
}

// NewRegistry creates an empty catalog.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Descriptor)}
}

// Register inserts a descriptor under its mnemonic. Collisions and
// structurally invalid descriptors are rejected; the caller must treat
// either error as fatal and discard the whole catalog.
func (r *Registry) Register(d *Descriptor) error {
	if d.Mnemonic == "" {
		return &InvalidDescriptorError{Mnemonic: d.Base, Reason: "empty mnemonic"}
	}
	if d.SideEffecting && !d.ChainsBalanced() {
		return &InvalidDescriptorError{
			Mnemonic: d.Mnemonic,
			Reason:   "side-effecting operation must have exactly one chain operand and one chain result",
		}
	}
	if d.Codec == nil {
		d.Codec = GenericCodec{}
	}
	if _, exists := r.byName[d.Mnemonic]; exists {
		return &DuplicateMnemonicError{Mnemonic: d.Mnemonic}
	}
	r.byName[d.Mnemonic] = d
	r.order = append(r.order, d)
	return nil
}

// Lookup resolves a mnemonic to its descriptor.
func (r *Registry) Lookup(mnemonic string) (*Descriptor, error) {
	d, ok := r.byName[mnemonic]
	if !ok {
		return nil, &UnknownOperationError{Mnemonic: mnemonic}
	}
	return d, nil
}

// Ops enumerates the catalog in registration order. The returned slice
// is a copy; the catalog itself stays immutable.
func (r *Registry) Ops() []*Descriptor {
	out := make([]*Descriptor, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered descriptors.
func (r *Registry) Len() int {
	return len(r.order)
}
