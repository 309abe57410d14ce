// Package catalog holds operation descriptors and the registry that
// maps mnemonics to them.
//
// A catalog is built once, before any graph construction, by expanding
// operation families over their declared element types and ranks. After
// construction it is read-only and safe to share across any number of
// concurrent graph builders without locking. A registration collision
// is fatal: a malformed catalog must never become queryable.
package catalog
