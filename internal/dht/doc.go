// Package dht registers the dense host tensor op families: tensor
// creation, constant fills, constant value lists, equality comparison,
// and printing, each expanded over the dialect's declared element
// types (and ranks, for creation ops).
//
// Side-effecting members thread a chain operand and chain result so an
// executor can order buffer writes and reads that share no data edge.
package dht
