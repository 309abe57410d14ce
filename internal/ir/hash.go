package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainProgram is the domain prefix for program identity hashes. The
// version suffix leaves room for algorithm migration.
const DomainProgram = "dialect/program/v1"

// hashWithDomain computes SHA-256 with domain separation:
// SHA256(domain + 0x00 + data). The null byte prevents domain/data
// boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ProgramID computes the content-addressed identity of a program from
// its canonical JSON form. The ID is stable across runs given the same
// structure; source locations do not participate.
func ProgramID(p *Program) (string, error) {
	canonical, err := MarshalCanonical(p.CanonicalMap())
	if err != nil {
		return "", fmt.Errorf("ProgramID: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainProgram, canonical), nil
}

// MustProgramID is like ProgramID but panics on error. Use only in
// tests or when the program is known to be well-formed.
func MustProgramID(p *Program) string {
	id, err := ProgramID(p)
	if err != nil {
		panic(err)
	}
	return id
}
