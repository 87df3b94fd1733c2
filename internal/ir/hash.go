package ir

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"slices"
)

// DomainInstruction is the domain prefix for instruction identity keys.
// The version suffix enables future algorithm migration.
const DomainInstruction = "helix/instruction/v1"

// hashWithDomain computes SHA-256 with domain separation.
// Format: SHA256(domain + 0x00 + data). The null byte prevents
// domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// InstructionKey computes the content-addressed identity of an instruction
// for deduplication. Two instructions share a key iff they have the same
// kind, target, parameter set, and condition set.
//
// Parameters are an unordered collection here (canonical key order), and
// conditions are an unordered set (sorted, deduplicated). Priority is
// deliberately excluded: two instructions that differ only in priority
// are duplicates.
func InstructionKey(in Instruction) (string, error) {
	params, err := marshalCanonicalParams(in.Params)
	if err != nil {
		return "", fmt.Errorf("InstructionKey: %w", err)
	}

	conds := slices.Clone(in.Conditions)
	slices.Sort(conds)
	conds = slices.Compact(conds)

	var buf bytes.Buffer
	buf.WriteByte('{')

	buf.WriteString(`"conditions":[`)
	for i, c := range conds {
		if i > 0 {
			buf.WriteByte(',')
		}
		cb, err := marshalCanonicalString(c)
		if err != nil {
			return "", fmt.Errorf("InstructionKey: condition %q: %w", c, err)
		}
		buf.Write(cb)
	}
	buf.WriteString(`],`)

	buf.WriteString(`"kind":`)
	kb, err := marshalCanonicalString(string(in.Kind))
	if err != nil {
		return "", fmt.Errorf("InstructionKey: %w", err)
	}
	buf.Write(kb)
	buf.WriteByte(',')

	buf.WriteString(`"parameters":`)
	buf.Write(params)
	buf.WriteByte(',')

	buf.WriteString(`"target":`)
	tb, err := marshalCanonicalString(in.Target)
	if err != nil {
		return "", fmt.Errorf("InstructionKey: %w", err)
	}
	buf.Write(tb)

	buf.WriteByte('}')

	return hashWithDomain(DomainInstruction, buf.Bytes()), nil
}

// MustInstructionKey is like InstructionKey but panics on error.
// Marshaling only fails for non-finite floats, which no parser produces;
// use this when the instruction came from a parser or a literal.
func MustInstructionKey(in Instruction) string {
	key, err := InstructionKey(in)
	if err != nil {
		panic(err)
	}
	return key
}
