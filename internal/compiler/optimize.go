package compiler

import (
	"sort"

	"github.com/roach88/helix/internal/ir"
)

// Optimize produces an equivalent, smaller program. The input is not
// mutated; every surviving instruction is a fresh copy.
//
// Three steps:
//
//  1. Stable-sort by (priority ascending, kind ascending). This governs
//     which duplicate survives and the merge overwrite order, not the
//     final execution order.
//  2. Deduplicate on instruction identity (kind, target, parameter set,
//     condition set - see ir.InstructionKey). First occurrence wins.
//  3. Merge the surviving CONFIGURE instructions per target: parameter
//     maps union with later instructions overwriting earlier keys,
//     condition sets union keeping first occurrence, priority takes the
//     group maximum. Merged CONFIGURE instructions come first, in first
//     appearance order of their target, then all other instructions.
//
// Optimize is idempotent: running it twice yields the same instruction
// multiset as running it once.
func Optimize(p *ir.Program) *ir.Program {
	out := ir.NewProgram(p.Name)
	out.Metadata = p.Metadata.Clone()

	sorted := make([]ir.Instruction, len(p.Instructions))
	for i, in := range p.Instructions {
		sorted[i] = in.Clone()
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Priority != sorted[j].Priority {
			return sorted[i].Priority < sorted[j].Priority
		}
		return sorted[i].Kind < sorted[j].Kind
	})

	seen := make(map[string]bool, len(sorted))
	var survivors []ir.Instruction
	for _, in := range sorted {
		key, err := ir.InstructionKey(in)
		if err != nil {
			// Unhashable instructions (non-finite floats) are kept as-is
			// rather than risking a false dedup.
			survivors = append(survivors, in)
			continue
		}
		if !seen[key] {
			seen[key] = true
			survivors = append(survivors, in)
		}
	}

	for _, in := range mergeConfigures(survivors) {
		out.AddInstruction(in)
	}
	return out
}

// mergeConfigures collapses CONFIGURE instructions per target and
// passes everything else through unchanged, appended after the merged
// CONFIGURE set.
func mergeConfigures(instructions []ir.Instruction) []ir.Instruction {
	var targetOrder []string
	groups := map[string][]ir.Instruction{}
	var rest []ir.Instruction

	for _, in := range instructions {
		if in.Kind != ir.KindConfigure {
			rest = append(rest, in)
			continue
		}
		if _, ok := groups[in.Target]; !ok {
			targetOrder = append(targetOrder, in.Target)
		}
		groups[in.Target] = append(groups[in.Target], in)
	}

	out := make([]ir.Instruction, 0, len(targetOrder)+len(rest))
	for _, target := range targetOrder {
		group := groups[target]

		merged := ir.Instruction{
			Kind:     ir.KindConfigure,
			Target:   target,
			Params:   ir.Params{},
			Priority: ir.DefaultPriority,
		}
		condSeen := map[string]bool{}
		for _, in := range group {
			for k, v := range in.Params {
				merged.Params[k] = v // later instructions overwrite
			}
			for _, c := range in.Conditions {
				if !condSeen[c] {
					condSeen[c] = true
					merged.Conditions = append(merged.Conditions, c)
				}
			}
			if in.Priority > merged.Priority {
				merged.Priority = in.Priority
			}
		}
		out = append(out, merged)
	}

	return append(out, rest...)
}
