package ir

import "fmt"

// StructuredInstruction is the JSON wire form of an instruction.
type StructuredInstruction struct {
	Type       string   `json:"type"`
	Target     string   `json:"target"`
	Parameters Params   `json:"parameters"`
	Conditions []string `json:"conditions"`
	Priority   int      `json:"priority"`
}

// StructuredProgram is the JSON wire form of a program.
//
// This is one of the two external program representations (the other is
// the line-oriented text grammar). Field names are wire contract; do not
// rename.
type StructuredProgram struct {
	Name         string                  `json:"name"`
	Metadata     Metadata                `json:"metadata"`
	Instructions []StructuredInstruction `json:"instructions"`
}

// Structured converts a program to its JSON wire form.
// Instruction order is preserved.
func (p *Program) Structured() StructuredProgram {
	out := StructuredProgram{
		Name:         p.Name,
		Metadata:     p.Metadata.Clone(),
		Instructions: make([]StructuredInstruction, 0, len(p.Instructions)),
	}
	for _, in := range p.Instructions {
		c := in.Clone()
		out.Instructions = append(out.Instructions, StructuredInstruction{
			Type:       string(c.Kind),
			Target:     c.Target,
			Parameters: c.Params,
			Conditions: c.Conditions,
			Priority:   c.Priority,
		})
	}
	return out
}

// Program converts the wire form back to a program.
// An instruction type outside the closed kind set is an error; a missing
// or non-positive priority falls back to DefaultPriority.
func (sp StructuredProgram) Program() (*Program, error) {
	p := NewProgram(sp.Name)
	p.Metadata = mergeMetadata(p.Metadata, sp.Metadata)

	for i, si := range sp.Instructions {
		kind, ok := ParseKind(si.Type)
		if !ok {
			return nil, fmt.Errorf("instruction %d: unknown instruction type %q", i+1, si.Type)
		}
		priority := si.Priority
		if priority < 1 {
			priority = DefaultPriority
		}
		p.AddInstruction(Instruction{
			Kind:       kind,
			Target:     si.Target,
			Params:     si.Parameters,
			Conditions: si.Conditions,
			Priority:   priority,
		})
	}
	return p, nil
}

// mergeMetadata overlays wire metadata on the defaults: absent wire
// fields keep their default values.
func mergeMetadata(base, overlay Metadata) Metadata {
	out := base
	if overlay.Version != "" {
		out.Version = overlay.Version
	}
	if overlay.Description != "" {
		out.Description = overlay.Description
	}
	if overlay.Author != "" {
		out.Author = overlay.Author
	}
	if overlay.Created != "" {
		out.Created = overlay.Created
	}
	if overlay.CellTypes != nil {
		out.CellTypes = overlay.Clone().CellTypes
	}
	return out
}
