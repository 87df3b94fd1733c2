package ir

// DefaultPriority is the priority assigned to instructions that do not
// declare one.
const DefaultPriority = 1

// Instruction is a single genetic instruction.
//
// Instructions are immutable once constructed. The optimizer builds new
// instructions rather than mutating ones it was handed.
type Instruction struct {
	Kind       Kind     `json:"type"`
	Target     string   `json:"target"`
	Params     Params   `json:"parameters"`
	Conditions []string `json:"conditions"`
	Priority   int      `json:"priority"`
}

// NewInstruction constructs an instruction at the default priority.
func NewInstruction(kind Kind, target string, params Params, conditions ...string) Instruction {
	return Instruction{
		Kind:       kind,
		Target:     target,
		Params:     params,
		Conditions: conditions,
		Priority:   DefaultPriority,
	}
}

// Clone returns a copy with its own parameter map and condition slice.
func (in Instruction) Clone() Instruction {
	out := in
	out.Params = in.Params.Clone()
	if in.Conditions != nil {
		out.Conditions = make([]string, len(in.Conditions))
		copy(out.Conditions, in.Conditions)
	}
	return out
}

// Metadata carries program-level descriptive fields.
type Metadata struct {
	Version     string   `json:"version" yaml:"version"`
	Description string   `json:"description" yaml:"description"`
	Author      string   `json:"author" yaml:"author"`
	Created     string   `json:"created" yaml:"created"`
	CellTypes   []string `json:"cell_types" yaml:"cell_types"`
}

// DefaultMetadata returns the metadata a freshly constructed program carries.
func DefaultMetadata() Metadata {
	return Metadata{Version: "1.0", Author: "system"}
}

// Clone returns a copy with its own cell-type slice.
func (m Metadata) Clone() Metadata {
	out := m
	if m.CellTypes != nil {
		out.CellTypes = make([]string, len(m.CellTypes))
		copy(out.CellTypes, m.CellTypes)
	}
	return out
}

// Program is an ordered sequence of instructions plus metadata.
//
// Instruction order is declaration order, not priority order, until the
// optimizer runs. ValidationErrors accumulates parse-level problems; the
// validator returns its findings separately.
//
// Programs are never shared for concurrent mutation.
type Program struct {
	Name             string
	Metadata         Metadata
	Instructions     []Instruction
	ValidationErrors []string
}

// NewProgram constructs an empty program with default metadata.
func NewProgram(name string) *Program {
	return &Program{
		Name:     name,
		Metadata: DefaultMetadata(),
	}
}

// AddInstruction appends an instruction, preserving declaration order.
func (p *Program) AddInstruction(in Instruction) {
	p.Instructions = append(p.Instructions, in)
}

// InstructionsByKind returns all instructions of the given kind,
// in declaration order.
func (p *Program) InstructionsByKind(kind Kind) []Instruction {
	var out []Instruction
	for _, in := range p.Instructions {
		if in.Kind == kind {
			out = append(out, in)
		}
	}
	return out
}

// InstructionsForTarget returns all instructions addressing the given
// target, in declaration order.
func (p *Program) InstructionsForTarget(target string) []Instruction {
	var out []Instruction
	for _, in := range p.Instructions {
		if in.Target == target {
			out = append(out, in)
		}
	}
	return out
}
