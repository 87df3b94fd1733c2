// Package samples provides the built-in genetic programs for the
// standard cell specializations. They double as documentation of the
// language and as fixtures in tests.
package samples

import "github.com/roach88/helix/internal/ir"

// Names lists the built-in programs in a stable order.
var Names = []string{"compute_cell", "memory_cell", "transport_cell"}

// Program returns the named built-in program, or false if there is none.
func Program(name string) (*ir.Program, bool) {
	switch name {
	case "compute_cell":
		return ComputeCell(), true
	case "memory_cell":
		return MemoryCell(), true
	case "transport_cell":
		return TransportCell(), true
	default:
		return nil, false
	}
}

// ComputeCell is a high-performance computational cell.
func ComputeCell() *ir.Program {
	p := ir.NewProgram("compute_cell")
	p.Metadata.Description = "High-performance computational cell"

	p.AddInstruction(ir.NewInstruction(ir.KindSpecialize, "cell", ir.Params{
		"type": ir.String("compute"),
	}))
	p.AddInstruction(ir.NewInstruction(ir.KindConfigure, "chloroplast", ir.Params{
		"processing_power":  ir.Float(8.0),
		"light_sensitivity": ir.Float(1.5),
	}))
	p.AddInstruction(ir.NewInstruction(ir.KindConfigure, "mitochondria", ir.Params{
		"efficiency":        ir.Float(1.2),
		"energy_production": ir.Float(15.0),
	}))
	p.AddInstruction(ir.NewInstruction(ir.KindConnect, "cytoplasm", ir.Params{
		"source":      ir.String("chloroplast"),
		"destination": ir.String("vacuole"),
	}))
	return p
}

// MemoryCell is a high-capacity storage cell.
func MemoryCell() *ir.Program {
	p := ir.NewProgram("memory_cell")
	p.Metadata.Description = "High-capacity storage cell"

	p.AddInstruction(ir.NewInstruction(ir.KindSpecialize, "cell", ir.Params{
		"type": ir.String("memory"),
	}))
	p.AddInstruction(ir.NewInstruction(ir.KindConfigure, "vacuole", ir.Params{
		"capacity": ir.Float(500.0),
	}))
	p.AddInstruction(ir.NewInstruction(ir.KindConfigure, "er", ir.Params{
		"pipeline_stages": ir.Int(6),
	}))
	return p
}

// TransportCell is an efficient transport and routing cell.
func TransportCell() *ir.Program {
	p := ir.NewProgram("transport_cell")
	p.Metadata.Description = "Efficient transport and routing cell"

	p.AddInstruction(ir.NewInstruction(ir.KindSpecialize, "cell", ir.Params{
		"type": ir.String("transport"),
	}))
	p.AddInstruction(ir.NewInstruction(ir.KindConfigure, "cytoplasm", ir.Params{
		"routing_efficiency": ir.Float(2.0),
	}))
	p.AddInstruction(ir.NewInstruction(ir.KindConfigure, "cell_wall", ir.Params{
		"permeability": ir.Float(0.9),
	}))
	return p
}
