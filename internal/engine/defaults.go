package engine

// Defaults holds the static tables the engine is built from: the fixed
// gene set, the default regulatory wiring, the organelle-to-gene map,
// the specialization presets, and the stress-responsive gene subset.
//
// Constructed once (DefaultConfiguration) and passed by reference;
// nothing mutates it after engine construction.
type Defaults struct {
	// Genes is the fixed gene set, in profile creation order.
	Genes []string

	// BaseExpression seeds every profile's base and current expression.
	BaseExpression float64

	// Regulations is the default influence wiring.
	Regulations []DefaultRegulation

	// FeedbackLoops are the default informational loop groupings.
	FeedbackLoops [][]string

	// TargetGenes maps organelle targets to the gene gating them.
	// CONFIGURE instructions on unmapped targets touch no gene.
	TargetGenes map[string]string

	// Specializations are the preset expression profiles per
	// specialization type.
	Specializations map[string]map[string]float64

	// StressGenes are scaled up when stress exceeds 0.5.
	StressGenes []string
}

// DefaultRegulation is one default influence edge.
type DefaultRegulation struct {
	Regulator string
	Target    string
	Strength  float64
}

// DefaultConfiguration builds the standard tables.
func DefaultConfiguration() *Defaults {
	return &Defaults{
		Genes: []string{
			"mitochondria_efficiency",
			"chloroplast_processing",
			"vacuole_capacity",
			"cytoplasm_routing",
			"cell_wall_permeability",
			"ribosome_activity",
			"nucleus_control",
			"er_manufacturing",
			"golgi_packaging",
		},
		BaseExpression: 0.5,
		Regulations: []DefaultRegulation{
			// Energy metabolism
			{"mitochondria_efficiency", "chloroplast_processing", 0.3},
			{"chloroplast_processing", "mitochondria_efficiency", 0.2},
			// Manufacturing pipeline
			{"nucleus_control", "ribosome_activity", 0.5},
			{"ribosome_activity", "er_manufacturing", 0.4},
			{"er_manufacturing", "golgi_packaging", 0.6},
			// Storage and transport
			{"vacuole_capacity", "cytoplasm_routing", -0.2},
			{"cytoplasm_routing", "cell_wall_permeability", 0.3},
		},
		FeedbackLoops: [][]string{
			{"mitochondria_efficiency", "chloroplast_processing"},
			{"ribosome_activity", "er_manufacturing", "golgi_packaging"},
		},
		TargetGenes: map[string]string{
			"mitochondria": "mitochondria_efficiency",
			"chloroplast":  "chloroplast_processing",
			"vacuole":      "vacuole_capacity",
			"cytoplasm":    "cytoplasm_routing",
			"cell_wall":    "cell_wall_permeability",
		},
		Specializations: map[string]map[string]float64{
			"compute": {
				"chloroplast_processing":  0.9,
				"mitochondria_efficiency": 0.8,
				"cytoplasm_routing":       0.7,
			},
			"memory": {
				"vacuole_capacity": 0.9,
				"er_manufacturing": 0.7,
				"golgi_packaging":  0.6,
			},
			"transport": {
				"cytoplasm_routing":       0.9,
				"cell_wall_permeability":  0.8,
				"mitochondria_efficiency": 0.6,
			},
			"sensory": {
				"cell_wall_permeability": 0.9,
				"nucleus_control":        0.8,
				"ribosome_activity":      0.7,
			},
		},
		StressGenes: []string{"mitochondria_efficiency", "ribosome_activity"},
	}
}
