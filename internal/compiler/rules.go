package compiler

// Rules holds the static validation tables.
//
// Constructed once (DefaultRules) and passed by reference; the validator
// never mutates it. The vocabularies here are wire contract: programs
// exchanged with other implementations must agree on them exactly.
type Rules struct {
	// MaxInstructions caps total program size.
	MaxInstructions int

	// MinParameterValue and MaxParameterValue bound every numeric
	// parameter value, for any instruction kind.
	MinParameterValue float64
	MaxParameterValue float64

	// ValidTargets is the closed set of recognized targets: the nine
	// organelle identifiers plus the generic "cell" target.
	ValidTargets map[string]bool

	// ConfigureParams whitelists CONFIGURE parameter keys per target.
	// Targets without an entry accept any keys.
	ConfigureParams map[string][]string

	// SpecializationTypes is the closed set of SPECIALIZE "type" values.
	SpecializationTypes map[string]bool
}

// DefaultRules builds the standard rule tables.
func DefaultRules() *Rules {
	return &Rules{
		MaxInstructions:   1000,
		MinParameterValue: 0.0,
		MaxParameterValue: 10.0,
		ValidTargets: map[string]bool{
			"nucleus":      true,
			"ribosome":     true,
			"mitochondria": true,
			"chloroplast":  true,
			"vacuole":      true,
			"cytoplasm":    true,
			"er":           true,
			"golgi":        true,
			"cell_wall":    true,
			"cell":         true,
		},
		ConfigureParams: map[string][]string{
			"mitochondria": {"efficiency", "energy_production"},
			"chloroplast":  {"processing_power", "light_sensitivity"},
			"vacuole":      {"capacity"},
			"cytoplasm":    {"routing_efficiency"},
			"cell_wall":    {"permeability"},
		},
		SpecializationTypes: map[string]bool{
			"compute":   true,
			"memory":    true,
			"transport": true,
			"sensory":   true,
		},
	}
}
