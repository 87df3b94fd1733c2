package cli

import (
	"github.com/roach88/helix/internal/engine"
	"github.com/roach88/helix/internal/ir"
)

// recordingTarget is the CLI's stand-in for a real organelle: it accepts
// every configuration and remembers the last one.
type recordingTarget struct {
	last ir.Params
}

// Reconfigure implements engine.Reconfigurable.
func (t *recordingTarget) Reconfigure(configuration ir.Params) error {
	t.last = configuration
	return nil
}

// defaultTargets builds a target per recognized organelle identifier so
// run output exercises the full scheduler path.
func defaultTargets() map[string]engine.Reconfigurable {
	names := []string{
		"nucleus", "ribosome", "mitochondria", "chloroplast", "vacuole",
		"cytoplasm", "er", "golgi", "cell_wall", "cell",
	}
	targets := make(map[string]engine.Reconfigurable, len(names))
	for _, name := range names {
		targets[name] = &recordingTarget{}
	}
	return targets
}
