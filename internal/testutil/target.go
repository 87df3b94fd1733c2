package testutil

import (
	"errors"

	"github.com/roach88/helix/internal/ir"
)

// ScriptedTarget is a Reconfigurable that records every configuration it
// receives and can be told to fail or panic.
type ScriptedTarget struct {
	Applied []ir.Params // configurations received, in order
	Fail    bool        // return an error on Reconfigure
	Panic   bool        // panic on Reconfigure
}

// Reconfigure implements engine.Reconfigurable.
func (t *ScriptedTarget) Reconfigure(configuration ir.Params) error {
	if t.Panic {
		panic("scripted panic")
	}
	t.Applied = append(t.Applied, configuration)
	if t.Fail {
		return errors.New("scripted failure")
	}
	return nil
}
