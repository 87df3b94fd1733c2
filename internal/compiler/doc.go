// Package compiler turns external program representations into the
// instruction model and checks them.
//
// Three stages, all total (no stage aborts on bad input):
//
//   - ParseText / ParseStructured produce a best-effort ir.Program,
//     collecting per-line problems in Program.ValidationErrors
//   - Validator.Validate collects every structural and semantic
//     violation and returns them with a pass/fail gate; callers
//     decide whether to honor the gate
//   - Optimize deduplicates and merges instructions into an
//     equivalent, smaller program without mutating its input
//
// Rule tables (valid targets, per-organelle parameter whitelists,
// specialization types) are explicit static structures built once by
// DefaultRules, not re-created per call.
package compiler
