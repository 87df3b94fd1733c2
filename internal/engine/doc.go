// Package engine is the expression runtime: it owns the gene profiles,
// the regulatory network, the differentiation automaton, and the bounded
// reconfiguration scheduler, and exposes the single Execute entry point
// that runs a program for one step and advances all dynamics.
//
// The runtime is a single-threaded, synchronous step function. Execute
// is not re-entrant and must not be called concurrently on the same
// Engine without external serialization. Nothing on the hot path blocks
// or performs I/O; the optional history store write happens after a
// request is finished and never fails the step.
//
// Error model: there is no fatal error class in this core. A
// reconfiguration apply failure is caught at the scheduler boundary and
// recorded with status failed; the worst observable outcome is an entry
// in the history log.
package engine
