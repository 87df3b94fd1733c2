// Package ir provides the instruction model for genetic programs.
//
// This package contains type definitions and their serialization only.
// All other internal packages import ir; ir imports nothing internal.
// This keeps the instruction model the foundational layer with no
// circular dependencies.
//
// Key design constraints:
//   - Kind is a closed set; dispatch sites switch exhaustively over it
//   - Parameter values are a sealed interface (Int, Float, Bool, String, List)
//   - Instructions are immutable once constructed; transformations build
//     new instructions instead of mutating existing ones
//   - Identity hashing goes through canonical JSON only (see canonical.go)
package ir
