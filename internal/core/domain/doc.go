// Package domain defines the core entities of the pooling calculator.
//
// This package is part of the hexagonal architecture's innermost layer.
// It has NO external dependencies and defines the fundamental types:
//
//   - Library: One physical sequencing library as read from a sample sheet
//   - ComputedLibrary: A library with molarity, volumes and flags attached
//   - SubPool / PrePoolResult: Groups of libraries treated as one input
//   - HierarchicalPlan / PrePoolingPlan: Multi-stage pooling results
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
