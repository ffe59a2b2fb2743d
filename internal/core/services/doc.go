// Package services implements the driving port interfaces.
// Services contain the pooling calculations and orchestrate
// calls to driven ports (adapters).
//
// The engines in this package are pure functions over slices: they never
// mutate their input and keep no shared state. PoolingService adds the
// only non-deterministic values, a plan ID and a creation time.
package services
