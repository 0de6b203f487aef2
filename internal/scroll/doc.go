// Package scroll provides the core primitives of the smooth-scroll engine.
//
// The package defines the state and interfaces shared by the integrator,
// the signal board and the consumers:
//
//   - [State]: target, eased position, velocity and limit
//   - [Snapshot]: copy-out view of the published signals
//   - [Integrator]: one easing step of position toward target
//   - [Layout]: read-only query for content and viewport extents
//   - [Surface]: visual surrogate that receives the eased position
//
// # Example
//
//	eng := engine.New(scroll.DefaultConfig(), integrators.NewTimed(), board)
//	eng.Resize(4000, 800)
//	eng.ScrollBy(500)
//	snap := eng.Tick(time.Second / 60)
//
// # Thread Safety
//
// State is plain data. The engine owns the only mutable copy; everything
// else sees a [Snapshot].
package scroll
