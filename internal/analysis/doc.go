// Package analysis inspects recorded scroll traces.
//
//   - [Spectrum]: power spectrum of a momentum series (jitter, judder)
//   - [Dominant]: strongest non-DC frequency in Hz
//   - [Portrait]: position/momentum phase portrait rendered as text
//
// A smooth exponential ease has almost all of its momentum energy in the
// lowest bins. Energy near the frame rate usually means the input or the
// layout is fighting the integrator.
package analysis
