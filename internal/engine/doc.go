// Package engine links resistance-gene hits to the nearest mobile-element
// hit on the same contig. It is pure interval geometry plus an ordered
// keyword taxonomy: no I/O, no goroutines, no shared state.
//
// It never imports app, writers, cli, pipeline or store; keep it domain-only.
// External outputs must not depend on the shape here; use pkg/api for the
// stable wire types.
package engine
