// Package stats aggregates association rows across samples: headline
// counts, top mobile genes and carriers, proximity histograms and per-host
// gene signatures.
package stats
