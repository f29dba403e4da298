// Package pipeline fans samples out to a bounded set of workers, each of
// which searches one assembly and resolves its associations, and hands the
// per-sample Results to a visit callback in input order.
//
// The only contract to implement is Processor. Failures of one sample are
// carried in its Result and never abort the batch.
package pipeline
