// Package motif provides model mappings and motif search: enumeration of
// every structure-preserving embedding of a small pattern model into a
// larger target model.
//
// A motif search result is the list of syntactic images of all total,
// monic, type- and endpoint-preserving mappings from the pattern into the
// target, ordered ascending by (object count, morphism count) and
// deduplicated by structural equality.
//
// Search is read-only, synchronous, and CPU-bound. It is safe to run
// concurrently against models that are not being mutated. No cancellation
// or timeout is built in; callers needing bounded latency on adversarial
// inputs must impose an external budget.
package motif
