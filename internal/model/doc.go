// Package model provides typed instances of double theories: models with
// typed objects and typed morphisms, mutation with coded construction
// errors, and collect-all validation.
//
// A model's lifetime spans one editing session. It is mutated by a single
// logical owner; concurrent mutation of one model is not supported and
// must be serialized by the caller. Validate and other read-only
// operations are safe to run concurrently against a model that is not
// being mutated.
//
// Key design constraints:
//   - Construction errors (DuplicateId, UnboundType, DanglingReference)
//     abort the single mutation and leave the model unchanged.
//   - Type compatibility of morphism endpoints is NOT checked at insertion
//     time; models are built incrementally in any order and checked on
//     demand by Validate, which collects every violation.
//   - Iteration order is insertion order.
package model
