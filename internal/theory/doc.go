// Package theory provides double theories: typed signatures that constrain
// models.
//
// A double theory owns one finitely presented category of types (cat
// package) plus name binding tables, type composition, and typed
// operations. Theories are built once, then shared read-only by every
// model created against them; nothing in this package mutates a theory
// after construction is finished.
//
// Theory kinds (discrete, modal, tabulator) are a tagged variant on the
// theory value, not compile-time specialization. Consumers branch on
// Kind() where representation families differ.
package theory
