// Package cat provides the foundational categorical types: generator
// arenas, composable paths, and finitely presented categories.
//
// This package is the leaf layer. All other internal packages import cat;
// cat imports nothing internal. This keeps the algebraic core free of
// circular dependencies.
//
// Key design constraints:
//   - Generators are stable arena indices, never pointers. Total order on
//     generators is creation order.
//   - Paths are pure values. Path equality is syntactic equality in the
//     free category; equality under declared equations is NOT decided here.
//   - Generators are never removed. Iteration order is insertion order.
package cat
