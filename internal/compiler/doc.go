// Package compiler parses CUE declaration files into theory and model
// declaration records, and builds theories and models from them.
//
// CUE is the declaration front door only. The compiler emits exactly the
// typed records the model layer consumes (ObjectDecl, MorphismDecl, plus
// theory declarations); all semantic checking beyond declaration shape
// belongs to the theory and model layers.
//
// Declaration layout:
//
//	theory: category: {
//		kind: "discrete"
//		object_types: Object: {}
//		morphism_types: Hom: {src: "Object", tgt: "Object"}
//	}
//
//	model: arrows: {
//		theory: "category"
//		objects: x: {type: "Object"}
//		morphisms: f: {type: "Hom", dom: "x", cod: "y"}
//	}
package compiler
