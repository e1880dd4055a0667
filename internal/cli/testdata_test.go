package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const validSpecsCUE = `package specs

theory: category: {
	kind: "discrete"
	object_types: Object: {}
	morphism_types: Hom: {src: "Object", tgt: "Object"}
}

model: arrows: {
	theory: "category"
	objects: {
		x: type: "Object"
		y: type: "Object"
		z: type: "Object"
	}
	morphisms: {
		f: {type: "Hom", dom: "x", cod: "y"}
		g: {type: "Hom", dom: "y", cod: "z"}
	}
}

model: arrow: {
	theory: "category"
	objects: {
		a: type: "Object"
		b: type: "Object"
	}
	morphisms: p: {type: "Hom", dom: "a", cod: "b"}
}
`

const danglingSpecsCUE = `package specs

theory: category: {
	kind: "discrete"
	object_types: Object: {}
	morphism_types: Hom: {src: "Object", tgt: "Object"}
}

model: partial: {
	theory: "category"
	objects: a: type: "Object"
	morphisms: p: {type: "Hom", dom: "a"}
}
`

// writeSpecs writes one CUE file into a fresh temp dir and returns the dir.
func writeSpecs(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "specs.cue"), []byte(content), 0o644))
	return dir
}
