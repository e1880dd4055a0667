package theory

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestObTypeEqual(t *testing.T) {
	testCases := []struct {
		name string
		a, b ObType
		want bool
	}{
		{"basic equal", BasicOb("Object"), BasicOb("Object"), true},
		{"basic unequal", BasicOb("Object"), BasicOb("Entity"), false},
		{"basic vs modal", BasicOb("Object"), ModeAppOb{"Neg", BasicOb("Object")}, false},
		{"modal equal", ModeAppOb{"Neg", BasicOb("Object")}, ModeAppOb{"Neg", BasicOb("Object")}, true},
		{"modal different modality", ModeAppOb{"Neg", BasicOb("Object")}, ModeAppOb{"Disc", BasicOb("Object")}, false},
		{"modal different arg", ModeAppOb{"Neg", BasicOb("Object")}, ModeAppOb{"Neg", BasicOb("Entity")}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ObTypeEqual(tc.a, tc.b))
			assert.Equal(t, tc.want, ObTypeEqual(tc.b, tc.a), "equality is symmetric")
		})
	}
}

func TestMorTypeEqual(t *testing.T) {
	hom := HomMor{Base: BasicOb("Object")}
	comp := CompositeMor{Parts: []MorType{BasicMor("Hom"), BasicMor("Hom")}}

	testCases := []struct {
		name string
		a, b MorType
		want bool
	}{
		{"basic equal", BasicMor("Hom"), BasicMor("Hom"), true},
		{"basic unequal", BasicMor("Hom"), BasicMor("Attr"), false},
		{"hom equal", hom, HomMor{Base: BasicOb("Object")}, true},
		{"hom different base", hom, HomMor{Base: BasicOb("Entity")}, false},
		{"basic vs hom", BasicMor("Hom"), hom, false},
		{"composite equal", comp, CompositeMor{Parts: []MorType{BasicMor("Hom"), BasicMor("Hom")}}, true},
		{"composite length", comp, CompositeMor{Parts: []MorType{BasicMor("Hom")}}, false},
		{"composite vs basic", comp, BasicMor("Hom"), false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MorTypeEqual(tc.a, tc.b))
			assert.Equal(t, tc.want, MorTypeEqual(tc.b, tc.a), "equality is symmetric")
		})
	}
}

func TestTypeString(t *testing.T) {
	assert.Equal(t, "Object", BasicOb("Object").String())
	assert.Equal(t, "Neg(Object)", ModeAppOb{"Neg", BasicOb("Object")}.String())
	assert.Equal(t, "Hom(Object)", HomMor{Base: BasicOb("Object")}.String())
	assert.Equal(t, "Hom;Hom", CompositeMor{Parts: []MorType{BasicMor("Hom"), BasicMor("Hom")}}.String())
}
