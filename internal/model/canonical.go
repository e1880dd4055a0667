package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// canonicalObject is the wire shape of one object in canonical encoding.
type canonicalObject struct {
	ID   string `json:"id"`
	Type string `json:"type"`
}

// canonicalMorphism is the wire shape of one morphism in canonical
// encoding.
type canonicalMorphism struct {
	ID   string  `json:"id"`
	Type string  `json:"type"`
	Dom  *string `json:"dom,omitempty"`
	Cod  *string `json:"cod,omitempty"`
}

type canonicalModel struct {
	Theory    string              `json:"theory"`
	Objects   []canonicalObject   `json:"objects"`
	Morphisms []canonicalMorphism `json:"morphisms"`
}

// MarshalCanonical produces a deterministic JSON encoding of a model view
// for snapshot identity and golden comparison: ids NFC-normalized,
// elements sorted by id, no HTML escaping, no trailing variation across
// runs. Two structurally equal models marshal byte-identically.
func MarshalCanonical(v View) ([]byte, error) {
	cm := canonicalModel{
		Theory:    norm.NFC.String(v.Theory().Name()),
		Objects:   []canonicalObject{},
		Morphisms: []canonicalMorphism{},
	}

	for _, ob := range v.Objects() {
		cm.Objects = append(cm.Objects, canonicalObject{
			ID:   norm.NFC.String(string(ob.ID)),
			Type: norm.NFC.String(ob.Type.String()),
		})
	}
	sort.Slice(cm.Objects, func(i, j int) bool { return cm.Objects[i].ID < cm.Objects[j].ID })

	for _, mor := range v.Morphisms() {
		cm.Morphisms = append(cm.Morphisms, canonicalMorphism{
			ID:   norm.NFC.String(string(mor.ID)),
			Type: norm.NFC.String(mor.Type.String()),
			Dom:  normalizeID(mor.Dom),
			Cod:  normalizeID(mor.Cod),
		})
	}
	sort.Slice(cm.Morphisms, func(i, j int) bool { return cm.Morphisms[i].ID < cm.Morphisms[j].ID })

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(cm); err != nil {
		return nil, fmt.Errorf("marshal canonical model: %w", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func normalizeID(id *ObjectID) *string {
	if id == nil {
		return nil
	}
	s := norm.NFC.String(string(*id))
	return &s
}
