package store

import (
	"bytes"
	"fmt"

	"github.com/roach88/motif/internal/model"
)

// marshalImages encodes a motif result list as a canonical JSON array:
// each image via model.MarshalCanonical, in result order. Structurally
// equal result lists encode byte-identically.
func marshalImages(images []*model.Model) (string, error) {
	var buf bytes.Buffer
	buf.WriteByte('[')
	for i, img := range images {
		if i > 0 {
			buf.WriteByte(',')
		}
		b, err := model.MarshalCanonical(img)
		if err != nil {
			return "", fmt.Errorf("image %d: %w", i, err)
		}
		buf.Write(b)
	}
	buf.WriteByte(']')
	return buf.String(), nil
}
