package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/roach88/motif/internal/model"
)

// SaveModel writes a whole model snapshot and returns its new UUIDv7 id.
// Elements are persisted by bound type name with their insertion
// positions, so loading replays the exact declaration sequence.
//
// A type with no bound name on the theory cannot be persisted and is an
// error; models built through declarations always satisfy this.
func (s *Store) SaveModel(ctx context.Context, name string, m model.View) (string, error) {
	id := uuid.Must(uuid.NewV7()).String()
	th := m.Theory()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("save model: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO models (id, name, theory) VALUES (?, ?, ?)
	`, id, name, th.Name()); err != nil {
		return "", fmt.Errorf("save model: %w", err)
	}

	for pos, ob := range m.Objects() {
		typeName, ok := th.NameOfObType(ob.Type)
		if !ok {
			return "", fmt.Errorf("save model: object %q has no bound type name", ob.ID)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO objects (model_id, id, ob_type, position) VALUES (?, ?, ?, ?)
		`, id, string(ob.ID), typeName, pos); err != nil {
			return "", fmt.Errorf("save object %q: %w", ob.ID, err)
		}
	}

	for pos, mor := range m.Morphisms() {
		typeName, ok := th.NameOfMorType(mor.Type)
		if !ok {
			return "", fmt.Errorf("save model: morphism %q has no bound type name", mor.ID)
		}
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO morphisms (model_id, id, mor_type, dom, cod, position) VALUES (?, ?, ?, ?, ?, ?)
		`, id, string(mor.ID), typeName, objectIDOrNull(mor.Dom), objectIDOrNull(mor.Cod), pos); err != nil {
			return "", fmt.Errorf("save morphism %q: %w", mor.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("save model: %w", err)
	}
	return id, nil
}

// SaveMotifRun records the result of one motif search: the pattern and
// target snapshot ids plus the canonical JSON of every image, in result
// order.
func (s *Store) SaveMotifRun(ctx context.Context, patternID, targetID string, images []*model.Model) (string, error) {
	id := uuid.Must(uuid.NewV7()).String()

	imagesJSON, err := marshalImages(images)
	if err != nil {
		return "", fmt.Errorf("save motif run: %w", err)
	}

	if _, err := s.db.ExecContext(ctx, `
		INSERT INTO motif_runs (id, pattern_id, target_id, image_count, images)
		VALUES (?, ?, ?, ?, ?)
	`, id, patternID, targetID, len(images), imagesJSON); err != nil {
		return "", fmt.Errorf("save motif run: %w", err)
	}
	return id, nil
}

func objectIDOrNull(id *model.ObjectID) any {
	if id == nil {
		return nil
	}
	return string(*id)
}
