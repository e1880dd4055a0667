package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/motif/internal/model"
	"github.com/roach88/motif/internal/theory"
)

// ErrNotFound is returned when a snapshot or run id does not exist.
var ErrNotFound = errors.New("store: not found")

// ModelInfo summarizes one persisted snapshot.
type ModelInfo struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Theory string `json:"theory"`
}

// MotifRun is one persisted motif search result.
type MotifRun struct {
	ID         string `json:"id"`
	PatternID  string `json:"pattern_id"`
	TargetID   string `json:"target_id"`
	ImageCount int    `json:"image_count"`
	ImagesJSON string `json:"images"`
}

// LoadModel reconstructs a snapshot against the given theory. The theory
// must be the one the snapshot was saved under (matched by name);
// otherwise LoadModel fails rather than building a mistyped model.
//
// Elements are read ORDER BY position ASC, id ASC COLLATE BINARY and
// applied as declarations in that order, so the loaded model's insertion
// order matches the saved one exactly.
func (s *Store) LoadModel(ctx context.Context, id string, th *theory.DoubleTheory) (*model.Model, error) {
	var name, theoryName string
	err := s.db.QueryRowContext(ctx, `
		SELECT name, theory FROM models WHERE id = ?
	`, id).Scan(&name, &theoryName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("load model %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load model: %w", err)
	}
	if theoryName != th.Name() {
		return nil, fmt.Errorf("load model: snapshot has theory %q, caller supplied %q", theoryName, th.Name())
	}

	m := model.New(th)

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, ob_type FROM objects
		WHERE model_id = ?
		ORDER BY position ASC, id COLLATE BINARY ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query objects: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var obID, obType string
		if err := rows.Scan(&obID, &obType); err != nil {
			return nil, fmt.Errorf("scan object: %w", err)
		}
		if err := m.ApplyObjectDecl(model.ObjectDecl{ID: model.ObjectID(obID), ObTypeName: obType}); err != nil {
			return nil, fmt.Errorf("replay object %q: %w", obID, err)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate objects: %w", err)
	}

	morRows, err := s.db.QueryContext(ctx, `
		SELECT id, mor_type, dom, cod FROM morphisms
		WHERE model_id = ?
		ORDER BY position ASC, id COLLATE BINARY ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query morphisms: %w", err)
	}
	defer morRows.Close()
	for morRows.Next() {
		var morID, morType string
		var dom, cod sql.NullString
		if err := morRows.Scan(&morID, &morType, &dom, &cod); err != nil {
			return nil, fmt.Errorf("scan morphism: %w", err)
		}
		decl := model.MorphismDecl{
			ID:          model.MorphismID(morID),
			MorTypeName: morType,
			Dom:         nullableObjectID(dom),
			Cod:         nullableObjectID(cod),
		}
		if err := m.ApplyMorphismDecl(decl); err != nil {
			return nil, fmt.Errorf("replay morphism %q: %w", morID, err)
		}
	}
	if err := morRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate morphisms: %w", err)
	}

	return m, nil
}

// ListModels returns all snapshots ordered by id. UUIDv7 ids sort by
// creation time, so this is creation order.
func (s *Store) ListModels(ctx context.Context) ([]ModelInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, theory FROM models
		ORDER BY id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("list models: %w", err)
	}
	defer rows.Close()

	infos := []ModelInfo{}
	for rows.Next() {
		var info ModelInfo
		if err := rows.Scan(&info.ID, &info.Name, &info.Theory); err != nil {
			return nil, fmt.Errorf("scan model info: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate models: %w", err)
	}
	return infos, nil
}

// ReadMotifRun returns one persisted motif run.
func (s *Store) ReadMotifRun(ctx context.Context, id string) (MotifRun, error) {
	var run MotifRun
	err := s.db.QueryRowContext(ctx, `
		SELECT id, pattern_id, target_id, image_count, images
		FROM motif_runs WHERE id = ?
	`, id).Scan(&run.ID, &run.PatternID, &run.TargetID, &run.ImageCount, &run.ImagesJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return MotifRun{}, fmt.Errorf("read motif run %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return MotifRun{}, fmt.Errorf("read motif run: %w", err)
	}
	return run, nil
}

func nullableObjectID(v sql.NullString) *model.ObjectID {
	if !v.Valid {
		return nil
	}
	id := model.ObjectID(v.String)
	return &id
}
