package repository

import (
	"context"
	"fmt"

	"github.com/designflow/backend/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgNoteRepository は NoteRepository の PostgreSQL 実装
type PgNoteRepository struct {
	pool *pgxpool.Pool
}

// NewPgNoteRepository は PgNoteRepository を生成する
func NewPgNoteRepository(pool *pgxpool.Pool) *PgNoteRepository {
	return &PgNoteRepository{pool: pool}
}

// ListByProjectID はプロジェクトの付箋を挿入順で返す
func (r *PgNoteRepository) ListByProjectID(ctx context.Context, projectID string) ([]model.Note, error) {
	return listNotes(ctx, r.pool, projectID)
}

func listNotes(ctx context.Context, q querier, projectID string) ([]model.Note, error) {
	rows, err := q.Query(ctx,
		`SELECT id, project_id, x, y, content, color, author_id, created_at
		 FROM whiteboard_notes WHERE project_id = $1 ORDER BY position ASC`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	notes := []model.Note{}
	for rows.Next() {
		var n model.Note
		if err := rows.Scan(&n.ID, &n.ProjectID, &n.X, &n.Y, &n.Content, &n.Color, &n.AuthorID, &n.CreatedAt); err != nil {
			return nil, err
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// ReplaceForProject は付箋コレクションを丸ごと置き換える。
// DELETE と INSERT を1トランザクションで行い、position にスライスの順序を保存する。
func (r *PgNoteRepository) ReplaceForProject(ctx context.Context, projectID string, notes []model.Note) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM whiteboard_notes WHERE project_id = $1`, projectID); err != nil {
		return err
	}

	batch := &pgx.Batch{}
	for i, n := range notes {
		batch.Queue(
			`INSERT INTO whiteboard_notes (id, project_id, position, x, y, content, color, author_id, created_at)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
			n.ID, projectID, i, n.X, n.Y, n.Content, n.Color, n.AuthorID, n.CreatedAt,
		)
	}
	if batch.Len() > 0 {
		br := tx.SendBatch(ctx, batch)
		for i := range notes {
			if _, err := br.Exec(); err != nil {
				_ = br.Close()
				return fmt.Errorf("insert note %s: %w", notes[i].ID, missingParent(err))
			}
		}
		if err := br.Close(); err != nil {
			return err
		}
	}

	tag, err := tx.Exec(ctx, `UPDATE projects SET updated_at = NOW() WHERE id = $1`, projectID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return tx.Commit(ctx)
}
