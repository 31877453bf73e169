package repository

import (
	"context"

	"github.com/designflow/backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgFileRepository は FileRepository の PostgreSQL 実装
type PgFileRepository struct {
	pool *pgxpool.Pool
}

// NewPgFileRepository は PgFileRepository を生成する
func NewPgFileRepository(pool *pgxpool.Pool) *PgFileRepository {
	return &PgFileRepository{pool: pool}
}

// ListByProjectID はプロジェクトのファイルを新しい順で返す
func (r *PgFileRepository) ListByProjectID(ctx context.Context, projectID string) ([]model.ProjectFile, error) {
	return listFiles(ctx, r.pool, projectID)
}

func listFiles(ctx context.Context, q querier, projectID string) ([]model.ProjectFile, error) {
	rows, err := q.Query(ctx,
		`SELECT id, project_id, name, type, size, storage_key, uploaded_at, uploaded_by
		 FROM project_files WHERE project_id = $1 ORDER BY uploaded_at DESC`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	files := []model.ProjectFile{}
	for rows.Next() {
		var f model.ProjectFile
		if err := rows.Scan(&f.ID, &f.ProjectID, &f.Name, &f.Type, &f.Size, &f.StorageKey, &f.UploadedAt, &f.UploadedBy); err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, rows.Err()
}

// GetByID は ID でファイルを取得する
func (r *PgFileRepository) GetByID(ctx context.Context, id string) (*model.ProjectFile, error) {
	var f model.ProjectFile
	err := r.pool.QueryRow(ctx,
		`SELECT id, project_id, name, type, size, storage_key, uploaded_at, uploaded_by
		 FROM project_files WHERE id = $1`,
		id,
	).Scan(&f.ID, &f.ProjectID, &f.Name, &f.Type, &f.Size, &f.StorageKey, &f.UploadedAt, &f.UploadedBy)
	if err != nil {
		return nil, notFound(err)
	}
	return &f, nil
}

// Create はファイルのメタデータを保存する
func (r *PgFileRepository) Create(ctx context.Context, file *model.ProjectFile) error {
	if file.ID == "" {
		file.ID = uuid.NewString()
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO project_files (id, project_id, name, type, size, storage_key, uploaded_by)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING uploaded_at`,
		file.ID, file.ProjectID, file.Name, file.Type, file.Size, file.StorageKey, file.UploadedBy,
	).Scan(&file.UploadedAt)
}

// Delete はファイルのメタデータを削除する
func (r *PgFileRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM project_files WHERE id = $1`, id)
	return err
}
