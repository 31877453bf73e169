package repository

import (
	"context"
	"time"

	"github.com/designflow/backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgProjectRepository は ProjectRepository の PostgreSQL 実装
type PgProjectRepository struct {
	pool *pgxpool.Pool
}

// NewPgProjectRepository は PgProjectRepository を生成する
func NewPgProjectRepository(pool *pgxpool.Pool) *PgProjectRepository {
	return &PgProjectRepository{pool: pool}
}

const projectColumns = `id, name, client, description, thumbnail, status, progress, current_phase,
	start_date, due_date, team, phases, created_at, updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProject(row rowScanner) (*model.Project, error) {
	var p model.Project
	if err := row.Scan(
		&p.ID, &p.Name, &p.Client, &p.Description, &p.Thumbnail, &p.Status, &p.Progress, &p.CurrentPhase,
		&p.StartDate, &p.DueDate, &p.Team, &p.Phases, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if p.Team == nil {
		p.Team = []model.Member{}
	}
	if p.Phases == nil {
		p.Phases = []model.ProjectPhase{}
	}
	return &p, nil
}

// List はプロジェクト一覧を期日の近い順で取得する
func (r *PgProjectRepository) List(ctx context.Context) ([]*model.Project, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+projectColumns+` FROM projects ORDER BY due_date ASC, created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []*model.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// GetByID は ID でプロジェクトを取得し、付箋・ファイル・フィードバックも読み込む
func (r *PgProjectRepository) GetByID(ctx context.Context, id string) (*model.Project, error) {
	p, err := scanProject(r.pool.QueryRow(ctx,
		`SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if err != nil {
		return nil, notFound(err)
	}

	if p.Notes, err = listNotes(ctx, r.pool, id); err != nil {
		return nil, err
	}
	if p.Files, err = listFiles(ctx, r.pool, id); err != nil {
		return nil, err
	}
	if p.FeedbackLogs, err = listFeedback(ctx, r.pool, id); err != nil {
		return nil, err
	}
	return p, nil
}

// Create はプロジェクトを作成する。ID が空なら UUID を採番する。
func (r *PgProjectRepository) Create(ctx context.Context, project *model.Project) error {
	if project.ID == "" {
		project.ID = uuid.NewString()
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO projects (id, name, client, description, thumbnail, status, progress, current_phase,
		                       start_date, due_date, team, phases)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING created_at, updated_at`,
		project.ID, project.Name, project.Client, project.Description, project.Thumbnail,
		project.Status, project.Progress, project.CurrentPhase, project.StartDate, project.DueDate,
		nonNilTeam(project.Team), nonNilPhases(project.Phases),
	).Scan(&project.CreatedAt, &project.UpdatedAt)
}

// Update はプロジェクトの基本情報・チーム・フェーズを更新する
func (r *PgProjectRepository) Update(ctx context.Context, project *model.Project) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE projects
		 SET name = $1, client = $2, description = $3, thumbnail = $4, status = $5, progress = $6,
		     current_phase = $7, start_date = $8, due_date = $9, team = $10, phases = $11, updated_at = $12
		 WHERE id = $13`,
		project.Name, project.Client, project.Description, project.Thumbnail, project.Status, project.Progress,
		project.CurrentPhase, project.StartDate, project.DueDate, nonNilTeam(project.Team), nonNilPhases(project.Phases),
		time.Now(), project.ID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// Delete はプロジェクトを削除する（付箋・ファイル・フィードバックは CASCADE）
func (r *PgProjectRepository) Delete(ctx context.Context, id string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	return err
}

func nonNilTeam(t []model.Member) []model.Member {
	if t == nil {
		return []model.Member{}
	}
	return t
}

func nonNilPhases(p []model.ProjectPhase) []model.ProjectPhase {
	if p == nil {
		return []model.ProjectPhase{}
	}
	return p
}
