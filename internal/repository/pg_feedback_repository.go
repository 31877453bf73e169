package repository

import (
	"context"

	"github.com/designflow/backend/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgFeedbackRepository は FeedbackRepository の PostgreSQL 実装
type PgFeedbackRepository struct {
	pool *pgxpool.Pool
}

// NewPgFeedbackRepository は PgFeedbackRepository を生成する
func NewPgFeedbackRepository(pool *pgxpool.Pool) *PgFeedbackRepository {
	return &PgFeedbackRepository{pool: pool}
}

// ListByProjectID はフィードバック記録を古い順で返す
func (r *PgFeedbackRepository) ListByProjectID(ctx context.Context, projectID string) ([]model.LogEntry, error) {
	return listFeedback(ctx, r.pool, projectID)
}

func listFeedback(ctx context.Context, q querier, projectID string) ([]model.LogEntry, error) {
	rows, err := q.Query(ctx,
		`SELECT id, project_id, date, author, raw_text, analysis
		 FROM feedback_logs WHERE project_id = $1 ORDER BY date ASC`,
		projectID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	logs := []model.LogEntry{}
	for rows.Next() {
		var e model.LogEntry
		// analysis は JSONB（NULL 可）
		if err := rows.Scan(&e.ID, &e.ProjectID, &e.Date, &e.Author, &e.RawText, &e.Analysis); err != nil {
			return nil, err
		}
		logs = append(logs, e)
	}
	return logs, rows.Err()
}

// Create はフィードバック記録を保存する
func (r *PgFeedbackRepository) Create(ctx context.Context, entry *model.LogEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	return r.pool.QueryRow(ctx,
		`INSERT INTO feedback_logs (id, project_id, author, raw_text, analysis)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING date`,
		entry.ID, entry.ProjectID, entry.Author, entry.RawText, entry.Analysis,
	).Scan(&entry.Date)
}
