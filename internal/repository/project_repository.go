package repository

import (
	"context"

	"github.com/designflow/backend/internal/model"
)

// ProjectRepository はプロジェクト永続化のインターフェース
type ProjectRepository interface {
	// List は付箋・ファイル・フィードバックを含まないプロジェクト一覧を返す
	List(ctx context.Context) ([]*model.Project, error)
	// GetByID は付箋・ファイル・フィードバックを含むプロジェクトを返す
	GetByID(ctx context.Context, id string) (*model.Project, error)
	Create(ctx context.Context, project *model.Project) error
	Update(ctx context.Context, project *model.Project) error
	Delete(ctx context.Context, id string) error
}
