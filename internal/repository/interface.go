package repository

import (
	"context"

	"github.com/designflow/backend/internal/model"
)

// DB は DB 接続の生存確認を行うインターフェース
type DB interface {
	Ping(ctx context.Context) error
}

// MemberRepository はスタジオメンバー永続化のインターフェース
type MemberRepository interface {
	FindByID(ctx context.Context, id string) (*model.Member, error)
	FindByEmail(ctx context.Context, email string) (*model.Member, error)
	// Upsert は ID が既にあれば name, role, avatar, email を更新する
	Upsert(ctx context.Context, member *model.Member, email string) error
}

// NoteRepository はホワイトボード付箋の永続化インターフェース
type NoteRepository interface {
	// ListByProjectID は挿入順（position 順）で付箋を返す
	ListByProjectID(ctx context.Context, projectID string) ([]model.Note, error)
	// ReplaceForProject はプロジェクトの付箋コレクション全体を notes で置き換える
	ReplaceForProject(ctx context.Context, projectID string, notes []model.Note) error
}

// FileRepository はプロジェクトファイルのメタデータ永続化インターフェース
type FileRepository interface {
	// ListByProjectID は新しい順でファイルを返す
	ListByProjectID(ctx context.Context, projectID string) ([]model.ProjectFile, error)
	GetByID(ctx context.Context, id string) (*model.ProjectFile, error)
	Create(ctx context.Context, file *model.ProjectFile) error
	Delete(ctx context.Context, id string) error
}

// FeedbackRepository はフィードバック記録の永続化インターフェース
type FeedbackRepository interface {
	// ListByProjectID は記録日時の古い順で返す
	ListByProjectID(ctx context.Context, projectID string) ([]model.LogEntry, error)
	Create(ctx context.Context, entry *model.LogEntry) error
}
