package service

import (
	"context"
	"io"

	"github.com/designflow/backend/internal/model"
)

// FileUpload はアップロードされたファイル1件
type FileUpload struct {
	Name        string
	ContentType string
	Size        int64
	Body        io.Reader
}

// FileService はプロジェクトファイル（資料・CAD・画像）の管理インターフェース
type FileService interface {
	List(ctx context.Context, projectID string) ([]model.ProjectFile, error)
	Upload(ctx context.Context, projectID, memberID string, up FileUpload) (*model.ProjectFile, error)
	// Open はファイルのメタデータと本体を返す。本体は呼び出し側で Close すること。
	Open(ctx context.Context, projectID, fileID string) (*model.ProjectFile, io.ReadCloser, error)
	Delete(ctx context.Context, projectID, fileID string) error
}
