package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"path"
	"strings"

	"github.com/designflow/backend/internal/model"
	"github.com/designflow/backend/internal/repository"
	"github.com/designflow/backend/internal/storage"
	"github.com/google/uuid"
)

// FileServiceImpl は FileService の実装
type FileServiceImpl struct {
	projectRepo repository.ProjectRepository
	fileRepo    repository.FileRepository
	store       storage.Storage
}

// NewFileService は FileServiceImpl を生成する
func NewFileService(projectRepo repository.ProjectRepository, fileRepo repository.FileRepository, store storage.Storage) FileService {
	return &FileServiceImpl{projectRepo: projectRepo, fileRepo: fileRepo, store: store}
}

func (s *FileServiceImpl) List(ctx context.Context, projectID string) ([]model.ProjectFile, error) {
	return s.fileRepo.ListByProjectID(ctx, projectID)
}

// Upload は本体をストレージに保存してからメタデータを登録する。
// 登録に失敗した場合は保存した本体を削除する。
func (s *FileServiceImpl) Upload(ctx context.Context, projectID, memberID string, up FileUpload) (*model.ProjectFile, error) {
	name := path.Base(strings.ReplaceAll(strings.TrimSpace(up.Name), "\\", "/"))
	if name == "" || name == "." || name == "/" {
		return nil, fmt.Errorf("%w: file name is required", ErrInvalidInput)
	}
	if _, err := s.projectRepo.GetByID(ctx, projectID); err != nil {
		return nil, err
	}

	id := uuid.NewString()
	key := "projects/" + projectID + "/" + id
	url, err := s.store.Save(ctx, key, up.Body, up.ContentType)
	if err != nil {
		return nil, fmt.Errorf("save file: %w", err)
	}

	f := &model.ProjectFile{
		ID:         id,
		ProjectID:  projectID,
		Name:       name,
		Type:       fileType(name, up.ContentType),
		Size:       up.Size,
		StorageKey: key,
		URL:        url,
		UploadedBy: memberID,
	}
	if err := s.fileRepo.Create(ctx, f); err != nil {
		if delErr := s.store.Delete(ctx, key); delErr != nil {
			slog.Warn("cleanup stored file failed", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("create file: %w", err)
	}
	slog.Info("file uploaded", "project_id", projectID, "file_id", id, "size", up.Size)
	return f, nil
}

// find はファイルを取得し、別プロジェクトのファイルなら ErrFileNotFound を返す
func (s *FileServiceImpl) find(ctx context.Context, projectID, fileID string) (*model.ProjectFile, error) {
	f, err := s.fileRepo.GetByID(ctx, fileID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrFileNotFound
	}
	if err != nil {
		return nil, err
	}
	if f.ProjectID != projectID {
		return nil, ErrFileNotFound
	}
	return f, nil
}

func (s *FileServiceImpl) Open(ctx context.Context, projectID, fileID string) (*model.ProjectFile, io.ReadCloser, error) {
	f, err := s.find(ctx, projectID, fileID)
	if err != nil {
		return nil, nil, err
	}
	rc, err := s.store.Open(ctx, f.StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, nil, ErrFileNotFound
	}
	if err != nil {
		return nil, nil, fmt.Errorf("open file: %w", err)
	}
	return f, rc, nil
}

// Delete はメタデータを削除してから本体を削除する
func (s *FileServiceImpl) Delete(ctx context.Context, projectID, fileID string) error {
	f, err := s.find(ctx, projectID, fileID)
	if err != nil {
		return err
	}
	if err := s.fileRepo.Delete(ctx, f.ID); err != nil {
		return err
	}
	if err := s.store.Delete(ctx, f.StorageKey); err != nil {
		slog.Warn("delete stored file failed", "key", f.StorageKey, "error", err)
	}
	return nil
}

// fileType は MIME タイプを決める。クライアント申告が無ければ拡張子から推定する。
func fileType(name, contentType string) string {
	if ct, _, err := mime.ParseMediaType(contentType); err == nil && ct != "application/octet-stream" {
		return ct
	}
	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		ct, _, _ = strings.Cut(ct, ";")
		return ct
	}
	return "application/octet-stream"
}
