package storage

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound は key に対応するファイルが存在しない場合のエラー
var ErrNotFound = errors.New("storage: not found")

// Storage はプロジェクトファイル本体の保存・読み出し・削除を抽象化するインターフェース。
// ローカルファイルシステム実装の他、S3 等に差し替え可能。
type Storage interface {
	// Save はファイルを保存し、公開 URL を返す。
	// key はストレージ内の一意パス (例: "projects/<project_id>/<file_id>")。
	Save(ctx context.Context, key string, data io.Reader, contentType string) (url string, err error)

	// Open は key に対応するファイルを読み出す。呼び出し側で Close すること。
	Open(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete は key に対応するファイルを削除する。存在しなくてもエラーにしない。
	Delete(ctx context.Context, key string) error
}
