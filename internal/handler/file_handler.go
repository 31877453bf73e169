package handler

import (
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"os"
	"strconv"

	"github.com/designflow/backend/internal/model"
	"github.com/designflow/backend/internal/service"
)

// maxUploadSize はアップロード1件あたりの上限（32MB）
const maxUploadSize = 32 << 20

// FileHandler はプロジェクトファイルのアップロード・ダウンロード・AI 要約を扱う
type FileHandler struct {
	fileService     service.FileService
	analysisService service.AnalysisService
}

func NewFileHandler(fileService service.FileService, analysisService service.AnalysisService) *FileHandler {
	return &FileHandler{fileService: fileService, analysisService: analysisService}
}

// List は GET /api/projects/{id}/files を処理する
func (h *FileHandler) List(w http.ResponseWriter, r *http.Request) {
	files, err := h.fileService.List(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "internal_error")
		return
	}
	if files == nil {
		files = []model.ProjectFile{}
	}
	writeJSON(w, http.StatusOK, files)
}

// Upload は POST /api/projects/{id}/files (multipart/form-data, フィールド名 "file") を処理する
func (h *FileHandler) Upload(w http.ResponseWriter, r *http.Request) {
	memberID, ok := currentMemberID(w, r)
	if !ok {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize+1<<20)
	file, header, err := r.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeError(w, http.StatusRequestEntityTooLarge, "file_too_large")
			return
		}
		writeError(w, http.StatusBadRequest, "file_required")
		return
	}
	defer file.Close()
	if header.Size > maxUploadSize {
		writeError(w, http.StatusRequestEntityTooLarge, "file_too_large")
		return
	}

	f, err := h.fileService.Upload(r.Context(), r.PathValue("id"), memberID, service.FileUpload{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	})
	if err != nil {
		writeServiceError(w, err, "upload_failed")
		return
	}
	writeJSON(w, http.StatusCreated, f)
}

// Download は GET /api/projects/{id}/files/{fid}/download を処理する
func (h *FileHandler) Download(w http.ResponseWriter, r *http.Request) {
	f, body, err := h.fileService.Open(r.Context(), r.PathValue("id"), r.PathValue("fid"))
	if err != nil {
		writeServiceError(w, err, "internal_error")
		return
	}
	defer body.Close()

	w.Header().Set("Content-Type", f.Type)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": f.Name}))
	if f.Size > 0 {
		w.Header().Set("Content-Length", strconv.FormatInt(f.Size, 10))
	}
	if _, err := io.Copy(w, body); err != nil {
		slog.Warn("download interrupted", "file_id", f.ID, "error", err)
	}
}

// Delete は DELETE /api/projects/{id}/files/{fid} を処理する
func (h *FileHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.fileService.Delete(r.Context(), r.PathValue("id"), r.PathValue("fid")); err != nil {
		writeServiceError(w, err, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Summary は POST /api/projects/{id}/files/{fid}/summary を処理する
func (h *FileHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.analysisService.SummarizeFile(r.Context(), r.PathValue("id"), r.PathValue("fid"))
	if err != nil {
		writeServiceError(w, err, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"summary": summary})
}

// BlobServer は保存済みファイルを prefix 配下で配信する。ディレクトリは一覧を返さず 404 にする。
func BlobServer(prefix string, root http.FileSystem) http.Handler {
	return http.StripPrefix(prefix, http.FileServer(filesOnly{root}))
}

// filesOnly はディレクトリを存在しないものとして扱う http.FileSystem
type filesOnly struct {
	http.FileSystem
}

func (fs filesOnly) Open(name string) (http.File, error) {
	f, err := fs.FileSystem.Open(name)
	if err != nil {
		return nil, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, os.ErrNotExist
	}
	return f, nil
}
