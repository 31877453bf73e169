package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/designflow/backend/internal/repository"
	"github.com/designflow/backend/internal/service"
	"github.com/designflow/backend/pkg/auth"
)

// Handler はプロジェクト横断のエンドポイント（ヘルスチェック）と CORS を持つ
type Handler struct {
	db          repository.DB
	frontendURL string
}

func New(db repository.DB, frontendURL string) *Handler {
	return &Handler{db: db, frontendURL: frontendURL}
}

func (h *Handler) CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", h.frontendURL)
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Allow-Credentials", "true")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Warn("write response failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, code string) {
	writeJSON(w, status, map[string]string{"error": code})
}

// writeServiceError はサービス層のエラーを HTTP ステータスに変換する。
// 想定外のエラーは fallback コードの 500 になる。
func writeServiceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, "not_found")
	case errors.Is(err, service.ErrNoteNotFound):
		writeError(w, http.StatusNotFound, "note_not_found")
	case errors.Is(err, service.ErrFileNotFound):
		writeError(w, http.StatusNotFound, "file_not_found")
	case errors.Is(err, service.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, "invalid_input")
	case errors.Is(err, service.ErrAnalysisFailed):
		writeError(w, http.StatusBadGateway, "analysis_failed")
	default:
		slog.Error("request failed", "code", fallback, "error", err)
		writeError(w, http.StatusInternalServerError, fallback)
	}
}

// currentMemberID は認証済みメンバー ID を返す。無ければ 401 を書いて false を返す。
func currentMemberID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, ok := auth.MemberIDFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "unauthorized")
	}
	return id, ok
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json")
		return false
	}
	return true
}
