package handler

import (
	"net/http"

	"github.com/designflow/backend/internal/model"
	"github.com/designflow/backend/internal/service"
)

// FeedbackHandler はクライアントフィードバックの記録と AI 分析を扱う
type FeedbackHandler struct {
	analysisService service.AnalysisService
	authService     service.AuthService
}

func NewFeedbackHandler(analysisService service.AnalysisService, authService service.AuthService) *FeedbackHandler {
	return &FeedbackHandler{analysisService: analysisService, authService: authService}
}

// List は GET /api/projects/{id}/feedback を処理する
func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	logs, err := h.analysisService.ListFeedback(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "internal_error")
		return
	}
	if logs == nil {
		logs = []model.LogEntry{}
	}
	writeJSON(w, http.StatusOK, logs)
}

// Create は POST /api/projects/{id}/feedback を処理する。
// 分析に失敗した場合は記録せず analysis_failed を返す。
func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	memberID, ok := currentMemberID(w, r)
	if !ok {
		return
	}
	var req struct {
		RawText string `json:"raw_text"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.RawText == "" {
		writeError(w, http.StatusBadRequest, "raw_text_required")
		return
	}

	author := memberID
	if m, err := h.authService.Me(r.Context(), memberID); err == nil && m.Name != "" {
		author = m.Name
	}

	entry, err := h.analysisService.AnalyzeFeedback(r.Context(), r.PathValue("id"), author, req.RawText)
	if err != nil {
		writeServiceError(w, err, "internal_error")
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}
