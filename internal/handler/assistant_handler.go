package handler

import (
	"net/http"

	"github.com/designflow/backend/internal/service"
)

// maxQueryLength はアシスタントへの質問の最大文字数
const maxQueryLength = 2000

// AssistantHandler はスタジオアシスタント（全プロジェクトを文脈にした Q&A）を扱う
type AssistantHandler struct {
	analysisService service.AnalysisService
}

func NewAssistantHandler(analysisService service.AnalysisService) *AssistantHandler {
	return &AssistantHandler{analysisService: analysisService}
}

// Ask は POST /api/assistant/ask を処理する
func (h *AssistantHandler) Ask(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query_required")
		return
	}
	if len([]rune(req.Query)) > maxQueryLength {
		writeError(w, http.StatusBadRequest, "query_too_long")
		return
	}

	answer, err := h.analysisService.Ask(r.Context(), req.Query)
	if err != nil {
		writeServiceError(w, err, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"answer": answer})
}
