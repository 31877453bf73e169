package handler

import (
	"net/http"

	"github.com/designflow/backend/internal/service"
)

// TimelineHandler はガントチャート投影を返す
type TimelineHandler struct {
	timelineService service.TimelineService
}

func NewTimelineHandler(timelineService service.TimelineService) *TimelineHandler {
	return &TimelineHandler{timelineService: timelineService}
}

// Overview は GET /api/timeline を処理する
func (h *TimelineHandler) Overview(w http.ResponseWriter, r *http.Request) {
	chart, err := h.timelineService.Overview(r.Context())
	if err != nil {
		writeServiceError(w, err, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, chart)
}

// ForProject は GET /api/projects/{id}/timeline を処理する
func (h *TimelineHandler) ForProject(w http.ResponseWriter, r *http.Request) {
	chart, err := h.timelineService.ForProject(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, chart)
}
