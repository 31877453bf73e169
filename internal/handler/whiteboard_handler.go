package handler

import (
	"net/http"

	"github.com/designflow/backend/internal/model"
	"github.com/designflow/backend/internal/service"
	"github.com/designflow/backend/internal/whiteboard"
)

// WhiteboardHandler はホワイトボードの操作イベントを受け取り、描画用のビューを返す。
// すべてのエンドポイントは認証済みメンバーのセッションに対して働く。
type WhiteboardHandler struct {
	whiteboardService service.WhiteboardService
}

func NewWhiteboardHandler(whiteboardService service.WhiteboardService) *WhiteboardHandler {
	return &WhiteboardHandler{whiteboardService: whiteboardService}
}

// respond はビューを返すエンドポイント共通の処理
func (h *WhiteboardHandler) respond(w http.ResponseWriter, r *http.Request, fn func(projectID, memberID string) (*whiteboard.View, error)) {
	memberID, ok := currentMemberID(w, r)
	if !ok {
		return
	}
	v, err := fn(r.PathValue("id"), memberID)
	if err != nil {
		writeServiceError(w, err, "whiteboard_failed")
		return
	}
	writeJSON(w, http.StatusOK, v)
}

// View は GET /api/projects/{id}/whiteboard を処理する
func (h *WhiteboardHandler) View(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(projectID, memberID string) (*whiteboard.View, error) {
		return h.whiteboardService.View(r.Context(), projectID, memberID)
	})
}

// ResetSession は DELETE /api/projects/{id}/whiteboard/session を処理する
func (h *WhiteboardHandler) ResetSession(w http.ResponseWriter, r *http.Request) {
	memberID, ok := currentMemberID(w, r)
	if !ok {
		return
	}
	h.whiteboardService.Reset(r.PathValue("id"), memberID)
	w.WriteHeader(http.StatusNoContent)
}

// SetTool は PUT /api/projects/{id}/whiteboard/tool を処理する
func (h *WhiteboardHandler) SetTool(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Tool whiteboard.Tool `json:"tool"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	h.respond(w, r, func(projectID, memberID string) (*whiteboard.View, error) {
		return h.whiteboardService.SetTool(r.Context(), projectID, memberID, req.Tool)
	})
}

// SetViewport は PUT /api/projects/{id}/whiteboard/viewport を処理する
func (h *WhiteboardHandler) SetViewport(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	h.respond(w, r, func(projectID, memberID string) (*whiteboard.View, error) {
		return h.whiteboardService.SetViewport(r.Context(), projectID, memberID, req.Width, req.Height)
	})
}

// Pointer は POST /api/projects/{id}/whiteboard/pointer を処理する
func (h *WhiteboardHandler) Pointer(w http.ResponseWriter, r *http.Request) {
	var ev service.PointerEvent
	if !decodeJSON(w, r, &ev) {
		return
	}
	h.respond(w, r, func(projectID, memberID string) (*whiteboard.View, error) {
		return h.whiteboardService.HandlePointer(r.Context(), projectID, memberID, ev)
	})
}

// Wheel は POST /api/projects/{id}/whiteboard/wheel を処理する
func (h *WhiteboardHandler) Wheel(w http.ResponseWriter, r *http.Request) {
	var ev whiteboard.WheelEvent
	if !decodeJSON(w, r, &ev) {
		return
	}
	h.respond(w, r, func(projectID, memberID string) (*whiteboard.View, error) {
		return h.whiteboardService.HandleWheel(r.Context(), projectID, memberID, ev)
	})
}

// Zoom は POST /api/projects/{id}/whiteboard/zoom を処理する（direction: "in" | "out"）
func (h *WhiteboardHandler) Zoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Direction string `json:"direction"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Direction != "in" && req.Direction != "out" {
		writeError(w, http.StatusBadRequest, "invalid_direction")
		return
	}
	h.respond(w, r, func(projectID, memberID string) (*whiteboard.View, error) {
		return h.whiteboardService.Zoom(r.Context(), projectID, memberID, req.Direction == "in")
	})
}

type addNoteResponse struct {
	Note *model.Note      `json:"note"`
	View *whiteboard.View `json:"view"`
}

// AddNote は POST /api/projects/{id}/whiteboard/notes を処理する
func (h *WhiteboardHandler) AddNote(w http.ResponseWriter, r *http.Request) {
	memberID, ok := currentMemberID(w, r)
	if !ok {
		return
	}
	var req struct {
		Color model.NoteColor `json:"color"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	note, v, err := h.whiteboardService.AddNote(r.Context(), r.PathValue("id"), memberID, req.Color)
	if err != nil {
		writeServiceError(w, err, "whiteboard_failed")
		return
	}
	writeJSON(w, http.StatusCreated, addNoteResponse{Note: note, View: v})
}

// UpdateNote は PATCH /api/projects/{id}/whiteboard/notes/{nid} を処理する
func (h *WhiteboardHandler) UpdateNote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content *string `json:"content"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Content == nil {
		writeError(w, http.StatusBadRequest, "content_required")
		return
	}
	h.respond(w, r, func(projectID, memberID string) (*whiteboard.View, error) {
		return h.whiteboardService.UpdateNoteContent(r.Context(), projectID, memberID, r.PathValue("nid"), *req.Content)
	})
}

// DeleteNote は DELETE /api/projects/{id}/whiteboard/notes/{nid} を処理する
func (h *WhiteboardHandler) DeleteNote(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, func(projectID, memberID string) (*whiteboard.View, error) {
		return h.whiteboardService.DeleteNote(r.Context(), projectID, memberID, r.PathValue("nid"))
	})
}
