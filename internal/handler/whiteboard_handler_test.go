package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/designflow/backend/internal/model"
	"github.com/designflow/backend/internal/service"
	"github.com/designflow/backend/internal/whiteboard"
)

func whiteboardMux(h *WhiteboardHandler) *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/projects/{id}/whiteboard", h.View)
	mux.HandleFunc("DELETE /api/projects/{id}/whiteboard/session", h.ResetSession)
	mux.HandleFunc("PUT /api/projects/{id}/whiteboard/tool", h.SetTool)
	mux.HandleFunc("PUT /api/projects/{id}/whiteboard/viewport", h.SetViewport)
	mux.HandleFunc("POST /api/projects/{id}/whiteboard/pointer", h.Pointer)
	mux.HandleFunc("POST /api/projects/{id}/whiteboard/wheel", h.Wheel)
	mux.HandleFunc("POST /api/projects/{id}/whiteboard/zoom", h.Zoom)
	mux.HandleFunc("POST /api/projects/{id}/whiteboard/notes", h.AddNote)
	mux.HandleFunc("PATCH /api/projects/{id}/whiteboard/notes/{nid}", h.UpdateNote)
	mux.HandleFunc("DELETE /api/projects/{id}/whiteboard/notes/{nid}", h.DeleteNote)
	return mux
}

func serveWhiteboard(h *WhiteboardHandler, method, path, body string) *httptest.ResponseRecorder {
	req := withMember(httptest.NewRequest(method, path, bytes.NewBufferString(body)), "u1")
	rec := httptest.NewRecorder()
	whiteboardMux(h).ServeHTTP(rec, req)
	return rec
}

func TestWhiteboardHandler_RequiresMember(t *testing.T) {
	h := NewWhiteboardHandler(&mockWhiteboardService{})
	rec := httptest.NewRecorder()
	whiteboardMux(h).ServeHTTP(rec, httptest.NewRequest("GET", "/api/projects/p1/whiteboard", nil))

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestWhiteboardHandler_View(t *testing.T) {
	var gotProject, gotMember string
	mock := &mockWhiteboardService{
		viewFunc: func(ctx context.Context, projectID, memberID string) (*whiteboard.View, error) {
			gotProject, gotMember = projectID, memberID
			return emptyView(projectID), nil
		},
	}
	rec := serveWhiteboard(NewWhiteboardHandler(mock), "GET", "/api/projects/p1/whiteboard", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if gotProject != "p1" || gotMember != "u1" {
		t.Errorf("unexpected session key %s/%s", gotProject, gotMember)
	}
	var v whiteboard.View
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if v.State != "idle" || v.Transform.Scale != 1 {
		t.Errorf("unexpected view: %#v", v)
	}
}

func TestWhiteboardHandler_Pointer(t *testing.T) {
	var got service.PointerEvent
	mock := &mockWhiteboardService{
		pointerFunc: func(ctx context.Context, projectID, memberID string, ev service.PointerEvent) (*whiteboard.View, error) {
			got = ev
			return emptyView(projectID), nil
		},
	}
	rec := serveWhiteboard(NewWhiteboardHandler(mock), "POST", "/api/projects/p1/whiteboard/pointer", `{"type":"down","x":12.5,"y":40,"button":1}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.Type != service.PointerDown || got.X != 12.5 || got.Y != 40 || got.Button != whiteboard.ButtonMiddle {
		t.Errorf("unexpected event: %#v", got)
	}
}

func TestWhiteboardHandler_Pointer_InvalidType(t *testing.T) {
	mock := &mockWhiteboardService{
		pointerFunc: func(ctx context.Context, projectID, memberID string, ev service.PointerEvent) (*whiteboard.View, error) {
			return nil, service.ErrInvalidInput
		},
	}
	rec := serveWhiteboard(NewWhiteboardHandler(mock), "POST", "/api/projects/p1/whiteboard/pointer", `{"type":"hover"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
}

func TestWhiteboardHandler_Wheel(t *testing.T) {
	var got whiteboard.WheelEvent
	mock := &mockWhiteboardService{
		wheelFunc: func(ctx context.Context, projectID, memberID string, ev whiteboard.WheelEvent) (*whiteboard.View, error) {
			got = ev
			return emptyView(projectID), nil
		},
	}
	rec := serveWhiteboard(NewWhiteboardHandler(mock), "POST", "/api/projects/p1/whiteboard/wheel", `{"delta_x":3,"delta_y":-120,"zoom_modifier":true}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if got.DeltaX != 3 || got.DeltaY != -120 || !got.ZoomModifier {
		t.Errorf("unexpected wheel event: %#v", got)
	}
}

func TestWhiteboardHandler_Zoom(t *testing.T) {
	var in bool
	mock := &mockWhiteboardService{
		zoomFunc: func(ctx context.Context, projectID, memberID string, zoomIn bool) (*whiteboard.View, error) {
			in = zoomIn
			return emptyView(projectID), nil
		},
	}
	h := NewWhiteboardHandler(mock)

	if rec := serveWhiteboard(h, "POST", "/api/projects/p1/whiteboard/zoom", `{"direction":"in"}`); rec.Code != http.StatusOK || !in {
		t.Errorf("zoom in: code=%d in=%v", rec.Code, in)
	}
	if rec := serveWhiteboard(h, "POST", "/api/projects/p1/whiteboard/zoom", `{"direction":"out"}`); rec.Code != http.StatusOK || in {
		t.Errorf("zoom out: code=%d in=%v", rec.Code, in)
	}
	if rec := serveWhiteboard(h, "POST", "/api/projects/p1/whiteboard/zoom", `{"direction":"sideways"}`); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for unknown direction, got %d", rec.Code)
	}
}

func TestWhiteboardHandler_ToolAndViewport(t *testing.T) {
	var tool whiteboard.Tool
	var width, height float64
	mock := &mockWhiteboardService{
		setToolFunc: func(ctx context.Context, projectID, memberID string, t whiteboard.Tool) (*whiteboard.View, error) {
			tool = t
			return emptyView(projectID), nil
		},
		setViewportFunc: func(ctx context.Context, projectID, memberID string, w, h float64) (*whiteboard.View, error) {
			width, height = w, h
			return emptyView(projectID), nil
		},
	}
	h := NewWhiteboardHandler(mock)

	serveWhiteboard(h, "PUT", "/api/projects/p1/whiteboard/tool", `{"tool":"hand"}`)
	serveWhiteboard(h, "PUT", "/api/projects/p1/whiteboard/viewport", `{"width":1280,"height":720}`)

	if tool != whiteboard.ToolHand {
		t.Errorf("expected hand tool, got %q", tool)
	}
	if width != 1280 || height != 720 {
		t.Errorf("unexpected viewport %vx%v", width, height)
	}
}

func TestWhiteboardHandler_AddNote(t *testing.T) {
	var color model.NoteColor
	mock := &mockWhiteboardService{
		addNoteFunc: func(ctx context.Context, projectID, memberID string, c model.NoteColor) (*model.Note, *whiteboard.View, error) {
			color = c
			return &model.Note{ID: "n9", Color: c, AuthorID: memberID}, emptyView(projectID), nil
		},
	}
	rec := serveWhiteboard(NewWhiteboardHandler(mock), "POST", "/api/projects/p1/whiteboard/notes", `{"color":"green"}`)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if color != model.NoteColorGreen {
		t.Errorf("expected green, got %q", color)
	}
	var resp addNoteResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Note == nil || resp.Note.ID != "n9" || resp.View == nil {
		t.Errorf("unexpected response: %#v", resp)
	}
}

func TestWhiteboardHandler_UpdateNote(t *testing.T) {
	var noteID, content string
	mock := &mockWhiteboardService{
		updateContentFunc: func(ctx context.Context, projectID, memberID, nid, c string) (*whiteboard.View, error) {
			if nid == "missing" {
				return nil, service.ErrNoteNotFound
			}
			noteID, content = nid, c
			return emptyView(projectID), nil
		},
	}
	h := NewWhiteboardHandler(mock)

	if rec := serveWhiteboard(h, "PATCH", "/api/projects/p1/whiteboard/notes/n1", `{"content":""}`); rec.Code != http.StatusOK {
		t.Errorf("expected 200, got %d", rec.Code)
	}
	if noteID != "n1" || content != "" {
		t.Errorf("unexpected update %q=%q", noteID, content)
	}
	if rec := serveWhiteboard(h, "PATCH", "/api/projects/p1/whiteboard/notes/n1", `{}`); rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 without content, got %d", rec.Code)
	}
	if rec := serveWhiteboard(h, "PATCH", "/api/projects/p1/whiteboard/notes/missing", `{"content":"x"}`); rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
}

func TestWhiteboardHandler_DeleteNoteAndReset(t *testing.T) {
	var deleted string
	var reset bool
	mock := &mockWhiteboardService{
		deleteNoteFunc: func(ctx context.Context, projectID, memberID, nid string) (*whiteboard.View, error) {
			deleted = nid
			return emptyView(projectID), nil
		},
		resetFunc: func(projectID, memberID string) { reset = projectID == "p1" && memberID == "u1" },
	}
	h := NewWhiteboardHandler(mock)

	if rec := serveWhiteboard(h, "DELETE", "/api/projects/p1/whiteboard/notes/n2", ""); rec.Code != http.StatusOK || deleted != "n2" {
		t.Errorf("delete: code=%d deleted=%q", rec.Code, deleted)
	}
	if rec := serveWhiteboard(h, "DELETE", "/api/projects/p1/whiteboard/session", ""); rec.Code != http.StatusNoContent || !reset {
		t.Errorf("reset: code=%d reset=%v", rec.Code, reset)
	}
}
