package service

import (
	"context"

	"github.com/designflow/backend/internal/model"
	"github.com/designflow/backend/internal/whiteboard"
)

// PointerEventType はポインターイベントの種類
type PointerEventType string

const (
	PointerDown  PointerEventType = "down"
	PointerMove  PointerEventType = "move"
	PointerUp    PointerEventType = "up"
	PointerLeave PointerEventType = "leave"
)

// PointerEvent はキャンバス上のポインター操作（スクリーン座標）
type PointerEvent struct {
	Type   PointerEventType         `json:"type"`
	X      float64                  `json:"x"`
	Y      float64                  `json:"y"`
	Button whiteboard.PointerButton `json:"button"`
}

// WhiteboardService はプロジェクトごと・メンバーごとのホワイトボード操作のインターフェース。
// 付箋の変更が確定するたびにプロジェクトの付箋コレクションを丸ごと保存する。
type WhiteboardService interface {
	View(ctx context.Context, projectID, memberID string) (*whiteboard.View, error)
	SetTool(ctx context.Context, projectID, memberID string, tool whiteboard.Tool) (*whiteboard.View, error)
	SetViewport(ctx context.Context, projectID, memberID string, width, height float64) (*whiteboard.View, error)
	HandlePointer(ctx context.Context, projectID, memberID string, ev PointerEvent) (*whiteboard.View, error)
	HandleWheel(ctx context.Context, projectID, memberID string, ev whiteboard.WheelEvent) (*whiteboard.View, error)
	// Zoom はツールバーの +/- ボタン。in が true なら拡大する。
	Zoom(ctx context.Context, projectID, memberID string, in bool) (*whiteboard.View, error)
	AddNote(ctx context.Context, projectID, memberID string, color model.NoteColor) (*model.Note, *whiteboard.View, error)
	UpdateNoteContent(ctx context.Context, projectID, memberID, noteID, content string) (*whiteboard.View, error)
	DeleteNote(ctx context.Context, projectID, memberID, noteID string) (*whiteboard.View, error)
	// Reset はメンバーのセッション（ビューポートと操作状態）を破棄する
	Reset(projectID, memberID string)
}
