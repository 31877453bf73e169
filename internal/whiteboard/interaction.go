package whiteboard

import "fmt"

// Tool is the active toolbar tool. It is toggled by the user and only read by
// the transition guards.
type Tool string

const (
	ToolSelect Tool = "select"
	ToolHand   Tool = "hand"
)

// ParseTool validates a tool name.
func ParseTool(s string) (Tool, error) {
	switch Tool(s) {
	case ToolSelect, ToolHand:
		return Tool(s), nil
	}
	return "", fmt.Errorf("whiteboard: unknown tool %q", s)
}

// PointerButton identifies the pressed button on pointer-down.
type PointerButton int

const (
	ButtonPrimary PointerButton = iota
	ButtonMiddle
	ButtonSecondary
)

// State is the interaction state of a canvas. Exactly one of Idle,
// PanningCanvas or DraggingNote.
type State interface {
	Name() string
	isState()
}

// Idle means no drag is in progress.
type Idle struct{}

// PanningCanvas means the canvas follows the pointer. Anchor is the pointer
// position minus the offset at pointer-down.
type PanningCanvas struct {
	Anchor Point
}

// DraggingNote means one note follows the pointer. GrabOffset is the screen
// distance between the pointer and the note's top-left corner at pointer-down.
type DraggingNote struct {
	NoteID     string
	GrabOffset Point
}

func (Idle) Name() string          { return "idle" }
func (PanningCanvas) Name() string { return "panning_canvas" }
func (DraggingNote) Name() string  { return "dragging_note" }

func (Idle) isState()          {}
func (PanningCanvas) isState() {}
func (DraggingNote) isState()  {}

// WheelEvent is a scroll or pinch gesture. ZoomModifier is set when ctrl/meta
// is held.
type WheelEvent struct {
	DeltaX       float64 `json:"delta_x"`
	DeltaY       float64 `json:"delta_y"`
	ZoomModifier bool    `json:"zoom_modifier"`
}
