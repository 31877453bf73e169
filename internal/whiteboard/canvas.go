package whiteboard

import (
	"time"

	"github.com/designflow/backend/internal/model"
	"github.com/google/uuid"
)

// DefaultWheelZoomFactor converts wheel delta to scale delta.
const DefaultWheelZoomFactor = 0.001

// ZoomStep is the scale change of the toolbar +/- buttons.
const ZoomStep = 0.1

// Options tunes a Canvas. Zero fields fall back to the defaults.
type Options struct {
	Bounds          ScaleBounds
	NoteSize        float64
	WheelZoomFactor float64
	Now             func() time.Time
	NewID           func() string
}

func (o Options) withDefaults() Options {
	if o.Bounds.Min <= 0 || o.Bounds.Max < o.Bounds.Min {
		o.Bounds = DefaultScaleBounds
	}
	if o.NoteSize <= 0 {
		o.NoteSize = DefaultNoteSize
	}
	if o.WheelZoomFactor <= 0 {
		o.WheelZoomFactor = DefaultWheelZoomFactor
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	if o.NewID == nil {
		o.NewID = uuid.NewString
	}
	return o
}

// Canvas is the whiteboard of one project as seen by one member. It owns the
// viewport transform and the interaction state, and edits a draft of the
// project's notes. Pointer moves only touch the draft; callers persist the
// draft whenever a method reports that a commit is due.
type Canvas struct {
	projectID string
	team      []model.Member
	author    model.Member
	opts      Options

	transform Transform
	state     State
	tool      Tool
	viewport  Point
	notes     *NoteSet
}

// NewCanvas mounts a whiteboard for project, acting as author.
func NewCanvas(project model.Project, author model.Member, opts Options) *Canvas {
	return &Canvas{
		projectID: project.ID,
		team:      project.Team,
		author:    author,
		opts:      opts.withDefaults(),
		transform: DefaultTransform(),
		state:     Idle{},
		tool:      ToolSelect,
		notes:     NewNoteSet(project.Notes),
	}
}

func (c *Canvas) Transform() Transform { return c.transform }
func (c *Canvas) State() State         { return c.state }
func (c *Canvas) Tool() Tool           { return c.tool }

// Notes returns the current draft of the note collection.
func (c *Canvas) Notes() []model.Note { return c.notes.All() }

// SetTool switches the active tool. An ongoing drag is not affected.
func (c *Canvas) SetTool(t Tool) { c.tool = t }

// SetViewport records the size of the visible canvas area in screen pixels.
func (c *Canvas) SetViewport(width, height float64) {
	c.viewport = Point{X: width, Y: height}
}

// ReplaceNotes swaps in a fresh copy of the stored notes. It is ignored while
// a note is being dragged so the drag is not lost.
func (c *Canvas) ReplaceNotes(notes []model.Note) bool {
	if _, dragging := c.state.(DraggingNote); dragging {
		return false
	}
	c.notes = NewNoteSet(notes)
	return true
}

// RestoreNotes puts back a draft taken earlier with Notes, for example after
// a failed save. Unlike ReplaceNotes it also applies during a drag; the drag
// ends if its note is no longer present.
func (c *Canvas) RestoreNotes(notes []model.Note) {
	c.notes = NewNoteSet(notes)
	if s, ok := c.state.(DraggingNote); ok {
		if _, found := c.notes.Find(s.NoteID); !found {
			c.state = Idle{}
		}
	}
}

// DraggedNote returns the draft of the note being dragged.
func (c *Canvas) DraggedNote() (model.Note, bool) {
	s, ok := c.state.(DraggingNote)
	if !ok {
		return model.Note{}, false
	}
	return c.notes.Find(s.NoteID)
}

// PointerDown starts a drag. With the select tool and the primary button a
// hit on a note grabs that note; the hand tool or the middle button pans the
// canvas. Pointer-down while a drag is active is ignored.
func (c *Canvas) PointerDown(p Point, button PointerButton) State {
	if _, idle := c.state.(Idle); !idle {
		return c.state
	}
	if c.tool == ToolSelect && button == ButtonPrimary {
		if n, ok := c.notes.HitTest(ToWorld(p, c.transform), c.opts.NoteSize); ok {
			c.state = DraggingNote{
				NoteID:     n.ID,
				GrabOffset: p.Sub(ToScreen(notePos(n), c.transform)),
			}
			return c.state
		}
	}
	if c.tool == ToolHand || button == ButtonMiddle {
		c.state = PanningCanvas{Anchor: p.Sub(c.transform.Offset())}
	}
	return c.state
}

// PointerMove applies the active drag and reports whether anything changed.
func (c *Canvas) PointerMove(p Point) bool {
	switch s := c.state.(type) {
	case PanningCanvas:
		c.transform = c.transform.withOffset(p.Sub(s.Anchor))
		return true
	case DraggingNote:
		return c.notes.Move(s.NoteID, ToWorld(p.Sub(s.GrabOffset), c.transform))
	}
	return false
}

// PointerUp ends any drag. It reports true when a note was dragged and the
// draft has to be committed.
func (c *Canvas) PointerUp() bool {
	_, dragged := c.state.(DraggingNote)
	c.state = Idle{}
	return dragged
}

// PointerLeave behaves exactly like PointerUp.
func (c *Canvas) PointerLeave() bool {
	return c.PointerUp()
}

// Wheel zooms when the zoom modifier is held and pans otherwise. It works in
// every state. While panning, the anchor moves along so the next pointer move
// keeps the wheel offset.
func (c *Canvas) Wheel(e WheelEvent) {
	if e.ZoomModifier {
		c.transform = Zoom(c.transform, -e.DeltaY*c.opts.WheelZoomFactor, c.opts.Bounds)
		return
	}
	c.transform = Pan(c.transform, -e.DeltaX, -e.DeltaY)
	if s, ok := c.state.(PanningCanvas); ok {
		c.state = PanningCanvas{Anchor: s.Anchor.Add(Point{X: e.DeltaX, Y: e.DeltaY})}
	}
}

// ZoomBy changes the scale by delta, clamped to the canvas bounds.
func (c *Canvas) ZoomBy(delta float64) {
	c.transform = Zoom(c.transform, delta, c.opts.Bounds)
}

// ViewportCenter returns the center of the visible area in world space.
func (c *Canvas) ViewportCenter() Point {
	return ToWorld(c.viewport.Scale(0.5), c.transform)
}

// AddNote appends an empty note centered on the viewport.
func (c *Canvas) AddNote(color model.NoteColor) model.Note {
	half := c.opts.NoteSize / 2
	center := c.ViewportCenter()
	n := model.Note{
		ID:        c.opts.NewID(),
		ProjectID: c.projectID,
		X:         center.X - half,
		Y:         center.Y - half,
		Color:     color,
		AuthorID:  c.author.ID,
		CreatedAt: c.opts.Now().UTC(),
	}
	c.notes.Add(n)
	return n
}

// UpdateContent replaces the text of a note.
func (c *Canvas) UpdateContent(id, content string) bool {
	return c.notes.SetContent(id, content)
}

// DeleteNote removes a note; unknown ids are ignored. Deleting the note being
// dragged ends the drag.
func (c *Canvas) DeleteNote(id string) bool {
	if s, ok := c.state.(DraggingNote); ok && s.NoteID == id {
		c.state = Idle{}
	}
	return c.notes.Delete(id)
}

// NoteView is a note with its author resolved against the project team.
type NoteView struct {
	model.Note
	AuthorName   string `json:"author_name"`
	AuthorAvatar string `json:"author_avatar,omitempty"`
	Dragging     bool   `json:"dragging"`
}

// View is what a client needs to render the board.
type View struct {
	ProjectID string      `json:"project_id"`
	Transform Transform   `json:"transform"`
	Bounds    ScaleBounds `json:"bounds"`
	State     string      `json:"state"`
	Tool      Tool        `json:"tool"`
	Viewport  Point       `json:"viewport"`
	NoteSize  float64     `json:"note_size"`
	Notes     []NoteView  `json:"notes"`
}

// Snapshot renders the current canvas state.
func (c *Canvas) Snapshot() View {
	dragID := ""
	if s, ok := c.state.(DraggingNote); ok {
		dragID = s.NoteID
	}
	notes := c.notes.All()
	views := make([]NoteView, 0, len(notes))
	for _, n := range notes {
		nv := NoteView{Note: n, AuthorName: "Unknown", Dragging: n.ID == dragID}
		for _, m := range c.team {
			if m.ID == n.AuthorID {
				nv.AuthorName, nv.AuthorAvatar = m.Name, m.Avatar
				break
			}
		}
		views = append(views, nv)
	}
	return View{
		ProjectID: c.projectID,
		Transform: c.transform,
		Bounds:    c.opts.Bounds,
		State:     c.state.Name(),
		Tool:      c.tool,
		Viewport:  c.viewport,
		NoteSize:  c.opts.NoteSize,
		Notes:     views,
	}
}
