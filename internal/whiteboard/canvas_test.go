package whiteboard

import (
	"testing"
	"time"

	"github.com/designflow/backend/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2023, 11, 20, 10, 0, 0, 0, time.UTC)

func newTestCanvas(notes []model.Note) *Canvas {
	project := model.Project{
		ID: "p1",
		Team: []model.Member{
			{ID: "u1", Name: "Alex", Avatar: "alex.svg"},
			{ID: "u2", Name: "Sarah"},
		},
		Notes: notes,
	}
	seq := 0
	return NewCanvas(project, model.Member{ID: "u1", Name: "Alex"}, Options{
		Now: func() time.Time { return fixedNow },
		NewID: func() string {
			seq++
			return "new-" + string(rune('0'+seq))
		},
	})
}

func TestCanvas_StartsIdleWithDefaults(t *testing.T) {
	c := newTestCanvas(nil)
	assert.IsType(t, Idle{}, c.State())
	assert.Equal(t, ToolSelect, c.Tool())
	assert.Equal(t, DefaultTransform(), c.Transform())
}

func TestCanvas_PointerDownOnNoteStartsDrag(t *testing.T) {
	c := newTestCanvas(sampleNotes())
	s := c.PointerDown(Point{X: 110, Y: 120}, ButtonPrimary)

	d, ok := s.(DraggingNote)
	require.True(t, ok)
	assert.Equal(t, "n1", d.NoteID)
	assert.Equal(t, Point{X: 10, Y: 20}, d.GrabOffset)
}

func TestCanvas_PointerDownOnEmptySpaceWithSelectStaysIdle(t *testing.T) {
	c := newTestCanvas(sampleNotes())
	s := c.PointerDown(Point{X: -50, Y: -50}, ButtonPrimary)
	assert.IsType(t, Idle{}, s)
}

func TestCanvas_HandToolPansEvenOverNotes(t *testing.T) {
	c := newTestCanvas(sampleNotes())
	c.SetTool(ToolHand)

	s := c.PointerDown(Point{X: 110, Y: 120}, ButtonPrimary)
	p, ok := s.(PanningCanvas)
	require.True(t, ok)
	assert.Equal(t, Point{X: 110, Y: 120}, p.Anchor)

	assert.True(t, c.PointerMove(Point{X: 160, Y: 100}))
	assert.Equal(t, Point{X: 50, Y: -20}, c.Transform().Offset())

	for _, n := range c.Notes() {
		if n.ID == "n1" {
			assert.Equal(t, 100.0, n.X)
		}
	}
	assert.False(t, c.PointerUp())
	assert.IsType(t, Idle{}, c.State())
}

func TestCanvas_MiddleButtonPansWithSelectTool(t *testing.T) {
	c := newTestCanvas(nil)
	c.transform = Transform{Scale: 1, OffsetX: 10, OffsetY: 10}

	s := c.PointerDown(Point{X: 30, Y: 40}, ButtonMiddle)
	p, ok := s.(PanningCanvas)
	require.True(t, ok)
	assert.Equal(t, Point{X: 20, Y: 30}, p.Anchor)

	c.PointerMove(Point{X: 35, Y: 45})
	assert.Equal(t, Point{X: 15, Y: 15}, c.Transform().Offset())
}

func TestCanvas_PointerDownIgnoredWhileDragging(t *testing.T) {
	c := newTestCanvas(sampleNotes())
	c.PointerDown(Point{X: 110, Y: 120}, ButtonPrimary)
	s := c.PointerDown(Point{X: 0, Y: 0}, ButtonMiddle)

	d, ok := s.(DraggingNote)
	require.True(t, ok)
	assert.Equal(t, "n1", d.NoteID)
}

func TestCanvas_DragMovesNoteByScreenDeltaOverScale(t *testing.T) {
	c := newTestCanvas(sampleNotes())
	c.transform = Transform{Scale: 1.6, OffsetX: -30, OffsetY: 12}

	start, _ := c.notes.Find("n2")
	s1 := ToScreen(Point{X: start.X + 5, Y: start.Y + 5}, c.transform)
	_, ok := c.PointerDown(s1, ButtonPrimary).(DraggingNote)
	require.True(t, ok)

	s2 := s1.Add(Point{X: 80, Y: -48})
	c.PointerMove(s1.Add(Point{X: 3, Y: 3}))
	c.PointerMove(s2)
	require.True(t, c.PointerUp())

	end, _ := c.notes.Find("n2")
	assert.InDelta(t, 80/1.6, end.X-start.X, 1e-9)
	assert.InDelta(t, -48/1.6, end.Y-start.Y, 1e-9)
}

func TestCanvas_PointerLeaveCommitsLastPosition(t *testing.T) {
	c := newTestCanvas(sampleNotes())
	c.PointerDown(Point{X: 105, Y: 105}, ButtonPrimary)
	c.PointerMove(Point{X: 305, Y: 205})

	assert.True(t, c.PointerLeave())
	assert.IsType(t, Idle{}, c.State())

	n, _ := c.notes.Find("n1")
	assert.Equal(t, 300.0, n.X)
	assert.Equal(t, 200.0, n.Y)
}

func TestCanvas_PointerMoveWhileIdleDoesNothing(t *testing.T) {
	c := newTestCanvas(sampleNotes())
	assert.False(t, c.PointerMove(Point{X: 500, Y: 500}))
	assert.Equal(t, sampleNotes(), c.Notes())
	assert.False(t, c.PointerUp())
}

func TestCanvas_WheelWithModifierZooms(t *testing.T) {
	c := newTestCanvas(nil)
	c.Wheel(WheelEvent{DeltaY: -250, ZoomModifier: true})
	assert.InDelta(t, 1.25, c.Transform().Scale, 1e-9)

	c.Wheel(WheelEvent{DeltaY: -5000, ZoomModifier: true})
	assert.Equal(t, 2.0, c.Transform().Scale)
	assert.Equal(t, Point{}, c.Transform().Offset())
}

func TestCanvas_WheelWithoutModifierPans(t *testing.T) {
	c := newTestCanvas(nil)
	c.Wheel(WheelEvent{DeltaX: 15, DeltaY: -40})
	assert.Equal(t, Point{X: -15, Y: 40}, c.Transform().Offset())
	assert.Equal(t, 1.0, c.Transform().Scale)
}

func TestCanvas_WheelPanDuringCanvasPanIsKept(t *testing.T) {
	c := newTestCanvas(nil)
	c.SetTool(ToolHand)
	c.PointerDown(Point{X: 100, Y: 100}, ButtonPrimary)
	c.Wheel(WheelEvent{DeltaX: 0, DeltaY: 30})
	assert.Equal(t, Point{X: 0, Y: -30}, c.Transform().Offset())

	c.PointerMove(Point{X: 110, Y: 100})
	assert.Equal(t, Point{X: 10, Y: -30}, c.Transform().Offset())
}

func TestCanvas_ZoomByClamps(t *testing.T) {
	c := newTestCanvas(nil)
	for i := 0; i < 20; i++ {
		c.ZoomBy(-ZoomStep)
	}
	assert.Equal(t, 0.5, c.Transform().Scale)
}

func TestCanvas_AddNoteCentersOnViewport(t *testing.T) {
	transforms := []Transform{
		DefaultTransform(),
		{Scale: 0.5, OffsetX: 300, OffsetY: -120},
		{Scale: 1.75, OffsetX: -42.5, OffsetY: 81},
	}
	for _, tr := range transforms {
		c := newTestCanvas(sampleNotes())
		c.SetViewport(1280, 720)
		c.transform = tr

		before := len(c.Notes())
		n := c.AddNote(model.NoteColorGreen)
		notes := c.Notes()
		require.Len(t, notes, before+1)
		assert.Equal(t, n, notes[len(notes)-1])

		center := c.ViewportCenter()
		assert.InDelta(t, center.X, n.X+DefaultNoteSize/2, 1e-9)
		assert.InDelta(t, center.Y, n.Y+DefaultNoteSize/2, 1e-9)
		assert.Equal(t, "u1", n.AuthorID)
		assert.Equal(t, "p1", n.ProjectID)
		assert.Equal(t, model.NoteColorGreen, n.Color)
		assert.Equal(t, fixedNow, n.CreatedAt)
		assert.Empty(t, n.Content)
	}
}

func TestCanvas_AddNoteWithoutViewportUsesOrigin(t *testing.T) {
	c := newTestCanvas(nil)
	n := c.AddNote(model.NoteColorYellow)
	assert.Equal(t, -100.0, n.X)
	assert.Equal(t, -100.0, n.Y)
}

func TestCanvas_DeleteNoteIsIdempotent(t *testing.T) {
	c := newTestCanvas(sampleNotes())
	assert.True(t, c.DeleteNote("n1"))
	assert.False(t, c.DeleteNote("n1"))
	assert.Len(t, c.Notes(), 2)
}

func TestCanvas_DeleteDraggedNoteEndsDrag(t *testing.T) {
	c := newTestCanvas(sampleNotes())
	c.PointerDown(Point{X: 105, Y: 105}, ButtonPrimary)
	c.DeleteNote("n1")
	assert.IsType(t, Idle{}, c.State())
}

func TestCanvas_ReplaceNotesSkippedWhileDragging(t *testing.T) {
	c := newTestCanvas(sampleNotes())
	c.PointerDown(Point{X: 105, Y: 105}, ButtonPrimary)
	assert.False(t, c.ReplaceNotes(nil))
	assert.Len(t, c.Notes(), 3)

	c.PointerUp()
	assert.True(t, c.ReplaceNotes(nil))
	assert.Empty(t, c.Notes())
}

func TestCanvas_RestoreNotesAppliesDuringDrag(t *testing.T) {
	c := newTestCanvas(sampleNotes())
	before := c.Notes()
	c.PointerDown(Point{X: 105, Y: 105}, ButtonPrimary)
	require.True(t, c.UpdateContent("n1", "unsaved"))

	c.RestoreNotes(before)
	n, ok := c.DraggedNote()
	require.True(t, ok)
	assert.Equal(t, "", n.Content)
	assert.IsType(t, DraggingNote{}, c.State())

	c.RestoreNotes(before[1:])
	assert.IsType(t, Idle{}, c.State())
	_, ok = c.DraggedNote()
	assert.False(t, ok)
}

func TestCanvas_DraggedNoteFollowsPointer(t *testing.T) {
	c := newTestCanvas(sampleNotes())
	_, ok := c.DraggedNote()
	assert.False(t, ok)

	c.PointerDown(Point{X: 110, Y: 120}, ButtonPrimary)
	c.PointerMove(Point{X: 160, Y: 120})
	n, ok := c.DraggedNote()
	require.True(t, ok)
	assert.Equal(t, "n1", n.ID)
	assert.InDelta(t, 150, n.X, 1e-9)
	assert.InDelta(t, 100, n.Y, 1e-9)
}

func TestCanvas_SnapshotResolvesAuthors(t *testing.T) {
	notes := append(sampleNotes(), model.Note{ID: "n4", AuthorID: "ghost"})
	c := newTestCanvas(notes)
	c.PointerDown(Point{X: 405, Y: 155}, ButtonPrimary)

	v := c.Snapshot()
	assert.Equal(t, "dragging_note", v.State)
	require.Len(t, v.Notes, 4)
	assert.Equal(t, "Alex", v.Notes[0].AuthorName)
	assert.Equal(t, "alex.svg", v.Notes[0].AuthorAvatar)
	assert.Equal(t, "Sarah", v.Notes[1].AuthorName)
	assert.True(t, v.Notes[1].Dragging)
	assert.Equal(t, "Unknown", v.Notes[3].AuthorName)
}

func TestParseTool(t *testing.T) {
	tool, err := ParseTool("hand")
	require.NoError(t, err)
	assert.Equal(t, ToolHand, tool)

	_, err = ParseTool("lasso")
	assert.Error(t, err)
}
