package whiteboard

import "github.com/designflow/backend/internal/model"

// DefaultNoteSize is the edge length of a note's square footprint in world units.
const DefaultNoteSize = 200.0

// NoteSet is the note collection of one project. Order is insertion order,
// which is also render order; it carries no other meaning.
type NoteSet struct {
	notes []model.Note
}

// NewNoteSet copies notes into a new set.
func NewNoteSet(notes []model.Note) *NoteSet {
	s := &NoteSet{notes: make([]model.Note, len(notes))}
	copy(s.notes, notes)
	return s
}

// Len returns the number of notes.
func (s *NoteSet) Len() int { return len(s.notes) }

// All returns a copy of the notes in insertion order.
func (s *NoteSet) All() []model.Note {
	out := make([]model.Note, len(s.notes))
	copy(out, s.notes)
	return out
}

// Clone returns an independent copy of the set.
func (s *NoteSet) Clone() *NoteSet {
	return NewNoteSet(s.notes)
}

// Add appends n to the end of the collection.
func (s *NoteSet) Add(n model.Note) {
	s.notes = append(s.notes, n)
}

// Find returns the note with the given id.
func (s *NoteSet) Find(id string) (model.Note, bool) {
	if i := s.index(id); i >= 0 {
		return s.notes[i], true
	}
	return model.Note{}, false
}

// Delete removes the note with the given id. Deleting an absent id is a no-op
// and reports false.
func (s *NoteSet) Delete(id string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.notes = append(s.notes[:i], s.notes[i+1:]...)
	return true
}

// SetContent replaces the text of a note.
func (s *NoteSet) SetContent(id, content string) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.notes[i].Content = content
	return true
}

// Move sets the world-space top-left corner of a note.
func (s *NoteSet) Move(id string, pos Point) bool {
	i := s.index(id)
	if i < 0 {
		return false
	}
	s.notes[i].X, s.notes[i].Y = pos.X, pos.Y
	return true
}

// HitTest returns the top-most note whose square footprint of the given size
// contains the world point. Later notes are drawn above earlier ones.
func (s *NoteSet) HitTest(world Point, size float64) (model.Note, bool) {
	for i := len(s.notes) - 1; i >= 0; i-- {
		n := s.notes[i]
		if world.X >= n.X && world.X <= n.X+size && world.Y >= n.Y && world.Y <= n.Y+size {
			return n, true
		}
	}
	return model.Note{}, false
}

func (s *NoteSet) index(id string) int {
	for i := range s.notes {
		if s.notes[i].ID == id {
			return i
		}
	}
	return -1
}

// notePos returns the world position of a note as a point.
func notePos(n model.Note) Point {
	return Point{X: n.X, Y: n.Y}
}
