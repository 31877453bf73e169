package model

import "time"

// NoteColor は付箋の色（固定パレット）
type NoteColor string

const (
	NoteColorYellow NoteColor = "yellow"
	NoteColorBlue   NoteColor = "blue"
	NoteColorGreen  NoteColor = "green"
	NoteColorRed    NoteColor = "red"
	NoteColorPurple NoteColor = "purple"
)

// NoteColors はパレットの表示順
var NoteColors = []NoteColor{NoteColorYellow, NoteColorBlue, NoteColorGreen, NoteColorRed, NoteColorPurple}

// Valid はパレットに含まれる色かどうかを返す
func (c NoteColor) Valid() bool {
	for _, v := range NoteColors {
		if v == c {
			return true
		}
	}
	return false
}

// Note はホワイトボード上の付箋。X, Y はワールド座標（左上）。
type Note struct {
	ID        string    `json:"id"`
	ProjectID string    `json:"project_id"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Content   string    `json:"content"`
	Color     NoteColor `json:"color"`
	AuthorID  string    `json:"author_id"`
	CreatedAt time.Time `json:"created_at"`
}
