// Package timeline projects project date ranges onto a 0-100 horizontal scale
// for rendering schedule bars.
//
// Clamping happens in exactly one place, Window.Position. Bars, phase bars and
// the today marker are all derived from clamped positions, so nothing a
// renderer receives lies outside [0, 100].
package timeline

import (
	"time"

	"github.com/designflow/backend/internal/model"
)

const day = 24 * time.Hour

// Options tunes the projection. Zero fields fall back to the defaults.
type Options struct {
	// BufferDays pads the window on both sides.
	BufferDays int `yaml:"buffer_days"`
	// MinBarWidth is the narrowest bar a renderer should draw, in percent.
	MinBarWidth float64 `yaml:"min_bar_width"`
	// EmptyWindowDays is the window length used when there are no projects.
	EmptyWindowDays int `yaml:"empty_window_days"`
	// LabelMinWidth is the bar width above which a progress label fits.
	LabelMinWidth float64 `yaml:"label_min_width"`
}

// DefaultOptions matches the dashboard layout: a week of padding, 2% minimum
// bar width and a 30 day window when nothing is scheduled.
func DefaultOptions() Options {
	return Options{BufferDays: 7, MinBarWidth: 2, EmptyWindowDays: 30, LabelMinWidth: 10}
}

func (o Options) withDefaults() Options {
	d := DefaultOptions()
	if o.BufferDays <= 0 {
		o.BufferDays = d.BufferDays
	}
	if o.MinBarWidth <= 0 {
		o.MinBarWidth = d.MinBarWidth
	}
	if o.EmptyWindowDays <= 0 {
		o.EmptyWindowDays = d.EmptyWindowDays
	}
	if o.LabelMinWidth <= 0 {
		o.LabelMinWidth = d.LabelMinWidth
	}
	return o
}

// Window is the time range shared by every bar of a chart.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow spans the start and due dates of all projects, padded by the
// buffer. Unparseable dates count as now.
func NewWindow(projects []model.Project, now time.Time, opts Options) Window {
	opts = opts.withDefaults()
	var minT, maxT time.Time
	if len(projects) == 0 {
		minT, maxT = now, now.Add(time.Duration(opts.EmptyWindowDays)*day)
	} else {
		for i, p := range projects {
			start := dateOr(p.StartDate, now)
			due := dateOr(p.DueDate, now)
			if i == 0 {
				minT, maxT = start, start
			}
			for _, t := range []time.Time{start, due} {
				if t.Before(minT) {
					minT = t
				}
				if t.After(maxT) {
					maxT = t
				}
			}
		}
	}
	buffer := time.Duration(opts.BufferDays) * day
	return Window{Start: minT.Add(-buffer), End: maxT.Add(buffer)}
}

// Duration is the window length, never less than a millisecond.
func (w Window) Duration() time.Duration {
	d := w.End.Sub(w.Start)
	if d < time.Millisecond {
		return time.Millisecond
	}
	return d
}

// Position maps t to a percentage of the window, clamped to [0, 100].
func (w Window) Position(t time.Time) float64 {
	pos := float64(t.Sub(w.Start)) / float64(w.Duration()) * 100
	switch {
	case pos < 0:
		return 0
	case pos > 100:
		return 100
	}
	return pos
}

// PositionOf projects a date string. Unparseable dates sit at 0.
func (w Window) PositionOf(s string) float64 {
	t, ok := ParseDate(s)
	if !ok {
		return 0
	}
	return w.Position(t)
}

// Bar is a horizontal range in percent of the window.
type Bar struct {
	Left float64 `json:"left"`
	// Width may be 0 for single-day ranges.
	Width float64 `json:"width"`
	// DisplayWidth is Width raised to the minimum visible width.
	DisplayWidth float64 `json:"display_width"`
}

// Bar projects the range [start, end].
func (w Window) Bar(start, end string, minWidth float64) Bar {
	left := w.PositionOf(start)
	width := w.PositionOf(end) - left
	display := width
	if display < minWidth {
		display = minWidth
	}
	return Bar{Left: left, Width: width, DisplayWidth: display}
}

// PhaseBar is a project phase placed in the chart window.
type PhaseBar struct {
	ID     string            `json:"id"`
	Name   string            `json:"name"`
	Status model.PhaseStatus `json:"status"`
	Bar
}

// Row is one project line of the chart.
type Row struct {
	ProjectID         string            `json:"project_id"`
	Name              string            `json:"name"`
	CurrentPhase      model.DesignPhase `json:"current_phase"`
	PhaseLabel        string            `json:"phase_label"`
	Progress          int               `json:"progress"`
	ShowProgressLabel bool              `json:"show_progress_label"`
	Bar               Bar               `json:"bar"`
	Phases            []PhaseBar        `json:"phases"`
}

// Chart is a fully projected timeline.
type Chart struct {
	WindowStart time.Time `json:"window_start"`
	WindowEnd   time.Time `json:"window_end"`
	Today       float64   `json:"today"`
	Rows        []Row     `json:"rows"`
}

// Build projects every project, its phases and today's marker onto one window.
func Build(projects []model.Project, now time.Time, opts Options) Chart {
	opts = opts.withDefaults()
	w := NewWindow(projects, now, opts)

	rows := make([]Row, 0, len(projects))
	for _, p := range projects {
		bar := w.Bar(p.StartDate, p.DueDate, opts.MinBarWidth)
		row := Row{
			ProjectID:         p.ID,
			Name:              p.Name,
			CurrentPhase:      p.CurrentPhase,
			PhaseLabel:        p.CurrentPhase.Label(),
			Progress:          p.Progress,
			ShowProgressLabel: bar.Width > opts.LabelMinWidth,
			Bar:               bar,
			Phases:            make([]PhaseBar, 0, len(p.Phases)),
		}
		for _, ph := range p.Phases {
			row.Phases = append(row.Phases, PhaseBar{
				ID:     ph.ID,
				Name:   ph.Name,
				Status: ph.Status,
				Bar:    w.Bar(ph.StartDate, ph.EndDate, opts.MinBarWidth),
			})
		}
		rows = append(rows, row)
	}

	return Chart{
		WindowStart: w.Start,
		WindowEnd:   w.End,
		Today:       w.Position(now),
		Rows:        rows,
	}
}
