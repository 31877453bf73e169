package model

import "time"

// ProjectStatus はプロジェクトの進行状態
type ProjectStatus string

const (
	ProjectStatusPlanning   ProjectStatus = "planning"
	ProjectStatusInProgress ProjectStatus = "in_progress"
	ProjectStatusReview     ProjectStatus = "review"
	ProjectStatusCompleted  ProjectStatus = "completed"
	ProjectStatusOnHold     ProjectStatus = "on_hold"
)

// Valid は定義済みのステータスかどうかを返す
func (s ProjectStatus) Valid() bool {
	switch s {
	case ProjectStatusPlanning, ProjectStatusInProgress, ProjectStatusReview, ProjectStatusCompleted, ProjectStatusOnHold:
		return true
	}
	return false
}

// DesignPhase は工業デザインのワークフロー段階
type DesignPhase string

const (
	DesignPhaseResearch    DesignPhase = "research"
	DesignPhaseConcept     DesignPhase = "concept"
	DesignPhaseCAD         DesignPhase = "cad"
	DesignPhaseRendering   DesignPhase = "rendering"
	DesignPhasePrototyping DesignPhase = "prototyping"
	DesignPhaseDFM         DesignPhase = "dfm"
)

var designPhaseLabels = map[DesignPhase]string{
	DesignPhaseResearch:    "User Research",
	DesignPhaseConcept:     "Concept Sketching",
	DesignPhaseCAD:         "3D Modeling (CAD)",
	DesignPhaseRendering:   "Rendering & Visualization",
	DesignPhasePrototyping: "Prototyping",
	DesignPhaseDFM:         "Design for Manufacturing (DFM)",
}

// Valid は定義済みのフェーズかどうかを返す
func (p DesignPhase) Valid() bool {
	_, ok := designPhaseLabels[p]
	return ok
}

// Label は表示用のフェーズ名。未知の値はそのまま返す。
func (p DesignPhase) Label() string {
	if l, ok := designPhaseLabels[p]; ok {
		return l
	}
	return string(p)
}

// Member はスタジオのチームメンバー
type Member struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	Avatar string `json:"avatar"`
}

// PhaseStatus はプロジェクト内フェーズの状態
type PhaseStatus string

const (
	PhaseStatusPending    PhaseStatus = "pending"
	PhaseStatusInProgress PhaseStatus = "in_progress"
	PhaseStatusCompleted  PhaseStatus = "completed"
)

// ProjectPhase はプロジェクトのスケジュール上の1フェーズ
type ProjectPhase struct {
	ID        string      `json:"id"`
	Name      string      `json:"name"`
	StartDate string      `json:"start_date"`
	EndDate   string      `json:"end_date"`
	Status    PhaseStatus `json:"status"`
}

// Project はデザインプロジェクト。
// 日付は "YYYY-MM-DD" または RFC3339 の文字列のまま保持し、解釈は timeline 側で行う。
type Project struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Client       string        `json:"client"`
	Description  string        `json:"description"`
	Thumbnail    string        `json:"thumbnail,omitempty"`
	Status       ProjectStatus `json:"status"`
	Progress     int           `json:"progress"` // 0-100
	CurrentPhase DesignPhase   `json:"current_phase"`
	StartDate    string        `json:"start_date"`
	DueDate      string        `json:"due_date"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`

	Team   []Member       `json:"team"`
	Phases []ProjectPhase `json:"phases"`

	// 別テーブルから読み込む。一覧 API では空のまま返す。
	Notes        []Note        `json:"notes,omitempty"`
	Files        []ProjectFile `json:"files,omitempty"`
	FeedbackLogs []LogEntry    `json:"feedback_logs,omitempty"`
}

// MemberByID はチームからメンバーを探す
func (p *Project) MemberByID(id string) (Member, bool) {
	for _, m := range p.Team {
		if m.ID == id {
			return m, true
		}
	}
	return Member{}, false
}
