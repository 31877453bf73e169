package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/designflow/backend/internal/model"
	"github.com/designflow/backend/internal/repository"
	"github.com/designflow/backend/internal/service"
)

// ProjectHandler はプロジェクト CRUD の HTTP ハンドラ
type ProjectHandler struct {
	projectService service.ProjectService
}

// NewProjectHandler は ProjectHandler を生成する
func NewProjectHandler(projectService service.ProjectService) *ProjectHandler {
	return &ProjectHandler{projectService: projectService}
}

// List は GET /api/projects を処理する
func (h *ProjectHandler) List(w http.ResponseWriter, r *http.Request) {
	projects, err := h.projectService.List(r.Context())
	if err != nil {
		writeServiceError(w, err, "internal_error")
		return
	}
	if projects == nil {
		projects = []*model.Project{}
	}
	writeJSON(w, http.StatusOK, projects)
}

// Get は GET /api/projects/{id} を処理する（付箋・ファイル・フィードバックを含む）
func (h *ProjectHandler) Get(w http.ResponseWriter, r *http.Request) {
	project, err := h.projectService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "internal_error")
		return
	}
	writeJSON(w, http.StatusOK, project)
}

type projectRequest struct {
	Name         string               `json:"name"`
	Client       string               `json:"client"`
	Description  string               `json:"description"`
	Thumbnail    string               `json:"thumbnail"`
	Status       model.ProjectStatus  `json:"status"`
	Progress     int                  `json:"progress"`
	CurrentPhase model.DesignPhase    `json:"current_phase"`
	StartDate    string               `json:"start_date"`
	DueDate      string               `json:"due_date"`
	Team         []model.Member       `json:"team"`
	Phases       []model.ProjectPhase `json:"phases"`
}

// Create は POST /api/projects を処理する
func (h *ProjectHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req projectRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name_required")
		return
	}

	project := &model.Project{
		Name:         req.Name,
		Client:       req.Client,
		Description:  req.Description,
		Thumbnail:    req.Thumbnail,
		Status:       req.Status,
		Progress:     req.Progress,
		CurrentPhase: req.CurrentPhase,
		StartDate:    req.StartDate,
		DueDate:      req.DueDate,
		Team:         req.Team,
		Phases:       req.Phases,
	}
	if err := h.projectService.Create(r.Context(), project); err != nil {
		writeServiceError(w, err, "create_failed")
		return
	}
	writeJSON(w, http.StatusCreated, project)
}

// Update は PUT /api/projects/{id} を処理する。指定されたキーだけを上書きする。
func (h *ProjectHandler) Update(w http.ResponseWriter, r *http.Request) {
	existing, err := h.projectService.GetByID(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, err, "internal_error")
		return
	}

	var raw map[string]json.RawMessage
	if !decodeJSON(w, r, &raw) {
		return
	}

	fields := map[string]any{
		"name":          &existing.Name,
		"client":        &existing.Client,
		"description":   &existing.Description,
		"thumbnail":     &existing.Thumbnail,
		"status":        &existing.Status,
		"progress":      &existing.Progress,
		"current_phase": &existing.CurrentPhase,
		"start_date":    &existing.StartDate,
		"due_date":      &existing.DueDate,
		"team":          &existing.Team,
		"phases":        &existing.Phases,
	}
	for key, dst := range fields {
		b, ok := raw[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(b, dst); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_"+key)
			return
		}
	}

	if err := h.projectService.Update(r.Context(), existing); err != nil {
		writeServiceError(w, err, "update_failed")
		return
	}
	writeJSON(w, http.StatusOK, existing)
}

// Delete は DELETE /api/projects/{id} を処理する
func (h *ProjectHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.projectService.Delete(r.Context(), r.PathValue("id")); err != nil && !errors.Is(err, repository.ErrNotFound) {
		writeServiceError(w, err, "delete_failed")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
